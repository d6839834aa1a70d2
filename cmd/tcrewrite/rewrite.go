// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/tensorcontract/api"
	"github.com/gx-org/tensorcontract/api/options"
	"github.com/gx-org/tensorcontract/build/builder"
	"github.com/gx-org/tensorcontract/build/tree"
)

type namedFunc struct {
	name string
	lit  *ast.FuncLit
}

// collectFuncs returns the function declarations of a file and the function
// literals assigned to its top-level variables.
func collectFuncs(file *ast.File) []namedFunc {
	var funcs []namedFunc
	for _, decl := range file.Decls {
		switch declT := decl.(type) {
		case *ast.FuncDecl:
			if declT.Body == nil || declT.Recv != nil {
				continue
			}
			funcs = append(funcs, namedFunc{
				name: declT.Name.Name,
				lit:  &ast.FuncLit{Type: declT.Type, Body: declT.Body},
			})
		case *ast.GenDecl:
			for _, spec := range declT.Specs {
				vSpec, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for i, value := range vSpec.Values {
					lit, ok := value.(*ast.FuncLit)
					if !ok || i >= len(vSpec.Names) {
						continue
					}
					funcs = append(funcs, namedFunc{name: vSpec.Names[i].Name, lit: lit})
				}
			}
		}
	}
	return funcs
}

// rewriteFile rewrites the functions of a Go file and writes them to w.
// A source without package clause is parsed as a single function literal.
func rewriteFile(w io.Writer, filename string, src []byte, opts []options.Option) error {
	if !strings.HasPrefix(strings.TrimSpace(string(src)), "package") {
		fn, err := builder.ParseFunc(filename, string(src))
		if err != nil {
			return err
		}
		return writeFunc(w, fn, opts)
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return errors.Wrapf(err, "cannot parse %s", filename)
	}
	funcs := collectFuncs(file)
	if len(funcs) == 0 {
		return errors.Errorf("%s: no function to rewrite", filename)
	}
	for i, nf := range funcs {
		fn, err := builder.FromFuncLit(fset, nf.name, nf.lit)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "// %s\n", nf.name)
		if err := writeFunc(w, fn, opts); err != nil {
			return err
		}
	}
	return nil
}

func writeFunc(w io.Writer, fn *tree.Func, opts []options.Option) error {
	prg, err := api.CompileFunc(fn, opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, prg.Source())
	return err
}
