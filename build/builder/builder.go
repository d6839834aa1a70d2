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

// Package builder extracts trees from Go source code.
//
// The source code is first parsed with [go/parser]. The resulting
// [go/ast] tree is then converted into a [tree] tree that macros
// can rewrite. Errors are accumulated while converting the tree
// so that all the unsupported constructs are reported at once.
package builder

import (
	"go/ast"
	"go/parser"
	"go/token"

	"github.com/pkg/errors"
	"github.com/gx-org/tensorcontract/build/fmterr"
	"github.com/gx-org/tensorcontract/build/tree"
)

type builder struct {
	fset *token.FileSet
	errs fmterr.Errors
	app  *fmterr.Appender
}

func newBuilder(fset *token.FileSet) *builder {
	b := &builder{fset: fset}
	b.app = b.errs.NewAppender(fset)
	return b
}

func (b *builder) err() *fmterr.Appender {
	return b.app
}

// ParseFunc parses the source of a function literal, for example:
//
//	func(i, j) {
//		a[i, j] = b[i] * c[j]
//		d{i, 0} = a[i, j] * c[j]
//	}
//
// Subscripts are written with square brackets or, when a position other than
// the first is not an identifier, as a composite literal.
//
// The name is used to report positions in errors.
func ParseFunc(name, src string) (*tree.Func, error) {
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, name, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse function %s", name)
	}
	lit, ok := expr.(*ast.FuncLit)
	if !ok {
		return nil, fmterr.Errorf(fset, expr, "expected a function literal, got %T", expr)
	}
	return FromFuncLit(fset, name, lit)
}

// FromFuncLit builds a function from a function literal already parsed.
func FromFuncLit(fset *token.FileSet, name string, lit *ast.FuncLit) (*tree.Func, error) {
	b := newBuilder(fset)
	fn, _ := b.processFuncLit(name, lit)
	if err := b.errs.ToError(); err != nil {
		return nil, err
	}
	return fn, nil
}

// ParseExpr parses a single expression.
// The file set used to parse the expression is returned so that errors can be
// reported with positions.
func ParseExpr(src string) (tree.Expr, *token.FileSet, error) {
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "expr", src, parser.SkipObjectResolution)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "cannot parse expression %q", src)
	}
	b := newBuilder(fset)
	x, _ := b.processExpr(expr, tree.Load)
	if err := b.errs.ToError(); err != nil {
		return nil, nil, err
	}
	return x, fset, nil
}
