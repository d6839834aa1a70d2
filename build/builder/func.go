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

package builder

import (
	"go/ast"

	"github.com/gx-org/tensorcontract/build/tree"
)

func (b *builder) processFuncLit(name string, src *ast.FuncLit) (*tree.Func, bool) {
	params, paramsOk := b.processParams(src.Type)
	body, bodyOk := b.processBlock(src.Body)
	return &tree.Func{
		FSet:   b.fset,
		Src:    src,
		Name:   name,
		Params: params,
		Body:   body,
	}, paramsOk && bodyOk
}

// processParams returns the names of the parameters.
// A parameter without a name, like in func(i, j), uses its type identifier as
// its name: parameters are used to declare dummy indices and are never typed.
func (b *builder) processParams(src *ast.FuncType) ([]string, bool) {
	if src.TypeParams != nil && len(src.TypeParams.List) > 0 {
		return nil, b.err().AppendUnsupportedf(src.TypeParams, "type parameters")
	}
	if src.Params == nil {
		return nil, true
	}
	var names []string
	ok := true
	for _, field := range src.Params.List {
		if len(field.Names) > 0 {
			for _, name := range field.Names {
				names = append(names, name.Name)
			}
			continue
		}
		ident, isIdent := field.Type.(*ast.Ident)
		if !isIdent {
			ok = b.err().Appendf(field, "cannot infer the name of a parameter from %T", field.Type)
			continue
		}
		names = append(names, ident.Name)
	}
	return names, ok
}
