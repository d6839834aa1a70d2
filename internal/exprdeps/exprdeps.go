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

// Package exprdeps extracts the names a function tree depends on.
package exprdeps

import (
	"github.com/gx-org/tensorcontract/base/ordered"
	"github.com/gx-org/tensorcontract/build/tree"
)

func idents(done *ordered.Set[string], x tree.Expr) {
	switch xT := x.(type) {
	case *tree.Ident:
		done.Add(xT.Name)
	case *tree.Selector:
		// Only the root of a qualified reference is a name.
		idents(done, xT.X)
	case *tree.Subscript:
		idents(done, xT.X)
		for _, index := range xT.Indices {
			idents(done, index)
		}
	case *tree.Slice:
		if xT.Low != nil {
			idents(done, xT.Low)
		}
		if xT.High != nil {
			idents(done, xT.High)
		}
	case *tree.Unary:
		idents(done, xT.X)
	case *tree.Binary:
		idents(done, xT.X)
		idents(done, xT.Y)
	case *tree.Call:
		idents(done, xT.Fun)
		for _, arg := range xT.Args {
			idents(done, arg)
		}
	}
}

// Idents returns the names referenced by an expression, in order of appearance.
func Idents(x tree.Expr) []string {
	done := ordered.NewSet[string]()
	idents(done, x)
	return done.Slice()
}

type freeVars struct {
	defined *ordered.Set[string]
	free    *ordered.Set[string]
}

func (fv *freeVars) read(x tree.Expr) {
	for _, name := range Idents(x) {
		if !fv.defined.Contains(name) {
			fv.free.Add(name)
		}
	}
}

func (fv *freeVars) stmt(stmt tree.Stmt) {
	switch stmtT := stmt.(type) {
	case *tree.Assign:
		for _, x := range stmtT.Rhs {
			fv.read(x)
		}
		for _, target := range stmtT.Lhs {
			if id, ok := target.(*tree.Ident); ok {
				fv.defined.Add(id.Name)
				continue
			}
			fv.read(target)
		}
	case *tree.ExprStmt:
		fv.read(stmtT.X)
	case *tree.Return:
		for _, x := range stmtT.Results {
			fv.read(x)
		}
	case *tree.Block:
		for _, sub := range stmtT.List {
			fv.stmt(sub)
		}
	}
}

// Free returns the names read by a function before the function assigns them.
// These names need to be provided by the environment of the function.
// Names defined in a nested block are considered defined until the end of
// the function.
func Free(fn *tree.Func) []string {
	fv := &freeVars{
		defined: ordered.NewSet[string](),
		free:    ordered.NewSet[string](),
	}
	fv.stmt(fn.Body)
	return fv.free.Slice()
}
