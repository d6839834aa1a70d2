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

// Package macro defines the interface of macros rewriting function trees
// and the functions applying them.
package macro

import (
	"go/token"

	"github.com/pkg/errors"
	"github.com/gx-org/tensorcontract/build/tree"
)

type (
	// Macro rewrites the tree of a function.
	// A macro never modifies its input: it returns a new function or
	// the input function when nothing needs to be rewritten.
	Macro interface {
		Rewrite(*tree.Func) (*tree.Func, error)
	}

	// ExprMacro is a macro that can also rewrite a single expression.
	ExprMacro interface {
		Macro
		RewriteExpr(*token.FileSet, tree.Expr) (tree.Expr, error)
	}
)

// Apply rewrites a function by applying macros in order.
// It stops at the first error. No function is returned with the error.
func Apply(fn *tree.Func, macros ...Macro) (*tree.Func, error) {
	for i, m := range macros {
		var err error
		fn, err = m.Rewrite(fn)
		if err != nil {
			return nil, errors.WithMessagef(err, "macro %d (%T)", i, m)
		}
	}
	return fn, nil
}

// ApplyExpr rewrites an expression by applying macros in order.
func ApplyExpr(fset *token.FileSet, x tree.Expr, macros ...ExprMacro) (tree.Expr, error) {
	for i, m := range macros {
		var err error
		x, err = m.RewriteExpr(fset, x)
		if err != nil {
			return nil, errors.WithMessagef(err, "macro %d (%T)", i, m)
		}
	}
	return x, nil
}

// Func is a macro applying a transform function to every expression of
// every statement of a function.
type Func tree.TransformFunc

var _ ExprMacro = Func(nil)

// Rewrite a function.
func (f Func) Rewrite(fn *tree.Func) (*tree.Func, error) {
	body, err := tree.TransformBlock(fn.Body, func(stmt tree.Stmt) (tree.Stmt, error) {
		return tree.TransformStmt(stmt, tree.TransformFunc(f))
	})
	if err != nil {
		return nil, err
	}
	if body == fn.Body {
		return fn, nil
	}
	return fn.WithBody(body), nil
}

// RewriteExpr rewrites an expression.
func (f Func) RewriteExpr(_ *token.FileSet, x tree.Expr) (tree.Expr, error) {
	return tree.Transform(x, tree.TransformFunc(f))
}
