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

// Package einsum rewrites tensor-index notation into calls to a contraction primitive.
//
// Inside a function, subscripts indexed by dummy indices reference tensors:
//
//	func(i, j, k) {
//		a[i, k] = b[i, j] * c[j, k]
//	}
//
// is rewritten into:
//
//	func(i, j, k) {
//		a = num.Einsum("ik->ik", num.Einsum("ij,jk->ik", b[:, :], c[:, :]))
//	}
//
// Dummy indices shared by the two operands of a multiplication are summed.
// Addition and subtraction reduce their left operand to the indices of their
// right operand. Dummy indices are the parameters of the function unless they
// are set explicitly with options.DummyIndex.
//
// Since the left operand of an addition is reduced, accumulating into a tensor
// is written with the accumulated tensor on the right, a[i] = b[i, j] + a[i].
// The op-assignment a[i] += b[i, j] expands to a[i] = a[i] + b[i, j] and is
// rejected because j is not an index of a[i].
//
// Positions of a tensor reference that are not dummy indices are kept in the
// rewritten reference. A slice position is written low:high in the brace
// form, as in b{0:2, i}.
package einsum

import (
	"go/token"

	"github.com/gx-org/tensorcontract/api/options"
	"github.com/gx-org/tensorcontract/base/ordered"
	"github.com/gx-org/tensorcontract/build/fmterr"
	"github.com/gx-org/tensorcontract/build/tree"
)

// Macro rewrites tensor expressions using Einstein summation.
type Macro struct {
	cfg *config
}

// New returns a new einsum macro.
// The options are applied after DefaultOptions.
func New(opts ...options.Option) (*Macro, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Macro{cfg: cfg}, nil
}

// Ref returns the reference to the contraction primitive called by the rewritten code.
func (m *Macro) Ref() string {
	return m.cfg.contraction().String()
}

// Rewrite returns a new function in which tensor assignments have been
// replaced by contraction calls. The input function is not modified.
// An error is returned and no function if any statement cannot be rewritten.
func (m *Macro) Rewrite(fn *tree.Func) (*tree.Func, error) {
	r := m.newRewriter(fn.FSet, m.cfg.resolve(fn))
	if r.dummies.Size() == 0 {
		return fn, nil
	}
	body, err := r.rewriteBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	if body == fn.Body {
		return fn, nil
	}
	return fn.WithBody(body), nil
}

// RewriteExpr rewrites a single expression. Since an expression has no
// parameter, dummy indices need to be set with options.DummyIndex.
// The returned expression carries the dummy indices left unsummed.
func (m *Macro) RewriteExpr(fset *token.FileSet, x tree.Expr) (tree.Expr, error) {
	r := m.newRewriter(fset, m.cfg.resolve(nil))
	if r.dummies.Size() == 0 {
		return x, nil
	}
	return r.rewriteExpr(x)
}

// rewriter holds the state of a single rewrite pass.
// The set of dummy indices never changes during a pass.
type rewriter struct {
	cfg     *config
	fset    fmterr.FileSet
	dummies *ordered.Set[string]
}

func (m *Macro) newRewriter(fset *token.FileSet, dummies *ordered.Set[string]) *rewriter {
	return &rewriter{
		cfg:     m.cfg,
		fset:    fmterr.FileSet{FSet: fset},
		dummies: dummies,
	}
}

func (r *rewriter) rewriteBlock(block *tree.Block) (*tree.Block, error) {
	return tree.TransformBlock(block, r.rewriteStmt)
}

func (r *rewriter) rewriteStmt(stmt tree.Stmt) (tree.Stmt, error) {
	switch stmtT := stmt.(type) {
	case *tree.Assign:
		return r.rewriteAssign(stmtT)
	case *tree.Block:
		return r.rewriteBlock(stmtT)
	default:
		return stmt, nil
	}
}

// isDummy returns true if a node is a reference to a dummy index.
func (r *rewriter) isDummy(n tree.Node) bool {
	ident, ok := n.(*tree.Ident)
	return ok && r.dummies.Contains(ident.Name)
}

// containsDummy returns true if a dummy index is referenced anywhere in a tree.
func (r *rewriter) containsDummy(n tree.Node) bool {
	return tree.Any(n, r.isDummy)
}

// call returns a call to the contraction primitive.
func (r *rewriter) call(src tree.Node, subscripts string, dummy []string, args ...tree.Expr) *tree.Call {
	call := &tree.Call{
		Fun:  r.cfg.contraction(),
		Args: append([]tree.Expr{tree.NewString(subscripts)}, args...),
		Axes: tree.Axes{Dummy: dummy},
	}
	if src != nil {
		call.Src = src.Source()
	}
	return call
}
