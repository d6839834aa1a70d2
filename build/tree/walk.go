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

package tree

import "github.com/pkg/errors"

func children(n Node) []Node {
	var nodes []Node
	addExprs := func(exprs ...Expr) {
		for _, x := range exprs {
			if x != nil {
				nodes = append(nodes, x)
			}
		}
	}
	switch nT := n.(type) {
	case *Selector:
		addExprs(nT.X)
	case *Subscript:
		addExprs(nT.X)
		addExprs(nT.Indices...)
	case *Slice:
		addExprs(nT.Low, nT.High)
	case *Unary:
		addExprs(nT.X)
	case *Binary:
		addExprs(nT.X, nT.Y)
	case *Call:
		addExprs(nT.Fun)
		addExprs(nT.Args...)
	case *Assign:
		addExprs(nT.Lhs...)
		addExprs(nT.Rhs...)
	case *ExprStmt:
		addExprs(nT.X)
	case *Return:
		addExprs(nT.Results...)
	case *Block:
		for _, stmt := range nT.List {
			nodes = append(nodes, stmt)
		}
	}
	return nodes
}

// Inspect traverses a tree in depth-first order, calling f for each node.
// The children of a node are skipped if f returns false.
func Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}
	for _, child := range children(n) {
		Inspect(child, f)
	}
}

// Any returns true if f returns true for at least one node of the tree.
func Any(n Node, f func(Node) bool) bool {
	found := false
	Inspect(n, func(n Node) bool {
		if found {
			return false
		}
		found = f(n)
		return !found
	})
	return found
}

// TransformFunc rewrites an expression given its rewritten children.
type TransformFunc func(Expr) (Expr, error)

// Transform rebuilds an expression bottom-up, calling f on every node once its
// children have been transformed. Nodes are copied before f is called
// whenever one of their children changed: the input tree is never modified.
// The summation-index lists of copied nodes are reset.
func Transform(x Expr, f TransformFunc) (Expr, error) {
	if x == nil {
		return nil, nil
	}
	var out Expr
	switch xT := x.(type) {
	case *Literal, *Ident:
		out = x
	case *Selector:
		sub, err := Transform(xT.X, f)
		if err != nil {
			return nil, err
		}
		out = x
		if sub != xT.X {
			out = &Selector{Src: xT.Src, X: sub, Sel: xT.Sel}
		}
	case *Subscript:
		sub, err := Transform(xT.X, f)
		if err != nil {
			return nil, err
		}
		indices, changed, err := transformAll(xT.Indices, f)
		if err != nil {
			return nil, err
		}
		out = x
		if sub != xT.X || changed {
			out = &Subscript{Src: xT.Src, X: sub, Indices: indices, Ctx: xT.Ctx}
		}
	case *Slice:
		low, err := Transform(xT.Low, f)
		if err != nil {
			return nil, err
		}
		high, err := Transform(xT.High, f)
		if err != nil {
			return nil, err
		}
		out = x
		if low != xT.Low || high != xT.High {
			out = &Slice{Src: xT.Src, Low: low, High: high}
		}
	case *Unary:
		sub, err := Transform(xT.X, f)
		if err != nil {
			return nil, err
		}
		out = x
		if sub != xT.X {
			out = &Unary{Src: xT.Src, Op: xT.Op, X: sub}
		}
	case *Binary:
		left, err := Transform(xT.X, f)
		if err != nil {
			return nil, err
		}
		right, err := Transform(xT.Y, f)
		if err != nil {
			return nil, err
		}
		out = x
		if left != xT.X || right != xT.Y {
			out = &Binary{Src: xT.Src, Op: xT.Op, X: left, Y: right}
		}
	case *Call:
		fun, err := Transform(xT.Fun, f)
		if err != nil {
			return nil, err
		}
		args, changed, err := transformAll(xT.Args, f)
		if err != nil {
			return nil, err
		}
		out = x
		if fun != xT.Fun || changed {
			out = &Call{Src: xT.Src, Fun: fun, Args: args}
		}
	default:
		return nil, errors.Errorf("cannot transform expression %s of type %T", x.String(), x)
	}
	return f(out)
}

func transformAll(exprs []Expr, f TransformFunc) ([]Expr, bool, error) {
	out := make([]Expr, len(exprs))
	changed := false
	for i, x := range exprs {
		var err error
		if out[i], err = Transform(x, f); err != nil {
			return nil, false, err
		}
		changed = changed || out[i] != x
	}
	return out, changed, nil
}

// TransformStmt applies Transform to all the expressions of a statement.
// The statement is returned unchanged if none of its expressions changed.
func TransformStmt(stmt Stmt, f TransformFunc) (Stmt, error) {
	switch sT := stmt.(type) {
	case *Assign:
		lhs, lChanged, err := transformAll(sT.Lhs, f)
		if err != nil {
			return nil, err
		}
		rhs, rChanged, err := transformAll(sT.Rhs, f)
		if err != nil {
			return nil, err
		}
		if !lChanged && !rChanged {
			return stmt, nil
		}
		return &Assign{Src: sT.Src, Lhs: lhs, Rhs: rhs, Define: sT.Define}, nil
	case *ExprStmt:
		x, err := Transform(sT.X, f)
		if err != nil {
			return nil, err
		}
		if x == sT.X {
			return stmt, nil
		}
		return &ExprStmt{Src: sT.Src, X: x}, nil
	case *Return:
		results, changed, err := transformAll(sT.Results, f)
		if err != nil {
			return nil, err
		}
		if !changed {
			return stmt, nil
		}
		return &Return{Src: sT.Src, Results: results}, nil
	case *Block:
		return TransformBlock(sT, func(stmt Stmt) (Stmt, error) {
			return TransformStmt(stmt, f)
		})
	default:
		return nil, errors.Errorf("cannot transform statement %s of type %T", stmt.String(), stmt)
	}
}

// TransformBlock returns a new block with every statement replaced by the
// result of f. The block is returned unchanged if no statement changed.
func TransformBlock(block *Block, f func(Stmt) (Stmt, error)) (*Block, error) {
	list := make([]Stmt, len(block.List))
	changed := false
	for i, stmt := range block.List {
		var err error
		if list[i], err = f(stmt); err != nil {
			return nil, err
		}
		changed = changed || list[i] != stmt
	}
	if !changed {
		return block, nil
	}
	return &Block{Src: block.Src, List: list}, nil
}
