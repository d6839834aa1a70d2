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

package einsum

import (
	"go/token"
	"slices"
	"strings"

	"github.com/gx-org/tensorcontract/build/tree"
)

// rewriteExpr rewrites an expression, attaching to the returned node the
// dummy indices it still carries.
func (r *rewriter) rewriteExpr(x tree.Expr) (tree.Expr, error) {
	switch xT := x.(type) {
	case *tree.Binary:
		return r.rewriteBinary(xT)
	case *tree.Unary:
		return r.rewriteUnary(xT)
	case *tree.Subscript:
		if !r.containsDummy(xT) {
			return x, nil
		}
		return r.parseTensor(xT)
	default:
		return x, nil
	}
}

func (r *rewriter) rewriteUnary(x *tree.Unary) (tree.Expr, error) {
	operand, err := r.rewriteExpr(x.X)
	if err != nil {
		return nil, err
	}
	if operand == x.X {
		return x, nil
	}
	return &tree.Unary{
		Src:  x.Src,
		Op:   x.Op,
		X:    operand,
		Axes: tree.Axes{Dummy: slices.Clone(operand.DummyIndices())},
	}, nil
}

func (r *rewriter) rewriteBinary(x *tree.Binary) (tree.Expr, error) {
	left, err := r.rewriteExpr(x.X)
	if err != nil {
		return nil, err
	}
	right, err := r.rewriteExpr(x.Y)
	if err != nil {
		return nil, err
	}
	leftTensor, rightTensor := tree.IsTensor(left), tree.IsTensor(right)
	if leftTensor && rightTensor {
		switch x.Op {
		case token.MUL:
			return r.contract(x, left, right), nil
		case token.ADD, token.SUB:
			return r.reduceThen(x, left, right)
		default:
			return nil, r.fset.Unsupportedf(x.Source(), "operator %s between tensors %s and %s", x.Op, x.X.String(), x.Y.String())
		}
	}
	var dummy []string
	switch {
	case leftTensor:
		dummy = slices.Clone(left.DummyIndices())
	case rightTensor:
		dummy = slices.Clone(right.DummyIndices())
	case left == x.X && right == x.Y:
		return x, nil
	}
	return &tree.Binary{
		Src:  x.Src,
		Op:   x.Op,
		X:    left,
		Y:    right,
		Axes: tree.Axes{Dummy: dummy},
	}, nil
}

// difference returns the elements of a not in b, in the order of a.
func difference(a, b []string) []string {
	var diff []string
	for _, s := range a {
		if !slices.Contains(b, s) {
			diff = append(diff, s)
		}
	}
	return diff
}

func join(indices []string) string {
	return strings.Join(indices, "")
}

// contract multiplies two tensors. Indices present on both sides are summed.
// The indices of the result are the indices only present on the left
// followed by the indices only present on the right.
func (r *rewriter) contract(src tree.Node, left, right tree.Expr) tree.Expr {
	leftIdx, rightIdx := left.DummyIndices(), right.DummyIndices()
	result := append(difference(leftIdx, rightIdx), difference(rightIdx, leftIdx)...)
	subscripts := join(leftIdx) + "," + join(rightIdx) + "->" + join(result)
	return r.call(src, subscripts, result, left, right)
}

// reduceThen reduces the left tensor to the indices of the right tensor
// before applying the addition or subtraction.
func (r *rewriter) reduceThen(x *tree.Binary, left, right tree.Expr) (tree.Expr, error) {
	leftIdx, rightIdx := left.DummyIndices(), right.DummyIndices()
	if missing := difference(rightIdx, leftIdx); len(missing) > 0 {
		return nil, r.fset.Unsupportedf(x.Source(), "dummy index %s of %s is not an index of %s", missing[0], x.Y.String(), x.X.String())
	}
	reduced := r.call(x, join(leftIdx)+"->"+join(rightIdx), slices.Clone(rightIdx), left)
	return &tree.Binary{
		Src:  x.Src,
		Op:   x.Op,
		X:    reduced,
		Y:    right,
		Axes: tree.Axes{Dummy: slices.Clone(rightIdx)},
	}, nil
}
