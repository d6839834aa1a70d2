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
	"github.com/gx-org/tensorcontract/build/tree"
)

// rewriteAssign rewrites an assignment to a tensor reference:
//
//	a[i, 0, j] = x
//
// becomes
//
//	a[:, 0, :] = einsum("<indices of x>->ij", x)
//
// The subscript of the target is dropped if all its positions are dummy indices.
// Assignments without any dummy index are returned unchanged.
func (r *rewriter) rewriteAssign(stmt *tree.Assign) (tree.Stmt, error) {
	if !r.containsDummy(stmt) {
		return stmt, nil
	}
	if len(stmt.Lhs) != 1 || len(stmt.Rhs) != 1 {
		return nil, r.fset.Unsupportedf(stmt.Source(), "assignment of %d values to %d targets with dummy indices", len(stmt.Rhs), len(stmt.Lhs))
	}
	target, ok := stmt.Lhs[0].(*tree.Subscript)
	if !ok || !r.containsDummy(target) {
		// Only tensor targets are supported: accumulating tensors into a
		// scalar requires to write the reduction explicitly.
		return nil, r.fset.Unsupportedf(stmt.Source(), "assignment to %s: dummy indices on the right-hand side require a tensor target", stmt.Lhs[0].String())
	}
	residual, err := r.parseTensor(target)
	if err != nil {
		return nil, err
	}
	value, err := r.rewriteExpr(stmt.Rhs[0])
	if err != nil {
		return nil, err
	}
	targetIdx, valueIdx := residual.DummyIndices(), value.DummyIndices()
	if missing := difference(targetIdx, valueIdx); len(missing) > 0 {
		return nil, r.fset.Unsupportedf(stmt.Rhs[0].Source(), "dummy index %s of %s is not an index of %s", missing[0], target.String(), stmt.Rhs[0].String())
	}
	var lhs tree.Expr = residual
	if len(residual.Indices) == len(targetIdx) {
		lhs = target.X
	}
	return &tree.Assign{
		Src: stmt.Src,
		Lhs: []tree.Expr{lhs},
		Rhs: []tree.Expr{r.call(stmt, join(valueIdx)+"->"+join(targetIdx), nil, value)},
	}, nil
}
