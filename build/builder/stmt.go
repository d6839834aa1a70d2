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
	"go/token"

	"github.com/gx-org/tensorcontract/build/tree"
)

func (b *builder) processBlock(src *ast.BlockStmt) (*tree.Block, bool) {
	block := &tree.Block{Src: src}
	ok := true
	for _, stmt := range src.List {
		n, stmtOk := b.processStmt(stmt)
		if !stmtOk {
			ok = false
			continue
		}
		if n != nil {
			block.List = append(block.List, n)
		}
	}
	return block, ok
}

func (b *builder) processStmt(src ast.Stmt) (tree.Stmt, bool) {
	switch srcT := src.(type) {
	case *ast.AssignStmt:
		return b.processAssign(srcT)
	case *ast.IncDecStmt:
		return b.processIncDec(srcT)
	case *ast.ExprStmt:
		x, ok := b.processExpr(srcT.X, tree.Load)
		return &tree.ExprStmt{Src: srcT, X: x}, ok
	case *ast.ReturnStmt:
		results, ok := b.processExprs(srcT.Results, tree.Load)
		return &tree.Return{Src: srcT, Results: results}, ok
	case *ast.BlockStmt:
		return b.processBlock(srcT)
	case *ast.EmptyStmt:
		return nil, true
	default:
		return nil, b.err().AppendUnsupportedf(src, "statement %T", src)
	}
}

// assignOps maps operation-assignment tokens to their binary operator.
var assignOps = map[token.Token]token.Token{
	token.ADD_ASSIGN: token.ADD,
	token.SUB_ASSIGN: token.SUB,
	token.MUL_ASSIGN: token.MUL,
	token.QUO_ASSIGN: token.QUO,
}

func (b *builder) processAssign(src *ast.AssignStmt) (tree.Stmt, bool) {
	lhs, lhsOk := b.processExprs(src.Lhs, tree.Store)
	rhs, rhsOk := b.processExprs(src.Rhs, tree.Load)
	if !lhsOk || !rhsOk {
		return nil, false
	}
	switch src.Tok {
	case token.ASSIGN:
		return &tree.Assign{Src: src, Lhs: lhs, Rhs: rhs}, true
	case token.DEFINE:
		return &tree.Assign{Src: src, Lhs: lhs, Rhs: rhs, Define: true}, true
	}
	op, ok := assignOps[src.Tok]
	if !ok {
		return nil, b.err().AppendUnsupportedf(src, "assignment operator %s", src.Tok)
	}
	if len(lhs) != 1 || len(rhs) != 1 {
		return nil, b.err().Appendf(src, "assignment operator %s requires single-valued operands", src.Tok)
	}
	// x op= y is rebuilt as x = x op y, x being read from the left-hand side.
	current, ok := b.processExpr(src.Lhs[0], tree.Load)
	if !ok {
		return nil, false
	}
	return &tree.Assign{
		Src: src,
		Lhs: lhs,
		Rhs: []tree.Expr{&tree.Binary{Src: src, Op: op, X: current, Y: rhs[0]}},
	}, true
}

func (b *builder) processIncDec(src *ast.IncDecStmt) (tree.Stmt, bool) {
	target, targetOk := b.processExpr(src.X, tree.Store)
	current, currentOk := b.processExpr(src.X, tree.Load)
	if !targetOk || !currentOk {
		return nil, false
	}
	op := token.ADD
	if src.Tok == token.DEC {
		op = token.SUB
	}
	one := &tree.Literal{Src: src, Tok: token.INT, Value: "1"}
	return &tree.Assign{
		Src: src,
		Lhs: []tree.Expr{target},
		Rhs: []tree.Expr{&tree.Binary{Src: src, Op: op, X: current, Y: one}},
	}, true
}
