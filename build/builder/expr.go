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

func (b *builder) processExprs(srcs []ast.Expr, ctx tree.Ctx) ([]tree.Expr, bool) {
	exprs := make([]tree.Expr, len(srcs))
	ok := true
	for i, src := range srcs {
		var exprOk bool
		exprs[i], exprOk = b.processExpr(src, ctx)
		ok = ok && exprOk
	}
	return exprs, ok
}

// processExpr converts a Go expression.
// The context is only used by subscripts: all sub-expressions are read.
func (b *builder) processExpr(src ast.Expr, ctx tree.Ctx) (tree.Expr, bool) {
	switch srcT := src.(type) {
	case *ast.Ident:
		return &tree.Ident{Src: srcT, Name: srcT.Name}, true
	case *ast.BasicLit:
		return b.processBasicLit(srcT)
	case *ast.ParenExpr:
		return b.processExpr(srcT.X, ctx)
	case *ast.SelectorExpr:
		x, ok := b.processExpr(srcT.X, tree.Load)
		return &tree.Selector{Src: srcT, X: x, Sel: srcT.Sel.Name}, ok
	case *ast.UnaryExpr:
		return b.processUnary(srcT)
	case *ast.BinaryExpr:
		x, xOk := b.processExpr(srcT.X, tree.Load)
		y, yOk := b.processExpr(srcT.Y, tree.Load)
		return &tree.Binary{Src: srcT, Op: srcT.Op, X: x, Y: y}, xOk && yOk
	case *ast.IndexExpr:
		return b.processSubscript(srcT, srcT.X, []ast.Expr{srcT.Index}, ctx)
	case *ast.IndexListExpr:
		return b.processSubscript(srcT, srcT.X, srcT.Indices, ctx)
	case *ast.SliceExpr:
		return b.processSliceExpr(srcT, ctx)
	case *ast.CompositeLit:
		return b.processTensorLit(srcT, ctx)
	case *ast.CallExpr:
		return b.processCall(srcT)
	default:
		return nil, b.err().AppendUnsupportedf(src, "expression %T", src)
	}
}

func (b *builder) processBasicLit(src *ast.BasicLit) (tree.Expr, bool) {
	switch src.Kind {
	case token.INT, token.FLOAT, token.STRING:
		return &tree.Literal{Src: src, Tok: src.Kind, Value: src.Value}, true
	default:
		return nil, b.err().AppendUnsupportedf(src, "%s literal", src.Kind)
	}
}

func (b *builder) processUnary(src *ast.UnaryExpr) (tree.Expr, bool) {
	switch src.Op {
	case token.ADD, token.SUB, token.NOT:
	default:
		return nil, b.err().AppendUnsupportedf(src, "unary operator %s", src.Op)
	}
	x, ok := b.processExpr(src.X, tree.Load)
	return &tree.Unary{Src: src, Op: src.Op, X: x}, ok
}

func (b *builder) processSubscript(src ast.Expr, x ast.Expr, indices []ast.Expr, ctx tree.Ctx) (tree.Expr, bool) {
	base, ok := b.processExpr(x, tree.Load)
	elts, eltsOk := b.processExprs(indices, tree.Load)
	return &tree.Subscript{
		Src:     src,
		X:       base,
		Indices: elts,
		Ctx:     ctx,
	}, ok && eltsOk
}

// processTensorLit converts a tensor reference written as a composite literal,
// for example b{i, 0, j}. The Go syntax only accepts types after the first
// position of an index list, so this form is required to mix dummy indices with
// integer positions. A key-value element low:high is a slice position.
func (b *builder) processTensorLit(src *ast.CompositeLit, ctx tree.Ctx) (tree.Expr, bool) {
	if src.Type == nil {
		return nil, b.err().AppendUnsupportedf(src, "composite literal without a tensor")
	}
	if len(src.Elts) == 0 {
		return nil, b.err().Appendf(src, "tensor reference %s without index", src.Type)
	}
	base, ok := b.processExpr(src.Type, tree.Load)
	indices := make([]tree.Expr, len(src.Elts))
	for i, elt := range src.Elts {
		var eltOk bool
		if kv, isKV := elt.(*ast.KeyValueExpr); isKV {
			indices[i], eltOk = b.processSlicePos(kv)
		} else {
			indices[i], eltOk = b.processExpr(elt, tree.Load)
		}
		ok = ok && eltOk
	}
	return &tree.Subscript{
		Src:     src,
		X:       base,
		Indices: indices,
		Ctx:     ctx,
	}, ok
}

func (b *builder) processSlicePos(src *ast.KeyValueExpr) (tree.Expr, bool) {
	low, lowOk := b.processExpr(src.Key, tree.Load)
	high, highOk := b.processExpr(src.Value, tree.Load)
	return &tree.Slice{Src: src, Low: low, High: high}, lowOk && highOk
}

func (b *builder) processSliceExpr(src *ast.SliceExpr, ctx tree.Ctx) (tree.Expr, bool) {
	if src.Slice3 {
		return nil, b.err().AppendUnsupportedf(src, "3-index slice")
	}
	base, ok := b.processExpr(src.X, tree.Load)
	slice := &tree.Slice{Src: src}
	if src.Low != nil {
		var lowOk bool
		slice.Low, lowOk = b.processExpr(src.Low, tree.Load)
		ok = ok && lowOk
	}
	if src.High != nil {
		var highOk bool
		slice.High, highOk = b.processExpr(src.High, tree.Load)
		ok = ok && highOk
	}
	return &tree.Subscript{
		Src:     src,
		X:       base,
		Indices: []tree.Expr{slice},
		Ctx:     ctx,
	}, ok
}

func (b *builder) processCall(src *ast.CallExpr) (tree.Expr, bool) {
	if src.Ellipsis.IsValid() {
		return nil, b.err().AppendUnsupportedf(src, "variadic call")
	}
	fun, funOk := b.processExpr(src.Fun, tree.Load)
	args, argsOk := b.processExprs(src.Args, tree.Load)
	return &tree.Call{Src: src, Fun: fun, Args: args}, funOk && argsOk
}
