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

// Package tree defines the expression and statement trees rewritten by macros.
//
// A tree is built from a Go syntax tree. Contrary to the Go syntax tree, every
// expression node carries an explicit summation-index list, filled by macros
// tracking the dummy indices of tensor expressions.
package tree

import (
	"go/ast"
	"go/token"
	"strconv"
)

// Kind of an expression node.
type Kind int

// Expression kinds.
const (
	InvalidKind Kind = iota
	LiteralKind
	IdentKind
	SelectorKind
	SubscriptKind
	SliceKind
	UnaryKind
	BinaryKind
	CallKind
)

var kindNames = map[Kind]string{
	InvalidKind:   "invalid",
	LiteralKind:   "literal",
	IdentKind:     "identifier",
	SelectorKind:  "selector",
	SubscriptKind: "subscript",
	SliceKind:     "slice",
	UnaryKind:     "unary",
	BinaryKind:    "binary",
	CallKind:      "call",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Ctx is the context in which a subscript is used.
type Ctx int

const (
	// Load reads a value.
	Load Ctx = iota
	// Store writes a value.
	Store
)

type (
	// Node is a node in the tree.
	Node interface {
		// Source returns the node in the Go syntax tree from which the node
		// has been built, or nil if the node has been synthesized.
		Source() ast.Node
		String() string
	}

	// Expr is an expression node.
	Expr interface {
		Node
		Kind() Kind
		// DummyIndices returns the summation indices carried by the expression.
		DummyIndices() []string
		expr()
	}

	// Axes is the summation-index list of an expression:
	// the ordered dummy indices that have not been summed yet.
	// An empty list marks a scalar or a fully reduced tensor.
	Axes struct {
		Dummy []string
	}

	// Literal is a basic literal: an integer, a float, or a string.
	Literal struct {
		Src   ast.Node
		Tok   token.Token
		Value string
		Axes
	}

	// Ident is a reference to a name.
	Ident struct {
		Src  ast.Node
		Name string
		Axes
	}

	// Selector is a qualified reference X.Sel.
	Selector struct {
		Src ast.Node
		X   Expr
		Sel string
		Axes
	}

	// Subscript indexes X with one or more indices.
	Subscript struct {
		Src     ast.Node
		X       Expr
		Indices []Expr
		Ctx     Ctx
		Axes
	}

	// Slice is a Low:High subscript position.
	// A slice with neither bound is a full slice.
	Slice struct {
		Src       ast.Node
		Low, High Expr
		Axes
	}

	// Unary is a unary operation.
	Unary struct {
		Src ast.Node
		Op  token.Token
		X   Expr
		Axes
	}

	// Binary is a binary operation.
	Binary struct {
		Src  ast.Node
		Op   token.Token
		X, Y Expr
		Axes
	}

	// Call is a function call.
	Call struct {
		Src  ast.Node
		Fun  Expr
		Args []Expr
		Axes
	}
)

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*Selector)(nil)
	_ Expr = (*Subscript)(nil)
	_ Expr = (*Slice)(nil)
	_ Expr = (*Unary)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Call)(nil)
)

// DummyIndices returns the summation-index list.
func (a Axes) DummyIndices() []string {
	return a.Dummy
}

// IsTensor returns true if the expression carries at least one dummy index.
func IsTensor(x Expr) bool {
	return len(x.DummyIndices()) > 0
}

// NewString returns a string literal.
func NewString(s string) *Literal {
	return &Literal{Tok: token.STRING, Value: strconv.Quote(s)}
}

// NewFullSlice returns a full slice marker.
func NewFullSlice() *Slice {
	return &Slice{}
}

func (*Literal) expr()   {}
func (*Ident) expr()     {}
func (*Selector) expr()  {}
func (*Subscript) expr() {}
func (*Slice) expr()     {}
func (*Unary) expr()     {}
func (*Binary) expr()    {}
func (*Call) expr()      {}

// Kind of the node.
func (*Literal) Kind() Kind { return LiteralKind }

// Kind of the node.
func (*Ident) Kind() Kind { return IdentKind }

// Kind of the node.
func (*Selector) Kind() Kind { return SelectorKind }

// Kind of the node.
func (*Subscript) Kind() Kind { return SubscriptKind }

// Kind of the node.
func (*Slice) Kind() Kind { return SliceKind }

// Kind of the node.
func (*Unary) Kind() Kind { return UnaryKind }

// Kind of the node.
func (*Binary) Kind() Kind { return BinaryKind }

// Kind of the node.
func (*Call) Kind() Kind { return CallKind }

// Source node.
func (x *Literal) Source() ast.Node { return x.Src }

// Source node.
func (x *Ident) Source() ast.Node { return x.Src }

// Source node.
func (x *Selector) Source() ast.Node { return x.Src }

// Source node.
func (x *Subscript) Source() ast.Node { return x.Src }

// Source node.
func (x *Slice) Source() ast.Node { return x.Src }

// Source node.
func (x *Unary) Source() ast.Node { return x.Src }

// Source node.
func (x *Binary) Source() ast.Node { return x.Src }

// Source node.
func (x *Call) Source() ast.Node { return x.Src }

// IsFull returns true if the slice has no bound.
func (x *Slice) IsFull() bool {
	return x.Low == nil && x.High == nil
}

type (
	// Stmt is a statement node.
	Stmt interface {
		Node
		stmt()
	}

	// Assign assigns the values of Rhs to Lhs.
	Assign struct {
		Src    ast.Node
		Lhs    []Expr
		Rhs    []Expr
		Define bool // true for :=
	}

	// ExprStmt evaluates an expression, discarding its result.
	ExprStmt struct {
		Src ast.Node
		X   Expr
	}

	// Return returns values from a function.
	Return struct {
		Src     ast.Node
		Results []Expr
	}

	// Block is a list of statements.
	Block struct {
		Src  ast.Node
		List []Stmt
	}
)

var (
	_ Stmt = (*Assign)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*Block)(nil)
)

func (*Assign) stmt()   {}
func (*ExprStmt) stmt() {}
func (*Return) stmt()   {}
func (*Block) stmt()    {}

// Source node.
func (s *Assign) Source() ast.Node { return s.Src }

// Source node.
func (s *ExprStmt) Source() ast.Node { return s.Src }

// Source node.
func (s *Return) Source() ast.Node { return s.Src }

// Source node.
func (s *Block) Source() ast.Node { return s.Src }

// Func is a function literal: its parameters and its body.
type Func struct {
	FSet   *token.FileSet
	Src    *ast.FuncLit
	Name   string
	Params []string
	Body   *Block
}

// Source node.
func (f *Func) Source() ast.Node {
	if f.Src == nil {
		return nil
	}
	return f.Src
}

// WithBody returns a shallow copy of the function with a different body.
func (f *Func) WithBody(body *Block) *Func {
	nf := *f
	nf.Body = body
	return &nf
}
