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

import (
	"fmt"
	"go/token"
	"strings"

	tcfmt "github.com/gx-org/tensorcontract/base/fmt"
)

const unaryPrec = token.HighestPrec

func precedence(x Expr) int {
	switch xT := x.(type) {
	case *Binary:
		return xT.Op.Precedence()
	case *Unary:
		return unaryPrec
	default:
		return unaryPrec + 1
	}
}

func paren(x Expr, min int) string {
	if precedence(x) < min {
		return "(" + x.String() + ")"
	}
	return x.String()
}

func joinExprs(exprs []Expr) string {
	ss := make([]string, len(exprs))
	for i, x := range exprs {
		ss[i] = x.String()
	}
	return strings.Join(ss, ", ")
}

func (x *Literal) String() string { return x.Value }

func (x *Ident) String() string { return x.Name }

func (x *Selector) String() string {
	return paren(x.X, unaryPrec+1) + "." + x.Sel
}

func (x *Subscript) String() string {
	return paren(x.X, unaryPrec+1) + "[" + joinExprs(x.Indices) + "]"
}

func (x *Slice) String() string {
	var low, high string
	if x.Low != nil {
		low = x.Low.String()
	}
	if x.High != nil {
		high = x.High.String()
	}
	return low + ":" + high
}

func (x *Unary) String() string {
	return x.Op.String() + paren(x.X, unaryPrec+1)
}

func (x *Binary) String() string {
	prec := x.Op.Precedence()
	// Operators are left associative: the right operand needs parentheses
	// when its precedence is not strictly higher.
	return fmt.Sprintf("%s %s %s", paren(x.X, prec), x.Op.String(), paren(x.Y, prec+1))
}

func (x *Call) String() string {
	return paren(x.Fun, unaryPrec+1) + "(" + joinExprs(x.Args) + ")"
}

func (s *Assign) String() string {
	tok := token.ASSIGN
	if s.Define {
		tok = token.DEFINE
	}
	return fmt.Sprintf("%s %s %s", joinExprs(s.Lhs), tok, joinExprs(s.Rhs))
}

func (s *ExprStmt) String() string {
	return s.X.String()
}

func (s *Return) String() string {
	if len(s.Results) == 0 {
		return "return"
	}
	return "return " + joinExprs(s.Results)
}

func (s *Block) String() string {
	var b strings.Builder
	for _, stmt := range s.List {
		b.WriteString(stmt.String())
		b.WriteString("\n")
	}
	return "{\n" + tcfmt.Indent(b.String()) + "}"
}

// String returns the function literal in Go syntax.
func (f *Func) String() string {
	return fmt.Sprintf("func(%s) %s", strings.Join(f.Params, ", "), f.Body.String())
}
