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

package interp

import (
	"go/constant"
	"go/token"
	"math"
	"strconv"

	"github.com/gx-org/tensorcontract/backend/kernels"
	"github.com/gx-org/tensorcontract/build/tree"
	"github.com/gx-org/tensorcontract/internal/base/scope"
)

func (itp *interpreter) eval(scp scope.Scope[Value], x tree.Expr) (Value, error) {
	switch xT := x.(type) {
	case *tree.Literal:
		return itp.evalLiteral(xT)
	case *tree.Ident:
		val, ok := scp.Find(xT.Name)
		if !ok {
			return nil, itp.fset.Errorf(xT.Source(), "undefined: %s", xT.Name)
		}
		return val, nil
	case *tree.Selector:
		return itp.evalSelector(scp, xT)
	case *tree.Subscript:
		arr, sels, err := itp.evalSubscript(scp, xT)
		if err != nil {
			return nil, err
		}
		out, err := arr.Index(sels...)
		if err != nil {
			return nil, itp.fset.Position(xT.Source(), err)
		}
		return out, nil
	case *tree.Unary:
		return itp.evalUnary(scp, xT)
	case *tree.Binary:
		return itp.evalBinary(scp, xT)
	case *tree.Call:
		return itp.evalCall(scp, xT)
	default:
		return nil, itp.fset.Errorf(x.Source(), "cannot evaluate %s: %s expression outside of a subscript", x.String(), x.Kind())
	}
}

func (itp *interpreter) evalLiteral(x *tree.Literal) (Value, error) {
	val := constant.MakeFromLiteral(x.Value, x.Tok, 0)
	switch val.Kind() {
	case constant.String:
		return String(constant.StringVal(val)), nil
	case constant.Int, constant.Float:
		f, _ := constant.Float64Val(val)
		return kernels.Scalar(f), nil
	default:
		return nil, itp.fset.Errorf(x.Source(), "invalid literal %s", x.Value)
	}
}

func (itp *interpreter) evalSelector(scp scope.Scope[Value], x *tree.Selector) (Value, error) {
	val, err := itp.eval(scp, x.X)
	if err != nil {
		return nil, err
	}
	pkg, ok := val.(*Package)
	if !ok {
		return nil, itp.fset.Errorf(x.Source(), "%s is a %T and has no member", x.X.String(), val)
	}
	member, ok := pkg.Members.Load(x.Sel)
	if !ok {
		return nil, itp.fset.Errorf(x.Source(), "undefined: %s", x.String())
	}
	return member, nil
}

func (itp *interpreter) evalArray(scp scope.Scope[Value], x tree.Expr) (*kernels.Array, error) {
	val, err := itp.eval(scp, x)
	if err != nil {
		return nil, err
	}
	arr, ok := val.(*kernels.Array)
	if !ok {
		return nil, itp.fset.Errorf(x.Source(), "%s is a %T and not an array", x.String(), val)
	}
	return arr, nil
}

func (itp *interpreter) evalInt(scp scope.Scope[Value], x tree.Expr) (int, error) {
	arr, err := itp.evalArray(scp, x)
	if err != nil {
		return 0, err
	}
	f, err := arr.ToAtom()
	if err != nil {
		return 0, itp.fset.Position(x.Source(), err)
	}
	if f != math.Trunc(f) {
		return 0, itp.fset.Errorf(x.Source(), "index %s is not an integer", strconv.FormatFloat(f, 'g', -1, 64))
	}
	return int(f), nil
}

// evalSubscript returns the array indexed by a subscript and the selectors of its indices.
func (itp *interpreter) evalSubscript(scp scope.Scope[Value], x *tree.Subscript) (*kernels.Array, []kernels.Selector, error) {
	arr, err := itp.evalArray(scp, x.X)
	if err != nil {
		return nil, nil, err
	}
	sels := make([]kernels.Selector, len(x.Indices))
	for i, index := range x.Indices {
		slice, ok := index.(*tree.Slice)
		if !ok {
			pos, err := itp.evalInt(scp, index)
			if err != nil {
				return nil, nil, err
			}
			sels[i] = kernels.At(pos)
			continue
		}
		sel := kernels.All()
		if slice.Low != nil {
			if sel.Low, err = itp.evalInt(scp, slice.Low); err != nil {
				return nil, nil, err
			}
		}
		if slice.High != nil {
			if sel.High, err = itp.evalInt(scp, slice.High); err != nil {
				return nil, nil, err
			}
		}
		sels[i] = sel
	}
	return arr, sels, nil
}

func (itp *interpreter) evalUnary(scp scope.Scope[Value], x *tree.Unary) (Value, error) {
	arr, err := itp.evalArray(scp, x.X)
	if err != nil {
		return nil, err
	}
	out, err := kernels.Unary(x.Op, arr)
	if err != nil {
		return nil, itp.fset.Position(x.Source(), err)
	}
	return out, nil
}

func (itp *interpreter) evalBinary(scp scope.Scope[Value], x *tree.Binary) (Value, error) {
	left, err := itp.eval(scp, x.X)
	if err != nil {
		return nil, err
	}
	right, err := itp.eval(scp, x.Y)
	if err != nil {
		return nil, err
	}
	if x.Op == token.ADD {
		ls, lok := left.(String)
		rs, rok := right.(String)
		if lok && rok {
			return ls + rs, nil
		}
	}
	leftArr, ok := left.(*kernels.Array)
	if !ok {
		return nil, itp.fset.Errorf(x.Source(), "invalid operation: operator %s not defined on %s (%T)", x.Op, x.X.String(), left)
	}
	rightArr, ok := right.(*kernels.Array)
	if !ok {
		return nil, itp.fset.Errorf(x.Source(), "invalid operation: operator %s not defined on %s (%T)", x.Op, x.Y.String(), right)
	}
	out, err := kernels.Binary(x.Op, leftArr, rightArr)
	if err != nil {
		return nil, itp.fset.Position(x.Source(), err)
	}
	return out, nil
}

func (itp *interpreter) evalCall(scp scope.Scope[Value], x *tree.Call) (Value, error) {
	fun, err := itp.eval(scp, x.Fun)
	if err != nil {
		return nil, err
	}
	f, ok := fun.(Func)
	if !ok {
		return nil, itp.fset.Errorf(x.Source(), "cannot call %s: %T is not a function", x.Fun.String(), fun)
	}
	args := make([]Value, len(x.Args))
	for i, arg := range x.Args {
		if args[i], err = itp.eval(scp, arg); err != nil {
			return nil, err
		}
	}
	out, err := f(args)
	if err != nil {
		return nil, itp.fset.Position(x.Source(), err)
	}
	return out, nil
}
