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

package kernels

import (
	"go/token"
	"slices"

	"github.com/pkg/errors"
)

func binaryFunc(op token.Token) (func(x, y float64) float64, error) {
	switch op {
	case token.ADD:
		return func(x, y float64) float64 { return x + y }, nil
	case token.SUB:
		return func(x, y float64) float64 { return x - y }, nil
	case token.MUL:
		return func(x, y float64) float64 { return x * y }, nil
	case token.QUO:
		return func(x, y float64) float64 { return x / y }, nil
	default:
		return nil, errors.Errorf("operator %s not supported", op.String())
	}
}

// Binary applies a binary operator element-wise.
// Atomic operands are broadcast to the shape of the other operand.
// Otherwise, the two operands need to have the same shape.
func Binary(op token.Token, x, y *Array) (*Array, error) {
	f, err := binaryFunc(op)
	if err != nil {
		return nil, err
	}
	xAtomic, yAtomic := x.shape.IsAtomic(), y.shape.IsAtomic()
	switch {
	case xAtomic && yAtomic:
		return Scalar(f(x.values[0], y.values[0])), nil
	case xAtomic:
		out := Zeros(y.shape.AxisLengths...)
		for i, v := range y.values {
			out.values[i] = f(x.values[0], v)
		}
		return out, nil
	case yAtomic:
		out := Zeros(x.shape.AxisLengths...)
		for i, v := range x.values {
			out.values[i] = f(v, y.values[0])
		}
		return out, nil
	}
	if !slices.Equal(x.shape.AxisLengths, y.shape.AxisLengths) {
		return nil, errors.Errorf("operator %s: mismatched shapes %v and %v", op.String(), x.shape.AxisLengths, y.shape.AxisLengths)
	}
	out := Zeros(x.shape.AxisLengths...)
	for i, v := range x.values {
		out.values[i] = f(v, y.values[i])
	}
	return out, nil
}

// Unary applies a unary operator element-wise.
func Unary(op token.Token, x *Array) (*Array, error) {
	switch op {
	case token.ADD:
		return x.Copy(), nil
	case token.SUB:
		out := Zeros(x.shape.AxisLengths...)
		for i, v := range x.values {
			out.values[i] = -v
		}
		return out, nil
	default:
		return nil, errors.Errorf("operator %s not supported", op.String())
	}
}
