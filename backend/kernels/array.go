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

// Package kernels implements dense float64 arrays and the kernels
// executing rewritten tensor expressions, including Einstein summation.
package kernels

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
	"github.com/gx-org/backend/shape"
	"github.com/gx-org/tensorcontract/fmt/fmtarray"
)

// Array is a multi-dimensional array of float64 stored in row-major order.
type Array struct {
	shape  shape.Shape
	values []float64
}

func newArray(axes []int) *Array {
	sh := shape.Shape{
		DType:       dtype.Float64,
		AxisLengths: axes,
	}
	return &Array{
		shape:  sh,
		values: make([]float64, sh.Size()),
	}
}

// Zeros returns an array of the given axis lengths filled with zeros.
func Zeros(axes ...int) *Array {
	return newArray(slices.Clone(axes))
}

// Scalar returns an atomic array.
func Scalar(v float64) *Array {
	a := newArray(nil)
	a.values[0] = v
	return a
}

// FromSlice returns an array given its values in row-major order.
// The values are not copied.
func FromSlice(values []float64, axes ...int) (*Array, error) {
	sh := shape.Shape{
		DType:       dtype.Float64,
		AxisLengths: slices.Clone(axes),
	}
	if len(values) != sh.Size() {
		return nil, errors.Errorf("cannot create an array of shape %v from %d values", axes, len(values))
	}
	return &Array{shape: sh, values: values}, nil
}

// Shape of the array.
func (a *Array) Shape() *shape.Shape {
	return &a.shape
}

// Rank returns the number of axes of the array.
func (a *Array) Rank() int {
	return len(a.shape.AxisLengths)
}

// Flat values of the array.
func (a *Array) Flat() []float64 {
	return a.values
}

// Copy returns a copy of the array.
func (a *Array) Copy() *Array {
	return &Array{
		shape: shape.Shape{
			DType:       a.shape.DType,
			AxisLengths: slices.Clone(a.shape.AxisLengths),
		},
		values: slices.Clone(a.values),
	}
}

// ToAtom returns the value of an atomic array.
func (a *Array) ToAtom() (float64, error) {
	if !a.shape.IsAtomic() {
		return 0, errors.Errorf("%s not atomic", a.shape.String())
	}
	return a.values[0], nil
}

// String representation of the array.
func (a *Array) String() string {
	return fmtarray.Sprint[float64](a.values, a.shape.AxisLengths)
}

// strides returns the number of elements between two consecutive
// positions along each axis.
func strides(axes []int) []int {
	s := make([]int, len(axes))
	stride := 1
	for i := len(axes) - 1; i >= 0; i-- {
		s[i] = stride
		stride *= axes[i]
	}
	return s
}
