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

package kernels_test

import (
	"go/token"
	"testing"

	"github.com/gx-org/tensorcontract/backend/kernels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arange(t *testing.T, axes ...int) *kernels.Array {
	size := 1
	for _, axis := range axes {
		size *= axis
	}
	values := make([]float64, size)
	for i := range values {
		values[i] = float64(i)
	}
	a, err := kernels.FromSlice(values, axes...)
	require.NoError(t, err)
	return a
}

func array(t *testing.T, values []float64, axes ...int) *kernels.Array {
	a, err := kernels.FromSlice(values, axes...)
	require.NoError(t, err)
	return a
}

func TestEinsum(t *testing.T) {
	tests := []struct {
		subscripts string
		operands   []*kernels.Array
		wantAxes   []int
		want       []float64
	}{
		{
			subscripts: "ij,jk->ik",
			operands: []*kernels.Array{
				array(t, []float64{1, 2, 3, 4, 5, 6}, 2, 3),
				array(t, []float64{7, 8, 9, 10, 11, 12}, 3, 2),
			},
			wantAxes: []int{2, 2},
			want:     []float64{58, 64, 139, 154},
		},
		{
			subscripts: "i,j->ij",
			operands: []*kernels.Array{
				array(t, []float64{1, 2}, 2),
				array(t, []float64{1, 2, 3}, 3),
			},
			wantAxes: []int{2, 3},
			want:     []float64{1, 2, 3, 2, 4, 6},
		},
		{
			subscripts: "ij->ji",
			operands:   []*kernels.Array{arange(t, 2, 3)},
			wantAxes:   []int{3, 2},
			want:       []float64{0, 3, 1, 4, 2, 5},
		},
		{
			subscripts: "ij->j",
			operands:   []*kernels.Array{arange(t, 2, 3)},
			wantAxes:   []int{3},
			want:       []float64{3, 5, 7},
		},
		{
			subscripts: "ii->",
			operands:   []*kernels.Array{array(t, []float64{1, 2, 3, 4}, 2, 2)},
			want:       []float64{5},
		},
		{
			subscripts: "i,i,i->",
			operands: []*kernels.Array{
				array(t, []float64{1, 2}, 2),
				array(t, []float64{3, 4}, 2),
				array(t, []float64{5, 6}, 2),
			},
			want: []float64{63},
		},
		{
			subscripts: "ij->ij",
			operands:   []*kernels.Array{arange(t, 2, 0)},
			wantAxes:   []int{2, 0},
			want:       []float64{},
		},
	}
	for _, test := range tests {
		got, err := kernels.Einsum(test.subscripts, test.operands...)
		require.NoError(t, err, test.subscripts)
		assert.Equal(t, len(test.wantAxes), got.Rank(), test.subscripts)
		if len(test.wantAxes) > 0 {
			assert.Equal(t, test.wantAxes, got.Shape().AxisLengths, test.subscripts)
		}
		assert.InDeltaSlice(t, test.want, got.Flat(), 1e-12, test.subscripts)
	}
}

func TestEinsumErrors(t *testing.T) {
	x := arange(t, 2, 3)
	tests := []struct {
		subscripts string
		operands   []*kernels.Array
	}{
		{subscripts: "ij", operands: []*kernels.Array{x}},
		{subscripts: "ij,jk->ik", operands: []*kernels.Array{x}},
		{subscripts: "ijk->ijk", operands: []*kernels.Array{x}},
		{subscripts: "ij,ij->ij", operands: []*kernels.Array{x, arange(t, 3, 2)}},
		{subscripts: "ij->ik", operands: []*kernels.Array{x}},
		{subscripts: "ij->ii", operands: []*kernels.Array{x}},
		{subscripts: "i1->i", operands: []*kernels.Array{x}},
	}
	for _, test := range tests {
		_, err := kernels.Einsum(test.subscripts, test.operands...)
		assert.Error(t, err, test.subscripts)
	}
}

func TestBinary(t *testing.T) {
	x := array(t, []float64{1, 2, 3, 4}, 2, 2)
	y := array(t, []float64{4, 3, 2, 1}, 2, 2)

	got, err := kernels.Binary(token.SUB, x, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -1, 1, 3}, got.Flat())

	got, err = kernels.Binary(token.MUL, kernels.Scalar(2), x)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6, 8}, got.Flat())
	assert.Equal(t, []int{2, 2}, got.Shape().AxisLengths)

	got, err = kernels.Binary(token.QUO, x, kernels.Scalar(2))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1, 1.5, 2}, got.Flat())

	got, err = kernels.Binary(token.ADD, kernels.Scalar(1), kernels.Scalar(1))
	require.NoError(t, err)
	atom, err := got.ToAtom()
	require.NoError(t, err)
	assert.Equal(t, 2.0, atom)

	_, err = kernels.Binary(token.ADD, x, arange(t, 4))
	assert.Error(t, err)
	_, err = kernels.Binary(token.REM, x, y)
	assert.Error(t, err)
}

func TestUnary(t *testing.T) {
	x := array(t, []float64{1, -2}, 2)
	got, err := kernels.Unary(token.SUB, x)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 2}, got.Flat())
	assert.Equal(t, []float64{1, -2}, x.Flat())

	got, err = kernels.Unary(token.ADD, x)
	require.NoError(t, err)
	assert.Equal(t, x.Flat(), got.Flat())

	_, err = kernels.Unary(token.NOT, x)
	assert.Error(t, err)
}

func TestIndex(t *testing.T) {
	x := arange(t, 2, 3, 2)
	tests := []struct {
		sels     []kernels.Selector
		wantAxes []int
		want     []float64
	}{
		{
			sels:     []kernels.Selector{kernels.All(), kernels.At(1)},
			wantAxes: []int{2, 2},
			want:     []float64{2, 3, 8, 9},
		},
		{
			sels:     []kernels.Selector{kernels.At(1)},
			wantAxes: []int{3, 2},
			want:     []float64{6, 7, 8, 9, 10, 11},
		},
		{
			sels:     []kernels.Selector{kernels.Span(0, 1), kernels.At(2), kernels.At(0)},
			wantAxes: []int{1},
			want:     []float64{4},
		},
		{
			sels: []kernels.Selector{kernels.At(1), kernels.At(2), kernels.At(1)},
			want: []float64{11},
		},
	}
	for _, test := range tests {
		got, err := x.Index(test.sels...)
		require.NoError(t, err, "%v", test.sels)
		assert.Equal(t, len(test.wantAxes), got.Rank(), "%v", test.sels)
		if len(test.wantAxes) > 0 {
			assert.Equal(t, test.wantAxes, got.Shape().AxisLengths, "%v", test.sels)
		}
		assert.Equal(t, test.want, got.Flat(), "%v", test.sels)
	}

	_, err := x.Index(kernels.At(0), kernels.At(0), kernels.At(0), kernels.At(0))
	assert.Error(t, err)
	_, err = x.Index(kernels.At(2))
	assert.Error(t, err)
	_, err = x.Index(kernels.All(), kernels.Span(1, 4))
	assert.Error(t, err)
}

func TestSetIndex(t *testing.T) {
	x := kernels.Zeros(2, 2, 2)
	err := x.SetIndex(array(t, []float64{1, 2, 3, 4}, 2, 2), kernels.All(), kernels.All(), kernels.At(1))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0, 2, 0, 3, 0, 4}, x.Flat())

	err = x.SetIndex(kernels.Scalar(-1), kernels.At(0))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1, -1, -1, 0, 3, 0, 4}, x.Flat())

	err = x.SetIndex(arange(t, 3), kernels.At(1), kernels.All(), kernels.At(0))
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "float64(2)", kernels.Scalar(2).String())
	assert.Equal(t, "[2]float64{1, 2.5}", array(t, []float64{1, 2.5}, 2).String())
}
