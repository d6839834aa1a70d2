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
	"slices"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// einsumOps is a parsed summation string.
type einsumOps struct {
	inputs [][]rune
	output []rune
	// all lists the output indices first, followed by the summed indices
	// in order of appearance.
	all []rune
}

func parseEinsum(subscripts string) (*einsumOps, error) {
	in, out, found := strings.Cut(subscripts, "->")
	if !found {
		return nil, errors.Errorf("einsum %q: implicit output not supported", subscripts)
	}
	ops := &einsumOps{output: []rune(strings.TrimSpace(out))}
	for _, input := range strings.Split(in, ",") {
		ops.inputs = append(ops.inputs, []rune(strings.TrimSpace(input)))
	}
	for i, r := range ops.output {
		if !unicode.IsLetter(r) {
			return nil, errors.Errorf("einsum %q: invalid output index %q", subscripts, r)
		}
		if slices.Contains(ops.output[:i], r) {
			return nil, errors.Errorf("einsum %q: output index %q repeated", subscripts, r)
		}
	}
	ops.all = slices.Clone(ops.output)
	for _, input := range ops.inputs {
		for _, r := range input {
			if !unicode.IsLetter(r) {
				return nil, errors.Errorf("einsum %q: invalid index %q", subscripts, r)
			}
			if !slices.Contains(ops.all, r) {
				ops.all = append(ops.all, r)
			}
		}
	}
	for _, r := range ops.output {
		if !slices.ContainsFunc(ops.inputs, func(input []rune) bool {
			return slices.Contains(input, r)
		}) {
			return nil, errors.Errorf("einsum %q: output index %q does not appear in the inputs", subscripts, r)
		}
	}
	return ops, nil
}

// lengths returns the length of every index given the operands.
func (ops *einsumOps) lengths(subscripts string, operands []*Array) ([]int, error) {
	if len(ops.inputs) != len(operands) {
		return nil, errors.Errorf("einsum %q: got %d operands but want %d", subscripts, len(operands), len(ops.inputs))
	}
	lengths := make([]int, len(ops.all))
	for i := range lengths {
		lengths[i] = -1
	}
	for i, input := range ops.inputs {
		axes := operands[i].shape.AxisLengths
		if len(input) != len(axes) {
			return nil, errors.Errorf("einsum %q: operand %d of shape %v has %d axes but %d indices", subscripts, i, axes, len(axes), len(input))
		}
		for axis, r := range input {
			pos := slices.Index(ops.all, r)
			if lengths[pos] >= 0 && lengths[pos] != axes[axis] {
				return nil, errors.Errorf("einsum %q: index %q has length %d in operand %d but length %d elsewhere", subscripts, r, axes[axis], i, lengths[pos])
			}
			lengths[pos] = axes[axis]
		}
	}
	return lengths, nil
}

// Einsum evaluates an Einstein summation over its operands.
// The subscripts list the indices of each operand, separated by commas,
// followed by "->" and the indices of the result. Indices not present in the
// result are summed. An empty result computes a scalar.
func Einsum(subscripts string, operands ...*Array) (*Array, error) {
	ops, err := parseEinsum(subscripts)
	if err != nil {
		return nil, err
	}
	lengths, err := ops.lengths(subscripts, operands)
	if err != nil {
		return nil, err
	}
	out := newArray(slices.Clone(lengths[:len(ops.output)]))
	// Strides of every operand, indexed by position in ops.all.
	opStrides := make([][]int, len(operands))
	for i, input := range ops.inputs {
		s := strides(operands[i].shape.AxisLengths)
		opStrides[i] = make([]int, len(ops.all))
		for axis, r := range input {
			opStrides[i][slices.Index(ops.all, r)] += s[axis]
		}
	}
	outStrides := strides(out.shape.AxisLengths)
	if slices.Contains(lengths, 0) {
		return out, nil
	}
	// counter emulates one loop per index: the output indices are the outer
	// loops and the summed indices the inner loops.
	counter := make([]int, len(ops.all))
	for {
		outIdx := 0
		for i := range ops.output {
			outIdx += counter[i] * outStrides[i]
		}
		prod := 1.0
		for i, op := range operands {
			idx := 0
			for pos, c := range counter {
				idx += c * opStrides[i][pos]
			}
			prod *= op.values[idx]
		}
		out.values[outIdx] += prod
		if !increment(counter, lengths) {
			break
		}
	}
	return out, nil
}

// increment advances a counter in row-major order.
// It returns false once all the positions have been visited.
func increment(counter, lengths []int) bool {
	for i := len(counter) - 1; i >= 0; i-- {
		counter[i]++
		if counter[i] < lengths[i] {
			return true
		}
		counter[i] = 0
	}
	return false
}
