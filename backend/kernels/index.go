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
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// Selector selects positions along an axis.
// A single position removes the axis from the result while a range keeps it.
type Selector struct {
	Low, High int
	Single    bool
}

// At selects a single position.
func At(i int) Selector {
	return Selector{Low: i, High: i + 1, Single: true}
}

// Span selects the positions in [low, high).
func Span(low, high int) Selector {
	return Selector{Low: low, High: high}
}

// All selects all the positions of an axis.
// High is set when the selection is applied to an axis.
func All() Selector {
	return Selector{High: -1}
}

func (s Selector) String() string {
	if s.Single {
		return fmt.Sprint(s.Low)
	}
	if s.High < 0 {
		return ":"
	}
	return fmt.Sprintf("%d:%d", s.Low, s.High)
}

// selection resolves selectors against the axes of an array.
type selection struct {
	sels   []Selector
	outDim []int
}

func (a *Array) selection(sels []Selector) (*selection, error) {
	axes := a.shape.AxisLengths
	if len(sels) > len(axes) {
		return nil, errors.Errorf("%d indices for an array of rank %d", len(sels), len(axes))
	}
	sel := &selection{sels: make([]Selector, len(axes))}
	for i, length := range axes {
		s := All()
		if i < len(sels) {
			s = sels[i]
		}
		if s.High < 0 {
			s.High = length
		}
		if s.Low < 0 || s.High > length || s.Low > s.High {
			return nil, errors.Errorf("index %s out of range for axis %d of length %d", s.String(), i, length)
		}
		if s.Single && s.Low == s.High {
			return nil, errors.Errorf("index %d out of range for axis %d of length %d", s.Low, i, length)
		}
		sel.sels[i] = s
		if !s.Single {
			sel.outDim = append(sel.outDim, s.High-s.Low)
		}
	}
	return sel, nil
}

// each calls f with the flat index in the array of every selected element,
// in row-major order.
func (sel *selection) each(axes []int, f func(src int)) {
	s := strides(axes)
	lengths := make([]int, len(sel.sels))
	for i, si := range sel.sels {
		lengths[i] = si.High - si.Low
	}
	if slices.Contains(lengths, 0) {
		return
	}
	counter := make([]int, len(sel.sels))
	for {
		src := 0
		for i, c := range counter {
			src += (sel.sels[i].Low + c) * s[i]
		}
		f(src)
		if !increment(counter, lengths) {
			return
		}
	}
}

// Index returns a copy of the elements selected along the first axes.
// The axes without selector are fully selected.
func (a *Array) Index(sels ...Selector) (*Array, error) {
	sel, err := a.selection(sels)
	if err != nil {
		return nil, err
	}
	out := newArray(sel.outDim)
	dst := 0
	sel.each(a.shape.AxisLengths, func(src int) {
		out.values[dst] = a.values[src]
		dst++
	})
	return out, nil
}

// SetIndex writes the elements of value into the selected elements of the array.
// An atomic value is broadcast to the selection.
func (a *Array) SetIndex(value *Array, sels ...Selector) error {
	sel, err := a.selection(sels)
	if err != nil {
		return err
	}
	if value.shape.IsAtomic() {
		v := value.values[0]
		sel.each(a.shape.AxisLengths, func(src int) {
			a.values[src] = v
		})
		return nil
	}
	if !slices.Equal(value.shape.AxisLengths, sel.outDim) {
		return errors.Errorf("cannot assign a value of shape %v to a selection of shape %v", value.shape.AxisLengths, sel.outDim)
	}
	i := 0
	sel.each(a.shape.AxisLengths, func(dst int) {
		a.values[dst] = value.values[i]
		i++
	})
	return nil
}
