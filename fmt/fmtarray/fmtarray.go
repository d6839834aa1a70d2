// Copyright 2024 Google LLC
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

// Package fmtarray formats arrays into string.
package fmtarray

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/backend/dtype"
)

func formatValue[T dtype.GoDataType](x T) string {
	var s string
	switch xT := any(x).(type) {
	case float32:
		s = fmt.Sprintf("%.6f", xT)
	case float64:
		s = fmt.Sprintf("%.10f", xT)
	default:
		return fmt.Sprint(x)
	}
	if strings.ContainsRune(s, '.') {
		// Remove any number of trailing zeroes after the decimal point, and remove
		// the point itself if there are no digits after it.
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

type printer[T dtype.GoDataType] struct {
	w    strings.Builder
	data []T
	axes []int
}

func newPrinter[T dtype.GoDataType](data []T, axes []int) (*printer[T], error) {
	total := 1
	for _, size := range axes {
		total *= size
	}
	if total != len(data) {
		return nil, errors.Errorf("len(data)=%d does not match axes %v=%d", len(data), axes, total)
	}
	return &printer[T]{data: data, axes: axes}, nil
}

// printAxis prints the values data[offset:offset+size] where size is the
// number of elements of the sub-array starting at axis.
func (p *printer[T]) printAxis(indent string, axis, offset int) {
	if axis == len(p.axes)-1 {
		vals := make([]string, p.axes[axis])
		for i := range vals {
			vals[i] = formatValue(p.data[offset+i])
		}
		p.w.WriteString("{" + strings.Join(vals, ", ") + "}")
		return
	}
	stride := 1
	for _, size := range p.axes[axis+1:] {
		stride *= size
	}
	p.w.WriteString("{\n")
	for i := range p.axes[axis] {
		p.w.WriteString(indent + "\t")
		p.printAxis(indent+"\t", axis+1, offset+i*stride)
		p.w.WriteString(",\n")
	}
	p.w.WriteString(indent + "}")
}

func (p *printer[T]) printData() {
	if len(p.axes) == 0 {
		p.w.WriteString("(" + formatValue(p.data[0]) + ")")
		return
	}
	p.printAxis("", 0, 0)
}

func (p *printer[T]) printType() {
	for _, size := range p.axes {
		fmt.Fprintf(&p.w, "[%d]", size)
	}
	p.w.WriteString(reflect.TypeFor[T]().String())
}

// SDataPrint returns a string representation of the content of an array without the type.
func SDataPrint[T dtype.GoDataType](data []T, axes []int) string {
	p, err := newPrinter(data, axes)
	if err != nil {
		return err.Error()
	}
	p.printData()
	return p.w.String()
}

// Sprint returns a string representation of an array.
func Sprint[T dtype.GoDataType](data []T, axes []int) string {
	p, err := newPrinter(data, axes)
	if err != nil {
		return err.Error()
	}
	p.printType()
	p.printData()
	return p.w.String()
}
