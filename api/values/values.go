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

// Package values converts Go values into values of the interpreter.
package values

import (
	"maps"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"github.com/gx-org/tensorcontract/backend/kernels"
	"github.com/gx-org/tensorcontract/interp"
)

// Valuer is an instance able to produce an interpreter value.
type Valuer interface {
	Value() (interp.Value, error)
}

// From converts a Go value into an interpreter value.
// Supported values are numbers, strings, slices of float64 (possibly nested),
// arrays, functions and interpreter values.
func From(v any) (interp.Value, error) {
	switch vT := v.(type) {
	case Valuer:
		return vT.Value()
	case *kernels.Array:
		return vT, nil
	case interp.String:
		return vT, nil
	case interp.Func:
		return vT, nil
	case *interp.Package:
		return vT, nil
	case float64:
		return kernels.Scalar(vT), nil
	case float32:
		return kernels.Scalar(float64(vT)), nil
	case int:
		return kernels.Scalar(float64(vT)), nil
	case int32:
		return kernels.Scalar(float64(vT)), nil
	case int64:
		return kernels.Scalar(float64(vT)), nil
	case string:
		return interp.String(vT), nil
	case []float64:
		return kernels.FromSlice(slices.Clone(vT), len(vT))
	case [][]float64:
		return fromMatrix(vT)
	case func([]interp.Value) (interp.Value, error):
		return interp.Func(vT), nil
	case nil:
		return nil, errors.Errorf("cannot convert nil to a value")
	default:
		return nil, errors.Errorf("cannot convert %T to a value", v)
	}
}

func fromMatrix(rows [][]float64) (*kernels.Array, error) {
	numCols := 0
	if len(rows) > 0 {
		numCols = len(rows[0])
	}
	values := make([]float64, 0, len(rows)*numCols)
	for i, row := range rows {
		if len(row) != numCols {
			return nil, errors.Errorf("row %d has %d columns but row 0 has %d columns", i, len(row), numCols)
		}
		values = append(values, row...)
	}
	return kernels.FromSlice(values, len(rows), numCols)
}

// FromMap converts a map of Go values into interpreter values.
// All conversion errors are reported.
func FromMap(m map[string]any) (map[string]interp.Value, error) {
	vals := make(map[string]interp.Value, len(m))
	var err error
	for _, name := range slices.Sorted(maps.Keys(m)) {
		val, errV := From(m[name])
		if errV != nil {
			err = multierr.Append(err, errors.WithMessagef(errV, "binding %s", name))
			continue
		}
		vals[name] = val
	}
	if err != nil {
		return nil, err
	}
	return vals, nil
}
