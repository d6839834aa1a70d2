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

package values_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"
	"github.com/gx-org/tensorcontract/api/values"
	"github.com/gx-org/tensorcontract/backend/kernels"
	"github.com/gx-org/tensorcontract/interp"
)

type three struct{}

func (three) Value() (interp.Value, error) { return kernels.Scalar(3), nil }

func (three) String() string { return "three" }

func TestFrom(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{v: 2.5, want: "float64(2.5)"},
		{v: 3, want: "float64(3)"},
		{v: float32(0.5), want: "float64(0.5)"},
		{v: int64(-1), want: "float64(-1)"},
		{v: "hello", want: `"hello"`},
		{v: []float64{1, 2}, want: "[2]float64{1, 2}"},
		{
			v: [][]float64{{1, 2}, {3, 4}},
			want: `[2][2]float64{
	{1, 2},
	{3, 4},
}`,
		},
		{v: kernels.Scalar(1), want: "float64(1)"},
		{v: interp.String("s"), want: `"s"`},
		{v: three{}, want: "float64(3)"},
	}
	for _, test := range tests {
		got, err := values.From(test.v)
		if err != nil {
			t.Errorf("%T: %v", test.v, err)
			continue
		}
		if diff := cmp.Diff(got.String(), test.want); diff != "" {
			t.Errorf("%T: incorrect value:\n%s", test.v, diff)
		}
	}
}

func TestFromStringer(t *testing.T) {
	if got, err := values.From(time.Second); err == nil {
		t.Errorf("got %v but want an error for a time.Duration", got)
	}
}

func TestFromSliceIsCopied(t *testing.T) {
	s := []float64{1, 2}
	got, err := values.From(s)
	if err != nil {
		t.Fatal(err)
	}
	s[0] = 10
	if diff := cmp.Diff([]float64{1, 2}, got.(*kernels.Array).Flat()); diff != "" {
		t.Errorf("value shares the slice:\n%s", diff)
	}
}

func TestFromMapErrors(t *testing.T) {
	_, err := values.FromMap(map[string]any{
		"a": 1,
		"b": true,
		"c": [][]float64{{1, 2}, {3}},
		"d": nil,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("got %d errors but want 3: %v", len(errs), err)
	}
	for i, name := range []string{"binding b", "binding c", "binding d"} {
		if !strings.Contains(errs[i].Error(), name) {
			t.Errorf("error %q does not contain %q", errs[i].Error(), name)
		}
	}
}
