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

package api_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/multierr"
	"github.com/gx-org/tensorcontract/api"
	"github.com/gx-org/tensorcontract/api/options"
	"github.com/gx-org/tensorcontract/backend/kernels"
	"github.com/gx-org/tensorcontract/build/fmterr"
)

func compile(t *testing.T, src string, opts ...options.Option) *api.Program {
	t.Helper()
	prg, err := api.Compile(src, opts...)
	if err != nil {
		t.Fatalf("cannot compile %s:\n%+v", src, err)
	}
	return prg
}

func TestOuterProduct(t *testing.T) {
	prg := compile(t, `func(i, j) {
	a[i, j] = -(b[i] * c[j])
}`)
	res, err := prg.Run(map[string]any{
		"b": []float64{1, 2},
		"c": []float64{1, 2},
	})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	a, err := res.Array("a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{2, 2}, a.Shape().AxisLengths); diff != "" {
		t.Errorf("incorrect shape:\n%s", diff)
	}
	if diff := cmp.Diff([]float64{-1, -2, -2, -4}, a.Flat()); diff != "" {
		t.Errorf("incorrect values:\n%s", diff)
	}
}

func TestReduceThenAdd(t *testing.T) {
	prg := compile(t, `func(i, j) {
	a[i, j] = -b[i]*c[j] + 1*d[i, j]*(1+1)
}`)
	res, err := prg.Run(map[string]any{
		"b": []float64{1, 2},
		"c": []float64{1, 2},
		"d": [][]float64{{0.5, 1}, {1, 2}},
	})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	a, err := res.Array("a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0, 0, 0, 0}, a.Flat()); diff != "" {
		t.Errorf("incorrect values:\n%s", diff)
	}
}

func fill(t *testing.T, seed float64, axes ...int) *kernels.Array {
	a := kernels.Zeros(axes...)
	for i := range a.Flat() {
		a.Flat()[i] = math.Sin(seed + float64(i))
	}
	return a
}

func TestFiveTensors(t *testing.T) {
	// Lengths: i=3, j=6, k=5, l=4, m=2.
	b := fill(t, 1, 3, 2, 6, 5)
	c := fill(t, 2, 3, 4)
	d := fill(t, 3, 5, 4, 2)
	b0, err := b.Index(kernels.All(), kernels.At(0))
	if err != nil {
		t.Fatal(err)
	}
	e, err := kernels.Einsum("ijk,il,klm->mj", b0, c, d)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{2, 6}, e.Shape().AxisLengths); diff != "" {
		t.Fatalf("incorrect shape:\n%s", diff)
	}
	a := kernels.Zeros(6, 2, 2)
	prg := compile(t, `func(i, j, k, l, m) {
	a{j, m, 1} = b{i, 0, j, k} * c[i, l] * d[k, l, m] - e[m, j]
}`)
	if _, err := prg.Run(map[string]any{"a": a, "b": b, "c": c, "d": d, "e": e}); err != nil {
		t.Fatalf("%+v", err)
	}
	sum := 0.0
	for _, v := range a.Flat() {
		sum += math.Abs(v)
	}
	if sum > 1e-6 {
		t.Errorf("got sum(abs(a))=%g but want 0:\n%s", sum, a.String())
	}
}

func TestSource(t *testing.T) {
	prg := compile(t, `func(n) {
	x := 2 * n
	a[i, k] = b[i, j] * c[j, k] * x
}`, options.DummyIndex{Names: []string{"i", "j", "k"}}, options.Contraction{Ref: "einsum"})
	want := `func(n) {
	x := 2 * n
	a = einsum("ik->ik", einsum("ij,jk->ik", b[:, :], c[:, :]) * x)
}`
	if diff := cmp.Diff(prg.Source(), want); diff != "" {
		t.Errorf("incorrect source:\n%s", diff)
	}
	if got, want := prg.Contraction(), "einsum"; got != want {
		t.Errorf("got contraction %q but want %q", got, want)
	}
	res, err := prg.Run(map[string]any{
		"n": 0.5,
		"b": [][]float64{{1, 0}, {0, 1}},
		"c": [][]float64{{1, 2}, {3, 4}},
	})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	a, err := res.Array("a")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{1, 2, 3, 4}, a.Flat(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("incorrect values:\n%s", diff)
	}
}

func TestSlicePosition(t *testing.T) {
	prg := compile(t, `func(i, j) {
	a[j] = b{0:2, i} * c[i, j]
}`)
	want := `func(i, j) {
	a = num.Einsum("j->j", num.Einsum("i,ij->j", b[0:2, :], c[:, :]))
}`
	if diff := cmp.Diff(prg.Source(), want); diff != "" {
		t.Errorf("incorrect source:\n%s", diff)
	}
	// The slice keeps its axis, which the summation string does not name.
	_, err := prg.Run(map[string]any{
		"b": [][]float64{{1, 2}, {3, 4}, {5, 6}},
		"c": [][]float64{{1, 0}, {0, 1}},
	})
	if err == nil || !strings.Contains(err.Error(), "has 2 axes but 1 indices") {
		t.Errorf("got error %v but want a rank mismatch of the sliced operand", err)
	}
}

func TestCompileErrors(t *testing.T) {
	_, err := api.Compile(`func(i) { a[i] = b[i] / c[i] }`)
	if !errors.Is(err, fmterr.ErrUnsupported) {
		t.Errorf("got error %v but want an unsupported construct", err)
	}
	_, err = api.Compile(`func(i) { for {} }`)
	if !errors.Is(err, fmterr.ErrUnsupported) {
		t.Errorf("got error %v but want an unsupported construct", err)
	}
	_, err = api.Compile(`func(i) {`)
	if err == nil {
		t.Errorf("expected a parsing error")
	}
}

func TestInputs(t *testing.T) {
	prg := compile(t, `func(i, j) {
	x := 2
	a{i, 0} = b[i, j] * c[j] * x
}`)
	if diff := cmp.Diff([]string{"b", "c", "a"}, prg.Inputs()); diff != "" {
		t.Errorf("incorrect inputs:\n%s", diff)
	}
}

func TestRunErrors(t *testing.T) {
	prg := compile(t, `func(i) { a[i] = b[i] + c[i] }`)
	_, err := prg.Run(map[string]any{"b": true, "c": 1})
	if err == nil {
		t.Errorf("expected a binding error")
	}
	_, err = prg.Run(map[string]any{})
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("got %d errors but want 2: %v", got, err)
	}
}

func TestEval(t *testing.T) {
	got, err := api.Eval(`b[i] * c[i] + 1`, map[string]any{
		"b": []float64{1, 2},
		"c": []float64{3, 4},
	}, options.DummyIndex{Names: []string{"i"}})
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if diff := cmp.Diff(got.String(), "float64(12)"); diff != "" {
		t.Errorf("incorrect value:\n%s", diff)
	}
}
