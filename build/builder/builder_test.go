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

package builder_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/tensorcontract/build/builder"
	"github.com/gx-org/tensorcontract/build/fmterr"
	"github.com/gx-org/tensorcontract/build/tree"
)

func TestParseFunc(t *testing.T) {
	tests := []struct {
		src        string
		wantParams []string
		want       string
	}{
		{
			src:        `func(i, j) { a[i, j] = -(b[i] * c[j]) }`,
			wantParams: []string{"i", "j"},
			want: `func(i, j) {
	a[i, j] = -(b[i] * c[j])
}`,
		},
		{
			src: `func(i, j index) {
	x := 1 + 2*3
	x += y[:]
	x++
}`,
			wantParams: []string{"i", "j"},
			want: `func(i, j) {
	x := 1 + 2 * 3
	x = x + y[:]
	x = x + 1
}`,
		},
		{
			src:        `func(j, m) { a{j, m, 1} = e[m, j] }`,
			wantParams: []string{"j", "m"},
			want: `func(j, m) {
	a[j, m, 1] = e[m, j]
}`,
		},
		{
			src:        `func(i) { a[i] = b{0:n, i} }`,
			wantParams: []string{"i"},
			want: `func(i) {
	a[i] = b[0:n, i]
}`,
		},
		{
			src: `func() {
	x = (a - b) - c
	y = a - (b - c)
	{
		return num.Einsum("i->", x[1:n])
	}
}`,
			want: `func() {
	x = a - b - c
	y = a - (b - c)
	{
		return num.Einsum("i->", x[1:n])
	}
}`,
		},
	}
	for i, test := range tests {
		fn, err := builder.ParseFunc("test", test.src)
		if err != nil {
			t.Errorf("test %d: cannot parse function:\n%+v", i, err)
			continue
		}
		if !cmp.Equal(fn.Params, test.wantParams) {
			t.Errorf("test %d: incorrect parameters: got %v but want %v", i, fn.Params, test.wantParams)
		}
		if got := fn.String(); got != test.want {
			t.Errorf("test %d: incorrect tree:\n%s", i, cmp.Diff(got, test.want))
		}
	}
}

func TestContext(t *testing.T) {
	fn, err := builder.ParseFunc("test", `func(i) { a[i] += b[i] }`)
	if err != nil {
		t.Fatal(err)
	}
	assign := fn.Body.List[0].(*tree.Assign)
	if got := assign.Lhs[0].(*tree.Subscript).Ctx; got != tree.Store {
		t.Errorf("target context: got %v but want %v", got, tree.Store)
	}
	read := assign.Rhs[0].(*tree.Binary).X.(*tree.Subscript)
	if read.Ctx != tree.Load {
		t.Errorf("operand context: got %v but want %v", read.Ctx, tree.Load)
	}
	if read == assign.Lhs[0] {
		t.Errorf("target and operand share the same node")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src         string
		err         string
		unsupported bool
	}{
		{
			src: `x + 1`,
			err: "expected a function literal",
		},
		{
			src:         `func() { for {} }`,
			err:         "statement *ast.ForStmt",
			unsupported: true,
		},
		{
			src:         `func() { x := 'c'; y := &x }`,
			err:         "CHAR literal",
			unsupported: true,
		},
		{
			src: `func() { a{} = 2 }`,
			err: "tensor reference a without index",
		},
		{
			src: `func( {`,
			err: "cannot parse function",
		},
	}
	for i, test := range tests {
		_, err := builder.ParseFunc("test", test.src)
		if err == nil {
			t.Errorf("test %d: expected an error but got nil", i)
			continue
		}
		if !strings.Contains(err.Error(), test.err) {
			t.Errorf("test %d: error %q does not contain %q", i, err.Error(), test.err)
		}
		if got := errors.Is(err, fmterr.ErrUnsupported); got != test.unsupported {
			t.Errorf("test %d: errors.Is(err, ErrUnsupported) = %v but want %v", i, got, test.unsupported)
		}
	}
}

func TestParseExpr(t *testing.T) {
	x, fset, err := builder.ParseExpr(`-b[i] * c[j] + 1*d{i, j}*(1+1)`)
	if err != nil {
		t.Fatal(err)
	}
	if fset == nil {
		t.Errorf("no file set returned")
	}
	want := "-b[i] * c[j] + 1 * d[i, j] * (1 + 1)"
	if got := x.String(); got != want {
		t.Errorf("incorrect expression:\n%s", cmp.Diff(got, want))
	}
}
