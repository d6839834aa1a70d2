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

package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/tensorcontract/api/options"
)

func TestRewriteFile(t *testing.T) {
	tests := []struct {
		src  string
		opts []options.Option
		want string
	}{
		{
			src: `package contract

var outer = func(i, j) {
	a[i, j] = b[i] * c[j]
}

func matmul(i, j, k int) {
	a[i, k] = b[i, j] * c[j, k]
}

func (r *receiver) skipped(i int) {}
`,
			want: `// outer
func(i, j) {
	a = num.Einsum("ij->ij", num.Einsum("i,j->ij", b[:], c[:]))
}

// matmul
func(i, j, k) {
	a = num.Einsum("ik->ik", num.Einsum("ij,jk->ik", b[:, :], c[:, :]))
}
`,
		},
		{
			src:  `func(n) { s[i] = x[i] * n }`,
			opts: append(parseDummy("i, "), options.Contraction{Ref: "einsum"}),
			want: `func(n) {
	s = einsum("i->i", x[:] * n)
}
`,
		},
	}
	for i, test := range tests {
		var b strings.Builder
		if err := rewriteFile(&b, "test.go", []byte(test.src), test.opts); err != nil {
			t.Errorf("test %d: %+v", i, err)
			continue
		}
		if diff := cmp.Diff(b.String(), test.want); diff != "" {
			t.Errorf("test %d: incorrect output:\n%s", i, diff)
		}
	}
}

func TestRewriteFileErrors(t *testing.T) {
	tests := []string{
		`package empty`,
		`package bad; func f(i int) { a[i] = b[i] / c[i] }`,
		`func(i) {`,
	}
	for _, src := range tests {
		var b strings.Builder
		if err := rewriteFile(&b, "test.go", []byte(src), nil); err == nil {
			t.Errorf("%q: expected an error but got:\n%s", src, b.String())
		}
	}
}
