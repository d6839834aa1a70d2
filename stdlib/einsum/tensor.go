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

package einsum

import (
	"unicode/utf8"

	"github.com/gx-org/tensorcontract/base/ordered"
	"github.com/gx-org/tensorcontract/build/tree"
)

// parseTensor splits a tensor reference into a residual reference, in which
// dummy indices have been replaced by full slices, and the list of the dummy
// indices in the order of the subscript. Other positions are kept verbatim.
//
// The caller needs to check that the reference contains at least one dummy index.
func (r *rewriter) parseTensor(ref *tree.Subscript) (*tree.Subscript, error) {
	if r.containsDummy(ref.X) {
		return nil, r.fset.Unsupportedf(ref.Source(), "tensor reference %s indexes an expression with dummy indices", ref.String())
	}
	indices := make([]tree.Expr, len(ref.Indices))
	seen := ordered.NewSet[string]()
	var dummy []string
	for i, index := range ref.Indices {
		if !r.isDummy(index) {
			if r.containsDummy(index) {
				return nil, r.fset.Unsupportedf(index.Source(), "dummy index nested in %s of tensor reference %s", index.String(), ref.String())
			}
			indices[i] = index
			continue
		}
		name := index.(*tree.Ident).Name
		if seen.Contains(name) {
			return nil, r.fset.Unsupportedf(index.Source(), "dummy index %s used more than once in tensor reference %s (self-contraction)", name, ref.String())
		}
		if utf8.RuneCountInString(name) != 1 {
			return nil, r.fset.Unsupportedf(index.Source(), "dummy index %s in %s: dummy indices are single letters", name, ref.String())
		}
		seen.Add(name)
		dummy = append(dummy, name)
		indices[i] = &tree.Slice{Src: index.Source()}
	}
	if len(dummy) == 0 {
		return nil, r.fset.Internalf(ref.Source(), "tensor reference %s has no dummy index", ref.String())
	}
	return &tree.Subscript{
		Src:     ref.Src,
		X:       ref.X,
		Indices: indices,
		Ctx:     ref.Ctx,
		Axes:    tree.Axes{Dummy: dummy},
	}, nil
}
