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

package ordered

import (
	"iter"
	"slices"
)

// Set is a set of elements remembering the order of insertion.
// The zero value is not usable: use NewSet.
type Set[K comparable] struct {
	m *Map[K, struct{}]
}

// NewSet returns a set containing the given elements.
// Duplicates are only inserted once.
func NewSet[K comparable](elts ...K) *Set[K] {
	s := &Set[K]{m: NewMap[K, struct{}]()}
	for _, elt := range elts {
		s.Add(elt)
	}
	return s
}

// Add an element to the set.
func (s *Set[K]) Add(k K) {
	s.m.Store(k, struct{}{})
}

// Contains returns true if the element has been added to the set.
func (s *Set[K]) Contains(k K) bool {
	if s == nil {
		return false
	}
	_, ok := s.m.Load(k)
	return ok
}

// All returns an iterator over the elements in insertion order.
func (s *Set[K]) All() iter.Seq[K] {
	if s == nil {
		return func(func(K) bool) {}
	}
	return s.m.Keys()
}

// Slice returns the elements in insertion order.
func (s *Set[K]) Slice() []K {
	return slices.Collect(s.All())
}

// Size returns the number of elements in the set.
func (s *Set[K]) Size() int {
	if s == nil {
		return 0
	}
	return s.m.Size()
}
