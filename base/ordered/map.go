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

// Package ordered provides containers iterating in insertion order.
package ordered

import "iter"

type entry[K comparable, V any] struct {
	key K
	val V
}

// Map is a map iterating over its entries in the order the keys were first stored.
type Map[K comparable, V any] struct {
	index   map[K]int
	entries []entry[K, V]
}

// NewMap returns an empty map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{index: make(map[K]int)}
}

// Store sets the value of a key.
// Overwriting a key keeps its original position.
func (m *Map[K, V]) Store(k K, v V) {
	if i, ok := m.index[k]; ok {
		m.entries[i].val = v
		return
	}
	m.index[k] = len(m.entries)
	m.entries = append(m.entries, entry[K, V]{key: k, val: v})
}

// Load returns the value of a key and whether the key is present.
func (m *Map[K, V]) Load(k K) (v V, ok bool) {
	i, ok := m.index[k]
	if !ok {
		return v, false
	}
	return m.entries[i].val, true
}

// Iter ranges over the keys and values.
func (m *Map[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range m.entries {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}

// Keys ranges over the keys.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, e := range m.entries {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Clone returns a shallow copy of the map.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := &Map[K, V]{
		index:   make(map[K]int, len(m.index)),
		entries: append([]entry[K, V](nil), m.entries...),
	}
	for k, i := range m.index {
		c.index[k] = i
	}
	return c
}

// Size returns the number of keys.
func (m *Map[K, V]) Size() int {
	return len(m.entries)
}
