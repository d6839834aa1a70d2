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

// Package scope models the nested namespaces in which function bodies are executed.
package scope

import (
	"iter"

	"github.com/pkg/errors"
	"github.com/gx-org/tensorcontract/base/ordered"
)

// Scope finds values given their name.
type Scope[V any] interface {
	Find(string) (V, bool)
}

// RWScope stores values on top of a parent scope.
// Names are looked up locally first, then in the parent.
type RWScope[V any] struct {
	parent *RWScope[V]
	local  *ordered.Map[string, V]
}

var _ Scope[any] = (*RWScope[any])(nil)

// NewScope returns a new scope given a parent, which can be nil.
func NewScope[V any](parent *RWScope[V]) *RWScope[V] {
	return &RWScope[V]{
		parent: parent,
		local:  ordered.NewMap[string, V](),
	}
}

// Define binds a name in the local scope, shadowing any binding of the parents.
func (s *RWScope[V]) Define(name string, v V) {
	s.local.Store(name, v)
}

// Find a name in the scope or its parents.
func (s *RWScope[V]) Find(name string) (v V, ok bool) {
	for scp := s; scp != nil; scp = scp.parent {
		if v, ok = scp.local.Load(name); ok {
			return v, true
		}
	}
	return v, false
}

// Assign rebinds a name in the innermost scope defining it.
// It fails if no scope defines the name.
func (s *RWScope[V]) Assign(name string, v V) error {
	for scp := s; scp != nil; scp = scp.parent {
		if _, ok := scp.local.Load(name); ok {
			scp.local.Store(name, v)
			return nil
		}
	}
	return errors.Errorf("cannot assign %s: not defined in scope", name)
}

// LocalKeys ranges over the names defined in the local scope, in definition order.
func (s *RWScope[V]) LocalKeys() iter.Seq[string] {
	return s.local.Keys()
}
