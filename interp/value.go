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

package interp

import (
	"strconv"

	"github.com/gx-org/tensorcontract/backend/kernels"
	"github.com/gx-org/tensorcontract/base/ordered"
)

type (
	// Value is a value of the interpreter: an array, a string, a function or a package.
	Value interface {
		String() string
	}

	// String value.
	String string

	// Func is a function callable from the interpreted code.
	Func func(args []Value) (Value, error)

	// Package groups values under a name.
	Package struct {
		Name    string
		Members *ordered.Map[string, Value]
	}
)

var (
	_ Value = (*kernels.Array)(nil)
	_ Value = String("")
	_ Value = Func(nil)
	_ Value = (*Package)(nil)
)

// String returns the string quoted.
func (s String) String() string {
	return strconv.Quote(string(s))
}

// String returns a description of the function.
func (f Func) String() string {
	return "func"
}

// NewPackage returns a new package without member.
func NewPackage(name string) *Package {
	return &Package{Name: name, Members: ordered.NewMap[string, Value]()}
}

// String returns the name of the package.
func (p *Package) String() string {
	return "package " + p.Name
}
