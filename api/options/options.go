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

// Package options specifies the options of the rewriting macros.
package options

type (
	// Option configures a macro.
	Option interface {
		// Name of the option to report errors.
		Name() string
	}

	// DummyIndex sets explicitly the names used as dummy indices.
	// The names are used verbatim, independently of the function parameters.
	DummyIndex struct {
		Names []string
	}

	// DummyIndexFromParams uses the names of the parameters of the
	// function being rewritten as dummy indices.
	DummyIndexFromParams struct{}

	// Contraction sets the reference to the contraction primitive called by
	// the rewritten code. The reference is either a name, for example "einsum",
	// or a qualified name, for example "num.Einsum".
	Contraction struct {
		Ref string
	}
)

// Name of the option.
func (DummyIndex) Name() string { return "DummyIndex" }

// Name of the option.
func (DummyIndexFromParams) Name() string { return "DummyIndexFromParams" }

// Name of the option.
func (Contraction) Name() string { return "Contraction" }
