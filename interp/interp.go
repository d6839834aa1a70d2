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

// Package interp executes function trees after they have been rewritten.
//
// Values are arrays of float64 (see [github.com/gx-org/tensorcontract/backend/kernels]),
// strings, functions and packages. A function body is executed in a scope
// chained to the scope of the bindings given by the caller, itself chained
// to the builtin values defined by the options.
package interp

import (
	"go/token"
	"maps"
	"slices"

	"github.com/pkg/errors"
	"github.com/gx-org/tensorcontract/backend/kernels"
	"github.com/gx-org/tensorcontract/base/ordered"
	"github.com/gx-org/tensorcontract/build/fmterr"
	"github.com/gx-org/tensorcontract/build/tree"
	"github.com/gx-org/tensorcontract/internal/base/scope"
)

// Result of running a function.
type Result struct {
	// Returned are the values returned by the function.
	Returned []Value
	// Vars are the variables of the function scope and the bindings, once the
	// function has returned.
	Vars *ordered.Map[string, Value]
}

// Find returns the value of a variable after the function returned.
func (r *Result) Find(name string) (Value, bool) {
	return r.Vars.Load(name)
}

// Array returns the array stored in a variable.
func (r *Result) Array(name string) (*kernels.Array, error) {
	val, ok := r.Find(name)
	if !ok {
		return nil, errors.Errorf("undefined: %s", name)
	}
	arr, ok := val.(*kernels.Array)
	if !ok {
		return nil, errors.Errorf("%s is a %T and not an array", name, val)
	}
	return arr, nil
}

// interpreter executes a single function.
type interpreter struct {
	fset fmterr.FileSet
	// fnScope is the scope in which undefined names are defined by assignments.
	fnScope *scope.RWScope[Value]
}

func newScopes(bindings map[string]Value, opts []Option) (*scope.RWScope[Value], error) {
	builtin, err := builtins(bindings, opts)
	if err != nil {
		return nil, err
	}
	globals := scope.NewScope[Value](builtin)
	for _, name := range slices.Sorted(maps.Keys(bindings)) {
		globals.Define(name, bindings[name])
	}
	return globals, nil
}

// Run executes the body of a function. The parameters of the function are not
// bound: the function is executed with the bindings as its environment.
// Arrays referenced by the bindings are modified in place by subscript
// assignments.
func Run(fn *tree.Func, bindings map[string]Value, opts ...Option) (*Result, error) {
	globals, err := newScopes(bindings, opts)
	if err != nil {
		return nil, err
	}
	itp := &interpreter{
		fset:    fmterr.FileSet{FSet: fn.FSet},
		fnScope: scope.NewScope[Value](globals),
	}
	returned, _, err := itp.execStmts(itp.fnScope, fn.Body.List)
	if err != nil {
		return nil, errors.WithMessagef(err, "function %s", fn.Name)
	}
	vars := ordered.NewMap[string, Value]()
	for _, scp := range []*scope.RWScope[Value]{globals, itp.fnScope} {
		for name := range scp.LocalKeys() {
			val, _ := scp.Find(name)
			vars.Store(name, val)
		}
	}
	return &Result{Returned: returned, Vars: vars}, nil
}

// Eval evaluates a single expression.
func Eval(fset *token.FileSet, x tree.Expr, bindings map[string]Value, opts ...Option) (Value, error) {
	globals, err := newScopes(bindings, opts)
	if err != nil {
		return nil, err
	}
	itp := &interpreter{
		fset:    fmterr.FileSet{FSet: fset},
		fnScope: globals,
	}
	return itp.eval(globals, x)
}
