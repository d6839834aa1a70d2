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

// Package api compiles functions written with tensor-index notation and runs them.
//
// Compile rewrites a function once, replacing tensor assignments by calls to
// the contraction primitive:
//
//	prg, err := api.Compile(`func(i, j) {
//		a[i, j] = -(b[i] * c[j])
//	}`)
//
// The program can then be run any number of times with different bindings.
package api

import (
	"go/token"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"github.com/gx-org/tensorcontract/api/options"
	"github.com/gx-org/tensorcontract/api/values"
	"github.com/gx-org/tensorcontract/build/builder"
	"github.com/gx-org/tensorcontract/build/macro"
	"github.com/gx-org/tensorcontract/build/tree"
	"github.com/gx-org/tensorcontract/internal/exprdeps"
	"github.com/gx-org/tensorcontract/interp"
	"github.com/gx-org/tensorcontract/stdlib/einsum"
)

// Program is a function rewritten by the einsum macro.
type Program struct {
	fn  *tree.Func
	ref string
}

// Compile parses the source of a function literal and rewrites it.
// All rewriting errors are reported by Compile.
func Compile(src string, opts ...options.Option) (*Program, error) {
	fn, err := builder.ParseFunc("func", src)
	if err != nil {
		return nil, err
	}
	return CompileFunc(fn, opts...)
}

// CompileFunc rewrites a function tree.
func CompileFunc(fn *tree.Func, opts ...options.Option) (*Program, error) {
	ein, err := einsum.New(opts...)
	if err != nil {
		return nil, err
	}
	rewritten, err := macro.Apply(fn, ein)
	if err != nil {
		return nil, err
	}
	return &Program{fn: rewritten, ref: ein.Ref()}, nil
}

// Func returns the rewritten function.
func (p *Program) Func() *tree.Func {
	return p.fn
}

// Source returns the source of the rewritten function.
func (p *Program) Source() string {
	return p.fn.String()
}

// Contraction returns the reference to the contraction primitive called by the program.
func (p *Program) Contraction() string {
	return p.ref
}

// Inputs returns the names the program reads from its bindings.
func (p *Program) Inputs() []string {
	root, _, _ := strings.Cut(p.ref, ".")
	var inputs []string
	for _, name := range exprdeps.Free(p.fn) {
		if name != root {
			inputs = append(inputs, name)
		}
	}
	return inputs
}

// Run executes the program given the values of its inputs.
// Bound arrays are modified in place by subscript assignments.
func (p *Program) Run(bindings map[string]any) (*interp.Result, error) {
	var err error
	for _, name := range p.Inputs() {
		if _, ok := bindings[name]; !ok {
			err = multierr.Append(err, errors.Errorf("missing binding for %s", name))
		}
	}
	if err != nil {
		return nil, err
	}
	vals, err := values.FromMap(bindings)
	if err != nil {
		return nil, err
	}
	return interp.Run(p.fn, vals, interp.WithContraction(p.ref))
}

// Eval rewrites and evaluates a single expression.
// Dummy indices need to be given with options.DummyIndex.
func Eval(src string, bindings map[string]any, opts ...options.Option) (interp.Value, error) {
	x, fset, err := builder.ParseExpr(src)
	if err != nil {
		return nil, err
	}
	return EvalExpr(fset, x, bindings, opts...)
}

// EvalExpr rewrites and evaluates an expression tree.
func EvalExpr(fset *token.FileSet, x tree.Expr, bindings map[string]any, opts ...options.Option) (interp.Value, error) {
	ein, err := einsum.New(opts...)
	if err != nil {
		return nil, err
	}
	rewritten, err := macro.ApplyExpr(fset, x, ein)
	if err != nil {
		return nil, err
	}
	vals, err := values.FromMap(bindings)
	if err != nil {
		return nil, err
	}
	return interp.Eval(fset, rewritten, vals, interp.WithContraction(ein.Ref()))
}
