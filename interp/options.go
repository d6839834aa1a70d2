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
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/tensorcontract/backend/kernels"
	"github.com/gx-org/tensorcontract/internal/base/scope"
)

type (
	// Option configures the builtin scope of the interpreter.
	Option interface {
		// Ref returns the name, possibly qualified, defined by the option.
		Ref() string
	}

	// PackageValue defines a value under a reference, for example "num.Pi".
	// Packages are created as needed.
	PackageValue struct {
		Name  string
		Value Value
	}
)

// Ref returns the reference defined by the option.
func (p PackageValue) Ref() string {
	return p.Name
}

// WithContraction binds the einsum kernel under a reference,
// for example "einsum" or "num.Einsum".
func WithContraction(ref string) Option {
	return PackageValue{Name: ref, Value: Func(einsum)}
}

func einsum(args []Value) (Value, error) {
	if len(args) < 2 {
		return nil, errors.Errorf("einsum requires subscripts and at least one operand, got %d arguments", len(args))
	}
	subscripts, ok := args[0].(String)
	if !ok {
		return nil, errors.Errorf("einsum subscripts: got %T but want a string", args[0])
	}
	operands := make([]*kernels.Array, len(args)-1)
	for i, arg := range args[1:] {
		if operands[i], ok = arg.(*kernels.Array); !ok {
			return nil, errors.Errorf("einsum operand %d: got %T but want an array", i, arg)
		}
	}
	return kernels.Einsum(string(subscripts), operands...)
}

// builtins returns the scope of the values defined by the options.
// A reference whose root name is bound by the user is skipped.
func builtins(bindings map[string]Value, opts []Option) (*scope.RWScope[Value], error) {
	scp := scope.NewScope[Value](nil)
	for _, opt := range opts {
		var err error
		switch optT := opt.(type) {
		case PackageValue:
			err = definePackageValue(scp, bindings, optT)
		default:
			err = errors.Errorf("option of type %T not supported", optT)
		}
		if err != nil {
			return nil, err
		}
	}
	return scp, nil
}

func definePackageValue(scp *scope.RWScope[Value], bindings map[string]Value, opt PackageValue) error {
	path := strings.Split(opt.Name, ".")
	if _, bound := bindings[path[0]]; bound {
		return nil
	}
	if len(path) == 1 {
		scp.Define(path[0], opt.Value)
		return nil
	}
	root, ok := scp.Find(path[0])
	if !ok {
		root = NewPackage(path[0])
		scp.Define(path[0], root)
	}
	pkg, ok := root.(*Package)
	if !ok {
		return errors.Errorf("cannot define %s: %s is a %T and not a package", opt.Name, path[0], root)
	}
	for _, name := range path[1 : len(path)-1] {
		member, ok := pkg.Members.Load(name)
		if !ok {
			member = NewPackage(pkg.Name + "." + name)
			pkg.Members.Store(name, member)
		}
		if pkg, ok = member.(*Package); !ok {
			return errors.Errorf("cannot define %s: %s is a %T and not a package", opt.Name, name, member)
		}
	}
	pkg.Members.Store(path[len(path)-1], opt.Value)
	return nil
}
