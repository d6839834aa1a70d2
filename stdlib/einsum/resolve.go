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
	"go/token"
	"strings"

	"github.com/pkg/errors"
	"github.com/gx-org/tensorcontract/api/options"
	"github.com/gx-org/tensorcontract/base/ordered"
	"github.com/gx-org/tensorcontract/build/tree"
)

// DefaultRef is the reference to the contraction primitive called by the
// rewritten code when no Contraction option is given.
const DefaultRef = "num.Einsum"

// DefaultOptions are the options applied before the options given to New:
// dummy indices are the parameters of the function.
var DefaultOptions = []options.Option{
	options.DummyIndexFromParams{},
	options.Contraction{Ref: DefaultRef},
}

type dummySource int

const (
	fromParams dummySource = iota
	fromNames
)

// config is the result of processing the options of the macro.
type config struct {
	source dummySource
	names  []string
	ref    []string
}

func newConfig(opts []options.Option) (*config, error) {
	cfg := &config{}
	for _, opt := range append(append([]options.Option{}, DefaultOptions...), opts...) {
		switch optT := opt.(type) {
		case options.DummyIndexFromParams:
			cfg.source = fromParams
			cfg.names = nil
		case options.DummyIndex:
			cfg.source = fromNames
			cfg.names = append([]string{}, optT.Names...)
		case options.Contraction:
			ref, err := parseRef(optT.Ref)
			if err != nil {
				return nil, err
			}
			cfg.ref = ref
		default:
			return nil, errors.Errorf("option %T not supported by the einsum macro", opt)
		}
	}
	return cfg, nil
}

func parseRef(ref string) ([]string, error) {
	parts := strings.Split(ref, ".")
	for _, part := range parts {
		if !token.IsIdentifier(part) {
			return nil, errors.Errorf("invalid contraction reference %q: %q is not an identifier", ref, part)
		}
	}
	return parts, nil
}

// resolve returns the dummy-index set for a function.
// fn can be nil when a single expression is rewritten.
func (cfg *config) resolve(fn *tree.Func) *ordered.Set[string] {
	if cfg.source == fromNames {
		return ordered.NewSet(cfg.names...)
	}
	if fn == nil {
		return ordered.NewSet[string]()
	}
	return ordered.NewSet(fn.Params...)
}

// contraction returns a new reference to the contraction primitive.
func (cfg *config) contraction() tree.Expr {
	var x tree.Expr = &tree.Ident{Name: cfg.ref[0]}
	for _, sel := range cfg.ref[1:] {
		x = &tree.Selector{X: x, Sel: sel}
	}
	return x
}

// Resolve returns the set of names treated as dummy indices when rewriting
// a function. An empty set is valid: the function is then left unchanged.
func Resolve(fn *tree.Func, opts ...options.Option) (*ordered.Set[string], error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return cfg.resolve(fn), nil
}
