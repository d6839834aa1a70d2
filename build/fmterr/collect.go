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

package fmterr

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	"go.uber.org/multierr"
)

// Errors collects the errors found while processing a source file.
// The zero value is an empty set ready to use.
type Errors struct {
	err error
}

// NewAppender returns an appender adding positioned errors to the set.
func (errs *Errors) NewAppender(fset *token.FileSet) *Appender {
	return &Appender{errs: errs, fset: FileSet{FSet: fset}}
}

// Append adds an error to the set.
// Always returns false so that callers can return the result directly.
func (errs *Errors) Append(err error) bool {
	errs.err = multierr.Append(errs.err, err)
	return false
}

// Empty returns true if the set has no error.
func (errs *Errors) Empty() bool {
	return errs == nil || errs.err == nil
}

// Errors returns a copy of the errors in the set.
func (errs *Errors) Errors() []error {
	if errs.Empty() {
		return nil
	}
	return multierr.Errors(errs.err)
}

// Unwrap returns the errors of the set for errors.Is and errors.As.
func (errs *Errors) Unwrap() []error {
	return errs.Errors()
}

// ToError returns the set as an error or nil if the set is empty.
func (errs *Errors) ToError() error {
	if errs.Empty() {
		return nil
	}
	return errs
}

// Error returns one error per line.
func (errs *Errors) Error() string {
	var b strings.Builder
	for i, err := range errs.Errors() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Format prints each error of the set on its own line with the same verb.
func (errs *Errors) Format(s fmt.State, verb rune) {
	directive := fmt.FormatString(s, verb)
	for _, err := range errs.Errors() {
		fmt.Fprintf(s, directive+"\n", err)
	}
}

// Appender adds errors located in a file set to a set of errors.
type Appender struct {
	errs *Errors
	fset FileSet
}

// Append adds an error to the set.
func (app *Appender) Append(err error) bool {
	return app.errs.Append(err)
}

// Appendf adds a user error located at a node.
func (app *Appender) Appendf(node ast.Node, format string, a ...any) bool {
	return app.Append(app.fset.Errorf(node, format, a...))
}

// AppendUnsupportedf adds an error for a construct the rewriter does not implement.
func (app *Appender) AppendUnsupportedf(node ast.Node, format string, a ...any) bool {
	return app.Append(app.fset.Unsupportedf(node, format, a...))
}

// Empty returns true if no error has been added.
func (app *Appender) Empty() bool {
	return app.errs.Empty()
}

// Errors returns the set or nil if no error has been added.
func (app *Appender) Errors() *Errors {
	if app.Empty() {
		return nil
	}
	return app.errs
}
