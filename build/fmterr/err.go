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

// Package fmterr formats errors with positions in the source code and
// classifies them between user errors, unsupported constructs, and internal errors.
package fmterr

import (
	"fmt"
	"go/ast"
	"go/token"
	"io"
	"runtime/debug"

	"github.com/pkg/errors"
)

var (
	// ErrInternal is matched by errors signaling a bug in the rewriter, that is
	// a code path that previous checks should have excluded.
	ErrInternal = errors.New("internal error")

	// ErrUnsupported is matched by errors signaling a construct that is
	// recognized but not implemented.
	ErrUnsupported = errors.New("not implemented")
)

type (
	// ErrorWithPos is an error attached to a position in the source code.
	ErrorWithPos interface {
		error
		FSet() *token.FileSet
		Src() ast.Node
		Err() error
	}

	errorWithPos struct {
		fset *token.FileSet
		src  ast.Node
		pos  token.Pos
		err  error
	}

	kindError struct {
		kind error
		err  error
	}
)

// Position adds position information to an error.
// The error is returned unchanged if the node is nil.
func Position(fset *token.FileSet, src ast.Node, err error) error {
	if src == nil {
		return err
	}
	return errorWithPos{
		fset: fset,
		src:  src,
		pos:  src.Pos(), // Cache the position to make sure src is valid.
		err:  err,
	}
}

// Errorf returns a formatted error for the user.
func Errorf(fset *token.FileSet, src ast.Node, format string, a ...any) error {
	return Position(fset, src, errors.Errorf(format, a...))
}

// Internal marks an error as internal.
func Internal(err error) error {
	return kindError{kind: ErrInternal, err: err}
}

// Internalf returns a formatted internal error.
func Internalf(fset *token.FileSet, src ast.Node, format string, a ...any) error {
	return Internal(Errorf(fset, src, format, a...))
}

// Unsupported marks an error as a construct not implemented by the rewriter.
func Unsupported(err error) error {
	return kindError{kind: ErrUnsupported, err: err}
}

// Unsupportedf returns a formatted error for a construct not implemented.
func Unsupportedf(fset *token.FileSet, src ast.Node, format string, a ...any) error {
	return Unsupported(Errorf(fset, src, format, a...))
}

func (err kindError) Error() string {
	if err.kind == ErrInternal {
		return "internal error, this is a bug in the rewriter: " + err.err.Error()
	}
	return err.err.Error() + ": " + err.kind.Error()
}

func (err kindError) Is(target error) bool {
	return target == err.kind
}

func (err kindError) Unwrap() error {
	return err.err
}

func (err kindError) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

// Error returns a string description of the error.
func (err errorWithPos) Error() (s string) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		s = fmt.Sprintf("recovered from panic when building error message: %T:\n%v", err.err, string(debug.Stack()))
	}()
	if err.fset == nil {
		return err.err.Error()
	}
	return PosString(err.fset, err.pos) + " " + err.err.Error()
}

// Unwrap the error.
func (err errorWithPos) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err errorWithPos) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

func (err errorWithPos) FSet() *token.FileSet {
	return err.fset
}

func (err errorWithPos) Src() ast.Node {
	return err.src
}

func (err errorWithPos) Err() error {
	return err.err
}

// FileSet creates errors located in a file set.
type FileSet struct {
	FSet *token.FileSet
}

// Errorf returns a user error located at a node.
func (f FileSet) Errorf(node ast.Node, format string, a ...any) error {
	return Errorf(f.FSet, node, format, a...)
}

// Unsupportedf returns an error located at a node the rewriter does not implement.
func (f FileSet) Unsupportedf(node ast.Node, format string, a ...any) error {
	return Unsupportedf(f.FSet, node, format, a...)
}

// Internalf returns an internal error located at a node.
func (f FileSet) Internalf(node ast.Node, format string, a ...any) error {
	return Internalf(f.FSet, node, format, a...)
}

// Position locates an existing error at a node.
func (f FileSet) Position(node ast.Node, err error) error {
	return Position(f.FSet, node, err)
}

// format prints the message of an error.
// With %+v, the stack trace recorded by github.com/pkg/errors follows the message.
func format(err error, s fmt.State, verb rune) {
	switch verb {
	case 'q':
		fmt.Fprintf(s, "%q", err.Error())
		return
	case 's', 'v', 'w':
	default:
		return
	}
	io.WriteString(s, err.Error())
	if verb == 's' || !s.Flag('+') {
		return
	}
	var st interface{ StackTrace() errors.StackTrace }
	if errors.As(err, &st) {
		fmt.Fprintf(s, "\nstack:%+v\n", st.StackTrace())
	}
}

// PosString returns a position as a string that can be used for an error.
func PosString(fset *token.FileSet, pos token.Pos) string {
	return fset.Position(pos).String() + ":"
}
