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
	"go/token"
	"runtime/debug"

	"github.com/pkg/errors"
)

type (
	// ErrorWithPos is an error attached to a position in the source code.
	ErrorWithPos interface {
		error
		Pos() token.Position
		Err() error
	}

	errorWithPos struct {
		pos token.Position
		err error
	}

	internalError struct {
		err error
	}
)

// Position adds position information to an error.
func Position(src Positioner, err error) ErrorWithPos {
	var pos token.Position
	if src != nil {
		pos = src.Position()
	}
	return errorWithPos{pos: pos, err: err}
}

// Errorf returns a formatted compiler error for the user.
func Errorf(src Positioner, format string, a ...any) error {
	return Position(src, errors.Errorf(format, a...))
}

// Internal marks an error as internal, that is a bug in the compiler
// and not an error in the program being compiled.
func Internal(err error) error {
	return internalError{err: err}
}

// Internalf returns a formatted internal compiler error.
func Internalf(src Positioner, format string, a ...any) error {
	return Internal(Errorf(src, format, a...))
}

// IsInternal returns true if the error, or one of the error it wraps, is internal.
func IsInternal(err error) bool {
	var target internalError
	return errors.As(err, &target)
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
	prefix := PosString(err.pos)
	if prefix == "" {
		return err.err.Error()
	}
	return prefix + " " + err.err.Error()
}

// Unwrap the error.
func (err errorWithPos) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err errorWithPos) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

func (err errorWithPos) Pos() token.Position {
	return err.pos
}

func (err errorWithPos) Err() error {
	return err.err
}

func (err internalError) Error() string {
	return "internal compiler error. This is a bug in the compiler. Please report it. Error:\n" + err.err.Error()
}

func (err internalError) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err internalError) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}
