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

// Package fmterr provides helpers to build errors positioned
// in the source of the compiled program.
package fmterr

import (
	"fmt"
	"go/token"
)

// Positioner is a node with a position in the source code.
type Positioner interface {
	Position() token.Position
}

// PosString returns a position as a string that can be used for an error.
// An empty string is returned if the position is not valid.
func PosString(pos token.Position) string {
	if !pos.IsValid() {
		return ""
	}
	return pos.String() + ":"
}

// PrefixWith returns a function to prefix errors with a formatted string.
func PrefixWith(s string, o ...any) func(err error) error {
	return func(err error) error {
		return fmt.Errorf("%s%w", fmt.Sprintf(s, o...), err)
	}
}
