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

package fmterr_test

import (
	"fmt"
	"go/token"
	"strings"
	"testing"

	"github.com/midend-lang/midend/build/fmterr"
	"github.com/pkg/errors"
)

type node struct {
	pos token.Position
}

func (n node) Position() token.Position { return n.pos }

func TestErrorf(t *testing.T) {
	tests := []struct {
		src  fmterr.Positioner
		want string
	}{
		{
			src:  node{pos: token.Position{Filename: "main.prg", Line: 3, Column: 7}},
			want: "main.prg:3:7: wrong assignment value type for variable x",
		},
		{
			src:  node{},
			want: "wrong assignment value type for variable x",
		},
		{
			want: "wrong assignment value type for variable x",
		},
	}
	for i, test := range tests {
		err := fmterr.Errorf(test.src, "wrong assignment value type for variable %s", "x")
		if got := err.Error(); got != test.want {
			t.Errorf("test %d: got %q but want %q", i, got, test.want)
		}
		if fmterr.IsInternal(err) {
			t.Errorf("test %d: error %q marked as internal", i, err)
		}
	}
}

func TestInternal(t *testing.T) {
	err := fmterr.Internalf(node{}, "unknown node %T", 1)
	if !fmterr.IsInternal(err) {
		t.Errorf("error %q not marked as internal", err)
	}
	if !strings.Contains(err.Error(), "unknown node int") {
		t.Errorf("error %q does not contain the original message", err)
	}
	wrapped := errors.Wrap(err, "lowering")
	if !fmterr.IsInternal(wrapped) {
		t.Errorf("wrapped error %q not marked as internal", wrapped)
	}
}

func TestVerbose(t *testing.T) {
	err := fmterr.Errorf(node{}, "if condition has to be a boolean")
	verbose := fmt.Sprintf("%+v", err)
	if !strings.HasPrefix(verbose, "if condition has to be a boolean") {
		t.Errorf("unexpected verbose format: %s", verbose)
	}
	if !strings.Contains(verbose, "Error generated at:") {
		t.Errorf("verbose format %q does not contain a stack trace", verbose)
	}
	if fmterr.StackTrace(err) == nil {
		t.Errorf("no stack trace recorded")
	}
	if got := fmt.Sprintf("%v", err); got != "if condition has to be a boolean" {
		t.Errorf("got %q", got)
	}
}
