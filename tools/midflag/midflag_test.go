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

package midflag_test

import (
	"flag"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/midend-lang/midend/tools/midflag"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestStringList(t *testing.T) {
	fs := newFlagSet()
	list := midflag.StringList(fs, "files", "list of files")
	if err := fs.Parse([]string{"-files", "a.json, b.json,", "-files=c.json"}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"a.json", "b.json", "c.json"}, *list); diff != "" {
		t.Errorf("unexpected list (-want +got):\n%s", diff)
	}
}

func TestOneOf(t *testing.T) {
	fs := newFlagSet()
	format := midflag.OneOf(fs, "format", "output format", "json", "text")
	if *format != "json" {
		t.Errorf("got default %q but want %q", *format, "json")
	}
	if err := fs.Parse([]string{"-format", "text"}); err != nil {
		t.Fatal(err)
	}
	if *format != "text" {
		t.Errorf("got %q but want %q", *format, "text")
	}
	if err := newFlagSet().Parse([]string{"-format", "yaml"}); err == nil {
		t.Errorf("expected an error for an undefined flag")
	}
	fs = newFlagSet()
	midflag.OneOf(fs, "format", "output format", "json", "text")
	if err := fs.Parse([]string{"-format", "yaml"}); err == nil {
		t.Errorf("expected an error for an invalid choice")
	}
}
