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

package stringseq_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/midend-lang/midend/base/ordered"
	"github.com/midend-lang/midend/base/stringseq"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{in: nil, want: ""},
		{in: []string{"a"}, want: "a"},
		{in: []string{"a", "b", "c"}, want: "a, b, c"},
	}
	for i, test := range tests {
		if got := stringseq.Join(slices.Values(test.in), ", "); got != test.want {
			t.Errorf("test %d: got %q but want %q", i, got, test.want)
		}
	}
}

func TestPairs(t *testing.T) {
	m := ordered.NewMap[string, int]()
	m.Store("b", 2)
	m.Store("a", 1)
	got := stringseq.Join(stringseq.Pairs(m.Iter(), func(k string, v int) string {
		return fmt.Sprintf("%s: %d", k, v)
	}), ", ")
	if want := "b: 2, a: 1"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}
