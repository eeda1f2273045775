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

package sync_test

import (
	"testing"

	"github.com/midend-lang/midend/base/sync"
)

func TestMap(t *testing.T) {
	var m sync.Map[string, int]
	if _, ok := m.Load("a"); ok {
		t.Errorf("empty map returned a value")
	}
	if v, loaded := m.LoadOrStore("a", 1); loaded || v != 1 {
		t.Errorf("got (%d, %v) but want (1, false)", v, loaded)
	}
	if v, loaded := m.LoadOrStore("a", 2); !loaded || v != 1 {
		t.Errorf("got (%d, %v) but want (1, true)", v, loaded)
	}
	m.Store("b", 3)
	if v, ok := m.Load("b"); !ok || v != 3 {
		t.Errorf("got (%d, %v) but want (3, true)", v, ok)
	}
	sum := 0
	for _, v := range m.Iter() {
		sum += v
	}
	if sum != 4 || m.Size() != 2 {
		t.Errorf("got sum %d and size %d but want 4 and 2", sum, m.Size())
	}
}
