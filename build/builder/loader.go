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

package builder

import (
	"path/filepath"
	"sync"

	"github.com/midend-lang/midend/build/ir"
	"github.com/midend-lang/midend/build/ir/irjson"
	"github.com/pkg/errors"
)

// FileLoader loads typed programs from JSON files.
type FileLoader struct{}

var _ Loader = FileLoader{}

// Support returns true for files with a .json extension.
func (FileLoader) Support(name string) bool {
	return filepath.Ext(name) == ".json"
}

// Load a typed program from a file.
func (FileLoader) Load(name string) (*ir.Program, error) {
	return irjson.DecodeFile(name)
}

// MemLoader loads typed programs from memory.
type MemLoader struct {
	mut   sync.Mutex
	progs map[string]*ir.Program
}

var _ Loader = (*MemLoader)(nil)

// NewMemLoader returns a loader with no program.
func NewMemLoader() *MemLoader {
	return &MemLoader{progs: make(map[string]*ir.Program)}
}

// Store a program given its name.
func (ld *MemLoader) Store(name string, prog *ir.Program) {
	ld.mut.Lock()
	defer ld.mut.Unlock()
	ld.progs[name] = prog
}

// Support returns true if a program has been stored with the name.
func (ld *MemLoader) Support(name string) bool {
	ld.mut.Lock()
	defer ld.mut.Unlock()
	_, ok := ld.progs[name]
	return ok
}

// Load returns a program stored in memory.
func (ld *MemLoader) Load(name string) (*ir.Program, error) {
	ld.mut.Lock()
	defer ld.mut.Unlock()
	prog, ok := ld.progs[name]
	if !ok {
		return nil, errors.Errorf("program %s not found", name)
	}
	return prog, nil
}
