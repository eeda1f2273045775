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

// Package builder lowers typed programs into simplified programs.
//
// A program is built in two passes:
//  1. the typed program is validated,
//  2. the validated program is simplified.
//
// Building stops at the first error of a program. When several programs
// are built together, each program is built independently and the errors
// of all the programs are reported.
package builder

import (
	"sync"

	msync "github.com/midend-lang/midend/base/sync"
	"github.com/midend-lang/midend/build/ir"
	"github.com/midend-lang/midend/build/simplifier"
	"github.com/midend-lang/midend/build/sir"
	"github.com/midend-lang/midend/build/validator"
	"github.com/pkg/errors"
)

type (
	// Loader loads typed programs given their name.
	Loader interface {
		// Support checks if the loader can load a program given its name.
		Support(name string) bool
		// Load a typed program.
		Load(name string) (*ir.Program, error)
	}

	// Builder represents a build session of typed programs.
	// Programs are built once per session.
	Builder struct {
		loaders []Loader
		built   msync.Map[string, *build]
	}

	build struct {
		once sync.Once
		prog *sir.Program
		err  error
	}
)

// New returns a new build session.
func New(loaders []Loader) *Builder {
	return &Builder{loaders: loaders}
}

// Build validates and simplifies a typed program.
func Build(prog *ir.Program) (*sir.Program, error) {
	prog, err := validator.Validate(prog)
	if err != nil {
		return nil, err
	}
	return simplifier.Simplify(prog)
}

func (b *Builder) findLoader(name string) Loader {
	for _, ld := range b.loaders {
		if ld.Support(name) {
			return ld
		}
	}
	return nil
}

func (b *Builder) load(name string) (*sir.Program, error) {
	ld := b.findLoader(name)
	if ld == nil {
		return nil, errors.Errorf("cannot find a loader for %s", name)
	}
	prog, err := ld.Load(name)
	if err != nil {
		return nil, err
	}
	return Build(prog)
}

// Build a program given its name.
// A program already built by the session is not built again.
func (b *Builder) Build(name string) (*sir.Program, error) {
	bld, _ := b.built.LoadOrStore(name, &build{})
	bld.once.Do(func() {
		bld.prog, bld.err = b.load(name)
	})
	return bld.prog, bld.err
}
