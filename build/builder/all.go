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
	"sync"

	"github.com/midend-lang/midend/build/fmterr"
	"github.com/midend-lang/midend/build/sir"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// DefaultNumWorkers is the default number of programs built simultaneously.
const DefaultNumWorkers = 8

type buildRequest struct {
	index int
	name  string
}

// withName prefixes an error with the name of the program if the error
// does not already point to a position in a file.
func withName(name string, err error) error {
	var posErr fmterr.ErrorWithPos
	if errors.As(err, &posErr) && posErr.Pos().Filename != "" {
		return err
	}
	return fmterr.PrefixWith("%s: ", name)(err)
}

// BuildAll builds several programs in parallel using numWorkers
// goroutines. Programs are returned in the order of their names.
// The program of a name is nil if it failed to build. The returned
// error combines the errors of all the programs: use multierr.Errors
// to list them.
func (b *Builder) BuildAll(names []string, numWorkers int) ([]*sir.Program, error) {
	if numWorkers <= 0 {
		numWorkers = DefaultNumWorkers
	}
	progs := make([]*sir.Program, len(names))
	errs := make([]error, len(names))
	toWorker := make(chan buildRequest)
	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range toWorker {
				progs[req.index], errs[req.index] = b.Build(req.name)
			}
		}()
	}
	for i, name := range names {
		toWorker <- buildRequest{index: i, name: name}
	}
	close(toWorker)
	wg.Wait()

	var all error
	for i, err := range errs {
		if err != nil {
			all = multierr.Append(all, withName(names[i], err))
		}
	}
	return progs, all
}
