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

package validator

import (
	"github.com/midend-lang/midend/build/ir"
)

const (
	fullMatch     = -1
	arityMismatch = -2
)

// matchSignature returns fullMatch if the arguments match the signature,
// arityMismatch if the number of arguments differs, or the index of the
// first argument not matching its parameter.
func matchSignature(sig, args []ir.Param) int {
	if len(sig) != len(args) {
		return arityMismatch
	}
	for i := range sig {
		if !ir.MatchesParam(sig[i], args[i]) {
			return i
		}
	}
	return fullMatch
}

// ResolveOverload returns the index of the first signature, in declaration
// order, matching the arguments. A signature matches if it has the same
// number of parameters as there are arguments and if each argument has the
// name of its parameter and a type matching the parameter type.
// Returns false if no signature matches.
func ResolveOverload(sigs [][]ir.Param, args []ir.Param) (int, bool) {
	for i, sig := range sigs {
		if matchSignature(sig, args) == fullMatch {
			return i, true
		}
	}
	return -1, false
}
