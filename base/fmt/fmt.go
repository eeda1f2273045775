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

// Package fmt provides utility methods for building string representations of trees.
package fmt

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Number adds a number prefix to all lines in a string.
func Number(x string) string {
	lines := slices.Collect(strings.Lines(x))
	numDigits := int(math.Log10(float64(len(lines)))) + 1
	fmtString := fmt.Sprintf("%%0%dd %%s", numDigits)
	var s strings.Builder
	for i, line := range lines {
		s.WriteString(fmt.Sprintf(fmtString, i+1, line))
	}
	return s.String()
}

// Indent the given string by a tabulation.
// Empty lines are not indented.
func Indent(x string) string {
	var y strings.Builder
	for line := range strings.Lines(x) {
		if strings.TrimSpace(line) != "" {
			y.WriteString("\t")
		}
		y.WriteString(line)
	}
	return y.String()
}

// Join the string representation of a list of values.
func Join[T fmt.Stringer](vals []T, sep string) string {
	ss := make([]string, len(vals))
	for i, val := range vals {
		ss[i] = val.String()
	}
	return strings.Join(ss, sep)
}

// Block returns the string representation of a list of values,
// one value per line, indented and surrounded by braces.
func Block[T fmt.Stringer](vals []T) string {
	if len(vals) == 0 {
		return "{}"
	}
	var s strings.Builder
	s.WriteString("{\n")
	for _, val := range vals {
		s.WriteString(Indent(val.String()))
		s.WriteString("\n")
	}
	s.WriteString("}")
	return s.String()
}
