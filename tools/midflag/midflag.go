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

// Package midflag provides flag types for the command line tools.
package midflag

import (
	"flag"
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

type stringList struct {
	list *[]string
}

func (sl *stringList) String() string {
	if sl.list == nil {
		return ""
	}
	return strings.Join(*sl.list, ",")
}

func (sl *stringList) Set(values string) error {
	for _, value := range strings.Split(values, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		*sl.list = append(*sl.list, value)
	}
	return nil
}

// StringList returns a flag to pass a list of string from the command line.
// The values are separated by commas and the flag can be repeated.
// The flag is defined on flag.CommandLine if fs is nil.
func StringList(fs *flag.FlagSet, name, doc string) *[]string {
	if fs == nil {
		fs = flag.CommandLine
	}
	var list []string
	sList := stringList{&list}
	fs.Var(&sList, name, doc)
	return sList.list
}

type oneOf struct {
	value   *string
	choices []string
}

func (o *oneOf) String() string {
	if o.value == nil {
		return ""
	}
	return *o.value
}

func (o *oneOf) Set(value string) error {
	if !slices.Contains(o.choices, value) {
		return errors.Errorf("invalid value %q: want one of %v", value, o.choices)
	}
	*o.value = value
	return nil
}

// OneOf returns a flag which value is one of a given list of choices.
// The first choice is the default value.
// The flag is defined on flag.CommandLine if fs is nil.
func OneOf(fs *flag.FlagSet, name, doc string, choices ...string) *string {
	if fs == nil {
		fs = flag.CommandLine
	}
	value := ""
	if len(choices) > 0 {
		value = choices[0]
	}
	o := &oneOf{value: &value, choices: choices}
	fs.Var(o, name, fmt.Sprintf("%s (one of %s)", doc, strings.Join(choices, ", ")))
	return o.value
}
