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

// Package irkind defines the kinds of types of the typed syntax tree.
package irkind

// Kind of a type.
type Kind uint

// Kind of types supported by the validator.
const (
	Invalid Kind = iota

	// Primitive is a type identified by its name (boolean, number, string).
	Primitive
	// Record is a structural type with named members.
	Record
	// List is a list of items of the same type.
	List
	// Never is the item type of an empty list literal.
	Never
	// Func is the type of a function.
	Func
	// Method is the type of a method, static or not, overloaded or not.
	Method
	// Alias is a named type defined by a type definition.
	Alias
	// Builtin is the opaque definition of a type provided by the runtime.
	Builtin

	// Max value for a Kind constant.
	Max
)

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case Primitive:
		return "primitive"
	case Record:
		return "record"
	case List:
		return "list"
	case Never:
		return "never"
	case Func:
		return "function"
	case Method:
		return "method"
	case Alias:
		return "type"
	case Builtin:
		return "builtin"
	}
	return "invalid"
}

// KindFromString returns a kind given its tag in the interchange format.
// Returns Invalid if the tag is unknown.
func KindFromString(tag string) Kind {
	switch tag {
	case "Primitive":
		return Primitive
	case "Record":
		return Record
	case "List":
		return List
	case "Never":
		return Never
	case "Function":
		return Func
	case "Method":
		return Method
	case "Type":
		return Alias
	case "BuiltIn":
		return Builtin
	default:
		return Invalid
	}
}

// Tag returns the tag of the kind in the interchange format.
func (k Kind) Tag() string {
	switch k {
	case Primitive:
		return "Primitive"
	case Record:
		return "Record"
	case List:
		return "List"
	case Never:
		return "Never"
	case Func:
		return "Function"
	case Method:
		return "Method"
	case Alias:
		return "Type"
	case Builtin:
		return "BuiltIn"
	}
	return ""
}

// IsCallable returns true if a value of the kind can be invoked.
func IsCallable(k Kind) bool {
	return k == Func || k == Method
}
