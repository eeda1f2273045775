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

package ir

import (
	"fmt"
	"strings"

	"github.com/midend-lang/midend/base/ordered"
	"github.com/midend-lang/midend/base/stringseq"
	"github.com/midend-lang/midend/build/ir/irkind"
)

// Kind of a type.
type Kind = irkind.Kind

type (
	// Type of a value.
	Type interface {
		Node

		// Kind of the type.
		Kind() Kind

		// String representation of the type.
		String() string
	}

	// PrimitiveType is a type identified by its name.
	PrimitiveType struct {
		Name string
	}

	// RecordType is a structural type with named members.
	RecordType struct {
		Members *ordered.Map[string, Type]
	}

	// ListType is the type of a list.
	// Item is Never() for the type of an empty list literal.
	ListType struct {
		Item Type
	}

	// NeverType is the bottom type.
	NeverType struct{}

	// Param is a parameter in a function or method signature.
	// An empty name is an unlabelled parameter.
	Param struct {
		Name string
		Type Type
	}

	// FuncType defines a function signature.
	FuncType struct {
		Params []Param
		Result Type
	}

	// MethodType defines the type of a method.
	// A method that is not overloaded has a single signature stored in Params.
	// An overloaded method stores its overload set in Overloads.
	MethodType struct {
		Params    []Param
		Overloads [][]Param
		Result    Type

		Static     bool
		Overloaded bool
	}

	// NamedType is a type defined by a type definition.
	NamedType struct {
		Name       string
		Definition Type
	}

	// BuiltinType marks the definition of a named type provided by the runtime.
	// Named types with a builtin definition are opaque.
	BuiltinType struct {
		Name string
	}
)

var (
	_ Type = (*PrimitiveType)(nil)
	_ Type = (*RecordType)(nil)
	_ Type = (*ListType)(nil)
	_ Type = (*NeverType)(nil)
	_ Type = (*FuncType)(nil)
	_ Type = (*MethodType)(nil)
	_ Type = (*NamedType)(nil)
	_ Type = (*BuiltinType)(nil)
)

// Names of the primitive types.
const (
	BoolName   = "Boolean"
	NumberName = "Number"
	StringName = "String"
)

var (
	boolT   = &PrimitiveType{Name: BoolName}
	numberT = &PrimitiveType{Name: NumberName}
	stringT = &PrimitiveType{Name: StringName}
	neverT  = &NeverType{}
)

// BoolType returns the type for a boolean.
func BoolType() Type {
	return boolT
}

// NumberType returns the type for a number.
func NumberType() Type {
	return numberT
}

// StringType returns the type for a string.
func StringType() Type {
	return stringT
}

// Never returns the bottom type.
func Never() Type {
	return neverT
}

// PrimitiveFromString returns a primitive type singleton given its name.
// A new primitive type is returned for names that are not predefined.
func PrimitiveFromString(name string) *PrimitiveType {
	switch name {
	case BoolName:
		return boolT
	case NumberName:
		return numberT
	case StringName:
		return stringT
	}
	return &PrimitiveType{Name: name}
}

// IsBool returns true if the type is the boolean primitive.
func IsBool(typ Type) bool {
	prim, ok := typ.(*PrimitiveType)
	return ok && prim.Name == BoolName
}

// Underlying resolves named types to their definition, unless the definition
// is builtin in which case the named type is opaque and returned as is.
func Underlying(typ Type) Type {
	for {
		named, ok := typ.(*NamedType)
		if !ok || named.Definition == nil {
			return typ
		}
		if _, isBuiltin := named.Definition.(*BuiltinType); isBuiltin {
			return typ
		}
		typ = named.Definition
	}
}

func (*PrimitiveType) node() {}

// Kind returns the primitive kind.
func (*PrimitiveType) Kind() Kind { return irkind.Primitive }

// String representation of the type.
func (t *PrimitiveType) String() string { return t.Name }

func (*RecordType) node() {}

// Kind returns the record kind.
func (*RecordType) Kind() Kind { return irkind.Record }

// String representation of the type.
func (t *RecordType) String() string {
	return "{" + stringseq.Join(stringseq.Pairs(t.Members.Iter(), func(name string, typ Type) string {
		return name + ": " + typ.String()
	}), ", ") + "}"
}

func (*ListType) node() {}

// Kind returns the list kind.
func (*ListType) Kind() Kind { return irkind.List }

// String representation of the type.
func (t *ListType) String() string { return "[" + t.Item.String() + "]" }

func (*NeverType) node() {}

// Kind returns the never kind.
func (*NeverType) Kind() Kind { return irkind.Never }

// String representation of the type.
func (*NeverType) String() string { return "Never" }

// String representation of the parameter.
func (p Param) String() string {
	if p.Name == "" {
		return "_ " + p.Type.String()
	}
	return p.Name + " " + p.Type.String()
}

func signatureString(params []Param, result Type) string {
	ss := make([]string, len(params))
	for i, param := range params {
		ss[i] = param.String()
	}
	res := "?"
	if result != nil {
		res = result.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(ss, ", "), res)
}

func (*FuncType) node() {}

// Kind returns the function kind.
func (*FuncType) Kind() Kind { return irkind.Func }

// String representation of the type.
func (t *FuncType) String() string {
	return "func" + signatureString(t.Params, t.Result)
}

func (*MethodType) node() {}

// Kind returns the method kind.
func (*MethodType) Kind() Kind { return irkind.Method }

// Signatures returns the overload set of the method.
// A method that is not overloaded has exactly one signature.
func (t *MethodType) Signatures() [][]Param {
	if t.Overloaded {
		return t.Overloads
	}
	return [][]Param{t.Params}
}

// String representation of the type.
func (t *MethodType) String() string {
	prefix := "method"
	if t.Static {
		prefix = "static method"
	}
	sigs := t.Signatures()
	ss := make([]string, len(sigs))
	for i, sig := range sigs {
		ss[i] = signatureString(sig, t.Result)
	}
	return prefix + strings.Join(ss, " | ")
}

func (*NamedType) node() {}

// Kind returns the alias kind.
func (*NamedType) Kind() Kind { return irkind.Alias }

// String representation of the type.
func (t *NamedType) String() string { return t.Name }

func (*BuiltinType) node() {}

// Kind returns the builtin kind.
func (*BuiltinType) Kind() Kind { return irkind.Builtin }

// String representation of the type.
func (t *BuiltinType) String() string { return "builtin " + t.Name }
