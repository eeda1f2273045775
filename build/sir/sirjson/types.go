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

package sirjson

import (
	"github.com/midend-lang/midend/base/ordered"
	"github.com/midend-lang/midend/build/ir"
)

// EncodeType returns the JSON representation of a type.
// The item type of an empty list literal is encoded as null.
func EncodeType(typ ir.Type) any {
	if typ == nil {
		return nil
	}
	obj := newObject("type", typ.Kind().Tag())
	switch typT := typ.(type) {
	case *ir.PrimitiveType:
		obj.Store("primitive", typT.Name)
	case *ir.RecordType:
		members := ordered.NewMap[string, any]()
		for name, member := range typT.Members.Iter() {
			members.Store(name, EncodeType(member))
		}
		obj.Store("members", members)
	case *ir.ListType:
		var item any
		if _, isNever := typT.Item.(*ir.NeverType); !isNever {
			item = EncodeType(typT.Item)
		}
		obj.Store("itemType", item)
	case *ir.FuncType:
		obj.Store("parameterTypes", encodeParams(typT.Params))
		obj.Store("returnType", EncodeType(typT.Result))
	case *ir.MethodType:
		obj.Store("isStatic", typT.Static)
		obj.Store("isOverloaded", typT.Overloaded)
		if typT.Overloaded {
			overloads := make([]any, len(typT.Overloads))
			for i, sig := range typT.Overloads {
				overloads[i] = encodeParams(sig)
			}
			obj.Store("parameterTypes", overloads)
		} else {
			obj.Store("parameterTypes", encodeParams(typT.Params))
		}
		obj.Store("returnType", EncodeType(typT.Result))
	case *ir.NamedType:
		obj.Store("name", typT.Name)
		obj.Store("definition", EncodeType(typT.Definition))
	case *ir.BuiltinType:
		obj.Store("name", typT.Name)
	}
	return obj
}

func encodeParams(params []ir.Param) []any {
	objs := make([]any, len(params))
	for i, param := range params {
		var name any
		if param.Name != "" {
			name = param.Name
		}
		objs[i] = newObject("name", name, "type", EncodeType(param.Type))
	}
	return objs
}
