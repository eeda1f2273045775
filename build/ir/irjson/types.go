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

package irjson

import (
	"encoding/json"
	"go/token"

	"github.com/midend-lang/midend/base/ordered"
	"github.com/midend-lang/midend/build/ir"
	"github.com/midend-lang/midend/build/ir/irkind"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

type (
	typeHeader struct {
		Type string `json:"type"`
	}

	paramJSON struct {
		Name *string         `json:"name"`
		Type json.RawMessage `json:"type"`
	}
)

// TypeTags returns the sorted list of type tags known by the decoder.
func TypeTags() []string {
	var tags []string
	for k := irkind.Invalid + 1; k < irkind.Max; k++ {
		tags = append(tags, k.Tag())
	}
	slices.Sort(tags)
	return tags
}

func (d *decoder) typ(pos token.Position, raw json.RawMessage) (ir.Type, error) {
	if isNull(raw) {
		return nil, nil
	}
	var head typeHeader
	if err := unmarshal(pos, "type", raw, &head); err != nil {
		return nil, err
	}
	switch irkind.KindFromString(head.Type) {
	case irkind.Primitive:
		var prim struct {
			Primitive string `json:"primitive"`
		}
		if err := unmarshal(pos, "primitive type", raw, &prim); err != nil {
			return nil, err
		}
		return ir.PrimitiveFromString(prim.Primitive), nil
	case irkind.Record:
		var rec struct {
			Members json.RawMessage `json:"members"`
		}
		if err := unmarshal(pos, "record type", raw, &rec); err != nil {
			return nil, err
		}
		members, err := d.typeMap(pos, rec.Members)
		if err != nil {
			return nil, err
		}
		return &ir.RecordType{Members: members}, nil
	case irkind.List:
		var list struct {
			ItemType json.RawMessage `json:"itemType"`
		}
		if err := unmarshal(pos, "list type", raw, &list); err != nil {
			return nil, err
		}
		item, err := d.typ(pos, list.ItemType)
		if err != nil {
			return nil, err
		}
		if item == nil {
			item = ir.Never()
		}
		return &ir.ListType{Item: item}, nil
	case irkind.Never:
		return ir.Never(), nil
	case irkind.Func:
		return d.funcType(pos, raw)
	case irkind.Method:
		return d.methodType(pos, raw)
	case irkind.Alias:
		var named struct {
			Name       string          `json:"name"`
			Definition json.RawMessage `json:"definition"`
		}
		if err := unmarshal(pos, "type alias", raw, &named); err != nil {
			return nil, err
		}
		def, err := d.typ(pos, named.Definition)
		if err != nil {
			return nil, err
		}
		return &ir.NamedType{Name: named.Name, Definition: def}, nil
	case irkind.Builtin:
		var builtin struct {
			Name string `json:"name"`
		}
		if err := unmarshal(pos, "builtin type", raw, &builtin); err != nil {
			return nil, err
		}
		return &ir.BuiltinType{Name: builtin.Name}, nil
	}
	return nil, d.errorf(pos, "unknown type %q: available types are %v", head.Type, TypeTags())
}

func (d *decoder) typeMap(pos token.Position, raw json.RawMessage) (*ordered.Map[string, ir.Type], error) {
	if isNull(raw) {
		return ordered.NewMap[string, ir.Type](), nil
	}
	return ordered.DecodeJSON(raw, func(name string, raw json.RawMessage) (ir.Type, error) {
		typ, err := d.typ(pos, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "member %s", name)
		}
		return typ, nil
	})
}

func (d *decoder) params(pos token.Position, raws []paramJSON) ([]ir.Param, error) {
	params := make([]ir.Param, len(raws))
	for i, raw := range raws {
		typ, err := d.typ(pos, raw.Type)
		if err != nil {
			return nil, err
		}
		if raw.Name != nil {
			params[i].Name = *raw.Name
		}
		params[i].Type = typ
	}
	return params, nil
}

func (d *decoder) funcType(pos token.Position, raw json.RawMessage) (*ir.FuncType, error) {
	var fn struct {
		ParameterTypes []paramJSON     `json:"parameterTypes"`
		ReturnType     json.RawMessage `json:"returnType"`
	}
	if err := unmarshal(pos, "function type", raw, &fn); err != nil {
		return nil, err
	}
	params, err := d.params(pos, fn.ParameterTypes)
	if err != nil {
		return nil, err
	}
	result, err := d.typ(pos, fn.ReturnType)
	if err != nil {
		return nil, err
	}
	return &ir.FuncType{Params: params, Result: result}, nil
}

func (d *decoder) methodType(pos token.Position, raw json.RawMessage) (*ir.MethodType, error) {
	var method struct {
		ParameterTypes json.RawMessage `json:"parameterTypes"`
		ReturnType     json.RawMessage `json:"returnType"`
		IsStatic       bool            `json:"isStatic"`
		IsOverloaded   bool            `json:"isOverloaded"`
	}
	if err := unmarshal(pos, "method type", raw, &method); err != nil {
		return nil, err
	}
	result, err := d.typ(pos, method.ReturnType)
	if err != nil {
		return nil, err
	}
	typ := &ir.MethodType{
		Result:     result,
		Static:     method.IsStatic,
		Overloaded: method.IsOverloaded,
	}
	if isNull(method.ParameterTypes) {
		return typ, nil
	}
	if !method.IsOverloaded {
		var raws []paramJSON
		if err := unmarshal(pos, "method parameters", method.ParameterTypes, &raws); err != nil {
			return nil, err
		}
		typ.Params, err = d.params(pos, raws)
		return typ, err
	}
	var overloads [][]paramJSON
	if err := unmarshal(pos, "overloaded method parameters", method.ParameterTypes, &overloads); err != nil {
		return nil, err
	}
	typ.Overloads = make([][]ir.Param, len(overloads))
	for i, raws := range overloads {
		if typ.Overloads[i], err = d.params(pos, raws); err != nil {
			return nil, err
		}
	}
	return typ, nil
}
