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

package irjson_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/midend-lang/midend/build/ir"
	"github.com/midend-lang/midend/build/ir/irjson"
)

const pointProgram = `{
	"version": "v1.2.0",
	"nodes": [
		{
			"nodeType": "TypeDefinitionStatement",
			"position": {"line": 1, "column": 1},
			"name": {"nodeType": "Identifier", "content": "Point"},
			"properties": {
				"y": {"type": "Primitive", "primitive": "Number"},
				"x": {"type": "Primitive", "primitive": "Number"}
			},
			"methods": {
				"norm": {
					"isStatic": false,
					"isOverloaded": false,
					"method": {
						"nodeType": "FunctionValue",
						"value": {
							"parameters": [],
							"returnType": {"type": "Primitive", "primitive": "Number"},
							"body": [
								{
									"nodeType": "ReturnStatement",
									"position": {"line": 3, "column": 3},
									"expression": {
										"nodeType": "Lookup",
										"base": {"nodeType": "Self", "type": {"type": "Type", "name": "Point", "definition": {"type": "Record", "members": {}}}},
										"member": {"nodeType": "Identifier", "content": "x", "type": {"type": "Primitive", "primitive": "Number"}},
										"type": {"type": "Primitive", "primitive": "Number"}
									}
								}
							]
						}
					}
				}
			},
			"type": {"type": "Type", "name": "Point", "definition": {"type": "Record", "members": {}}}
		},
		{
			"nodeType": "ConstantDeclarationStatement",
			"position": {"file": "other.prg", "line": 7, "column": 2},
			"name": {"nodeType": "Identifier", "content": "items"},
			"declaredType": {"type": "List", "itemType": {"type": "Primitive", "primitive": "String"}},
			"value": {"nodeType": "ListValue", "values": [], "type": {"type": "List", "itemType": {"type": "Never"}}},
			"type": {"type": "List", "itemType": {"type": "Never"}}
		},
		{
			"nodeType": "NativeFunctionInvocation",
			"name": {
				"nodeType": "Identifier",
				"content": "print",
				"type": {"type": "Function", "parameterTypes": [{"name": null, "type": {"type": "Primitive", "primitive": "String"}}], "returnType": {"type": "Primitive", "primitive": "Boolean"}}
			},
			"arguments": [{"name": null, "value": {"nodeType": "StringValue", "value": "hi"}}],
			"type": {"type": "Primitive", "primitive": "Boolean"}
		}
	]
}`

func TestDecode(t *testing.T) {
	prog, err := irjson.Decode("main.json", []byte(pointProgram))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if prog.Version != "v1.2.0" {
		t.Errorf("got version %q", prog.Version)
	}
	if len(prog.Nodes) != 3 {
		t.Fatalf("got %d nodes but want 3", len(prog.Nodes))
	}

	tDef, ok := prog.Nodes[0].(*ir.TypeDefinition)
	if !ok {
		t.Fatalf("node 0 is %T but want %T", prog.Nodes[0], tDef)
	}
	var props []string
	for name := range tDef.Properties.Keys() {
		props = append(props, name)
	}
	if diff := cmp.Diff([]string{"y", "x"}, props); diff != "" {
		t.Errorf("properties not in source order (-want +got):\n%s", diff)
	}
	norm, ok := tDef.Methods.Load("norm")
	if !ok {
		t.Fatalf("method norm not found")
	}
	if norm.Static || norm.Overloaded || len(norm.Funcs) != 1 {
		t.Errorf("unexpected method definition: %+v", norm)
	}
	ret, ok := norm.Funcs[0].Body[0].(*ir.Return)
	if !ok {
		t.Fatalf("method body statement is %T", norm.Funcs[0].Body[0])
	}
	if got, want := ret.Position().String(), "main.json:3:3"; got != want {
		t.Errorf("got position %s but want %s", got, want)
	}
	if _, ok := ret.Value.(*ir.Lookup).Base.(*ir.Self); !ok {
		t.Errorf("lookup base is not self")
	}

	decl := prog.Nodes[1].(*ir.ConstantDeclaration)
	if got, want := decl.Position().String(), "other.prg:7:2"; got != want {
		t.Errorf("got position %s but want %s", got, want)
	}
	if got, want := decl.Declared.String(), "[String]"; got != want {
		t.Errorf("got declared type %s but want %s", got, want)
	}
	if got, want := decl.Value.Type().String(), "[Never]"; got != want {
		t.Errorf("got value type %s but want %s", got, want)
	}

	call := prog.Nodes[2].(*ir.NativeFunctionInvocation)
	if call.Args[0].Name != "" {
		t.Errorf("unlabelled argument decoded with name %q", call.Args[0].Name)
	}
	if !ir.MatchesType(call.Args[0].Type(), ir.StringType()) {
		t.Errorf("string literal decoded with type %s", call.Args[0].Type())
	}
	fType := call.Callee.Type().(*ir.FuncType)
	if !ir.IsBool(fType.Result) {
		t.Errorf("got result type %s", fType.Result)
	}
}

func TestDecodeOverloadedMethodType(t *testing.T) {
	const src = `{"nodes": [{
		"nodeType": "Identifier",
		"content": "m",
		"type": {
			"type": "Method",
			"isStatic": true,
			"isOverloaded": true,
			"parameterTypes": [
				[{"name": "x", "type": {"type": "Primitive", "primitive": "Number"}}],
				[{"name": "x", "type": {"type": "Primitive", "primitive": "Number"}}, {"name": "y", "type": {"type": "Primitive", "primitive": "String"}}]
			],
			"returnType": {"type": "Primitive", "primitive": "String"}
		}
	}]}`
	prog, err := irjson.Decode("overload.json", []byte(src))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if prog.Version != irjson.FormatVersion {
		t.Errorf("got version %q but want the default %q", prog.Version, irjson.FormatVersion)
	}
	mType := prog.Nodes[0].(*ir.Ident).Typ.(*ir.MethodType)
	if got, want := len(mType.Signatures()), 2; got != want {
		t.Fatalf("got %d signatures but want %d", got, want)
	}
	if got, want := mType.String(), "static method(x Number) -> String | (x Number, y String) -> String"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		src string
		err string
	}{
		{
			src: `{"version": "v2.0.0", "nodes": []}`,
			err: "format version v2.0.0 not supported",
		},
		{
			src: `{"version": "1.0", "nodes": []}`,
			err: `invalid format version "1.0"`,
		},
		{
			src: `{"nodes": [{"nodeType": "WhileStatement", "position": {"line": 4, "column": 1}}]}`,
			err: `bad.json:4:1: unknown node type "WhileStatement"`,
		},
		{
			src: `{"nodes": [{"nodeType": "Identifier", "content": "x", "type": {"type": "Tuple"}}]}`,
			err: `unknown type "Tuple"`,
		},
		{
			src: `{"nodes": [{"nodeType": "ReturnStatement", "expression": {"nodeType": "ReturnStatement", "expression": {"nodeType": "Self"}}}]}`,
			err: "is not an expression",
		},
		{
			src: `{"nodes": [`,
			err: "cannot decode program",
		},
	}
	for i, test := range tests {
		_, err := irjson.Decode("bad.json", []byte(test.src))
		if err == nil {
			t.Errorf("test %d: expected an error", i)
			continue
		}
		if !strings.Contains(err.Error(), test.err) {
			t.Errorf("test %d: got error:\n%s\nwant an error containing:\n%s", i, err, test.err)
		}
	}
}

func TestNodeTypes(t *testing.T) {
	tags := irjson.NodeTypes()
	for i := 1; i < len(tags); i++ {
		if tags[i-1] > tags[i] {
			t.Errorf("node types not sorted: %v", tags)
			break
		}
	}
	if got := len(irjson.TypeTags()); got != 8 {
		t.Errorf("got %d type tags but want 8", got)
	}
}
