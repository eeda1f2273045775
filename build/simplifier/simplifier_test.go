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

package simplifier_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/midend-lang/midend/build/fmterr"
	"github.com/midend-lang/midend/build/ir"
	"github.com/midend-lang/midend/build/ir/irhelper"
	"github.com/midend-lang/midend/build/sir"
	"github.com/midend-lang/midend/build/simplifier"
)

var (
	number = ir.NumberType()
	str    = ir.StringType()

	point = irhelper.Named("Point", irhelper.Record("x", number, "y", number))
)

func simplify(t *testing.T, nodes ...ir.SourceNode) *sir.Program {
	t.Helper()
	prog, err := simplifier.Simplify(irhelper.Program(nodes...))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return prog
}

func TestSimplify(t *testing.T) {
	m := irhelper.Method(false, number, irhelper.Param("", point), irhelper.Param("y", number))
	f := irhelper.Ident("f", irhelper.Func(number, irhelper.Param("x", number)))
	tests := []struct {
		desc string
		node ir.SourceNode
		want string
	}{
		{
			desc: "constant",
			node: irhelper.Const("c", number, irhelper.Number(2.5)),
			want: "const c Number = 2.5",
		},
		{
			desc: "variable",
			node: irhelper.Var("v", nil, irhelper.Array(irhelper.String("a"), irhelper.String("b"))),
			want: `var v = ["a", "b"]`,
		},
		{
			desc: "assignment",
			node: irhelper.Assign("v", str, irhelper.String("c")),
			want: `v = "c"`,
		},
		{
			desc: "if",
			node: irhelper.If(irhelper.Bool(true), irhelper.Assign("v", number, irhelper.Number(1))),
			want: "choice true {\n\tv = 1\n}",
		},
		{
			desc: "if-else",
			node: irhelper.IfElse(irhelper.Bool(false),
				[]ir.SourceNode{irhelper.Assign("v", number, irhelper.Number(1))},
				[]ir.SourceNode{irhelper.Assign("v", number, irhelper.Number(2))},
			),
			want: "choice false {\n\tv = 1\n} else {\n\tv = 2\n}",
		},
		{
			desc: "method invocation",
			node: irhelper.MethodCall(irhelper.MethodLookup(irhelper.Ident("p", point), point, "m", m), irhelper.Arg("y", irhelper.Number(1))),
			want: "Point.m(@: p, y: 1)",
		},
		{
			desc: "self",
			node: &ir.Self{Typ: point},
			want: "_self",
		},
		{
			desc: "method invocation on self",
			node: irhelper.MethodCall(irhelper.MethodLookup(&ir.Self{Typ: point}, point, "m", m), irhelper.Arg("y", irhelper.Number(1))),
			want: "Point.m(@: _self, y: 1)",
		},
		{
			desc: "lookup",
			node: irhelper.Lookup(irhelper.Ident("p", point), "x", number),
			want: "p.x",
		},
		{
			desc: "native call",
			node: irhelper.NativeCall(f, irhelper.Arg("x", irhelper.Number(1))),
			want: "native f(x: 1)",
		},
		{
			desc: "function statement",
			node: irhelper.FuncStmt("id", irhelper.FuncDef(
				[]*ir.Parameter{irhelper.Parameter("", "x", number)},
				number,
				irhelper.Return(irhelper.Ident("x", number)),
			)),
			want: "func id(_ x Number) -> Number {\n\treturn x\n}",
		},
		{
			desc: "record with a declared type",
			node: func() ir.SourceNode {
				rec := irhelper.RecordValue("x", irhelper.Number(1), "y", irhelper.Number(2))
				rec.Declared = point
				return rec
			}(),
			want: "Point{x: 1, y: 2}",
		},
		{
			desc: "combination",
			node: &ir.Combination{LHS: irhelper.String("a"), RHS: irhelper.String("b"), Typ: str},
			want: `("a" <> "b")`,
		},
	}
	for _, test := range tests {
		prog := simplify(t, test.node)
		got := prog.Nodes[0].String()
		if got != test.want {
			t.Errorf("%s: incorrect simplified node:\ngot:\n%s\nbut want:\n%s\ndiff:\n%s", test.desc, got, test.want, cmp.Diff(got, test.want))
		}
	}
}

func TestChoiceElse(t *testing.T) {
	tests := []struct {
		node      ir.SourceNode
		emptyElse bool
	}{
		{
			node:      irhelper.If(irhelper.Bool(true), irhelper.Assign("v", number, irhelper.Number(1))),
			emptyElse: true,
		},
		{
			node:      irhelper.IfElse(irhelper.Bool(true), nil, []ir.SourceNode{irhelper.Assign("v", number, irhelper.Number(1))}),
			emptyElse: false,
		},
	}
	for i, test := range tests {
		choice, ok := simplify(t, test.node).Nodes[0].(*sir.Choice)
		if !ok {
			t.Fatalf("test %d: got %T but want %T", i, simplify(t, test.node).Nodes[0], choice)
		}
		if choice.Else == nil {
			t.Errorf("test %d: else branch is nil", i)
		}
		if got := len(choice.Else) == 0; got != test.emptyElse {
			t.Errorf("test %d: got empty else %v but want %v", i, got, test.emptyElse)
		}
	}
}

func TestMethodLowering(t *testing.T) {
	m := irhelper.Method(false, number, irhelper.Param("", point), irhelper.Param("y", number))
	recv := irhelper.Ident("p", point)
	call := irhelper.MethodCall(irhelper.MethodLookup(recv, point, "m", m), irhelper.Arg("y", irhelper.Number(1)))
	got, ok := simplify(t, call).Nodes[0].(*sir.FunctionInvocation)
	if !ok {
		t.Fatalf("got %T but want %T", got, got)
	}
	var names []string
	for _, arg := range got.Args {
		names = append(names, arg.Name)
	}
	if diff := cmp.Diff([]string{"@", "y"}, names); diff != "" {
		t.Errorf("unexpected arguments (-want +got):\n%s", diff)
	}
	if ident, ok := got.Args[0].Value.(*sir.Ident); !ok || ident.Name != "p" || ident.Typ != ir.Type(point) {
		t.Errorf("unexpected receiver argument: %v", got.Args[0].Value)
	}
	lookup, ok := got.Callee.(*sir.Lookup)
	if !ok {
		t.Fatalf("callee is %T but want %T", got.Callee, lookup)
	}
	if base := lookup.Base.(*sir.Ident); base.Name != "Point" || base.Typ != ir.Type(point) {
		t.Errorf("unexpected lookup base: %s of type %s", base.Name, base.Typ)
	}
	if got.Overload != nil {
		t.Errorf("got overload %d but want nil", *got.Overload)
	}
}

func TestOverloadIndex(t *testing.T) {
	m := irhelper.Overloaded(false, number, irhelper.Params("", point), irhelper.Params("", point, "y", number))
	call := irhelper.MethodCall(irhelper.MethodLookup(irhelper.Ident("p", point), point, "m", m), irhelper.Arg("y", irhelper.Number(1)))
	index := 1
	call.Overload = &index
	got := simplify(t, call).Nodes[0].(*sir.FunctionInvocation)
	if got.Overload == nil || *got.Overload != 1 {
		t.Fatalf("got overload %v but want 1", got.Overload)
	}
	index = 0
	if *got.Overload != 1 {
		t.Errorf("simplified overload index shares memory with the typed tree")
	}
	if want := "Point.m#1(@: p, y: 1)"; got.String() != want {
		t.Errorf("got %q but want %q", got.String(), want)
	}
}

func TestSelfInjection(t *testing.T) {
	body := irhelper.Return(irhelper.Lookup(&ir.Self{Typ: point}, "x", number))
	tDef := irhelper.TypeDef(point,
		"getX", irhelper.MethodDef(false, irhelper.FuncDef(nil, number, body)),
		"make", irhelper.MethodDef(true, irhelper.FuncDef(
			[]*ir.Parameter{irhelper.Parameter("x", "x", number)},
			point,
			irhelper.Return(irhelper.Ident("p", point)),
		)),
		"scale", irhelper.OverloadedDef(false,
			irhelper.FuncDef([]*ir.Parameter{irhelper.Parameter("by", "f", number)}, point),
			irhelper.FuncDef([]*ir.Parameter{irhelper.Parameter("x", "fx", number), irhelper.Parameter("y", "fy", number)}, point),
		),
	)
	got := simplify(t, tDef).Nodes[0].String()
	want := `type Point {
	getX method(@ _self Point) -> Number {
		return _self.x
	}
	make static method(x x Number) -> Point {
		return p
	}
	scale method(@ _self Point, by f Number) -> Point {} | (@ _self Point, x fx Number, y fy Number) -> Point {}
}`
	if got != want {
		t.Errorf("incorrect type definition:\ngot:\n%s\nbut want:\n%s\ndiff:\n%s", got, want, cmp.Diff(got, want))
	}
	// The typed tree is left untouched.
	getX, _ := tDef.Methods.Load("getX")
	if len(getX.Funcs[0].Params) != 0 {
		t.Errorf("parameters injected in the typed tree: %v", getX.Funcs[0].Params)
	}
}

type unknownStmt struct {
	*ir.Return
}

func TestUnknownNode(t *testing.T) {
	_, err := simplifier.Simplify(irhelper.Program(unknownStmt{Return: irhelper.Return(irhelper.Number(1))}))
	if err == nil {
		t.Fatal("expected an error but got nil")
	}
	if !fmterr.IsInternal(err) {
		t.Errorf("error %q is not internal", err)
	}
	if !strings.Contains(err.Error(), "cannot simplify statement") {
		t.Errorf("unexpected error: %v", err)
	}
}
