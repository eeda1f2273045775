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

package validator_test

import (
	"strings"
	"testing"

	"github.com/midend-lang/midend/build/fmterr"
	"github.com/midend-lang/midend/build/ir"
	"github.com/midend-lang/midend/build/ir/irhelper"
	"github.com/midend-lang/midend/build/validator"
)

var (
	number = ir.NumberType()
	str    = ir.StringType()
	boolT  = ir.BoolType()

	point = irhelper.Named("Point", irhelper.Record("x", number, "y", number))
)

func TestResolveOverload(t *testing.T) {
	sigs := [][]ir.Param{
		irhelper.Params("x", number),
		irhelper.Params("x", number, "y", str),
	}
	tests := []struct {
		args   []ir.Param
		want   int
		wantOk bool
	}{
		{args: irhelper.Params("x", number, "y", str), want: 1, wantOk: true},
		{args: irhelper.Params("x", number), want: 0, wantOk: true},
		{args: irhelper.Params("x", str), want: -1, wantOk: false},
		{args: irhelper.Params("y", number), want: -1, wantOk: false},
		{args: nil, want: -1, wantOk: false},
	}
	for i, test := range tests {
		got, ok := validator.ResolveOverload(sigs, test.args)
		if got != test.want || ok != test.wantOk {
			t.Errorf("test %d: got (%d, %v) but want (%d, %v)", i, got, ok, test.want, test.wantOk)
		}
	}
}

func TestResolveOverloadFirstMatchWins(t *testing.T) {
	sigs := [][]ir.Param{
		irhelper.Params("x", irhelper.List(number)),
		irhelper.Params("x", irhelper.List(str)),
	}
	got, ok := validator.ResolveOverload(sigs, irhelper.Params("x", irhelper.EmptyList()))
	if !ok || got != 0 {
		t.Errorf("got (%d, %v) but want (0, true)", got, ok)
	}
}

func overloadedMethod() *ir.MethodType {
	return irhelper.Overloaded(false, number,
		irhelper.Params("", point, "x", number),
		irhelper.Params("", point, "x", number, "y", str),
	)
}

func pointValue() *ir.Ident {
	return irhelper.Ident("p", point)
}

func TestMethodInvocationOverload(t *testing.T) {
	tests := []struct {
		args []*ir.Argument
		want int
	}{
		{args: irhelper.Args("x", irhelper.Number(1), "y", irhelper.String("a")), want: 1},
		{args: irhelper.Args("x", irhelper.Number(1)), want: 0},
	}
	for i, test := range tests {
		call := irhelper.MethodCall(irhelper.MethodLookup(pointValue(), point, "m", overloadedMethod()), test.args...)
		if _, err := validator.Validate(irhelper.Program(call)); err != nil {
			t.Errorf("test %d: %+v", i, err)
			continue
		}
		if call.Overload == nil {
			t.Errorf("test %d: overload not resolved", i)
			continue
		}
		if *call.Overload != test.want {
			t.Errorf("test %d: got overload %d but want %d", i, *call.Overload, test.want)
		}
	}
}

func TestFunctionInvocationOfDynamicMethod(t *testing.T) {
	lookup := irhelper.Lookup(irhelper.Ident("Point", point), "m", overloadedMethod())
	call := irhelper.Call(lookup, irhelper.Arg("", pointValue()), irhelper.Arg("x", irhelper.Number(1)))
	if _, err := validator.Validate(irhelper.Program(call)); err != nil {
		t.Fatalf("%+v", err)
	}
	if call.Overload == nil || *call.Overload != 0 {
		t.Errorf("got overload %v but want 0", call.Overload)
	}
}

func TestValidate(t *testing.T) {
	f := irhelper.Ident("f", irhelper.Func(number, irhelper.Param("x", number), irhelper.Param("y", str)))
	staticM := irhelper.Method(true, number, irhelper.Param("x", number))
	method := irhelper.Method(false, number, irhelper.Param("", point), irhelper.Param("y", number))
	tests := []struct {
		desc string
		node ir.SourceNode
		err  string
	}{
		{
			desc: "function call",
			node: irhelper.Call(f, irhelper.Args("x", irhelper.Number(1), "y", irhelper.String("a"))...),
		},
		{
			desc: "function call with a wrong number of arguments",
			node: irhelper.Call(f, irhelper.Args("x", irhelper.Number(1))...),
			err:  "function invocation: amount of arguments does not match",
		},
		{
			desc: "function call with a wrong argument type",
			node: irhelper.Call(f, irhelper.Args("x", irhelper.Number(1), "y", irhelper.Number(2))...),
			err:  "function invocation: argument type mismatch at argument 2",
		},
		{
			desc: "function call with a wrong argument label",
			node: irhelper.Call(f, irhelper.Args("z", irhelper.Number(1), "y", irhelper.String("a"))...),
			err:  "function invocation: argument type mismatch at argument 1",
		},
		{
			desc: "call of a value which is not a function",
			node: irhelper.Call(irhelper.Ident("n", number)),
			err:  "function invocation: callee is not a function or method",
		},
		{
			desc: "static method call",
			node: irhelper.Call(irhelper.Lookup(irhelper.Ident("Point", point), "make", staticM), irhelper.Arg("x", irhelper.Number(1))),
		},
		{
			desc: "native call",
			node: irhelper.NativeCall(f, irhelper.Args("x", irhelper.Number(1), "y", irhelper.String("a"))...),
		},
		{
			desc: "native call of a method",
			node: irhelper.NativeCall(irhelper.Ident("m", staticM), irhelper.Arg("x", irhelper.Number(1))),
			err:  "native function invocation: callee is not a function",
		},
		{
			desc: "method call",
			node: irhelper.MethodCall(irhelper.MethodLookup(pointValue(), point, "m", method), irhelper.Arg("y", irhelper.Number(1))),
		},
		{
			desc: "method call on a wrong receiver",
			node: irhelper.MethodCall(irhelper.MethodLookup(irhelper.String("p"), point, "m", method), irhelper.Arg("y", irhelper.Number(1))),
			err:  "method invocation: base type mismatch",
		},
		{
			desc: "method call with a wrong argument",
			node: irhelper.MethodCall(irhelper.MethodLookup(pointValue(), point, "m", method), irhelper.Arg("y", irhelper.String("a"))),
			err:  "method invocation: argument type mismatch at argument 1",
		},
		{
			desc: "method call with no overload matching",
			node: irhelper.MethodCall(irhelper.MethodLookup(pointValue(), point, "m", overloadedMethod()), irhelper.Arg("y", irhelper.Number(1))),
			err:  "method invocation: passed arguments do not match any overload of Point::m",
		},
		{
			desc: "method call of a function",
			node: irhelper.MethodCall(&ir.MethodLookup{Base: pointValue(), BaseType: point, Member: irhelper.Ident("f", f.Typ), Typ: f.Typ}),
			err:  "method invocation: callee is not a method",
		},
		{
			desc: "invalid call nested in an argument",
			node: irhelper.Call(f, irhelper.Args("x", irhelper.Call(irhelper.Ident("g", irhelper.Func(number)), irhelper.Arg("a", irhelper.Number(1))), "y", irhelper.String("a"))...),
			err:  "function invocation: amount of arguments does not match",
		},
		{
			desc: "constant with a declared type",
			node: irhelper.Const("c", number, irhelper.Number(1)),
		},
		{
			desc: "constant with a wrong declared type",
			node: irhelper.Const("c", str, irhelper.Number(1)),
			err:  "wrong assignment value type for constant c",
		},
		{
			desc: "variable with a wrong declared type",
			node: irhelper.Var("v", irhelper.Record("x", number, "z", number), irhelper.RecordValue("x", irhelper.Number(1))),
			err:  "wrong assignment value type for variable v",
		},
		{
			desc: "variable with a wider record",
			node: irhelper.Var("v", irhelper.Record("x", number), irhelper.RecordValue("x", irhelper.Number(1), "z", irhelper.String("a"))),
		},
		{
			desc: "variable with an empty list",
			node: irhelper.Var("v", irhelper.List(str), irhelper.Array()),
		},
		{
			desc: "assignment",
			node: irhelper.Assign("v", number, irhelper.Number(2)),
		},
		{
			desc: "assignment with a wrong type",
			node: irhelper.Assign("v", number, irhelper.Bool(true)),
			err:  "wrong assignment value type for variable v",
		},
		{
			desc: "if with a boolean condition",
			node: irhelper.If(irhelper.Bool(true)),
		},
		{
			desc: "if with a number condition",
			node: irhelper.If(irhelper.Number(1)),
			err:  "if condition has to be a boolean",
		},
		{
			desc: "if-else with a string condition",
			node: irhelper.IfElse(irhelper.String("true"), nil, nil),
			err:  "if condition has to be a boolean",
		},
		{
			desc: "if-else with an invalid else branch",
			node: irhelper.IfElse(irhelper.Bool(false), nil, []ir.SourceNode{irhelper.Const("c", str, irhelper.Number(1))}),
			err:  "wrong assignment value type for constant c",
		},
		{
			desc: "top level return",
			node: irhelper.Return(irhelper.Number(1)),
			err:  "top level returns are not permitted",
		},
		{
			desc: "top level return in an if",
			node: irhelper.If(irhelper.Bool(true), irhelper.Return(irhelper.String("a"))),
			err:  "top level returns are not permitted",
		},
		{
			desc: "function returning the declared type",
			node: irhelper.FuncStmt("f", irhelper.FuncDef(nil, str, irhelper.Return(irhelper.String("a")))),
		},
		{
			desc: "function returning the wrong type",
			node: irhelper.FuncStmt("f", irhelper.FuncDef(nil, number, irhelper.Return(irhelper.String("a")))),
			err:  "type of returned expression does not match declared return type",
		},
		{
			desc: "function literal returning the wrong type",
			node: irhelper.Const("f", nil, irhelper.FuncValue(irhelper.FuncDef(nil, number,
				irhelper.IfElse(irhelper.Bool(true),
					[]ir.SourceNode{irhelper.Return(irhelper.Number(1))},
					[]ir.SourceNode{irhelper.Return(irhelper.Bool(false))},
				),
			))),
			err: "type of returned expression does not match declared return type",
		},
		{
			desc: "method returning the wrong type",
			node: irhelper.TypeDef(point,
				"ok", irhelper.MethodDef(false, irhelper.FuncDef(nil, number, irhelper.Return(irhelper.Number(1)))),
				"bad", irhelper.OverloadedDef(false,
					irhelper.FuncDef(nil, str, irhelper.Return(irhelper.String("a"))),
					irhelper.FuncDef(nil, str, irhelper.Return(irhelper.Number(1))),
				),
			),
			err: "type of returned expression does not match declared return type",
		},
		{
			desc: "type definition",
			node: irhelper.TypeDef(point,
				"norm", irhelper.MethodDef(false, irhelper.FuncDef(nil, number, irhelper.Return(irhelper.Number(1)))),
				"origin", irhelper.MethodDef(true, irhelper.FuncDef(nil, point, irhelper.Return(pointValue()))),
			),
		},
	}
	for _, test := range tests {
		_, err := validator.Validate(irhelper.Program(test.node))
		if test.err == "" {
			if err != nil {
				t.Errorf("%s: unexpected error: %+v", test.desc, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("%s: expected an error containing %q but got nil", test.desc, test.err)
			continue
		}
		if !strings.Contains(err.Error(), test.err) {
			t.Errorf("%s: got error:\n%s\nbut want an error containing:\n%s", test.desc, err.Error(), test.err)
		}
		if fmterr.IsInternal(err) {
			t.Errorf("%s: error %q is internal", test.desc, err.Error())
		}
	}
}

func TestFirstErrorWins(t *testing.T) {
	prog := irhelper.Program(
		irhelper.Const("a", number, irhelper.Number(1)),
		irhelper.Const("b", str, irhelper.Number(1)),
		irhelper.Return(irhelper.Number(1)),
	)
	_, err := validator.Validate(prog)
	if err == nil {
		t.Fatal("expected an error but got nil")
	}
	if got, want := err.Error(), "wrong assignment value type for constant b"; !strings.Contains(got, want) {
		t.Errorf("got error %q but want %q", got, want)
	}
}

func TestErrorPosition(t *testing.T) {
	ret := irhelper.Return(irhelper.Number(1))
	ret.Src.Filename = "main.mid"
	ret.Src.Line = 4
	ret.Src.Column = 2
	_, err := validator.Validate(irhelper.Program(ret))
	if err == nil {
		t.Fatal("expected an error but got nil")
	}
	if got, want := err.Error(), "main.mid:4:2: top level returns are not permitted"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}
