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

// Package irhelper provides helper functions to build typed syntax trees programmatically.
package irhelper

import (
	"github.com/midend-lang/midend/base/ordered"
	"github.com/midend-lang/midend/build/ir"
)

// Param returns a signature parameter given a name and a type.
func Param(name string, typ ir.Type) ir.Param {
	return ir.Param{Name: name, Type: typ}
}

// Params returns a signature from name and type pairs.
// The names are expected at even indices, the types at odd indices.
func Params(vals ...any) []ir.Param {
	params := make([]ir.Param, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		params = append(params, ir.Param{
			Name: vals[i].(string),
			Type: vals[i+1].(ir.Type),
		})
	}
	return params
}

// Record returns a record type from name and type pairs.
func Record(vals ...any) *ir.RecordType {
	members := ordered.NewMap[string, ir.Type]()
	for _, param := range Params(vals...) {
		members.Store(param.Name, param.Type)
	}
	return &ir.RecordType{Members: members}
}

// List returns the type of a list.
func List(item ir.Type) *ir.ListType {
	return &ir.ListType{Item: item}
}

// EmptyList returns the type of an empty list literal.
func EmptyList() *ir.ListType {
	return &ir.ListType{Item: ir.Never()}
}

// Func returns a function type.
func Func(result ir.Type, params ...ir.Param) *ir.FuncType {
	return &ir.FuncType{Params: params, Result: result}
}

// Method returns the type of a method that is not overloaded.
func Method(static bool, result ir.Type, params ...ir.Param) *ir.MethodType {
	return &ir.MethodType{Params: params, Result: result, Static: static}
}

// Overloaded returns the type of an overloaded method.
func Overloaded(static bool, result ir.Type, overloads ...[]ir.Param) *ir.MethodType {
	return &ir.MethodType{
		Overloads:  overloads,
		Result:     result,
		Static:     static,
		Overloaded: true,
	}
}

// Named returns a named type given its definition.
func Named(name string, def ir.Type) *ir.NamedType {
	return &ir.NamedType{Name: name, Definition: def}
}

// Opaque returns a named type with a builtin definition.
func Opaque(name string) *ir.NamedType {
	return &ir.NamedType{Name: name, Definition: &ir.BuiltinType{Name: name}}
}

// Ident returns an identifier.
func Ident(name string, typ ir.Type) *ir.Ident {
	return &ir.Ident{Name: name, Typ: typ}
}

// String returns a string literal.
func String(s string) *ir.StringValue {
	return &ir.StringValue{Value: s, Typ: ir.StringType()}
}

// Number returns a number literal.
func Number(x float64) *ir.NumberValue {
	return &ir.NumberValue{Value: x, Typ: ir.NumberType()}
}

// Bool returns a boolean literal.
func Bool(b bool) *ir.BooleanValue {
	return &ir.BooleanValue{Value: b, Typ: ir.BoolType()}
}

// Array returns a list literal. The type of the list is inferred from the first value.
func Array(vals ...ir.Expr) *ir.ArrayValue {
	typ := EmptyList()
	if len(vals) > 0 {
		typ = List(vals[0].Type())
	}
	return &ir.ArrayValue{Values: vals, Typ: typ}
}

// RecordValue returns a record literal from name and expression pairs.
func RecordValue(vals ...any) *ir.RecordValue {
	members := ordered.NewMap[string, ir.Expr]()
	types := ordered.NewMap[string, ir.Type]()
	for i := 0; i+1 < len(vals); i += 2 {
		name, expr := vals[i].(string), vals[i+1].(ir.Expr)
		members.Store(name, expr)
		types.Store(name, expr.Type())
	}
	return &ir.RecordValue{Members: members, Typ: &ir.RecordType{Members: types}}
}

// Arg returns an argument.
func Arg(name string, val ir.Expr) *ir.Argument {
	return &ir.Argument{Name: name, Value: val}
}

// Args returns arguments from name and expression pairs.
func Args(vals ...any) []*ir.Argument {
	args := make([]*ir.Argument, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		args = append(args, Arg(vals[i].(string), vals[i+1].(ir.Expr)))
	}
	return args
}

func resultOf(typ ir.Type) ir.Type {
	switch typT := typ.(type) {
	case *ir.FuncType:
		return typT.Result
	case *ir.MethodType:
		return typT.Result
	}
	return nil
}

// Call returns a function invocation.
func Call(callee ir.Expr, args ...*ir.Argument) *ir.FunctionInvocation {
	return &ir.FunctionInvocation{
		Callee: callee,
		Args:   args,
		Typ:    resultOf(callee.Type()),
	}
}

// NativeCall returns a native function invocation.
func NativeCall(callee ir.Expr, args ...*ir.Argument) *ir.NativeFunctionInvocation {
	return &ir.NativeFunctionInvocation{
		Callee: callee,
		Args:   args,
		Typ:    resultOf(callee.Type()),
	}
}

// MethodLookup returns the lookup of a method on a receiver.
func MethodLookup(recv ir.Expr, named *ir.NamedType, name string, method *ir.MethodType) *ir.MethodLookup {
	return &ir.MethodLookup{
		Base:     recv,
		BaseType: named,
		Member:   Ident(name, method),
		Typ:      method,
	}
}

// MethodCall returns a method invocation on a receiver.
func MethodCall(lookup *ir.MethodLookup, args ...*ir.Argument) *ir.MethodInvocation {
	return &ir.MethodInvocation{
		Callee: lookup,
		Args:   args,
		Typ:    resultOf(lookup.Typ),
	}
}

// Lookup returns the selection of a member on a value.
func Lookup(base ir.Expr, member string, typ ir.Type) *ir.Lookup {
	return &ir.Lookup{
		Base:   base,
		Member: Ident(member, typ),
		Typ:    typ,
	}
}

// Const returns a constant declaration. declared may be nil.
func Const(name string, declared ir.Type, val ir.Expr) *ir.ConstantDeclaration {
	return &ir.ConstantDeclaration{
		Name:     Ident(name, val.Type()),
		Declared: declared,
		Value:    val,
		Typ:      val.Type(),
	}
}

// Var returns a variable declaration. declared may be nil.
func Var(name string, declared ir.Type, val ir.Expr) *ir.VariableDeclaration {
	return &ir.VariableDeclaration{
		Name:     Ident(name, val.Type()),
		Declared: declared,
		Value:    val,
		Typ:      val.Type(),
	}
}

// Assign returns an assignment to a variable of a given type.
func Assign(name string, typ ir.Type, val ir.Expr) *ir.Assignment {
	return &ir.Assignment{Name: Ident(name, typ), Value: val}
}

// If returns an if statement.
func If(cond ir.Expr, body ...ir.SourceNode) *ir.If {
	return &ir.If{Cond: cond, Body: body}
}

// IfElse returns an if-else statement.
func IfElse(cond ir.Expr, then, els []ir.SourceNode) *ir.IfElse {
	return &ir.IfElse{Cond: cond, Then: then, Else: els}
}

// Return returns a return statement.
func Return(val ir.Expr) *ir.Return {
	return &ir.Return{Value: val}
}

// Parameter returns a function definition parameter.
// An empty external name returns an unlabelled parameter.
func Parameter(external, internal string, typ ir.Type) *ir.Parameter {
	param := &ir.Parameter{Internal: Ident(internal, typ)}
	if external != "" {
		param.External = Ident(external, typ)
	}
	return param
}

// FuncDef returns a function definition.
func FuncDef(params []*ir.Parameter, result ir.Type, body ...ir.SourceNode) *ir.FuncDef {
	return &ir.FuncDef{Params: params, Result: result, Body: body}
}

// FuncType returns the type of a function definition.
func FuncType(def *ir.FuncDef) *ir.FuncType {
	params := make([]ir.Param, len(def.Params))
	for i, param := range def.Params {
		name := ""
		if param.External != nil {
			name = param.External.Name
		}
		params[i] = ir.Param{Name: name, Type: param.Internal.Typ}
	}
	return Func(def.Result, params...)
}

// FuncValue returns a function literal.
func FuncValue(def *ir.FuncDef) *ir.FunctionValue {
	return &ir.FunctionValue{Func: def, Typ: FuncType(def)}
}

// FuncStmt returns a function statement.
func FuncStmt(name string, def *ir.FuncDef) *ir.FunctionStatement {
	return &ir.FunctionStatement{Name: Ident(name, FuncType(def)), Func: def}
}

// TypeDef returns a type definition with no property.
func TypeDef(named *ir.NamedType, methods ...any) *ir.TypeDefinition {
	ms := ordered.NewMap[string, *ir.MethodDef]()
	for i := 0; i+1 < len(methods); i += 2 {
		ms.Store(methods[i].(string), methods[i+1].(*ir.MethodDef))
	}
	return &ir.TypeDefinition{
		Name:       Ident(named.Name, named),
		Properties: ordered.NewMap[string, ir.Type](),
		Methods:    ms,
		Typ:        named,
	}
}

// MethodDef returns the implementation of a method that is not overloaded.
func MethodDef(static bool, def *ir.FuncDef) *ir.MethodDef {
	return &ir.MethodDef{Static: static, Funcs: []*ir.FuncDef{def}}
}

// OverloadedDef returns the implementation of an overloaded method.
func OverloadedDef(static bool, defs ...*ir.FuncDef) *ir.MethodDef {
	return &ir.MethodDef{Static: static, Overloaded: true, Funcs: defs}
}

// Program returns a program.
func Program(nodes ...ir.SourceNode) *ir.Program {
	return &ir.Program{Nodes: nodes}
}
