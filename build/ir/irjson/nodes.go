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
	"github.com/pkg/errors"
)

type (
	argumentJSON struct {
		Name     *string         `json:"name"`
		Value    json.RawMessage `json:"value"`
		Position *position       `json:"position"`
	}

	parameterJSON struct {
		ExternalName json.RawMessage `json:"externalName"`
		InternalName json.RawMessage `json:"internalName"`
	}

	funcDefJSON struct {
		Parameters []parameterJSON   `json:"parameters"`
		ReturnType json.RawMessage   `json:"returnType"`
		Body       []json.RawMessage `json:"body"`
		Position   *position         `json:"position"`
	}

	invocationJSON struct {
		Name      json.RawMessage `json:"name"`
		Arguments []argumentJSON  `json:"arguments"`
		Type      json.RawMessage `json:"type"`
	}

	declarationJSON struct {
		Name         json.RawMessage `json:"name"`
		DeclaredType json.RawMessage `json:"declaredType"`
		Value        json.RawMessage `json:"value"`
		Type         json.RawMessage `json:"type"`
	}

	methodJSON struct {
		IsStatic     bool              `json:"isStatic"`
		IsOverloaded bool              `json:"isOverloaded"`
		Method       json.RawMessage   `json:"method"`
		Methods      []json.RawMessage `json:"methods"`
	}
)

func (d *decoder) stringValue(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Value string          `json:"value"`
		Type  json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "string value", raw, &n); err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	if typ == nil {
		typ = ir.StringType()
	}
	return &ir.StringValue{Src: pos, Value: n.Value, Typ: typ}, nil
}

func (d *decoder) numberValue(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Value float64         `json:"value"`
		Type  json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "number value", raw, &n); err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	if typ == nil {
		typ = ir.NumberType()
	}
	return &ir.NumberValue{Src: pos, Value: n.Value, Typ: typ}, nil
}

func (d *decoder) booleanValue(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Value bool            `json:"value"`
		Type  json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "boolean value", raw, &n); err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	if typ == nil {
		typ = ir.BoolType()
	}
	return &ir.BooleanValue{Src: pos, Value: n.Value, Typ: typ}, nil
}

func (d *decoder) arrayValue(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Values []json.RawMessage `json:"values"`
		Type   json.RawMessage   `json:"type"`
	}
	if err := unmarshal(pos, "array value", raw, &n); err != nil {
		return nil, err
	}
	vals, err := d.exprs(n.Values)
	if err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	return &ir.ArrayValue{Src: pos, Values: vals, Typ: typ}, nil
}

func (d *decoder) recordValue(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Members      json.RawMessage `json:"members"`
		DeclaredType json.RawMessage `json:"declaredType"`
		Type         json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "record value", raw, &n); err != nil {
		return nil, err
	}
	members := ordered.NewMap[string, ir.Expr]()
	if !isNull(n.Members) {
		var err error
		members, err = ordered.DecodeJSON(n.Members, func(name string, raw json.RawMessage) (ir.Expr, error) {
			expr, err := d.expr(raw)
			if err != nil {
				return nil, errors.Wrapf(err, "member %s", name)
			}
			return expr, nil
		})
		if err != nil {
			return nil, err
		}
	}
	declared, err := d.typ(pos, n.DeclaredType)
	if err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	return &ir.RecordValue{Src: pos, Members: members, Declared: declared, Typ: typ}, nil
}

func (d *decoder) funcDef(pos token.Position, raw json.RawMessage) (*ir.FuncDef, error) {
	var n funcDefJSON
	if err := unmarshal(pos, "function definition", raw, &n); err != nil {
		return nil, err
	}
	if n.Position != nil {
		pos = d.pos(n.Position)
	}
	def := &ir.FuncDef{Src: pos, Params: make([]*ir.Parameter, len(n.Parameters))}
	for i, param := range n.Parameters {
		p := &ir.Parameter{}
		if !isNull(param.ExternalName) {
			var err error
			if p.External, err = d.ident(param.ExternalName); err != nil {
				return nil, err
			}
		}
		var err error
		if p.Internal, err = d.ident(param.InternalName); err != nil {
			return nil, err
		}
		def.Params[i] = p
	}
	var err error
	if def.Result, err = d.typ(pos, n.ReturnType); err != nil {
		return nil, err
	}
	if def.Body, err = d.nodes(n.Body); err != nil {
		return nil, err
	}
	return def, nil
}

func (d *decoder) functionValue(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Value json.RawMessage `json:"value"`
		Type  json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "function value", raw, &n); err != nil {
		return nil, err
	}
	def, err := d.funcDef(pos, n.Value)
	if err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	return &ir.FunctionValue{Src: pos, Func: def, Typ: typ}, nil
}

func (d *decoder) args(raws []argumentJSON) ([]*ir.Argument, error) {
	args := make([]*ir.Argument, len(raws))
	for i, raw := range raws {
		val, err := d.expr(raw.Value)
		if err != nil {
			return nil, err
		}
		arg := &ir.Argument{Src: val.Position(), Value: val}
		if raw.Position != nil {
			arg.Src = d.pos(raw.Position)
		}
		if raw.Name != nil {
			arg.Name = *raw.Name
		}
		args[i] = arg
	}
	return args, nil
}

func (d *decoder) invocation(pos token.Position, what string, raw json.RawMessage) (ir.Expr, []*ir.Argument, ir.Type, error) {
	var n invocationJSON
	if err := unmarshal(pos, what, raw, &n); err != nil {
		return nil, nil, nil, err
	}
	callee, err := d.expr(n.Name)
	if err != nil {
		return nil, nil, nil, err
	}
	args, err := d.args(n.Arguments)
	if err != nil {
		return nil, nil, nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, nil, nil, err
	}
	return callee, args, typ, nil
}

func (d *decoder) nativeFunctionInvocation(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	callee, args, typ, err := d.invocation(pos, "native function invocation", raw)
	if err != nil {
		return nil, err
	}
	switch callee.(type) {
	case *ir.Ident, *ir.Lookup:
	default:
		return nil, d.errorf(pos, "native function callee %T is not an identifier or a lookup", callee)
	}
	return &ir.NativeFunctionInvocation{Src: pos, Callee: callee, Args: args, Typ: typ}, nil
}

func (d *decoder) functionInvocation(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	callee, args, typ, err := d.invocation(pos, "function invocation", raw)
	if err != nil {
		return nil, err
	}
	return &ir.FunctionInvocation{Src: pos, Callee: callee, Args: args, Typ: typ}, nil
}

func (d *decoder) methodInvocation(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	callee, args, typ, err := d.invocation(pos, "method invocation", raw)
	if err != nil {
		return nil, err
	}
	lookup, ok := callee.(*ir.MethodLookup)
	if !ok {
		return nil, d.errorf(pos, "method invocation callee %T is not a method lookup", callee)
	}
	return &ir.MethodInvocation{Src: pos, Callee: lookup, Args: args, Typ: typ}, nil
}

func (d *decoder) combination(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		LHS  json.RawMessage `json:"lhs"`
		RHS  json.RawMessage `json:"rhs"`
		Type json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "combination", raw, &n); err != nil {
		return nil, err
	}
	lhs, err := d.expr(n.LHS)
	if err != nil {
		return nil, err
	}
	rhs, err := d.expr(n.RHS)
	if err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	return &ir.Combination{Src: pos, LHS: lhs, RHS: rhs, Typ: typ}, nil
}

func (d *decoder) identifier(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Content string          `json:"content"`
		Type    json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "identifier", raw, &n); err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	return &ir.Ident{Src: pos, Name: n.Content, Typ: typ}, nil
}

func (d *decoder) self(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Type json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "self", raw, &n); err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	return &ir.Self{Src: pos, Typ: typ}, nil
}

func (d *decoder) lookup(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Base   json.RawMessage `json:"base"`
		Member json.RawMessage `json:"member"`
		Type   json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "lookup", raw, &n); err != nil {
		return nil, err
	}
	base, err := d.expr(n.Base)
	if err != nil {
		return nil, err
	}
	member, err := d.ident(n.Member)
	if err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	return &ir.Lookup{Src: pos, Base: base, Member: member, Typ: typ}, nil
}

func (d *decoder) methodLookup(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Base     json.RawMessage `json:"base"`
		BaseType json.RawMessage `json:"baseType"`
		Member   json.RawMessage `json:"member"`
		Type     json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "method lookup", raw, &n); err != nil {
		return nil, err
	}
	base, err := d.expr(n.Base)
	if err != nil {
		return nil, err
	}
	baseType, err := d.typ(pos, n.BaseType)
	if err != nil {
		return nil, err
	}
	named, ok := baseType.(*ir.NamedType)
	if !ok {
		return nil, d.errorf(pos, "method lookup base type %v is not a named type", baseType)
	}
	member, err := d.ident(n.Member)
	if err != nil {
		return nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	return &ir.MethodLookup{Src: pos, Base: base, BaseType: named, Member: member, Typ: typ}, nil
}

func (d *decoder) declaration(pos token.Position, what string, raw json.RawMessage) (*ir.Ident, ir.Type, ir.Expr, ir.Type, error) {
	var n declarationJSON
	if err := unmarshal(pos, what, raw, &n); err != nil {
		return nil, nil, nil, nil, err
	}
	name, err := d.ident(n.Name)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	declared, err := d.typ(pos, n.DeclaredType)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	val, err := d.expr(n.Value)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return name, declared, val, typ, nil
}

func (d *decoder) constantDeclaration(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	name, declared, val, typ, err := d.declaration(pos, "constant declaration", raw)
	if err != nil {
		return nil, err
	}
	return &ir.ConstantDeclaration{Src: pos, Name: name, Declared: declared, Value: val, Typ: typ}, nil
}

func (d *decoder) variableDeclaration(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	name, declared, val, typ, err := d.declaration(pos, "variable declaration", raw)
	if err != nil {
		return nil, err
	}
	return &ir.VariableDeclaration{Src: pos, Name: name, Declared: declared, Value: val, Typ: typ}, nil
}

func (d *decoder) assignment(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Name  json.RawMessage `json:"name"`
		Value json.RawMessage `json:"value"`
	}
	if err := unmarshal(pos, "assignment", raw, &n); err != nil {
		return nil, err
	}
	name, err := d.ident(n.Name)
	if err != nil {
		return nil, err
	}
	val, err := d.expr(n.Value)
	if err != nil {
		return nil, err
	}
	return &ir.Assignment{Src: pos, Name: name, Value: val}, nil
}

// methodFunc decodes the function definition of a method implementation,
// given either as a function value node or as a bare function definition.
func (d *decoder) methodFunc(pos token.Position, raw json.RawMessage) (*ir.FuncDef, error) {
	var head header
	if err := unmarshal(pos, "method", raw, &head); err != nil {
		return nil, err
	}
	if head.NodeType != "FunctionValue" {
		return d.funcDef(pos, raw)
	}
	node, err := d.node(raw)
	if err != nil {
		return nil, err
	}
	return node.(*ir.FunctionValue).Func, nil
}

func (d *decoder) methodDef(pos token.Position, name string, raw json.RawMessage) (*ir.MethodDef, error) {
	var n methodJSON
	if err := unmarshal(pos, "method "+name, raw, &n); err != nil {
		return nil, err
	}
	def := &ir.MethodDef{Static: n.IsStatic, Overloaded: n.IsOverloaded}
	raws := n.Methods
	if !n.IsOverloaded {
		raws = []json.RawMessage{n.Method}
	}
	for _, raw := range raws {
		fn, err := d.methodFunc(pos, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s", name)
		}
		def.Funcs = append(def.Funcs, fn)
	}
	return def, nil
}

func (d *decoder) typeDefinition(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Name       json.RawMessage `json:"name"`
		Properties json.RawMessage `json:"properties"`
		Methods    json.RawMessage `json:"methods"`
		Type       json.RawMessage `json:"type"`
	}
	if err := unmarshal(pos, "type definition", raw, &n); err != nil {
		return nil, err
	}
	name, err := d.ident(n.Name)
	if err != nil {
		return nil, err
	}
	props, err := d.typeMap(pos, n.Properties)
	if err != nil {
		return nil, err
	}
	methods := ordered.NewMap[string, *ir.MethodDef]()
	if !isNull(n.Methods) {
		methods, err = ordered.DecodeJSON(n.Methods, func(name string, raw json.RawMessage) (*ir.MethodDef, error) {
			return d.methodDef(pos, name, raw)
		})
		if err != nil {
			return nil, err
		}
	}
	typ, err := d.typ(pos, n.Type)
	if err != nil {
		return nil, err
	}
	return &ir.TypeDefinition{Src: pos, Name: name, Properties: props, Methods: methods, Typ: typ}, nil
}

func (d *decoder) ifStmt(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Condition json.RawMessage   `json:"condition"`
		Body      []json.RawMessage `json:"body"`
	}
	if err := unmarshal(pos, "if statement", raw, &n); err != nil {
		return nil, err
	}
	cond, err := d.expr(n.Condition)
	if err != nil {
		return nil, err
	}
	body, err := d.nodes(n.Body)
	if err != nil {
		return nil, err
	}
	return &ir.If{Src: pos, Cond: cond, Body: body}, nil
}

func (d *decoder) ifElseStmt(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Condition json.RawMessage   `json:"condition"`
		TrueBody  []json.RawMessage `json:"trueBody"`
		FalseBody []json.RawMessage `json:"falseBody"`
	}
	if err := unmarshal(pos, "if-else statement", raw, &n); err != nil {
		return nil, err
	}
	cond, err := d.expr(n.Condition)
	if err != nil {
		return nil, err
	}
	then, err := d.nodes(n.TrueBody)
	if err != nil {
		return nil, err
	}
	els, err := d.nodes(n.FalseBody)
	if err != nil {
		return nil, err
	}
	return &ir.IfElse{Src: pos, Cond: cond, Then: then, Else: els}, nil
}

func (d *decoder) returnStmt(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Expression json.RawMessage `json:"expression"`
	}
	if err := unmarshal(pos, "return statement", raw, &n); err != nil {
		return nil, err
	}
	val, err := d.expr(n.Expression)
	if err != nil {
		return nil, err
	}
	return &ir.Return{Src: pos, Value: val}, nil
}

func (d *decoder) functionStatement(pos token.Position, raw json.RawMessage) (ir.SourceNode, error) {
	var n struct {
		Name  json.RawMessage `json:"name"`
		Value json.RawMessage `json:"value"`
	}
	if err := unmarshal(pos, "function statement", raw, &n); err != nil {
		return nil, err
	}
	name, err := d.ident(n.Name)
	if err != nil {
		return nil, err
	}
	def, err := d.methodFunc(pos, n.Value)
	if err != nil {
		return nil, err
	}
	return &ir.FunctionStatement{Src: pos, Name: name, Func: def}, nil
}
