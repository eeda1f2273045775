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

// Package sirjson encodes simplified programs in the JSON format consumed
// by code generation.
//
// Nodes are JSON objects with a "nodeType" tag. Types are encoded in the
// same format as the one decoded by the irjson package. Object keys are
// written in a fixed order so that the output is deterministic.
package sirjson

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/midend-lang/midend/base/ordered"
	"github.com/midend-lang/midend/build/fmterr"
	"github.com/midend-lang/midend/build/ir"
	"github.com/midend-lang/midend/build/sir"
	"github.com/pkg/errors"
)

// FormatVersion is the version of the format written by the encoder.
const FormatVersion = "v1.0.0"

type object = *ordered.Map[string, any]

func newObject(kvs ...any) object {
	obj := ordered.NewMap[string, any]()
	for i := 0; i+1 < len(kvs); i += 2 {
		obj.Store(kvs[i].(string), kvs[i+1])
	}
	return obj
}

// Encode a simplified program.
func Encode(prog *sir.Program) ([]byte, error) {
	nodes, err := encodeNodes(prog.Nodes)
	if err != nil {
		return nil, err
	}
	root := newObject(
		"version", FormatVersion,
		"sourceVersion", prog.Version,
		"nodes", nodes,
	)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return nil, errors.Errorf("cannot encode program: %v", err)
	}
	return buf.Bytes(), nil
}

// EncodeWriter encodes a simplified program into a writer.
func EncodeWriter(w io.Writer, prog *sir.Program) error {
	data, err := Encode(prog)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// EncodeFile encodes a simplified program into a file.
func EncodeFile(filename string, prog *sir.Program) error {
	data, err := Encode(prog)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.Errorf("cannot write %s: %v", filename, err)
	}
	return nil
}

func encodeNodes[T sir.SourceNode](nodes []T) ([]any, error) {
	objs := make([]any, len(nodes))
	for i, node := range nodes {
		obj, err := encodeNode(node)
		if err != nil {
			return nil, err
		}
		objs[i] = obj
	}
	return objs, nil
}

func withPosition(node sir.SourceNode, obj object) object {
	pos := node.Position()
	if pos.IsValid() {
		obj.Store("position", newObject(
			"file", pos.Filename,
			"line", pos.Line,
			"column", pos.Column,
		))
	}
	return obj
}

func encodeNode(node sir.SourceNode) (object, error) {
	var obj object
	var err error
	switch nodeT := node.(type) {
	case sir.Expr:
		obj, err = encodeExpr(nodeT)
	case sir.Stmt:
		obj, err = encodeStmt(nodeT)
	default:
		err = fmterr.Internalf(node, "cannot encode node %T", node)
	}
	if err != nil {
		return nil, err
	}
	return withPosition(node, obj), nil
}

func encodeIdent(ident *sir.Ident) object {
	if ident == nil {
		return nil
	}
	return withPosition(ident, newObject(
		"nodeType", "Identifier",
		"name", ident.Name,
		"type", EncodeType(ident.Typ),
	))
}

func encodeArgs(args []*sir.Argument) ([]any, error) {
	objs := make([]any, len(args))
	for i, arg := range args {
		val, err := encodeNode(arg.Value)
		if err != nil {
			return nil, err
		}
		objs[i] = withPosition(arg, newObject(
			"nodeType", "Argument",
			"name", arg.Name,
			"value", val,
		))
	}
	return objs, nil
}

func encodeFuncDef(def *sir.FuncDef) (object, error) {
	params := make([]any, len(def.Params))
	for i, param := range def.Params {
		params[i] = newObject(
			"nodeType", "Parameter",
			"externalName", encodeIdent(param.External),
			"internalName", encodeIdent(param.Internal),
		)
	}
	body, err := encodeNodes(def.Body)
	if err != nil {
		return nil, err
	}
	return withPosition(def, newObject(
		"nodeType", "FunctionDefinition",
		"parameters", params,
		"returnType", EncodeType(def.Result),
		"body", body,
	)), nil
}

func encodeExpr(expr sir.Expr) (object, error) {
	switch exprT := expr.(type) {
	case *sir.StringValue:
		return newObject("nodeType", "StringValue", "value", exprT.Value, "type", EncodeType(exprT.Typ)), nil
	case *sir.NumberValue:
		return newObject("nodeType", "NumberValue", "value", exprT.Value, "type", EncodeType(exprT.Typ)), nil
	case *sir.BooleanValue:
		return newObject("nodeType", "BooleanValue", "value", exprT.Value, "type", EncodeType(exprT.Typ)), nil
	case *sir.ArrayValue:
		values, err := encodeNodes(exprT.Values)
		if err != nil {
			return nil, err
		}
		return newObject("nodeType", "ArrayValue", "values", values, "type", EncodeType(exprT.Typ)), nil
	case *sir.RecordValue:
		members, err := ordered.Transform(exprT.Members, func(_ string, member sir.Expr) (any, error) {
			return encodeNode(member)
		})
		if err != nil {
			return nil, err
		}
		return newObject("nodeType", "RecordValue", "type", EncodeType(exprT.Typ), "members", members), nil
	case *sir.FunctionValue:
		def, err := encodeFuncDef(exprT.Func)
		if err != nil {
			return nil, err
		}
		return newObject("nodeType", "FunctionValue", "value", def, "type", EncodeType(exprT.Typ)), nil
	case *sir.NativeFunctionInvocation:
		return encodeCall("NativeFunctionInvocation", exprT.Callee, exprT.Args, exprT.Typ, nil)
	case *sir.FunctionInvocation:
		return encodeCall("FunctionInvocation", exprT.Callee, exprT.Args, exprT.Typ, exprT.Overload)
	case *sir.Combination:
		lhs, err := encodeNode(exprT.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := encodeNode(exprT.RHS)
		if err != nil {
			return nil, err
		}
		return newObject("nodeType", "Combination", "lhs", lhs, "rhs", rhs, "type", EncodeType(exprT.Typ)), nil
	case *sir.Lookup:
		base, err := encodeNode(exprT.Base)
		if err != nil {
			return nil, err
		}
		return newObject("nodeType", "Lookup", "base", base, "member", encodeIdent(exprT.Member), "type", EncodeType(exprT.Typ)), nil
	case *sir.Ident:
		return encodeIdent(exprT), nil
	}
	return nil, fmterr.Internalf(expr, "cannot encode expression %T", expr)
}

func encodeCall(tag string, callee sir.Expr, args []*sir.Argument, typ ir.Type, overload *int) (object, error) {
	calleeObj, err := encodeNode(callee)
	if err != nil {
		return nil, err
	}
	argObjs, err := encodeArgs(args)
	if err != nil {
		return nil, err
	}
	obj := newObject("nodeType", tag, "name", calleeObj, "arguments", argObjs, "type", EncodeType(typ))
	if overload != nil {
		obj.Store("overloadedMethodIndex", *overload)
	}
	return obj, nil
}

func encodeStmt(stmt sir.Stmt) (object, error) {
	switch stmtT := stmt.(type) {
	case *sir.VariableDeclaration:
		val, err := encodeNode(stmtT.Value)
		if err != nil {
			return nil, err
		}
		return newObject(
			"nodeType", "VariableDeclarationStatement",
			"name", encodeIdent(stmtT.Name),
			"declaredType", EncodeType(stmtT.Declared),
			"value", val,
			"type", EncodeType(stmtT.Typ),
			"isConstant", stmtT.Constant,
		), nil
	case *sir.Assignment:
		val, err := encodeNode(stmtT.Value)
		if err != nil {
			return nil, err
		}
		return newObject("nodeType", "VariableAssignmentStatement", "name", encodeIdent(stmtT.Name), "value", val), nil
	case *sir.TypeDefinition:
		props, err := ordered.Transform(stmtT.Properties, func(_ string, typ ir.Type) (any, error) {
			return EncodeType(typ), nil
		})
		if err != nil {
			return nil, err
		}
		methods, err := ordered.Transform(stmtT.Methods, func(_ string, method *sir.Method) (any, error) {
			return encodeMethod(method)
		})
		if err != nil {
			return nil, err
		}
		return newObject(
			"nodeType", "TypeDefinitionStatement",
			"name", encodeIdent(stmtT.Name),
			"properties", props,
			"methods", methods,
			"type", EncodeType(stmtT.Typ),
		), nil
	case *sir.Choice:
		cond, err := encodeNode(stmtT.Cond)
		if err != nil {
			return nil, err
		}
		then, err := encodeNodes(stmtT.Then)
		if err != nil {
			return nil, err
		}
		els, err := encodeNodes(stmtT.Else)
		if err != nil {
			return nil, err
		}
		return newObject("nodeType", "ChoiceStatement", "condition", cond, "trueBody", then, "falseBody", els), nil
	case *sir.Return:
		val, err := encodeNode(stmtT.Value)
		if err != nil {
			return nil, err
		}
		return newObject("nodeType", "ReturnStatement", "expression", val), nil
	case *sir.FunctionStatement:
		def, err := encodeFuncDef(stmtT.Func)
		if err != nil {
			return nil, err
		}
		return newObject("nodeType", "FunctionStatement", "name", encodeIdent(stmtT.Name), "value", def), nil
	}
	return nil, fmterr.Internalf(stmt, "cannot encode statement %T", stmt)
}

func encodeMethod(method *sir.Method) (object, error) {
	funcs := make([]any, len(method.Funcs))
	for i, fn := range method.Funcs {
		def, err := encodeFuncDef(fn)
		if err != nil {
			return nil, err
		}
		funcs[i] = def
	}
	return newObject(
		"isStatic", method.Static,
		"isOverloaded", method.Overloaded,
		"methods", funcs,
	), nil
}
