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

// Package simplifier lowers a validated typed syntax tree into the
// simplified syntax tree consumed by code generation.
//
// The simplifier never fails on a validated tree: the only errors it
// returns are internal errors reporting a node it does not know about.
package simplifier

import (
	"github.com/midend-lang/midend/base/ordered"
	"github.com/midend-lang/midend/build/fmterr"
	"github.com/midend-lang/midend/build/ir"
	"github.com/midend-lang/midend/build/sir"
)

// Simplify a validated program.
func Simplify(prog *ir.Program) (*sir.Program, error) {
	nodes, err := simplifyNodes(prog.Nodes)
	if err != nil {
		return nil, err
	}
	return &sir.Program{Version: prog.Version, Nodes: nodes}, nil
}

func simplifyNode(node ir.SourceNode) (sir.SourceNode, error) {
	switch nodeT := node.(type) {
	case ir.Expr:
		return simplifyExpr(nodeT)
	case ir.Stmt:
		return simplifyStmt(nodeT)
	}
	return nil, fmterr.Internalf(node, "cannot simplify node %T: not supported", node)
}

func simplifyNodes(nodes []ir.SourceNode) ([]sir.SourceNode, error) {
	simplified := make([]sir.SourceNode, len(nodes))
	for i, node := range nodes {
		var err error
		if simplified[i], err = simplifyNode(node); err != nil {
			return nil, err
		}
	}
	return simplified, nil
}

func simplifyFuncDef(def *ir.FuncDef) (*sir.FuncDef, error) {
	params := make([]*sir.Param, len(def.Params))
	for i, param := range def.Params {
		params[i] = &sir.Param{
			External: simplifyIdent(param.External),
			Internal: simplifyIdent(param.Internal),
		}
	}
	body, err := simplifyNodes(def.Body)
	if err != nil {
		return nil, err
	}
	return &sir.FuncDef{
		Src:    def.Src,
		Params: params,
		Result: def.Result,
		Body:   body,
	}, nil
}

// selfParam returns the parameter receiving the receiver of a method
// defined on typ.
func selfParam(typ ir.Type) *sir.Param {
	return &sir.Param{
		External: &sir.Ident{Name: sir.ReceiverLabel, Typ: typ},
		Internal: &sir.Ident{Name: sir.SelfName, Typ: typ},
	}
}

func simplifyMethod(method *ir.MethodDef, owner ir.Type) (*sir.Method, error) {
	funcs := make([]*sir.FuncDef, len(method.Funcs))
	for i, fn := range method.Funcs {
		def, err := simplifyFuncDef(fn)
		if err != nil {
			return nil, err
		}
		if !method.Static {
			def.Params = append([]*sir.Param{selfParam(owner)}, def.Params...)
		}
		funcs[i] = def
	}
	return &sir.Method{
		Static:     method.Static,
		Overloaded: method.Overloaded,
		Funcs:      funcs,
	}, nil
}

func simplifyTypeDefinition(stmt *ir.TypeDefinition) (*sir.TypeDefinition, error) {
	methods, err := ordered.Transform(stmt.Methods, func(_ string, method *ir.MethodDef) (*sir.Method, error) {
		return simplifyMethod(method, stmt.Typ)
	})
	if err != nil {
		return nil, err
	}
	props := ordered.NewMap[string, ir.Type]()
	for name, typ := range stmt.Properties.Iter() {
		props.Store(name, typ)
	}
	return &sir.TypeDefinition{
		Src:        stmt.Src,
		Name:       simplifyIdent(stmt.Name),
		Properties: props,
		Methods:    methods,
		Typ:        stmt.Typ,
	}, nil
}
