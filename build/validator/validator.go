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

// Package validator checks the consistency of a typed syntax tree.
//
// The validator walks the tree depth-first, in source order, and stops at
// the first error. It never infers types: it compares the types annotated
// on the tree by the type annotation stage. The only modification of the
// tree is the index of the overload selected for calls to overloaded
// methods.
package validator

import (
	"github.com/midend-lang/midend/build/fmterr"
	"github.com/midend-lang/midend/build/ir"
)

// Validate a typed program.
// The same program is returned on success, with the overload of each call
// to an overloaded method resolved. On error, the program must not be used.
func Validate(prog *ir.Program) (*ir.Program, error) {
	for _, node := range prog.Nodes {
		if err := validateNode(nil, node); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

// validateNode validates a node given the function enclosing the node.
// fn is nil for top level nodes.
func validateNode(fn *ir.FuncDef, node ir.SourceNode) error {
	switch nodeT := node.(type) {
	case ir.Expr:
		return validateExpr(nodeT)
	case ir.Stmt:
		return validateStmt(fn, nodeT)
	}
	return fmterr.Internalf(node, "cannot validate node %T: not supported", node)
}

func validateBlock(fn *ir.FuncDef, nodes []ir.SourceNode) error {
	for _, node := range nodes {
		if err := validateNode(fn, node); err != nil {
			return err
		}
	}
	return nil
}

// validateFuncDef validates the body of a function with the function as
// the enclosing context.
func validateFuncDef(def *ir.FuncDef) error {
	return validateBlock(def, def.Body)
}
