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

package simplifier

import (
	"go/token"

	"github.com/midend-lang/midend/build/fmterr"
	"github.com/midend-lang/midend/build/ir"
	"github.com/midend-lang/midend/build/sir"
)

func simplifyStmt(stmt ir.Stmt) (sir.Stmt, error) {
	switch stmtT := stmt.(type) {
	case *ir.ConstantDeclaration:
		return simplifyDeclaration(stmtT.Src, stmtT.Name, stmtT.Declared, stmtT.Value, stmtT.Typ, true)
	case *ir.VariableDeclaration:
		return simplifyDeclaration(stmtT.Src, stmtT.Name, stmtT.Declared, stmtT.Value, stmtT.Typ, false)
	case *ir.Assignment:
		val, err := simplifyExpr(stmtT.Value)
		if err != nil {
			return nil, err
		}
		return &sir.Assignment{Src: stmtT.Src, Name: simplifyIdent(stmtT.Name), Value: val}, nil
	case *ir.TypeDefinition:
		return simplifyTypeDefinition(stmtT)
	case *ir.If:
		return simplifyChoice(&ir.IfElse{
			Src:  stmtT.Src,
			Cond: stmtT.Cond,
			Then: stmtT.Body,
		})
	case *ir.IfElse:
		return simplifyChoice(stmtT)
	case *ir.Return:
		val, err := simplifyExpr(stmtT.Value)
		if err != nil {
			return nil, err
		}
		return &sir.Return{Src: stmtT.Src, Value: val}, nil
	case *ir.FunctionStatement:
		def, err := simplifyFuncDef(stmtT.Func)
		if err != nil {
			return nil, err
		}
		return &sir.FunctionStatement{Src: stmtT.Src, Name: simplifyIdent(stmtT.Name), Func: def}, nil
	}
	return nil, fmterr.Internalf(stmt, "cannot simplify statement %T: not supported", stmt)
}

func simplifyDeclaration(src token.Position, name *ir.Ident, declared ir.Type, value ir.Expr, typ ir.Type, constant bool) (*sir.VariableDeclaration, error) {
	val, err := simplifyExpr(value)
	if err != nil {
		return nil, err
	}
	return &sir.VariableDeclaration{
		Src:      src,
		Name:     simplifyIdent(name),
		Declared: declared,
		Value:    val,
		Typ:      typ,
		Constant: constant,
	}, nil
}

// simplifyChoice converts an if-else statement into a choice.
// A missing else branch becomes an empty branch.
func simplifyChoice(stmt *ir.IfElse) (*sir.Choice, error) {
	cond, err := simplifyExpr(stmt.Cond)
	if err != nil {
		return nil, err
	}
	then, err := simplifyNodes(stmt.Then)
	if err != nil {
		return nil, err
	}
	els, err := simplifyNodes(stmt.Else)
	if err != nil {
		return nil, err
	}
	return &sir.Choice{Src: stmt.Src, Cond: cond, Then: then, Else: els}, nil
}
