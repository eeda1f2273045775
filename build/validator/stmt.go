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

package validator

import (
	"github.com/midend-lang/midend/build/fmterr"
	"github.com/midend-lang/midend/build/ir"
)

// validateStmt validates a statement. fn is the function enclosing the
// statement, nil at the top level.
func validateStmt(fn *ir.FuncDef, stmt ir.Stmt) error {
	switch stmtT := stmt.(type) {
	case *ir.ConstantDeclaration:
		return validateDeclaration(stmtT, "constant", stmtT.Name, stmtT.Declared, stmtT.Value)
	case *ir.VariableDeclaration:
		return validateDeclaration(stmtT, "variable", stmtT.Name, stmtT.Declared, stmtT.Value)
	case *ir.Assignment:
		return validateAssignment(stmtT)
	case *ir.TypeDefinition:
		return validateTypeDefinition(stmtT)
	case *ir.If:
		if err := validateCondition(stmtT, stmtT.Cond); err != nil {
			return err
		}
		return validateBlock(fn, stmtT.Body)
	case *ir.IfElse:
		if err := validateCondition(stmtT, stmtT.Cond); err != nil {
			return err
		}
		if err := validateBlock(fn, stmtT.Then); err != nil {
			return err
		}
		return validateBlock(fn, stmtT.Else)
	case *ir.Return:
		return validateReturn(fn, stmtT)
	case *ir.FunctionStatement:
		return validateFuncDef(stmtT.Func)
	}
	return fmterr.Internalf(stmt, "cannot validate statement %T: not supported", stmt)
}

func validateDeclaration(src ir.SourceNode, what string, name *ir.Ident, declared ir.Type, value ir.Expr) error {
	if declared != nil && !ir.MatchesType(declared, value.Type()) {
		return fmterr.Errorf(src, "wrong assignment value type for %s %s: cannot assign %s to %s", what, name.Name, value.Type(), declared)
	}
	return validateExpr(value)
}

func validateAssignment(stmt *ir.Assignment) error {
	if !ir.MatchesType(stmt.Name.Type(), stmt.Value.Type()) {
		return fmterr.Errorf(stmt, "wrong assignment value type for variable %s: cannot assign %s to %s", stmt.Name.Name, stmt.Value.Type(), stmt.Name.Type())
	}
	return validateExpr(stmt.Value)
}

func validateTypeDefinition(stmt *ir.TypeDefinition) error {
	for _, method := range stmt.Methods.Iter() {
		for _, def := range method.Funcs {
			if err := validateFuncDef(def); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateCondition(src ir.SourceNode, cond ir.Expr) error {
	if !ir.IsBool(cond.Type()) {
		return fmterr.Errorf(src, "if condition has to be a boolean: got %s", cond.Type())
	}
	return validateExpr(cond)
}

func validateReturn(fn *ir.FuncDef, stmt *ir.Return) error {
	if fn == nil {
		return fmterr.Errorf(stmt, "top level returns are not permitted")
	}
	if !ir.MatchesType(fn.Result, stmt.Value.Type()) {
		return fmterr.Errorf(stmt, "type of returned expression does not match declared return type: got %s but want %s", stmt.Value.Type(), fn.Result)
	}
	return validateExpr(stmt.Value)
}
