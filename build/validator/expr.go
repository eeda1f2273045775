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

func validateExpr(expr ir.Expr) error {
	switch exprT := expr.(type) {
	case *ir.NativeFunctionInvocation:
		return validateNativeFunctionInvocation(exprT)
	case *ir.FunctionInvocation:
		return validateFunctionInvocation(exprT)
	case *ir.MethodInvocation:
		return validateMethodInvocation(exprT)
	case *ir.Lookup:
		return validateExpr(exprT.Base)
	case *ir.MethodLookup:
		return validateExpr(exprT.Base)
	case *ir.Combination:
		if err := validateExpr(exprT.LHS); err != nil {
			return err
		}
		return validateExpr(exprT.RHS)
	case *ir.ArrayValue:
		return validateExprs(exprT.Values)
	case *ir.RecordValue:
		for _, member := range exprT.Members.Iter() {
			if err := validateExpr(member); err != nil {
				return err
			}
		}
		return nil
	case *ir.FunctionValue:
		return validateFuncDef(exprT.Func)
	case *ir.StringValue, *ir.NumberValue, *ir.BooleanValue, *ir.Ident, *ir.Self:
		return nil
	}
	return fmterr.Internalf(expr, "cannot validate expression %T: not supported", expr)
}

func validateExprs(exprs []ir.Expr) error {
	for _, expr := range exprs {
		if err := validateExpr(expr); err != nil {
			return err
		}
	}
	return nil
}
