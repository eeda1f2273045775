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
	"github.com/midend-lang/midend/base/ordered"
	"github.com/midend-lang/midend/build/fmterr"
	"github.com/midend-lang/midend/build/ir"
	"github.com/midend-lang/midend/build/sir"
)

func simplifyExpr(expr ir.Expr) (sir.Expr, error) {
	switch exprT := expr.(type) {
	case *ir.StringValue:
		return &sir.StringValue{Src: exprT.Src, Value: exprT.Value, Typ: exprT.Typ}, nil
	case *ir.NumberValue:
		return &sir.NumberValue{Src: exprT.Src, Value: exprT.Value, Typ: exprT.Typ}, nil
	case *ir.BooleanValue:
		return &sir.BooleanValue{Src: exprT.Src, Value: exprT.Value, Typ: exprT.Typ}, nil
	case *ir.ArrayValue:
		values, err := simplifyExprs(exprT.Values)
		if err != nil {
			return nil, err
		}
		return &sir.ArrayValue{Src: exprT.Src, Values: values, Typ: exprT.Typ}, nil
	case *ir.RecordValue:
		return simplifyRecordValue(exprT)
	case *ir.FunctionValue:
		def, err := simplifyFuncDef(exprT.Func)
		if err != nil {
			return nil, err
		}
		return &sir.FunctionValue{Src: exprT.Src, Func: def, Typ: exprT.Typ}, nil
	case *ir.NativeFunctionInvocation:
		return simplifyNativeFunctionInvocation(exprT)
	case *ir.FunctionInvocation:
		return simplifyFunctionInvocation(exprT)
	case *ir.MethodInvocation:
		return simplifyMethodInvocation(exprT)
	case *ir.Combination:
		lhs, err := simplifyExpr(exprT.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := simplifyExpr(exprT.RHS)
		if err != nil {
			return nil, err
		}
		return &sir.Combination{Src: exprT.Src, LHS: lhs, RHS: rhs, Typ: exprT.Typ}, nil
	case *ir.Lookup:
		base, err := simplifyExpr(exprT.Base)
		if err != nil {
			return nil, err
		}
		return &sir.Lookup{Src: exprT.Src, Base: base, Member: simplifyIdent(exprT.Member), Typ: exprT.Typ}, nil
	case *ir.MethodLookup:
		return simplifyMethodLookup(exprT), nil
	case *ir.Ident:
		return simplifyIdent(exprT), nil
	case *ir.Self:
		return &sir.Ident{Src: exprT.Src, Name: sir.SelfName, Typ: exprT.Typ}, nil
	}
	return nil, fmterr.Internalf(expr, "cannot simplify expression %T: not supported", expr)
}

func simplifyExprs(exprs []ir.Expr) ([]sir.Expr, error) {
	simplified := make([]sir.Expr, len(exprs))
	for i, expr := range exprs {
		var err error
		if simplified[i], err = simplifyExpr(expr); err != nil {
			return nil, err
		}
	}
	return simplified, nil
}

func simplifyIdent(ident *ir.Ident) *sir.Ident {
	if ident == nil {
		return nil
	}
	return &sir.Ident{Src: ident.Src, Name: ident.Name, Typ: ident.Typ}
}

// simplifyRecordValue uses the declared type of the record, if any,
// as the type of the simplified record.
func simplifyRecordValue(expr *ir.RecordValue) (*sir.RecordValue, error) {
	members, err := ordered.Transform(expr.Members, func(_ string, member ir.Expr) (sir.Expr, error) {
		return simplifyExpr(member)
	})
	if err != nil {
		return nil, err
	}
	typ := expr.Typ
	if expr.Declared != nil {
		typ = expr.Declared
	}
	return &sir.RecordValue{Src: expr.Src, Members: members, Typ: typ}, nil
}

// simplifyMethodLookup references the method through its type.
// The base of the lookup is an identifier naming the type.
func simplifyMethodLookup(expr *ir.MethodLookup) *sir.Lookup {
	return &sir.Lookup{
		Src: expr.Src,
		Base: &sir.Ident{
			Src:  expr.Src,
			Name: expr.BaseType.Name,
			Typ:  expr.BaseType,
		},
		Member: simplifyIdent(expr.Member),
		Typ:    expr.Typ,
	}
}

func simplifyArgs(args []*ir.Argument) ([]*sir.Argument, error) {
	simplified := make([]*sir.Argument, len(args))
	for i, arg := range args {
		val, err := simplifyExpr(arg.Value)
		if err != nil {
			return nil, err
		}
		simplified[i] = &sir.Argument{Src: arg.Src, Name: arg.Name, Value: val}
	}
	return simplified, nil
}

func simplifyNativeFunctionInvocation(expr *ir.NativeFunctionInvocation) (*sir.NativeFunctionInvocation, error) {
	callee, err := simplifyExpr(expr.Callee)
	if err != nil {
		return nil, err
	}
	args, err := simplifyArgs(expr.Args)
	if err != nil {
		return nil, err
	}
	return &sir.NativeFunctionInvocation{
		Src:    expr.Src,
		Callee: callee,
		Args:   args,
		Typ:    expr.Typ,
	}, nil
}

func simplifyFunctionInvocation(expr *ir.FunctionInvocation) (*sir.FunctionInvocation, error) {
	callee, err := simplifyExpr(expr.Callee)
	if err != nil {
		return nil, err
	}
	args, err := simplifyArgs(expr.Args)
	if err != nil {
		return nil, err
	}
	return &sir.FunctionInvocation{
		Src:      expr.Src,
		Callee:   callee,
		Args:     args,
		Typ:      expr.Typ,
		Overload: copyIndex(expr.Overload),
	}, nil
}

// simplifyMethodInvocation passes the receiver as the first argument of
// the method, labelled with the receiver label.
func simplifyMethodInvocation(expr *ir.MethodInvocation) (*sir.FunctionInvocation, error) {
	callee := simplifyMethodLookup(expr.Callee)
	recv, err := simplifyExpr(expr.Callee.Base)
	if err != nil {
		return nil, err
	}
	args, err := simplifyArgs(expr.Args)
	if err != nil {
		return nil, err
	}
	recvArg := &sir.Argument{
		Src:   expr.Callee.Base.Position(),
		Name:  sir.ReceiverLabel,
		Value: recv,
	}
	return &sir.FunctionInvocation{
		Src:      expr.Src,
		Callee:   callee,
		Args:     append([]*sir.Argument{recvArg}, args...),
		Typ:      expr.Typ,
		Overload: copyIndex(expr.Overload),
	}, nil
}

func copyIndex(index *int) *int {
	if index == nil {
		return nil
	}
	i := *index
	return &i
}
