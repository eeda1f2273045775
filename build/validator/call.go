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

// call is a call site being checked against the signatures of its callee.
type call struct {
	construct string
	src       ir.SourceNode
	name      string
	args      []ir.Param
	// receiver is true if the first argument is the receiver of a method.
	receiver bool
}

func calleeName(callee ir.Expr) string {
	switch calleeT := callee.(type) {
	case *ir.Ident:
		return calleeT.Name
	case *ir.Lookup:
		return calleeName(calleeT.Base) + "." + calleeT.Member.Name
	case *ir.MethodLookup:
		return calleeT.BaseType.Name + "::" + calleeT.Member.Name
	}
	return "<expr>"
}

// checkOverloads resolves the signature of an overloaded callee
// and returns the index of the selected signature.
func (c *call) checkOverloads(sigs [][]ir.Param) (*int, error) {
	index, ok := ResolveOverload(sigs, c.args)
	if !ok {
		return nil, fmterr.Errorf(c.src, "%s: passed arguments do not match any overload of %s", c.construct, c.name)
	}
	return &index, nil
}

// checkSignature checks the arguments against a single signature.
func (c *call) checkSignature(sig []ir.Param) error {
	switch i := matchSignature(sig, c.args); i {
	case fullMatch:
		return nil
	case arityMismatch:
		return fmterr.Errorf(c.src, "%s: amount of arguments does not match: %s expects %d but got %d", c.construct, c.name, len(sig), len(c.args))
	default:
		if c.receiver && i == 0 {
			return fmterr.Errorf(c.src, "%s: base type mismatch: cannot invoke %s on %s", c.construct, c.name, c.args[0].Type)
		}
		argIndex := i
		if !c.receiver {
			argIndex++
		}
		return fmterr.Errorf(c.src, "%s: argument type mismatch at argument %d", c.construct, argIndex)
	}
}

// check checks the call against a function or a method type.
// A non-nil index is returned when the callee is overloaded.
func (c *call) check(typ ir.Type) (*int, error) {
	switch typT := typ.(type) {
	case *ir.FuncType:
		return nil, c.checkSignature(typT.Params)
	case *ir.MethodType:
		if typT.Overloaded {
			return c.checkOverloads(typT.Overloads)
		}
		return nil, c.checkSignature(typT.Params)
	}
	return nil, fmterr.Internalf(c.src, "cannot check a call to a value of type %s", typ)
}

func validateArgs(args []*ir.Argument) error {
	for _, arg := range args {
		if err := validateExpr(arg.Value); err != nil {
			return err
		}
	}
	return nil
}

func validateNativeFunctionInvocation(n *ir.NativeFunctionInvocation) error {
	fType, ok := n.Callee.Type().(*ir.FuncType)
	if !ok {
		return fmterr.Errorf(n, "native function invocation: callee is not a function: %s", calleeName(n.Callee))
	}
	c := &call{
		construct: "native function invocation",
		src:       n,
		name:      calleeName(n.Callee),
		args:      ir.NamedArgs(n.Args),
	}
	if _, err := c.check(fType); err != nil {
		return err
	}
	return validateArgs(n.Args)
}

// validateFunctionInvocation validates the call of a function or of a
// method without an implicit receiver. Non-static methods called this way
// receive their receiver as an explicit argument.
func validateFunctionInvocation(n *ir.FunctionInvocation) error {
	calleeType := n.Callee.Type()
	switch calleeType.(type) {
	case *ir.FuncType, *ir.MethodType:
	default:
		return fmterr.Errorf(n, "function invocation: callee is not a function or method: %s", calleeName(n.Callee))
	}
	if err := validateExpr(n.Callee); err != nil {
		return err
	}
	c := &call{
		construct: "function invocation",
		src:       n,
		name:      calleeName(n.Callee),
		args:      ir.NamedArgs(n.Args),
	}
	index, err := c.check(calleeType)
	if err != nil {
		return err
	}
	n.Overload = index
	return validateArgs(n.Args)
}

// validateMethodInvocation validates the call of a method on a receiver.
// The receiver is checked as an unlabelled first argument.
func validateMethodInvocation(n *ir.MethodInvocation) error {
	mType, ok := n.Callee.Type().(*ir.MethodType)
	if !ok {
		return fmterr.Errorf(n, "method invocation: callee is not a method: %s", calleeName(n.Callee))
	}
	if err := validateExpr(n.Callee); err != nil {
		return err
	}
	recv := ir.Param{Type: n.Callee.Base.Type()}
	c := &call{
		construct: "method invocation",
		src:       n,
		name:      calleeName(n.Callee),
		args:      append([]ir.Param{recv}, ir.NamedArgs(n.Args)...),
		receiver:  true,
	}
	index, err := c.check(mType)
	if err != nil {
		return err
	}
	n.Overload = index
	return validateArgs(n.Args)
}
