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

// Package sir is the simplified syntax tree produced by the simplifier.
//
// It is the last tree representation before code generation. Compared to
// the typed syntax tree:
//   - constant and variable declarations are one node,
//   - if and if-else statements are one choice node,
//   - method invocations are function invocations with the receiver
//     passed as the first argument, labelled "@",
//   - self is the identifier "_self".
//
// Types are shared with the typed syntax tree.
package sir

import (
	"go/token"

	"github.com/midend-lang/midend/base/ordered"
	"github.com/midend-lang/midend/build/ir"
)

const (
	// ReceiverLabel is the label of the argument passing the receiver
	// of a method.
	ReceiverLabel = "@"
	// SelfName is the name of the parameter receiving the receiver
	// of a method.
	SelfName = "_self"
)

// ----------------------------------------------------------------------------
// Types of node in the tree.
type (
	// Node in the tree.
	Node interface {
		node()
		String() string
	}

	// SourceNode is a node with a position in the source code.
	SourceNode interface {
		Node
		Position() token.Position
	}

	// Expr is an expression with a type.
	Expr interface {
		SourceNode
		expr()
		Type() ir.Type
	}

	// Stmt is a statement.
	Stmt interface {
		SourceNode
		stmt()
	}

	// Program is the root of a simplified syntax tree.
	Program struct {
		Version string
		Nodes   []SourceNode
	}
)

// ----------------------------------------------------------------------------
// Expressions.
type (
	// StringValue is a string literal.
	StringValue struct {
		Src   token.Position
		Value string
		Typ   ir.Type
	}

	// NumberValue is a number literal.
	NumberValue struct {
		Src   token.Position
		Value float64
		Typ   ir.Type
	}

	// BooleanValue is a boolean literal.
	BooleanValue struct {
		Src   token.Position
		Value bool
		Typ   ir.Type
	}

	// ArrayValue is a list literal.
	ArrayValue struct {
		Src    token.Position
		Values []Expr
		Typ    ir.Type
	}

	// RecordValue is a record literal.
	// Typ is the declared type of the literal if any.
	RecordValue struct {
		Src     token.Position
		Members *ordered.Map[string, Expr]
		Typ     ir.Type
	}

	// FunctionValue is a function literal.
	FunctionValue struct {
		Src  token.Position
		Func *FuncDef
		Typ  ir.Type
	}

	// Argument passed to a function. Name is empty for an unlabelled argument.
	Argument struct {
		Src   token.Position
		Name  string
		Value Expr
	}

	// NativeFunctionInvocation invokes a function provided by the runtime.
	NativeFunctionInvocation struct {
		Src    token.Position
		Callee Expr
		Args   []*Argument
		Typ    ir.Type
	}

	// FunctionInvocation invokes a function or a method.
	FunctionInvocation struct {
		Src    token.Position
		Callee Expr
		Args   []*Argument
		Typ    ir.Type
		// Overload is the index of the implementation to call
		// when the callee is overloaded, nil otherwise.
		Overload *int
	}

	// Combination combines two expressions.
	Combination struct {
		Src token.Position
		LHS Expr
		RHS Expr
		Typ ir.Type
	}

	// Lookup selects a member of a value or a method of a type.
	Lookup struct {
		Src    token.Position
		Base   Expr
		Member *Ident
		Typ    ir.Type
	}

	// Ident is an identifier.
	Ident struct {
		Src  token.Position
		Name string
		Typ  ir.Type
	}
)

// ----------------------------------------------------------------------------
// Statements.
type (
	// VariableDeclaration declares a constant or a variable.
	VariableDeclaration struct {
		Src      token.Position
		Name     *Ident
		Declared ir.Type
		Value    Expr
		Typ      ir.Type
		Constant bool
	}

	// Assignment assigns a new value to an existing variable.
	Assignment struct {
		Src   token.Position
		Name  *Ident
		Value Expr
	}

	// Method implements a method of a type.
	// Non-static methods receive their receiver as their first parameter.
	Method struct {
		Static     bool
		Overloaded bool
		Funcs      []*FuncDef
	}

	// TypeDefinition defines a named type with its properties and methods.
	TypeDefinition struct {
		Src        token.Position
		Name       *Ident
		Properties *ordered.Map[string, ir.Type]
		Methods    *ordered.Map[string, *Method]
		Typ        ir.Type
	}

	// Choice executes Then if Cond is true, Else otherwise.
	// Else is empty but not nil when there is no alternative.
	Choice struct {
		Src  token.Position
		Cond Expr
		Then []SourceNode
		Else []SourceNode
	}

	// Return returns a value from the enclosing function.
	Return struct {
		Src   token.Position
		Value Expr
	}

	// FunctionStatement declares a named function.
	FunctionStatement struct {
		Src  token.Position
		Name *Ident
		Func *FuncDef
	}
)

// ----------------------------------------------------------------------------
// Functions.
type (
	// Param is a parameter of a function definition.
	// External is nil for an unlabelled parameter.
	Param struct {
		External *Ident
		Internal *Ident
	}

	// FuncDef is the definition of a function.
	FuncDef struct {
		Src    token.Position
		Params []*Param
		Result ir.Type
		Body   []SourceNode
	}
)

var (
	_ Expr = (*StringValue)(nil)
	_ Expr = (*NumberValue)(nil)
	_ Expr = (*BooleanValue)(nil)
	_ Expr = (*ArrayValue)(nil)
	_ Expr = (*RecordValue)(nil)
	_ Expr = (*FunctionValue)(nil)
	_ Expr = (*NativeFunctionInvocation)(nil)
	_ Expr = (*FunctionInvocation)(nil)
	_ Expr = (*Combination)(nil)
	_ Expr = (*Lookup)(nil)
	_ Expr = (*Ident)(nil)

	_ Stmt = (*VariableDeclaration)(nil)
	_ Stmt = (*Assignment)(nil)
	_ Stmt = (*TypeDefinition)(nil)
	_ Stmt = (*Choice)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*FunctionStatement)(nil)
)

func (*StringValue) node()                      {}
func (*StringValue) expr()                      {}
func (n *StringValue) Position() token.Position { return n.Src }
func (n *StringValue) Type() ir.Type            { return n.Typ }

func (*NumberValue) node()                      {}
func (*NumberValue) expr()                      {}
func (n *NumberValue) Position() token.Position { return n.Src }
func (n *NumberValue) Type() ir.Type            { return n.Typ }

func (*BooleanValue) node()                      {}
func (*BooleanValue) expr()                      {}
func (n *BooleanValue) Position() token.Position { return n.Src }
func (n *BooleanValue) Type() ir.Type            { return n.Typ }

func (*ArrayValue) node()                      {}
func (*ArrayValue) expr()                      {}
func (n *ArrayValue) Position() token.Position { return n.Src }
func (n *ArrayValue) Type() ir.Type            { return n.Typ }

func (*RecordValue) node()                      {}
func (*RecordValue) expr()                      {}
func (n *RecordValue) Position() token.Position { return n.Src }
func (n *RecordValue) Type() ir.Type            { return n.Typ }

func (*FunctionValue) node()                      {}
func (*FunctionValue) expr()                      {}
func (n *FunctionValue) Position() token.Position { return n.Src }
func (n *FunctionValue) Type() ir.Type            { return n.Typ }

func (*Argument) node()                      {}
func (n *Argument) Position() token.Position { return n.Src }

func (*NativeFunctionInvocation) node()                      {}
func (*NativeFunctionInvocation) expr()                      {}
func (n *NativeFunctionInvocation) Position() token.Position { return n.Src }
func (n *NativeFunctionInvocation) Type() ir.Type            { return n.Typ }

func (*FunctionInvocation) node()                      {}
func (*FunctionInvocation) expr()                      {}
func (n *FunctionInvocation) Position() token.Position { return n.Src }
func (n *FunctionInvocation) Type() ir.Type            { return n.Typ }

func (*Combination) node()                      {}
func (*Combination) expr()                      {}
func (n *Combination) Position() token.Position { return n.Src }
func (n *Combination) Type() ir.Type            { return n.Typ }

func (*Lookup) node()                      {}
func (*Lookup) expr()                      {}
func (n *Lookup) Position() token.Position { return n.Src }
func (n *Lookup) Type() ir.Type            { return n.Typ }

func (*Ident) node()                      {}
func (*Ident) expr()                      {}
func (n *Ident) Position() token.Position { return n.Src }
func (n *Ident) Type() ir.Type            { return n.Typ }

func (*VariableDeclaration) node()                      {}
func (*VariableDeclaration) stmt()                      {}
func (n *VariableDeclaration) Position() token.Position { return n.Src }

func (*Assignment) node()                      {}
func (*Assignment) stmt()                      {}
func (n *Assignment) Position() token.Position { return n.Src }

func (*TypeDefinition) node()                      {}
func (*TypeDefinition) stmt()                      {}
func (n *TypeDefinition) Position() token.Position { return n.Src }

func (*Choice) node()                      {}
func (*Choice) stmt()                      {}
func (n *Choice) Position() token.Position { return n.Src }

func (*Return) node()                      {}
func (*Return) stmt()                      {}
func (n *Return) Position() token.Position { return n.Src }

func (*FunctionStatement) node()                      {}
func (*FunctionStatement) stmt()                      {}
func (n *FunctionStatement) Position() token.Position { return n.Src }

func (*Param) node() {}

// Type of the parameter.
func (p *Param) Type() ir.Type { return p.Internal.Typ }

func (*FuncDef) node()                      {}
func (n *FuncDef) Position() token.Position { return n.Src }

// Labelled reports whether the parameter has an external name.
func (p *Param) Labelled() bool { return p.External != nil }
