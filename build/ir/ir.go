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

// Package ir is the typed syntax tree consumed by the validator and the
// simplifier. The tree is produced by a type annotation stage: every
// expression carries its resolved type.
//
// Each node owns its children. Nodes are not shared across the tree.
package ir

import (
	"go/token"

	"github.com/midend-lang/midend/base/ordered"
)

// ----------------------------------------------------------------------------
// Types of node in the tree.
type (
	// Node in the tree.
	Node interface {
		// node marks a structure as a node structure.
		// It prevents external implementations of the interface.
		node()
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
		// Type returns the type of the expression.
		Type() Type
	}

	// Stmt is a statement.
	Stmt interface {
		SourceNode
		stmt()
	}

	// Program is the root of a typed syntax tree.
	Program struct {
		// Version of the interchange format the program has been decoded from.
		Version string
		// Nodes are the top level expressions and statements, in source order.
		Nodes []SourceNode
	}
)

// ----------------------------------------------------------------------------
// Literals.
type (
	// StringValue is a string literal.
	StringValue struct {
		Src   token.Position
		Value string
		Typ   Type
	}

	// NumberValue is a number literal.
	NumberValue struct {
		Src   token.Position
		Value float64
		Typ   Type
	}

	// BooleanValue is a boolean literal.
	BooleanValue struct {
		Src   token.Position
		Value bool
		Typ   Type
	}

	// ArrayValue is a list literal.
	ArrayValue struct {
		Src    token.Position
		Values []Expr
		Typ    Type
	}

	// RecordValue is a record literal.
	// Declared is the type annotated in the source, nil if absent.
	RecordValue struct {
		Src      token.Position
		Members  *ordered.Map[string, Expr]
		Declared Type
		Typ      Type
	}

	// FunctionValue is a function literal.
	FunctionValue struct {
		Src  token.Position
		Func *FuncDef
		Typ  Type
	}
)

// ----------------------------------------------------------------------------
// Invocations and combinations.
type (
	// Argument passed to a function.
	// Name is empty for an unlabelled argument.
	Argument struct {
		Src   token.Position
		Name  string
		Value Expr
	}

	// NativeFunctionInvocation invokes a function provided by the runtime.
	// Callee is either an identifier or a lookup.
	NativeFunctionInvocation struct {
		Src    token.Position
		Callee Expr
		Args   []*Argument
		Typ    Type
	}

	// FunctionInvocation invokes a function or a method without a receiver.
	FunctionInvocation struct {
		Src    token.Position
		Callee Expr
		Args   []*Argument
		Typ    Type

		// Overload is the index of the signature selected in the overload set
		// of the callee. It is nil until the validator resolves the call.
		Overload *int
	}

	// MethodInvocation invokes a method on a receiver (recv::method(...)).
	MethodInvocation struct {
		Src    token.Position
		Callee *MethodLookup
		Args   []*Argument
		Typ    Type

		// Overload is the index of the signature selected in the overload set
		// of the callee. It is nil until the validator resolves the call.
		Overload *int
	}

	// Combination combines two expressions.
	Combination struct {
		Src token.Position
		LHS Expr
		RHS Expr
		Typ Type
	}
)

// ----------------------------------------------------------------------------
// Name resolution.
type (
	// Ident is an identifier.
	Ident struct {
		Src  token.Position
		Name string
		Typ  Type
	}

	// Self refers to the receiver inside a method.
	Self struct {
		Src token.Position
		Typ Type
	}

	// Lookup selects a member of a value.
	Lookup struct {
		Src    token.Position
		Base   Expr
		Member *Ident
		Typ    Type
	}

	// MethodLookup selects a method on a value.
	// BaseType is the named type defining the method.
	MethodLookup struct {
		Src      token.Position
		Base     Expr
		BaseType *NamedType
		Member   *Ident
		Typ      Type
	}
)

// ----------------------------------------------------------------------------
// Statements.
type (
	// ConstantDeclaration declares a constant.
	// Declared is the type annotated in the source, nil if absent.
	ConstantDeclaration struct {
		Src      token.Position
		Name     *Ident
		Declared Type
		Value    Expr
		Typ      Type
	}

	// VariableDeclaration declares a variable.
	// Declared is the type annotated in the source, nil if absent.
	VariableDeclaration struct {
		Src      token.Position
		Name     *Ident
		Declared Type
		Value    Expr
		Typ      Type
	}

	// Assignment assigns a new value to an existing variable.
	Assignment struct {
		Src   token.Position
		Name  *Ident
		Value Expr
	}

	// MethodDef is the implementation of a method in a type definition.
	MethodDef struct {
		Static     bool
		Overloaded bool
		// Funcs has one function per overload.
		Funcs []*FuncDef
	}

	// TypeDefinition defines a named type with its properties and methods.
	TypeDefinition struct {
		Src        token.Position
		Name       *Ident
		Properties *ordered.Map[string, Type]
		Methods    *ordered.Map[string, *MethodDef]
		Typ        Type
	}

	// If is a conditional statement without an else branch.
	If struct {
		Src  token.Position
		Cond Expr
		Body []SourceNode
	}

	// IfElse is a conditional statement with an else branch.
	IfElse struct {
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
	// Parameter of a function definition.
	// External is the label used by callers, nil for an unlabelled parameter.
	Parameter struct {
		External *Ident
		Internal *Ident
	}

	// FuncDef is the definition of a function: its signature and its body.
	FuncDef struct {
		Src    token.Position
		Params []*Parameter
		Result Type
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
	_ Expr = (*MethodInvocation)(nil)
	_ Expr = (*Combination)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*Self)(nil)
	_ Expr = (*Lookup)(nil)
	_ Expr = (*MethodLookup)(nil)

	_ Stmt = (*ConstantDeclaration)(nil)
	_ Stmt = (*VariableDeclaration)(nil)
	_ Stmt = (*Assignment)(nil)
	_ Stmt = (*TypeDefinition)(nil)
	_ Stmt = (*If)(nil)
	_ Stmt = (*IfElse)(nil)
	_ Stmt = (*Return)(nil)
	_ Stmt = (*FunctionStatement)(nil)
)

func (*StringValue) node()                      {}
func (*StringValue) expr()                      {}
func (n *StringValue) Position() token.Position { return n.Src }

// Type of the literal.
func (n *StringValue) Type() Type { return n.Typ }

func (*NumberValue) node()                      {}
func (*NumberValue) expr()                      {}
func (n *NumberValue) Position() token.Position { return n.Src }

// Type of the literal.
func (n *NumberValue) Type() Type { return n.Typ }

func (*BooleanValue) node()                      {}
func (*BooleanValue) expr()                      {}
func (n *BooleanValue) Position() token.Position { return n.Src }

// Type of the literal.
func (n *BooleanValue) Type() Type { return n.Typ }

func (*ArrayValue) node()                      {}
func (*ArrayValue) expr()                      {}
func (n *ArrayValue) Position() token.Position { return n.Src }

// Type of the literal.
func (n *ArrayValue) Type() Type { return n.Typ }

func (*RecordValue) node()                      {}
func (*RecordValue) expr()                      {}
func (n *RecordValue) Position() token.Position { return n.Src }

// Type of the literal.
func (n *RecordValue) Type() Type { return n.Typ }

func (*FunctionValue) node()                      {}
func (*FunctionValue) expr()                      {}
func (n *FunctionValue) Position() token.Position { return n.Src }

// Type of the literal.
func (n *FunctionValue) Type() Type { return n.Typ }

func (*Argument) node()                      {}
func (n *Argument) Position() token.Position { return n.Src }

// Type of the value passed as argument.
func (n *Argument) Type() Type { return n.Value.Type() }

func (*NativeFunctionInvocation) node()                      {}
func (*NativeFunctionInvocation) expr()                      {}
func (n *NativeFunctionInvocation) Position() token.Position { return n.Src }

// Type returns the type of the value returned by the function.
func (n *NativeFunctionInvocation) Type() Type { return n.Typ }

func (*FunctionInvocation) node()                      {}
func (*FunctionInvocation) expr()                      {}
func (n *FunctionInvocation) Position() token.Position { return n.Src }

// Type returns the type of the value returned by the function.
func (n *FunctionInvocation) Type() Type { return n.Typ }

func (*MethodInvocation) node()                      {}
func (*MethodInvocation) expr()                      {}
func (n *MethodInvocation) Position() token.Position { return n.Src }

// Type returns the type of the value returned by the method.
func (n *MethodInvocation) Type() Type { return n.Typ }

func (*Combination) node()                      {}
func (*Combination) expr()                      {}
func (n *Combination) Position() token.Position { return n.Src }

// Type of the combination.
func (n *Combination) Type() Type { return n.Typ }

func (*Ident) node()                      {}
func (*Ident) expr()                      {}
func (n *Ident) Position() token.Position { return n.Src }

// Type of the value the identifier refers to.
func (n *Ident) Type() Type { return n.Typ }

func (*Self) node()                      {}
func (*Self) expr()                      {}
func (n *Self) Position() token.Position { return n.Src }

// Type of the receiver.
func (n *Self) Type() Type { return n.Typ }

func (*Lookup) node()                      {}
func (*Lookup) expr()                      {}
func (n *Lookup) Position() token.Position { return n.Src }

// Type of the member.
func (n *Lookup) Type() Type { return n.Typ }

func (*MethodLookup) node()                      {}
func (*MethodLookup) expr()                      {}
func (n *MethodLookup) Position() token.Position { return n.Src }

// Type of the method.
func (n *MethodLookup) Type() Type { return n.Typ }

func (*ConstantDeclaration) node()                      {}
func (*ConstantDeclaration) stmt()                      {}
func (n *ConstantDeclaration) Position() token.Position { return n.Src }

func (*VariableDeclaration) node()                      {}
func (*VariableDeclaration) stmt()                      {}
func (n *VariableDeclaration) Position() token.Position { return n.Src }

func (*Assignment) node()                      {}
func (*Assignment) stmt()                      {}
func (n *Assignment) Position() token.Position { return n.Src }

func (*TypeDefinition) node()                      {}
func (*TypeDefinition) stmt()                      {}
func (n *TypeDefinition) Position() token.Position { return n.Src }

func (*If) node()                      {}
func (*If) stmt()                      {}
func (n *If) Position() token.Position { return n.Src }

func (*IfElse) node()                      {}
func (*IfElse) stmt()                      {}
func (n *IfElse) Position() token.Position { return n.Src }

func (*Return) node()                      {}
func (*Return) stmt()                      {}
func (n *Return) Position() token.Position { return n.Src }

func (*FunctionStatement) node()                      {}
func (*FunctionStatement) stmt()                      {}
func (n *FunctionStatement) Position() token.Position { return n.Src }

func (*FuncDef) node()                      {}
func (n *FuncDef) Position() token.Position { return n.Src }

// NamedArgs returns the arguments as parameters (name and type)
// to be matched against a signature.
func NamedArgs(args []*Argument) []Param {
	params := make([]Param, len(args))
	for i, arg := range args {
		params[i] = Param{Name: arg.Name, Type: arg.Type()}
	}
	return params
}
