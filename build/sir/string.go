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

package sir

import (
	"fmt"
	"strconv"
	"strings"

	midfmt "github.com/midend-lang/midend/base/fmt"
	"github.com/midend-lang/midend/base/stringseq"
	"github.com/midend-lang/midend/build/ir"
)

func typeString(typ ir.Type) string {
	if typ == nil {
		return "?"
	}
	return typ.String()
}

// String representation of the program, one top level node per line.
func (p *Program) String() string {
	var s strings.Builder
	for _, node := range p.Nodes {
		s.WriteString(node.String())
		s.WriteString("\n")
	}
	return s.String()
}

func (n *StringValue) String() string { return strconv.Quote(n.Value) }

func (n *NumberValue) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

func (n *BooleanValue) String() string { return strconv.FormatBool(n.Value) }

func (n *ArrayValue) String() string { return "[" + midfmt.Join(n.Values, ", ") + "]" }

func (n *RecordValue) String() string {
	members := stringseq.Pairs(n.Members.Iter(), func(name string, value Expr) string {
		return name + ": " + value.String()
	})
	prefix := ""
	if named, ok := n.Typ.(*ir.NamedType); ok {
		prefix = named.Name
	}
	return prefix + "{" + stringseq.Join(members, ", ") + "}"
}

func (n *FunctionValue) String() string { return "func" + n.Func.String() }

func (n *Argument) String() string {
	if n.Name == "" {
		return n.Value.String()
	}
	return n.Name + ": " + n.Value.String()
}

func (n *NativeFunctionInvocation) String() string {
	return "native " + n.Callee.String() + "(" + midfmt.Join(n.Args, ", ") + ")"
}

func (n *FunctionInvocation) String() string {
	callee := n.Callee.String()
	if n.Overload != nil {
		callee += "#" + strconv.Itoa(*n.Overload)
	}
	return callee + "(" + midfmt.Join(n.Args, ", ") + ")"
}

func (n *Combination) String() string {
	return fmt.Sprintf("(%s <> %s)", n.LHS, n.RHS)
}

func (n *Lookup) String() string { return n.Base.String() + "." + n.Member.String() }

func (n *Ident) String() string { return n.Name }

func (n *VariableDeclaration) String() string {
	kw := "var"
	if n.Constant {
		kw = "const"
	}
	s := kw + " " + n.Name.String()
	if n.Declared != nil {
		s += " " + n.Declared.String()
	}
	return s + " = " + n.Value.String()
}

func (n *Assignment) String() string { return n.Name.String() + " = " + n.Value.String() }

func (m *Method) String() string {
	var s strings.Builder
	if m.Static {
		s.WriteString("static ")
	}
	s.WriteString("method")
	for i, fn := range m.Funcs {
		if i > 0 {
			s.WriteString(" | ")
		}
		s.WriteString(fn.String())
	}
	return s.String()
}

func (n *TypeDefinition) String() string {
	var lines []fmt.Stringer
	for name, typ := range n.Properties.Iter() {
		lines = append(lines, stringer(name+" "+typ.String()))
	}
	for name, method := range n.Methods.Iter() {
		lines = append(lines, stringer(name+" "+method.String()))
	}
	return "type " + n.Name.String() + " " + midfmt.Block(lines)
}

func (n *Choice) String() string {
	s := "choice " + n.Cond.String() + " " + midfmt.Block(n.Then)
	if len(n.Else) == 0 {
		return s
	}
	return s + " else " + midfmt.Block(n.Else)
}

func (n *Return) String() string { return "return " + n.Value.String() }

func (n *FunctionStatement) String() string { return "func " + n.Name.String() + n.Func.String() }

func (p *Param) String() string {
	external := "_"
	if p.External != nil {
		external = p.External.Name
	}
	return external + " " + p.Internal.Name + " " + typeString(p.Type())
}

func (n *FuncDef) String() string {
	return "(" + midfmt.Join(n.Params, ", ") + ") -> " + typeString(n.Result) + " " + midfmt.Block(n.Body)
}

type stringer string

func (s stringer) String() string { return string(s) }
