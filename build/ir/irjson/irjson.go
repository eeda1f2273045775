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

// Package irjson decodes typed programs produced by the type annotation
// stage in their JSON interchange format.
//
// Every node is a JSON object with a "nodeType" tag and an optional
// "position" object. Every type is a JSON object with a "type" tag.
// The keys of record members, type properties and methods keep the
// order of the source.
package irjson

import (
	"bytes"
	"encoding/json"
	"go/token"
	"io"
	"os"

	"github.com/midend-lang/midend/build/fmterr"
	"github.com/midend-lang/midend/build/ir"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"golang.org/x/mod/semver"
)

// FormatVersion is the version of the interchange format produced by
// the type annotation stage that this package decodes.
const FormatVersion = "v1.0.0"

type (
	position struct {
		File   string `json:"file"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}

	header struct {
		NodeType string    `json:"nodeType"`
		Position *position `json:"position"`
	}

	decodeFunc func(*decoder, token.Position, json.RawMessage) (ir.SourceNode, error)

	decoder struct {
		filename string
	}
)

var nodeDecoders map[string]decodeFunc

func init() {
	nodeDecoders = map[string]decodeFunc{
		"StringValue":                  (*decoder).stringValue,
		"NumberValue":                  (*decoder).numberValue,
		"BooleanValue":                 (*decoder).booleanValue,
		"ArrayValue":                   (*decoder).arrayValue,
		"ListValue":                    (*decoder).arrayValue,
		"RecordValue":                  (*decoder).recordValue,
		"FunctionValue":                (*decoder).functionValue,
		"NativeFunctionInvocation":     (*decoder).nativeFunctionInvocation,
		"FunctionInvocation":           (*decoder).functionInvocation,
		"MethodInvocation":             (*decoder).methodInvocation,
		"Combination":                  (*decoder).combination,
		"Identifier":                   (*decoder).identifier,
		"Self":                         (*decoder).self,
		"Lookup":                       (*decoder).lookup,
		"MethodLookup":                 (*decoder).methodLookup,
		"ConstantDeclarationStatement": (*decoder).constantDeclaration,
		"VariableDeclarationStatement": (*decoder).variableDeclaration,
		"VariableAssignmentStatement":  (*decoder).assignment,
		"TypeDefinitionStatement":      (*decoder).typeDefinition,
		"IfStatement":                  (*decoder).ifStmt,
		"IfElseStatement":              (*decoder).ifElseStmt,
		"ReturnStatement":              (*decoder).returnStmt,
		"FunctionStatement":            (*decoder).functionStatement,
	}
}

// NodeTypes returns the sorted list of node tags known by the decoder.
func NodeTypes() []string {
	tags := make([]string, 0, len(nodeDecoders))
	for tag := range nodeDecoders {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// CheckVersion returns an error if a program encoded with a given
// version of the interchange format cannot be decoded.
// An empty version is accepted and assumed to be FormatVersion.
func CheckVersion(version string) error {
	if version == "" {
		return nil
	}
	if !semver.IsValid(version) {
		return errors.Errorf("invalid format version %q", version)
	}
	if semver.Major(version) != semver.Major(FormatVersion) {
		return errors.Errorf("format version %s not supported: want %s.x", version, semver.Major(FormatVersion))
	}
	return nil
}

// Decode a typed program from its JSON representation.
// filename is used for the positions that do not specify a file.
func Decode(filename string, data []byte) (*ir.Program, error) {
	var prog struct {
		Version string            `json:"version"`
		Nodes   []json.RawMessage `json:"nodes"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&prog); err != nil {
		return nil, errors.Errorf("%s: cannot decode program: %v", filename, err)
	}
	if err := CheckVersion(prog.Version); err != nil {
		return nil, errors.Wrap(err, filename)
	}
	d := &decoder{filename: filename}
	nodes, err := d.nodes(prog.Nodes)
	if err != nil {
		return nil, err
	}
	version := prog.Version
	if version == "" {
		version = FormatVersion
	}
	return &ir.Program{Version: version, Nodes: nodes}, nil
}

// DecodeReader decodes a typed program from a reader.
func DecodeReader(filename string, r io.Reader) (*ir.Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Errorf("cannot read %s: %v", filename, err)
	}
	return Decode(filename, data)
}

// DecodeFile decodes a typed program from a file.
func DecodeFile(filename string) (*ir.Program, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Errorf("cannot read %s: %v", filename, err)
	}
	return Decode(filename, data)
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func (d *decoder) pos(p *position) token.Position {
	if p == nil {
		return token.Position{Filename: d.filename}
	}
	file := p.File
	if file == "" {
		file = d.filename
	}
	return token.Position{Filename: file, Line: p.Line, Column: p.Column}
}

type posNode token.Position

func (p posNode) Position() token.Position { return token.Position(p) }

func (d *decoder) errorf(pos token.Position, format string, a ...any) error {
	return fmterr.Errorf(posNode(pos), format, a...)
}

func (d *decoder) node(raw json.RawMessage) (ir.SourceNode, error) {
	var head header
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, errors.Errorf("%s: cannot decode node: %v", d.filename, err)
	}
	pos := d.pos(head.Position)
	decode, ok := nodeDecoders[head.NodeType]
	if !ok {
		return nil, d.errorf(pos, "unknown node type %q: available node types are %v", head.NodeType, NodeTypes())
	}
	return decode(d, pos, raw)
}

func (d *decoder) nodes(raws []json.RawMessage) ([]ir.SourceNode, error) {
	nodes := make([]ir.SourceNode, len(raws))
	for i, raw := range raws {
		var err error
		if nodes[i], err = d.node(raw); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

func (d *decoder) expr(raw json.RawMessage) (ir.Expr, error) {
	if isNull(raw) {
		return nil, errors.Errorf("%s: missing expression", d.filename)
	}
	node, err := d.node(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(ir.Expr)
	if !ok {
		return nil, d.errorf(node.Position(), "%T is not an expression", node)
	}
	return expr, nil
}

func (d *decoder) exprs(raws []json.RawMessage) ([]ir.Expr, error) {
	exprs := make([]ir.Expr, len(raws))
	for i, raw := range raws {
		var err error
		if exprs[i], err = d.expr(raw); err != nil {
			return nil, err
		}
	}
	return exprs, nil
}

func (d *decoder) ident(raw json.RawMessage) (*ir.Ident, error) {
	expr, err := d.expr(raw)
	if err != nil {
		return nil, err
	}
	ident, ok := expr.(*ir.Ident)
	if !ok {
		return nil, d.errorf(expr.Position(), "%T is not an identifier", expr)
	}
	return ident, nil
}

func unmarshal(pos token.Position, what string, raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmterr.Errorf(posNode(pos), "cannot decode %s: %v", what, err)
	}
	return nil
}
