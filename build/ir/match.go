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

package ir

// MatchesType reports whether a value of type rhs is acceptable where a
// value of type lhs is expected.
//
// The relation is not symmetric: a record on the left only constrains the
// members it declares and an empty list literal on the right matches any
// list type. The types are assumed to be acyclic.
func MatchesType(lhs, rhs Type) bool {
	if lhs == nil || rhs == nil {
		return false
	}
	lhs, rhs = Underlying(lhs), Underlying(rhs)
	switch lhsT := lhs.(type) {
	case *PrimitiveType:
		rhsT, ok := rhs.(*PrimitiveType)
		return ok && lhsT.Name == rhsT.Name
	case *RecordType:
		rhsT, ok := rhs.(*RecordType)
		return ok && matchesRecord(lhsT, rhsT)
	case *ListType:
		rhsT, ok := rhs.(*ListType)
		return ok && matchesList(lhsT, rhsT)
	case *FuncType:
		rhsT, ok := rhs.(*FuncType)
		if !ok {
			return false
		}
		return matchesParams(lhsT.Params, rhsT.Params) && matchesResult(lhsT.Result, rhsT.Result)
	case *MethodType:
		rhsT, ok := rhs.(*MethodType)
		return ok && matchesMethod(lhsT, rhsT)
	case *NamedType:
		// Only opaque named types are left after resolution.
		rhsT, ok := rhs.(*NamedType)
		return ok && lhsT.Name == rhsT.Name
	case *BuiltinType:
		rhsT, ok := rhs.(*BuiltinType)
		return ok && lhsT.Name == rhsT.Name
	}
	return false
}

func matchesRecord(lhs, rhs *RecordType) bool {
	for name, want := range lhs.Members.Iter() {
		got, ok := rhs.Members.Load(name)
		if !ok {
			return false
		}
		if !MatchesType(want, got) {
			return false
		}
	}
	return true
}

func matchesList(lhs, rhs *ListType) bool {
	if _, ok := lhs.Item.(*NeverType); ok {
		return false
	}
	if _, ok := rhs.Item.(*NeverType); ok {
		return true
	}
	return MatchesType(lhs.Item, rhs.Item)
}

// matchesResult matches result types. Two absent results match.
func matchesResult(lhs, rhs Type) bool {
	if lhs == nil && rhs == nil {
		return true
	}
	return MatchesType(lhs, rhs)
}

// MatchesParam reports whether two parameters have the same name
// and matching types.
func MatchesParam(lhs, rhs Param) bool {
	return lhs.Name == rhs.Name && MatchesType(lhs.Type, rhs.Type)
}

func matchesParams(lhs, rhs []Param) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	for i := range lhs {
		if !MatchesParam(lhs[i], rhs[i]) {
			return false
		}
	}
	return true
}

func matchesMethod(lhs, rhs *MethodType) bool {
	if lhs.Overloaded != rhs.Overloaded {
		return false
	}
	if !matchesResult(lhs.Result, rhs.Result) {
		return false
	}
	if !lhs.Overloaded {
		return matchesParams(lhs.Params, rhs.Params)
	}
	if len(lhs.Overloads) != len(rhs.Overloads) {
		return false
	}
	for i := range lhs.Overloads {
		if !matchesParams(lhs.Overloads[i], rhs.Overloads[i]) {
			return false
		}
	}
	return true
}
