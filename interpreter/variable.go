/*
 * Cb - a statically typed, C-family interpreted systems language
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package interpreter

import (
	"strings"

	"github.com/bits-and-blooms/bitset"

	"github.com/cb-lang/cb/ast"
)

// Qualifier flag indices packed into Variable.flags, per
// (bits-and-blooms/bitset replaces eight separate bool fields).
const (
	flagConst = iota
	flagAssigned
	flagReference
	flagPointer
	flagPointeeConst
	flagPointerConst
	flagStatic
	flagUnsigned
)

// VarHandle is an opaque reference to a Variable cell: which scope it
// lives in and what name it is bound under. Pointers hold a VarHandle
// (or a derived ArrayElementHandle/StructMemberHandle) instead of an
// integer address.
type VarHandle struct {
	ScopeID int
	Name    string
	Cell    *Variable
}

// Variable is the runtime cell described in Type tag is
// authoritative: Value's concrete type always matches Type, and only the
// slot the tag authorizes is touched by any operation.
type Variable struct {
	Type     ast.TypeTag
	TypeName string // struct/enum/union/interface type name, when applicable
	Value    Value

	flags bitset.BitSet

	PointerDepth int
	PointerBase  ast.TypeTag // element type pointed to, when Type == TagPointer

	// Referent is set only when flagReference is set: the handle of the
	// variable this reference aliases. Every read/write dereferences it
	// once.
	Referent *VarHandle

	// parentPath names a nested member or element cell's place within
	// its owning struct/array. Nothing sets or reads it; nested cells are
	// reached through the owning StructValue/ArrayValue.
	parentPath string

	// DeclScopeID is the id of the scope this cell was declared in, used
	// for best-effort dangling-pointer detection ( "Pointer
	// lifetime"). 0 (the global scope, never popped) for every cell that
	// outlives the function that created it, e.g. struct/array elements
	// reachable only via the global scope.
	DeclScopeID int
}

func NewVariable(tag ast.TypeTag, typeName string) *Variable {
	v := &Variable{Type: tag, TypeName: typeName}
	v.Value = ZeroValue(tag, typeName)
	return v
}

func (v *Variable) IsConst() bool        { return v.flags.Test(flagConst) }
func (v *Variable) SetConst(b bool)      { v.setFlag(flagConst, b) }
func (v *Variable) IsAssigned() bool     { return v.flags.Test(flagAssigned) }
func (v *Variable) SetAssigned(b bool)   { v.setFlag(flagAssigned, b) }
func (v *Variable) IsReference() bool    { return v.flags.Test(flagReference) }
func (v *Variable) SetReference(b bool)  { v.setFlag(flagReference, b) }
func (v *Variable) IsPointer() bool      { return v.flags.Test(flagPointer) }
func (v *Variable) SetIsPointer(b bool)  { v.setFlag(flagPointer, b) }
func (v *Variable) PointeeConst() bool   { return v.flags.Test(flagPointeeConst) }
func (v *Variable) SetPointeeConst(b bool) { v.setFlag(flagPointeeConst, b) }
func (v *Variable) PointerConst() bool   { return v.flags.Test(flagPointerConst) }
func (v *Variable) SetPointerConst(b bool) { v.setFlag(flagPointerConst, b) }
func (v *Variable) IsStatic() bool       { return v.flags.Test(flagStatic) }
func (v *Variable) SetStatic(b bool)     { v.setFlag(flagStatic, b) }
func (v *Variable) Unsigned() bool       { return v.flags.Test(flagUnsigned) }
func (v *Variable) SetUnsigned(b bool)   { v.setFlag(flagUnsigned, b) }

func (v *Variable) setFlag(i uint, b bool) {
	if b {
		v.flags.Set(i)
	} else {
		v.flags.Clear(i)
	}
}

// ZeroValue returns the default-initialized Value for a declared type
//.
func ZeroValue(tag ast.TypeTag, typeName string) Value {
	switch tag {
	case ast.TagBool, ast.TagChar, ast.TagTiny, ast.TagShort, ast.TagInt, ast.TagLong:
		return NewIntValue(0, tag)
	case ast.TagBig:
		return BigValue{Value: newBigInt(0)}
	case ast.TagFloat:
		return FloatValue{}
	case ast.TagDouble:
		return DoubleValue{}
	case ast.TagQuad:
		return QuadValue{Value: newBigFloat(0)}
	case ast.TagString:
		return StringValue{}
	case ast.TagPointer:
		return &PointerValue{Metadata: &PointerMetadata{Variant: PointerNull}}
	default:
		return NullValue{}
	}
}

// StructValue holds a struct's members in declaration order, keyed by
// name, so iteration for literal assignment and stringification is
// deterministic ( "an ordered mapping from member name to
// nested Variable").
type StructValue struct {
	valueBase
	TypeName string
	Order    []string
	Members  map[string]*Variable
}

func NewStructValue(typeName string) *StructValue {
	return &StructValue{TypeName: typeName, Members: map[string]*Variable{}}
}

func (s *StructValue) Tag() ast.TypeTag { return ast.TagStruct }

func (s *StructValue) String() string {
	var sb strings.Builder
	sb.WriteString(s.TypeName)
	sb.WriteString("{")
	for i, name := range s.Order {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(s.Members[name].Value.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// Set inserts a member, recording insertion order once.
func (s *StructValue) Set(name string, v *Variable) {
	if _, exists := s.Members[name]; !exists {
		s.Order = append(s.Order, name)
	}
	s.Members[name] = v
}

// Clone performs a deep copy, used for struct-literal assignment, struct
// snapshots carried by Return, and self-mutation sync-back bookkeeping.
func (s *StructValue) Clone() *StructValue {
	clone := NewStructValue(s.TypeName)
	clone.Order = append([]string(nil), s.Order...)
	for k, v := range s.Members {
		nv := *v
		nv.flags = *v.flags.Clone()
		if sv, ok := v.Value.(*StructValue); ok {
			nv.Value = sv.Clone()
		} else if av, ok := v.Value.(*ArrayValue); ok {
			nv.Value = av.Clone()
		}
		clone.Members[k] = &nv
	}
	return clone
}

// ArrayValue is a (possibly multi-dimensional) array's storage: a flat,
// row-major slice of element cells plus the declared dimension list
//.
type ArrayValue struct {
	valueBase
	ElementTag     ast.TypeTag
	ElementType    string // struct/enum/union type name, when elements are composite
	Dimensions     []int
	IsMultiDim     bool
	Elements       []*Variable
}

func (a *ArrayValue) Tag() ast.TypeTag { return ast.TagArray }

func (a *ArrayValue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, e := range a.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Value.String())
	}
	sb.WriteString("]")
	return sb.String()
}

func (a *ArrayValue) Len() int {
	n := 1
	for _, d := range a.Dimensions {
		n *= d
	}
	return n
}

// Clone deep-copies the array, used by array-literal and array-from-
// function-return assignment.
func (a *ArrayValue) Clone() *ArrayValue {
	clone := &ArrayValue{
		ElementTag:  a.ElementTag,
		ElementType: a.ElementType,
		Dimensions:  append([]int(nil), a.Dimensions...),
		IsMultiDim:  a.IsMultiDim,
		Elements:    make([]*Variable, len(a.Elements)),
	}
	for i, e := range a.Elements {
		nv := *e
		nv.flags = *e.flags.Clone()
		if sv, ok := e.Value.(*StructValue); ok {
			nv.Value = sv.Clone()
		}
		clone.Elements[i] = &nv
	}
	return clone
}

// FlatIndex computes the row-major flat index for a multi-dimensional
// subscript chain ( "flat-sized multi-dimensional arrays use
// a single vector with row-major indexing").
func (a *ArrayValue) FlatIndex(indices []int) int {
	flat := 0
	for i, idx := range indices {
		stride := 1
		for j := i + 1; j < len(a.Dimensions); j++ {
			stride *= a.Dimensions[j]
		}
		flat += idx * stride
	}
	return flat
}
