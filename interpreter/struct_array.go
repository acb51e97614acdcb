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
	"github.com/cb-lang/cb/ast"
	cberrors "github.com/cb-lang/cb/errors"
)

// NewStructInstance creates a default-initialized struct of the named
// type: every declared member becomes its own default-initialized
// Variable, eagerly — including nested struct-typed members and declared
// struct arrays, which are fully allocated at struct-creation time rather
// than left unallocated until first use (see DESIGN.md).
func (inter *Interpreter) NewStructInstance(typeName string, rng ast.Range) *StructValue {
	decl, ok := inter.scope.Structs[typeName]
	if !ok {
		inter.throw(cberrors.TypeMismatch, "unknown struct type "+typeName, rng)
	}
	sv := NewStructValue(typeName)
	for _, field := range decl.Fields {
		sv.Set(field.Name, inter.defaultMember(field.Type, rng))
	}
	return sv
}

func (inter *Interpreter) defaultMember(t ast.TypeAnnotation, rng ast.Range) *Variable {
	if t.IsArray() {
		return inter.NewArrayVariable(t, nil, rng)
	}
	if t.Tag == ast.TagStruct {
		v := NewVariable(ast.TagStruct, t.Name)
		v.Value = inter.NewStructInstance(t.Name, rng)
		return v
	}
	v := NewVariable(t.Tag, t.Name)
	v.SetConst(t.IsConst)
	v.PointerDepth = t.PointerDepth
	v.SetIsPointer(t.PointerDepth > 0)
	v.SetPointeeConst(t.PointeeConst)
	v.SetPointerConst(t.PointerConst)
	if v.IsPointer() {
		v.PointerBase = t.Tag
		v.Value = NullPointer()
	}
	return v
}

// ApplyStructLiteral matches literal fields to members by name when keys
// are present, else positionally, recursing into nested structs/arrays
//.
func (inter *Interpreter) ApplyStructLiteral(sv *StructValue, lit *ast.StructLiteralExpr) {
	named := false
	for _, f := range lit.Fields {
		if f.Name != "" {
			named = true
			break
		}
	}
	if named {
		for _, f := range lit.Fields {
			cell, ok := sv.Members[f.Name]
			if !ok {
				inter.throw(cberrors.StructMemberNotFound, "struct "+sv.TypeName+" has no member "+f.Name, lit.SourceRange())
			}
			inter.assignCell(cell, f.Value)
		}
		return
	}
	for i, f := range lit.Fields {
		if i >= len(sv.Order) {
			break
		}
		cell := sv.Members[sv.Order[i]]
		inter.assignCell(cell, f.Value)
	}
}

func (inter *Interpreter) evalStructLiteral(n *ast.StructLiteralExpr) Value {
	sv := inter.NewStructInstance(n.TypeName, n.SourceRange())
	inter.ApplyStructLiteral(sv, n)
	return sv
}

// NewArrayVariable creates an array-typed Variable from its declared
// type, validating dimensions and either default-initializing or copying
// a literal.
func (inter *Interpreter) NewArrayVariable(t ast.TypeAnnotation, lit *ast.ArrayLiteralExpr, rng ast.Range) *Variable {
	v := NewVariable(ast.TagArray, "")
	if lit != nil {
		v.Value = inter.evalArrayLiteral(lit, t.Array)
		return v
	}

	dims := make([]int, len(t.Array.Dimensions))
	for i, d := range t.Array.Dimensions {
		dims[i] = d.Size
	}
	av := &ArrayValue{
		ElementTag:  t.Array.ElementType.Tag,
		ElementType: t.Array.ElementType.Name,
		Dimensions:  dims,
		IsMultiDim:  len(dims) > 1,
	}
	n := 1
	for _, d := range dims {
		n *= d
	}
	av.Elements = make([]*Variable, n)
	for i := range av.Elements {
		av.Elements[i] = inter.defaultMember(t.Array.ElementType, rng)
	}
	v.Value = av
	return v
}

// evalArrayLiteral evaluates `[e1, e2, ...]`, checking the literal's
// outer length against the declared first dimension when that size is
// known (the row lengths of a nested literal are not checked), and
// populating in row-major order. info may be nil for a literal used where no
// destination dimension is known yet (e.g. a nested sub-literal); in
// that case the literal's own shape determines the dimensions.
func (inter *Interpreter) evalArrayLiteral(lit *ast.ArrayLiteralExpr, info *ast.ArrayTypeInfo) *ArrayValue {
	if info != nil && len(info.Dimensions) > 0 && info.Dimensions[0].Size > 0 &&
		len(lit.Elements) != info.Dimensions[0].Size {
		inter.throw(cberrors.TypeMismatch, "array literal length does not match the declared size", lit.SourceRange())
	}

	// Detect nested literals (multi-dimensional) vs a flat scalar row.
	if len(lit.Elements) > 0 {
		if _, ok := lit.Elements[0].(*ast.ArrayLiteralExpr); ok {
			return inter.evalNestedArrayLiteral(lit, info)
		}
	}

	elemTag := ast.TagInt
	elemName := ""
	if info != nil {
		elemTag = info.ElementType.Tag
		elemName = info.ElementType.Name
	} else if len(lit.Elements) > 0 {
		elemTag = inter.InferType(lit.Elements[0]).Tag
	}

	av := &ArrayValue{
		ElementTag:  elemTag,
		ElementType: elemName,
		Dimensions:  []int{len(lit.Elements)},
	}
	av.Elements = make([]*Variable, len(lit.Elements))
	for i, e := range lit.Elements {
		val := inter.Eval(e)
		cell := NewVariable(elemTag, elemName)
		cell.Value = Coerce(val, elemTag)
		if sv, ok := val.(*StructValue); ok {
			cell.Type = ast.TagStruct
			cell.Value = sv
		}
		av.Elements[i] = cell
	}
	return av
}

func (inter *Interpreter) evalNestedArrayLiteral(lit *ast.ArrayLiteralExpr, info *ast.ArrayTypeInfo) *ArrayValue {
	rows := make([][]Value, len(lit.Elements))
	elemTag := ast.TagInt
	elemName := ""
	if info != nil && len(info.Dimensions) > 1 {
		elemTag = info.ElementType.Tag
		elemName = info.ElementType.Name
	}
	cols := 0
	for i, rowExpr := range lit.Elements {
		rowLit := rowExpr.(*ast.ArrayLiteralExpr)
		row := make([]Value, len(rowLit.Elements))
		for j, e := range rowLit.Elements {
			row[j] = inter.Eval(e)
			if info == nil && i == 0 && j == 0 {
				elemTag = row[j].Tag()
			}
		}
		rows[i] = row
		if len(row) > cols {
			cols = len(row)
		}
	}
	av := &ArrayValue{
		ElementTag: elemTag,
		ElementType: elemName,
		Dimensions: []int{len(lit.Elements), cols},
		IsMultiDim: true,
	}
	av.Elements = make([]*Variable, len(lit.Elements)*cols)
	idx := 0
	for _, row := range rows {
		for _, v := range row {
			cell := NewVariable(elemTag, elemName)
			cell.Value = Coerce(v, elemTag)
			av.Elements[idx] = cell
			idx++
		}
	}
	return av
}

// evalEnumAccess implements `Type::Variant`.
func (inter *Interpreter) evalEnumAccess(decl *ast.EnumDeclStmt, variant string, rng ast.Range) Value {
	for _, v := range decl.Variants {
		if v.Name == variant {
			ev := EnumValue{TypeName: decl.Name, Variant: variant}
			if v.Value != nil {
				ev.Associated = inter.Eval(v.Value)
			}
			return ev
		}
	}
	inter.throw(cberrors.TypeMismatch, "enum "+decl.Name+" has no variant "+variant, rng)
	return nil
}

// AssignUnion implements: the RHS's
// runtime type must be one of the union's allowed types; CurrentType is
// updated and the slot populated.
func (inter *Interpreter) AssignUnion(decl *ast.UnionDeclStmt, value Value, rng ast.Range) UnionValue {
	for _, allowed := range decl.AllowedTypes {
		if allowed.Tag == value.Tag() {
			if allowed.Tag == ast.TagStruct && allowed.Name != structTypeName(value) {
				continue
			}
			return UnionValue{TypeName: decl.Name, CurrentType: allowed.Tag, Payload: value}
		}
	}
	inter.throw(cberrors.UnionValueNotAllowed, "value's type is not allowed in union "+decl.Name, rng)
	return UnionValue{}
}

func structTypeName(v Value) string {
	if sv, ok := v.(*StructValue); ok {
		return sv.TypeName
	}
	return ""
}

// AssignInterfaceView implements:
// stores a struct snapshot under the declared interface tag.
func (inter *Interpreter) AssignInterfaceView(interfaceName string, structVal *StructValue) InterfaceValue {
	return InterfaceValue{InterfaceName: interfaceName, Underlying: structVal}
}
