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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cb-lang/cb/ast"
)

func TestEnumVariantAccessWithAssociatedValue(t *testing.T) {
	t.Parallel()

	color := &ast.EnumDeclStmt{Name: "Color", Variants: []ast.EnumVariant{
		{Name: "Red"},
		{Name: "Code", Value: intLit(7)},
	}}
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{color}}, module("enum"))
	require.NoError(t, inter.Run())

	plain := inter.Eval(&ast.QualifiedNameExpr{Path: []string{"Color", "Red"}})
	ev := plain.(EnumValue)
	assert.Equal(t, "Color", ev.TypeName)
	assert.Equal(t, "Red", ev.Variant)
	assert.Nil(t, ev.Associated)

	coded := inter.Eval(&ast.QualifiedNameExpr{Path: []string{"Color", "Code"}})
	assert.Equal(t, int64(7), coded.(EnumValue).Associated.(IntValue).Value)
}

func TestEnumVariantAccessViaMemberAccessSyntax(t *testing.T) {
	t.Parallel()

	color := &ast.EnumDeclStmt{Name: "Color", Variants: []ast.EnumVariant{{Name: "Red"}}}
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{color}}, module("enum2"))
	require.NoError(t, inter.Run())

	v := inter.Eval(&ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "Color"}, Member: "Red"})
	assert.Equal(t, "Red", v.(EnumValue).Variant)
}

func TestUnknownEnumVariantThrows(t *testing.T) {
	t.Parallel()

	color := &ast.EnumDeclStmt{Name: "Color", Variants: []ast.EnumVariant{{Name: "Red"}}}
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{color}}, module("enum3"))
	require.NoError(t, inter.Run())

	assert.Panics(t, func() {
		inter.Eval(&ast.QualifiedNameExpr{Path: []string{"Color", "Purple"}})
	})
}

func TestUnionAssignmentAcceptsAnyAllowedType(t *testing.T) {
	t.Parallel()

	u := &ast.UnionDeclStmt{Name: "IntOrString", AllowedTypes: []ast.TypeAnnotation{
		{Tag: ast.TagInt}, {Tag: ast.TagString},
	}}
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{u}}, module("union"))
	require.NoError(t, inter.Run())

	v := inter.AssignUnion(u, NewIntValue(3, ast.TagInt), ast.Range{})
	assert.Equal(t, ast.TagInt, v.CurrentType)

	v2 := inter.AssignUnion(u, StringValue{Value: "x"}, ast.Range{})
	assert.Equal(t, ast.TagString, v2.CurrentType)
}

func TestUnionAssignmentRejectsDisallowedType(t *testing.T) {
	t.Parallel()

	u := &ast.UnionDeclStmt{Name: "IntOnly", AllowedTypes: []ast.TypeAnnotation{{Tag: ast.TagInt}}}
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{u}}, module("union2"))
	require.NoError(t, inter.Run())

	assert.Panics(t, func() {
		inter.AssignUnion(u, StringValue{Value: "nope"}, ast.Range{})
	})
}

// TestInterfaceViewDispatchesToImplMethod checks that a struct assigned
// to a declared interface-typed cell still dispatches its own methods,
// and that calling a method the impl doesn't provide raises
// InterfaceMethodNotFound rather than silently falling through.
func TestInterfaceViewDispatchesToImplMethod(t *testing.T) {
	t.Parallel()

	shape := &ast.StructDeclStmt{Name: "Square", Fields: []ast.StructField{{Name: "side", Type: ast.TypeAnnotation{Tag: ast.TagInt}}}}
	area := &ast.FuncDeclStmt{
		Name:       "area",
		Receiver:   "Square",
		ReturnType: ast.TypeAnnotation{Tag: ast.TagInt},
		Body: &ast.BlockStmt{Statements: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Op: "*", Left: &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "self"}, Member: "side"}, Right: &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "self"}, Member: "side"}}},
		}},
	}
	impl := &ast.ImplDeclStmt{StructName: "Square", InterfaceName: "Shape", Methods: []*ast.FuncDeclStmt{area}}

	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{shape, impl}}, module("iface"))
	require.NoError(t, inter.Run())

	sv := inter.NewStructInstance("Square", ast.Range{})
	sv.Members["side"].Value = NewIntValue(4, ast.TagInt)
	iv := inter.AssignInterfaceView("Shape", sv)

	cell := NewVariable(ast.TagInterface, "Shape")
	cell.Value = iv
	inter.scope.Declare("s", cell)

	result := inter.Eval(&ast.CallExpr{Callee: &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "s"}, Member: "area"}})
	assert.Equal(t, int64(16), result.(IntValue).Value)

	assert.Panics(t, func() {
		inter.Eval(&ast.CallExpr{Callee: &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "s"}, Member: "perimeter"}})
	})
}

// TestStructLiteralAssignmentEagerlyCreatesNestedMembers exercises the
// resolved open question (DESIGN.md): every declared member, including a
// nested struct-typed one, is allocated at struct-creation time.
func TestStructLiteralAssignmentEagerlyCreatesNestedMembers(t *testing.T) {
	t.Parallel()

	inner := &ast.StructDeclStmt{Name: "Point", Fields: []ast.StructField{
		{Name: "x", Type: ast.TypeAnnotation{Tag: ast.TagInt}},
		{Name: "y", Type: ast.TypeAnnotation{Tag: ast.TagInt}},
	}}
	outer := &ast.StructDeclStmt{Name: "Line", Fields: []ast.StructField{
		{Name: "from", Type: ast.TypeAnnotation{Tag: ast.TagStruct, Name: "Point"}},
		{Name: "to", Type: ast.TypeAnnotation{Tag: ast.TagStruct, Name: "Point"}},
	}}
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{inner, outer}}, module("nested"))
	require.NoError(t, inter.Run())

	sv := inter.NewStructInstance("Line", ast.Range{})
	require.NotNil(t, sv.Members["from"])
	fromStruct, ok := sv.Members["from"].Value.(*StructValue)
	require.True(t, ok, "nested struct member must be eagerly allocated, not left nil")
	assert.Equal(t, int64(0), fromStruct.Members["x"].Value.(IntValue).Value)

	lit := &ast.StructLiteralExpr{Fields: []ast.StructLiteralField{
		{Name: "from", Value: &ast.StructLiteralExpr{TypeName: "Point", Fields: []ast.StructLiteralField{
			{Name: "x", Value: intLit(1)}, {Name: "y", Value: intLit(2)},
		}}},
	}}
	inter.ApplyStructLiteral(sv, lit)
	assert.Equal(t, int64(1), sv.Members["from"].Value.(*StructValue).Members["x"].Value.(IntValue).Value)
}
