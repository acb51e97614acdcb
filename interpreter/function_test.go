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

// TestReferenceParameterAliasesCallersCell exercises reference binding: a
// `T&` parameter mutated inside the callee is visible through the
// caller's own lvalue afterward.
func TestReferenceParameterAliasesCallersCell(t *testing.T) {
	t.Parallel()

	incr := &ast.FuncDeclStmt{
		Name:   "incr",
		Params: []ast.Parameter{{Name: "x", Type: ast.TypeAnnotation{Tag: ast.TagInt, IsReference: true}}},
		Body: &ast.BlockStmt{Statements: []ast.Stmt{
			&ast.AssignStmt{Kind: ast.AssignPlain, Target: &ast.VariableExpr{Name: "x"}, Value: &ast.BinaryExpr{Op: "+", Left: &ast.VariableExpr{Name: "x"}, Right: intLit(1)}},
		}},
	}
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{incr}}, module("ref"))
	require.NoError(t, inter.Run())

	inter.scope.Declare("n", NewVariable(ast.TagInt, ""))
	inter.Eval(&ast.CallExpr{Callee: &ast.VariableExpr{Name: "incr"}, Args: []ast.Expr{&ast.VariableExpr{Name: "n"}}})

	v, _ := inter.scope.Find("n")
	assert.Equal(t, int64(1), v.Value.(IntValue).Value)
}

// TestMethodCallMutatesReceiverThroughSelf checks that a method
// mutating a struct member through `self` must be visible at the call
// site, since `self` binds a reference to the caller's own cell.
func TestMethodCallMutatesReceiverThroughSelf(t *testing.T) {
	t.Parallel()

	counter := &ast.StructDeclStmt{Name: "Counter", Fields: []ast.StructField{{Name: "n", Type: ast.TypeAnnotation{Tag: ast.TagInt}}}}
	bump := &ast.FuncDeclStmt{
		Name:     "bump",
		Receiver: "Counter",
		Body: &ast.BlockStmt{Statements: []ast.Stmt{
			&ast.AssignStmt{
				Kind:   ast.AssignMember,
				Target: &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "self"}, Member: "n"},
				Value:  &ast.BinaryExpr{Op: "+", Left: &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "self"}, Member: "n"}, Right: intLit(1)},
			},
		}},
	}
	impl := &ast.ImplDeclStmt{StructName: "Counter", Methods: []*ast.FuncDeclStmt{bump}}

	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{counter, impl}}, module("method"))
	require.NoError(t, inter.Run())

	cell := NewVariable(ast.TagStruct, "Counter")
	cell.Value = inter.NewStructInstance("Counter", ast.Range{})
	inter.scope.Declare("c", cell)

	inter.Eval(&ast.CallExpr{Callee: &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "c"}, Member: "bump"}})
	inter.Eval(&ast.CallExpr{Callee: &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "c"}, Member: "bump"}})

	v, _ := inter.scope.Find("c")
	sv := v.Value.(*StructValue)
	assert.Equal(t, int64(2), sv.Members["n"].Value.(IntValue).Value)
}

// genericIdentityDecl builds `T identity<T>(T x) { return x; }`, spelled
// the way the AST contract marks an unresolved generic occurrence: a
// parameter type with an empty Tag and Name == the generic parameter.
func genericIdentityDecl() *ast.FuncDeclStmt {
	return &ast.FuncDeclStmt{
		Name:          "identity",
		GenericParams: []string{"T"},
		Params:        []ast.Parameter{{Name: "x", Type: ast.TypeAnnotation{Name: "T"}}},
		ReturnType:    ast.TypeAnnotation{Name: "T"},
		Body: &ast.BlockStmt{Statements: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.VariableExpr{Name: "x"}},
		}},
	}
}

// TestGenericFunctionInstantiationCacheIdempotent exercises S6: calling a
// generic function twice with the same concrete type resolves the same
// cache entry rather than growing the binding table.
func TestGenericFunctionInstantiationCacheIdempotent(t *testing.T) {
	t.Parallel()

	fn := genericIdentityDecl()
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{fn}}, module("generic"))
	require.NoError(t, inter.Run())

	r1, err := inter.Invoke("identity", NewIntValue(9, ast.TagInt))
	require.NoError(t, err)
	r2, err := inter.Invoke("identity", NewIntValue(41, ast.TagInt))
	require.NoError(t, err)

	assert.Equal(t, int64(9), r1.(IntValue).Value)
	assert.Equal(t, int64(41), r2.(IntValue).Value)
	assert.Len(t, inter.generics.bindings, 1, "both calls bind T=int, so only one instantiation key is ever cached")
}

// TestGenericFunctionDistinctTypesGetDistinctCacheEntries checks the
// complementary case: instantiating with a different concrete type adds
// a second cache entry rather than colliding with the first.
func TestGenericFunctionDistinctTypesGetDistinctCacheEntries(t *testing.T) {
	t.Parallel()

	fn := genericIdentityDecl()
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{fn}}, module("generic2"))
	require.NoError(t, inter.Run())

	_, err := inter.Invoke("identity", NewIntValue(1, ast.TagInt))
	require.NoError(t, err)
	_, err = inter.Invoke("identity", StringValue{Value: "s"})
	require.NoError(t, err)

	assert.Len(t, inter.generics.bindings, 2)
}

func TestFunctionPointerCallThroughVariable(t *testing.T) {
	t.Parallel()

	fn := addDecl()
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{fn}}, module("fp"))
	require.NoError(t, inter.Run())

	fp := inter.Eval(&ast.FunctionPointerExpr{FuncName: "add"})
	inter.scope.DeclareFunctionPointer("op", fp.(FunctionPointerValue))

	result := inter.Eval(&ast.CallExpr{
		Callee: &ast.VariableExpr{Name: "op"},
		Args:   []ast.Expr{intLit(3), intLit(4)},
	})
	assert.Equal(t, int64(7), result.(IntValue).Value)
}

func TestUndeclaredFunctionCallThrowsFunctionNotFound(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("missing"))
	assert.Panics(t, func() {
		inter.Eval(&ast.CallExpr{Callee: &ast.VariableExpr{Name: "ghost"}})
	})
}
