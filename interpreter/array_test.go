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

func intArrayType(size int) ast.TypeAnnotation {
	return ast.TypeAnnotation{Array: &ast.ArrayTypeInfo{
		ElementType: ast.TypeAnnotation{Tag: ast.TagInt},
		Dimensions:  []ast.Dimension{{Size: size}},
	}}
}

func TestArrayDeclDefaultInitializationZerosEveryElement(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("array"))
	decl := &ast.ArrayDeclStmt{Name: "a", Type: intArrayType(4)}
	inter.Exec(decl)

	v, ok := inter.scope.Find("a")
	require.True(t, ok)
	av := v.Value.(*ArrayValue)
	require.Len(t, av.Elements, 4)
	for _, e := range av.Elements {
		assert.Equal(t, int64(0), e.Value.(IntValue).Value)
	}
}

func TestArrayLiteralAssignmentPopulatesInOrder(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("array-lit"))
	lit := &ast.ArrayLiteralExpr{Elements: []ast.Expr{intLit(1), intLit(2), intLit(3)}}
	decl := &ast.ArrayDeclStmt{Name: "a", Type: intArrayType(3), Initializer: lit}
	inter.Exec(decl)

	v, _ := inter.scope.Find("a")
	av := v.Value.(*ArrayValue)
	for i, want := range []int64{1, 2, 3} {
		assert.Equal(t, want, av.Elements[i].Value.(IntValue).Value)
	}
}

// TestMultiDimensionalArrayFlatIndexingIsRowMajor exercises the
// flat-sized multi-dimensional array representation: a[i][j] maps to
// index i*cols+j in the backing slice.
func TestMultiDimensionalArrayFlatIndexingIsRowMajor(t *testing.T) {
	t.Parallel()

	lit := &ast.ArrayLiteralExpr{Elements: []ast.Expr{
		&ast.ArrayLiteralExpr{Elements: []ast.Expr{intLit(1), intLit(2)}},
		&ast.ArrayLiteralExpr{Elements: []ast.Expr{intLit(3), intLit(4)}},
	}}
	inter := NewInterpreter(&ast.Program{}, module("matrix"))
	av := inter.evalArrayLiteral(lit, nil)

	require.Equal(t, []int{2, 2}, av.Dimensions)
	assert.Equal(t, 1, av.FlatIndex([]int{0, 1}))
	assert.Equal(t, 3, av.FlatIndex([]int{1, 1}))
	assert.Equal(t, int64(4), av.Elements[av.FlatIndex([]int{1, 1})].Value.(IntValue).Value)
}

// TestArrayFromFunctionReturnClonesShape exercises array-from-function-
// return initialization: `int[3] a = makeArray();` clones the callee's
// array rather than aliasing it.
func TestArrayFromFunctionReturnClonesShape(t *testing.T) {
	t.Parallel()

	makeArray := &ast.FuncDeclStmt{
		Name:       "makeArray",
		ReturnType: ast.TypeAnnotation{Array: &ast.ArrayTypeInfo{ElementType: ast.TypeAnnotation{Tag: ast.TagInt}, Dimensions: []ast.Dimension{{Size: 2}}}},
		Body: &ast.BlockStmt{Statements: []ast.Stmt{
			&ast.ArrayDeclStmt{Name: "tmp", Type: intArrayType(2), Initializer: &ast.ArrayLiteralExpr{Elements: []ast.Expr{intLit(7), intLit(8)}}},
			&ast.ReturnStmt{Value: &ast.VariableExpr{Name: "tmp"}},
		}},
	}
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{makeArray}}, module("ret-array"))
	require.NoError(t, inter.Run())

	decl := &ast.ArrayDeclStmt{
		Name:        "a",
		Type:        intArrayType(2),
		Initializer: &ast.CallExpr{Callee: &ast.VariableExpr{Name: "makeArray"}},
	}
	inter.Exec(decl)

	v, _ := inter.scope.Find("a")
	av := v.Value.(*ArrayValue)
	assert.Equal(t, int64(7), av.Elements[0].Value.(IntValue).Value)
	assert.Equal(t, int64(8), av.Elements[1].Value.(IntValue).Value)

	// Mutating the result must not alias the callee's now-popped local.
	av.Elements[0].Value = NewIntValue(99, ast.TagInt)
	v2, _ := inter.scope.Find("a")
	assert.Equal(t, int64(99), v2.Value.(*ArrayValue).Elements[0].Value.(IntValue).Value)
}

func TestArrayIndexOutOfBoundsThrows(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("oob"))
	decl := &ast.ArrayDeclStmt{Name: "a", Type: intArrayType(2)}
	inter.Exec(decl)

	assert.Panics(t, func() {
		inter.Eval(&ast.ArrayRefExpr{Array: &ast.VariableExpr{Name: "a"}, Index: intLit(5)})
	})
}

func TestArrayElementAssignmentWritesThroughIndex(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("assign"))
	decl := &ast.ArrayDeclStmt{Name: "a", Type: intArrayType(3)}
	inter.Exec(decl)

	assign := &ast.AssignStmt{
		Kind:   ast.AssignIndex,
		Target: &ast.ArrayRefExpr{Array: &ast.VariableExpr{Name: "a"}, Index: intLit(1)},
		Value:  intLit(42),
	}
	inter.Exec(assign)

	result := inter.Eval(&ast.ArrayRefExpr{Array: &ast.VariableExpr{Name: "a"}, Index: intLit(1)})
	assert.Equal(t, int64(42), result.(IntValue).Value)
}
