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

func declString(inter *Interpreter, name, value string) {
	cell := NewVariable(ast.TagString, "")
	cell.Value = StringValue{Value: value}
	cell.SetAssigned(true)
	inter.scope.Declare(name, cell)
}

func TestStringIndexReadsCharacterNotByte(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("str"))
	declString(inter, "s", "héllo")

	v := inter.Eval(&ast.ArrayRefExpr{Array: &ast.VariableExpr{Name: "s"}, Index: intLit(1)})
	assert.Equal(t, "é", v.(StringValue).Value, "index 1 is the second character, not the second byte")
}

func TestStringIndexAssignmentReplacesCharacter(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("str-assign"))
	declString(inter, "s", "cat")

	inter.Exec(&ast.AssignStmt{
		Kind:   ast.AssignIndex,
		Target: &ast.ArrayRefExpr{Array: &ast.VariableExpr{Name: "s"}, Index: intLit(0)},
		Value:  &ast.StringExpr{Value: "b"},
	})

	v, ok := inter.scope.Find("s")
	require.True(t, ok)
	assert.Equal(t, "bat", v.Value.(StringValue).Value)
}

func TestStringIndexAssignmentPreservesMultibyteNeighbors(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("str-mb"))
	declString(inter, "s", "héllo")

	inter.Exec(&ast.AssignStmt{
		Kind:   ast.AssignIndex,
		Target: &ast.ArrayRefExpr{Array: &ast.VariableExpr{Name: "s"}, Index: intLit(4)},
		Value:  &ast.StringExpr{Value: "a"},
	})

	v, _ := inter.scope.Find("s")
	assert.Equal(t, "hélla", v.Value.(StringValue).Value)
}

func TestStringIndexOutOfBoundsThrows(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("str-oob"))
	declString(inter, "s", "ab")

	assert.Panics(t, func() {
		inter.Eval(&ast.ArrayRefExpr{Array: &ast.VariableExpr{Name: "s"}, Index: intLit(9)})
	})
}
