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
	cberrors "github.com/cb-lang/cb/errors"
)

func TestTryWrapsSuccessInResultOk(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("try"))
	v := inter.Eval(&ast.TryExpr{Operand: intLit(42)})

	result, ok := v.(ResultValue)
	require.True(t, ok)
	require.True(t, result.IsOk)
	assert.Equal(t, int64(42), result.Ok.(IntValue).Value)
}

func TestTryWrapsThrownErrorInResultErrTaggedCustom(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("try-err"))
	v := inter.Eval(&ast.TryExpr{Operand: &ast.BinaryExpr{Op: "/", Left: intLit(1), Right: intLit(0)}})

	result, ok := v.(ResultValue)
	require.True(t, ok)
	require.False(t, result.IsOk)
	assert.Equal(t, cberrors.DivisionByZero, result.Err.Variant)
	assert.Equal(t, ErrorKindCustom, result.Err.Kind)
}

func TestCheckedTagsUncategorizedErrorsCheckedError(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("checked"))
	v := inter.Eval(&ast.TryExpr{
		Checked: true,
		Operand: &ast.VariableExpr{Name: "missing"},
	})

	result, ok := v.(ResultValue)
	require.True(t, ok)
	require.False(t, result.IsOk)
	assert.Equal(t, cberrors.UndefinedVariable, result.Err.Variant)
	assert.Equal(t, ErrorKindChecked, result.Err.Kind)
}

// TestErrorPropagationYieldsOkPayload exercises the happy half of `?`:
// Result::Ok(v)? reduces to v without touching the enclosing function.
func TestErrorPropagationYieldsOkPayload(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("propagate"))
	cell := NewVariable(ast.TagUnion, "Result")
	cell.Value = ResultValue{IsOk: true, Ok: NewIntValue(5, ast.TagInt)}
	inter.scope.Declare("r", cell)

	v := inter.Eval(&ast.ErrorPropagationExpr{Operand: &ast.VariableExpr{Name: "r"}})
	assert.Equal(t, int64(5), v.(IntValue).Value)
}

// TestErrorPropagationReturnsErrFromEnclosingFunction exercises the
// early-return half: inside a function body, `r?` on an Err makes the
// whole call return that Err immediately, skipping the statements after
// it.
func TestErrorPropagationReturnsErrFromEnclosingFunction(t *testing.T) {
	t.Parallel()

	fn := &ast.FuncDeclStmt{
		Name:   "pick",
		Params: []ast.Parameter{{Name: "r", Type: ast.TypeAnnotation{Tag: ast.TagUnion, Name: "Result"}}},
		Body: &ast.BlockStmt{Statements: []ast.Stmt{
			&ast.ExprStmt{Expr: &ast.ErrorPropagationExpr{Operand: &ast.VariableExpr{Name: "r"}}},
			&ast.ReturnStmt{Value: intLit(1)},
		}},
	}
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{fn}}, module("propagate-err"))
	require.NoError(t, inter.Run())

	errResult := ResultValue{IsOk: false, Err: RuntimeErrorValue{Variant: cberrors.RuntimeGeneric, Kind: ErrorKindCustom, Message: "boom"}}
	got, err := inter.Invoke("pick", errResult)
	require.NoError(t, err)

	returned, ok := got.(ResultValue)
	require.True(t, ok, "the Err itself must be the function's return value")
	assert.False(t, returned.IsOk)
	assert.Equal(t, "boom", returned.Err.Message)

	okResult := ResultValue{IsOk: true, Ok: NewIntValue(9, ast.TagInt)}
	got, err = inter.Invoke("pick", okResult)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.(IntValue).Value, "an Ok operand falls through to the next statement")
}

func TestErrorPropagationOnOptionNone(t *testing.T) {
	t.Parallel()

	fn := &ast.FuncDeclStmt{
		Name:   "unwrap",
		Params: []ast.Parameter{{Name: "o", Type: ast.TypeAnnotation{Tag: ast.TagUnion, Name: "Option"}}},
		Body: &ast.BlockStmt{Statements: []ast.Stmt{
			&ast.ReturnStmt{Value: &ast.ErrorPropagationExpr{Operand: &ast.VariableExpr{Name: "o"}}},
		}},
	}
	inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{fn}}, module("option"))
	require.NoError(t, inter.Run())

	got, err := inter.Invoke("unwrap", OptionValue{HasValue: false})
	require.NoError(t, err)
	returned, ok := got.(OptionValue)
	require.True(t, ok)
	assert.False(t, returned.HasValue)

	got, err = inter.Invoke("unwrap", OptionValue{HasValue: true, Some: NewIntValue(3, ast.TagInt)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.(IntValue).Value)
}
