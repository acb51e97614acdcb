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

	"github.com/cb-lang/cb/ast"
)

func TestTruthy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"nonzero int", NewIntValue(3, ast.TagInt), true},
		{"zero int", NewIntValue(0, ast.TagInt), false},
		{"nonzero double", DoubleValue{Value: 0.5}, true},
		{"zero double", DoubleValue{Value: 0}, false},
		{"nonempty string", StringValue{Value: "x"}, true},
		{"empty string", StringValue{Value: ""}, false},
		{"null pointer", NullPointer(), false},
		{"null value", NullValue{}, false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, c.want, Truthy(c.v))
		})
	}
}

func TestZeroValueDefaults(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(0), ZeroValue(ast.TagInt, "").(IntValue).Value)
	assert.Equal(t, float64(0), ZeroValue(ast.TagDouble, "").(DoubleValue).Value)
	assert.Equal(t, "", ZeroValue(ast.TagString, "").(StringValue).Value)
	assert.Equal(t, PointerNull, ZeroValue(ast.TagPointer, "").(*PointerValue).Metadata.Variant)
}

func TestCoerceWidensNumericToDeclaredType(t *testing.T) {
	t.Parallel()

	coerced := Coerce(NewIntValue(7, ast.TagInt), ast.TagDouble)
	assert.Equal(t, float64(7), coerced.(DoubleValue).Value)

	narrowed := Coerce(DoubleValue{Value: 9.9}, ast.TagInt)
	assert.Equal(t, int64(9), narrowed.(IntValue).Value)
}

func TestCommonTypePrefersFloatingOverInteger(t *testing.T) {
	t.Parallel()

	common := CommonType(InferredType{Tag: ast.TagInt}, InferredType{Tag: ast.TagDouble})
	assert.Equal(t, ast.TagDouble, common.Tag)
}

func TestCommonTypeWidestIntegerRank(t *testing.T) {
	t.Parallel()

	common := CommonType(InferredType{Tag: ast.TagShort}, InferredType{Tag: ast.TagLong})
	assert.Equal(t, ast.TagLong, common.Tag)
}

func TestCommonTypeStringWinsOverNumeric(t *testing.T) {
	t.Parallel()

	common := CommonType(InferredType{Tag: ast.TagString}, InferredType{Tag: ast.TagInt})
	assert.Equal(t, ast.TagString, common.Tag)
}

// TestArithmeticWideningViaEval checks that `1 + 2.5` widens to the
// floating family per the mixed-arithmetic rule.
func TestArithmeticWideningViaEval(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("arith"))
	expr := &ast.BinaryExpr{
		Op:   "+",
		Left: intLit(1),
		Right: &ast.NumberExpr{IsFloat: true, FloatValue: 2.5, Tag: ast.TagDouble},
	}
	result := inter.Eval(expr)
	assert.Equal(t, ast.TagDouble, result.Tag())
	assert.Equal(t, 3.5, result.(DoubleValue).Value)
}

func TestStringConcatenationViaEval(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("strings"))
	expr := &ast.BinaryExpr{
		Op:    "+",
		Left:  &ast.StringExpr{Value: "foo"},
		Right: &ast.StringExpr{Value: "bar"},
	}
	result := inter.Eval(expr)
	assert.Equal(t, "foobar", result.(StringValue).Value)
}

func TestComparisonIsLexicographicForStrings(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("cmp"))
	expr := &ast.BinaryExpr{
		Op:    "<",
		Left:  &ast.StringExpr{Value: "apple"},
		Right: &ast.StringExpr{Value: "banana"},
	}
	result := inter.Eval(expr)
	assert.Equal(t, int64(1), result.(IntValue).Value)
}

func TestDivisionByZeroThrows(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("div"))
	expr := &ast.BinaryExpr{Op: "%", Left: intLit(5), Right: intLit(0)}

	assert.Panics(t, func() { inter.Eval(expr) })
}

func TestLogicalAndShortCircuits(t *testing.T) {
	t.Parallel()

	inter := NewInterpreter(&ast.Program{}, module("shortcircuit"))
	// 0 && (1/0) must not evaluate the right operand.
	expr := &ast.BinaryExpr{
		Op:   "&&",
		Left: intLit(0),
		Right: &ast.BinaryExpr{Op: "/", Left: intLit(1), Right: intLit(0)},
	}
	assert.NotPanics(t, func() {
		result := inter.Eval(expr)
		assert.Equal(t, int64(0), result.(IntValue).Value)
	})
}
