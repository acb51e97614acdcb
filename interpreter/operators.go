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
	"math"

	cberrors "github.com/cb-lang/cb/errors"

	"github.com/cb-lang/cb/ast"
)

// evalBinary implements the operator table of
func (inter *Interpreter) evalBinary(n *ast.BinaryExpr) Value {
	switch n.Op {
	case "&&":
		left := inter.Eval(n.Left)
		if !Truthy(left) {
			return BoolAsInt(false)
		}
		return BoolAsInt(Truthy(inter.Eval(n.Right)))
	case "||":
		left := inter.Eval(n.Left)
		if Truthy(left) {
			return BoolAsInt(true)
		}
		return BoolAsInt(Truthy(inter.Eval(n.Right)))
	}

	left := inter.Eval(n.Left)
	right := inter.Eval(n.Right)

	switch n.Op {
	case "+":
		if left.Tag() == ast.TagString || right.Tag() == ast.TagString {
			return StringValue{Value: valueToString(left) + valueToString(right)}
		}
		if lp, ok := left.(*PointerValue); ok {
			return inter.pointerAdd(lp, AsInt64(right), n.SourceRange())
		}
		if rp, ok := right.(*PointerValue); ok {
			return inter.pointerAdd(rp, AsInt64(left), n.SourceRange())
		}
		return inter.arith(n, left, right, opAdd)
	case "-":
		if lp, ok := left.(*PointerValue); ok {
			if rp, ok := right.(*PointerValue); ok {
				return NewIntValue(inter.pointerDiff(lp, rp, n.SourceRange()), ast.TagLong)
			}
			return inter.pointerAdd(lp, -AsInt64(right), n.SourceRange())
		}
		return inter.arith(n, left, right, opSub)
	case "*":
		return inter.arith(n, left, right, opMul)
	case "/":
		return inter.arith(n, left, right, opDiv)
	case "%":
		return inter.arith(n, left, right, opMod)
	case "==":
		return BoolAsInt(inter.compare(left, right) == 0)
	case "!=":
		return BoolAsInt(inter.compare(left, right) != 0)
	case "<":
		return BoolAsInt(inter.compare(left, right) < 0)
	case ">":
		return BoolAsInt(inter.compare(left, right) > 0)
	case "<=":
		return BoolAsInt(inter.compare(left, right) <= 0)
	case ">=":
		return BoolAsInt(inter.compare(left, right) >= 0)
	case "&":
		return NewIntValue(AsInt64(left)&AsInt64(right), ast.WidestInteger(left.Tag(), right.Tag()))
	case "|":
		return NewIntValue(AsInt64(left)|AsInt64(right), ast.WidestInteger(left.Tag(), right.Tag()))
	case "^":
		return NewIntValue(AsInt64(left)^AsInt64(right), ast.WidestInteger(left.Tag(), right.Tag()))
	case "<<":
		return NewIntValue(AsInt64(left)<<uint(AsInt64(right)), left.Tag())
	case ">>":
		return NewIntValue(AsInt64(left)>>uint(AsInt64(right)), left.Tag())
	default:
		panic(cberrors.New(cberrors.TypeMismatch, "unknown binary operator "+n.Op, n.SourceRange()))
	}
}

type arithOp int

const (
	opAdd arithOp = iota
	opSub
	opMul
	opDiv
	opMod
)

// arith implements +, -, *, /, % with's widening rule:
// floating if either operand is floating, else widest integer rank.
// Division/modulo by an integer zero RHS raises DivisionByZero; floating
// division follows IEEE semantics.
func (inter *Interpreter) arith(n *ast.BinaryExpr, left, right Value, op arithOp) Value {
	if left.Tag().IsFloating() || right.Tag().IsFloating() {
		a, b := AsFloat64(left), AsFloat64(right)
		resultTag := ast.WidestFloating(orFloat(left.Tag()), orFloat(right.Tag()))
		var r float64
		switch op {
		case opAdd:
			r = a + b
		case opSub:
			r = a - b
		case opMul:
			r = a * b
		case opDiv:
			r = a / b // IEEE semantics: inf/NaN on zero divisor, per
		case opMod:
			r = math.Mod(a, b)
		}
		return floatValueOfTag(r, resultTag)
	}

	a, b := AsInt64(left), AsInt64(right)
	if (op == opDiv || op == opMod) && b == 0 {
		panic(cberrors.New(cberrors.DivisionByZero, "division by zero", n.SourceRange()))
	}
	resultTag := ast.WidestInteger(left.Tag(), right.Tag())
	var r int64
	switch op {
	case opAdd:
		r = a + b
	case opSub:
		r = a - b
	case opMul:
		r = a * b
	case opDiv:
		r = a / b
	case opMod:
		r = a % b
	}
	return NewIntValue(r, resultTag)
}

func orFloat(t ast.TypeTag) ast.TypeTag {
	if t.IsFloating() {
		return t
	}
	return ast.TagDouble
}

func floatValueOfTag(r float64, tag ast.TypeTag) Value {
	switch tag {
	case ast.TagFloat:
		return FloatValue{Value: float32(r)}
	case ast.TagQuad:
		return QuadValue{Value: newBigFloat(r)}
	default:
		return DoubleValue{Value: r}
	}
}

// compare implements numeric widening and lexicographic string compare
// ( "string participates ... all comparisons ... are
// lexicographic").
func (inter *Interpreter) compare(left, right Value) int {
	if left.Tag() == ast.TagString || right.Tag() == ast.TagString {
		ls, rs := valueToString(left), valueToString(right)
		switch {
		case ls < rs:
			return -1
		case ls > rs:
			return 1
		default:
			return 0
		}
	}
	if left.Tag().IsFloating() || right.Tag().IsFloating() {
		a, b := AsFloat64(left), AsFloat64(right)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
	a, b := AsInt64(left), AsInt64(right)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func valueToString(v Value) string {
	if sv, ok := v.(StringValue); ok {
		return sv.Value
	}
	return v.String()
}

// evalUnary implements ! - +.
func (inter *Interpreter) evalUnary(n *ast.UnaryExpr) Value {
	v := inter.Eval(n.Operand)
	switch n.Op {
	case "!":
		return BoolAsInt(!Truthy(v))
	case "-":
		if v.Tag().IsFloating() {
			return floatValueOfTag(-AsFloat64(v), v.Tag())
		}
		return NewIntValue(-AsInt64(v), v.Tag())
	case "+":
		return v
	default:
		panic(cberrors.New(cberrors.TypeMismatch, "unknown unary operator "+n.Op, n.SourceRange()))
	}
}
