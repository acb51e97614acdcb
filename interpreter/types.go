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
	"math/big"

	"github.com/cb-lang/cb/ast"
)

// InferredType is the (type-tag, optional type-name, is_array, dims)
// tuple returned by infer_type.
type InferredType struct {
	Tag     ast.TypeTag
	Name    string
	IsArray bool
	Dims    int
}

// InferType determines an expression's static type without evaluating
// side effects, used by the ternary evaluator and by
// assignment coercion. It is a best-effort static pass over the AST
// shape; literal and declared types are read directly, while names are
// resolved against the current scope's declarations.
func (inter *Interpreter) InferType(e ast.Expr) InferredType {
	switch n := e.(type) {
	case *ast.NumberExpr:
		if n.IsFloat {
			return InferredType{Tag: n.Tag}
		}
		return InferredType{Tag: n.Tag}
	case *ast.StringExpr:
		return InferredType{Tag: ast.TagString}
	case *ast.BoolExpr:
		return InferredType{Tag: ast.TagBool}
	case *ast.VariableExpr:
		if v, ok := inter.scope.Find(n.Name); ok {
			return InferredType{Tag: v.Type, Name: v.TypeName, IsArray: v.Type == ast.TagArray}
		}
		return InferredType{Tag: ast.TagVoid}
	case *ast.BinaryExpr:
		return inter.inferBinary(n)
	case *ast.UnaryExpr:
		return inter.InferType(n.Operand)
	case *ast.TernaryExpr:
		thenType := inter.InferType(n.Then)
		elseType := inter.InferType(n.Else)
		return CommonType(thenType, elseType)
	case *ast.DereferenceExpr:
		it := inter.InferType(n.Operand)
		return InferredType{Tag: it.Tag, Name: it.Name}
	case *ast.AddressOfExpr:
		return InferredType{Tag: ast.TagPointer}
	case *ast.ArrayRefExpr:
		arr := inter.InferType(n.Array)
		return InferredType{Tag: arr.Tag}
	case *ast.MemberAccessExpr:
		return inter.inferMember(n)
	case *ast.CallExpr:
		return inter.inferCallReturn(n)
	default:
		return InferredType{Tag: ast.TagVoid}
	}
}

func (inter *Interpreter) inferBinary(n *ast.BinaryExpr) InferredType {
	switch n.Op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return InferredType{Tag: ast.TagBool}
	default:
		left := inter.InferType(n.Left)
		right := inter.InferType(n.Right)
		return CommonType(left, right)
	}
}

func (inter *Interpreter) inferMember(n *ast.MemberAccessExpr) InferredType {
	recv := inter.InferType(n.Receiver)
	if recv.Name == "" {
		return InferredType{Tag: ast.TagVoid}
	}
	if sd, ok := inter.scope.Structs[recv.Name]; ok {
		for _, f := range sd.Fields {
			if f.Name == n.Member {
				return InferredType{Tag: f.Type.Tag, Name: f.Type.Name, IsArray: f.Type.IsArray()}
			}
		}
	}
	return InferredType{Tag: ast.TagVoid}
}

func (inter *Interpreter) inferCallReturn(n *ast.CallExpr) InferredType {
	if name, ok := calleeName(n.Callee); ok {
		if fn, ok := inter.scope.LookupFunction(name); ok {
			return InferredType{Tag: fn.ReturnType.Tag, Name: fn.ReturnType.Name, IsArray: fn.ReturnType.IsArray()}
		}
	}
	return InferredType{Tag: ast.TagVoid}
}

func calleeName(e ast.Expr) (string, bool) {
	switch n := e.(type) {
	case *ast.VariableExpr:
		return n.Name, true
	case *ast.QualifiedNameExpr:
		return n.Path[len(n.Path)-1], true
	default:
		return "", false
	}
}

// CommonType implements's mixed-arithmetic rule over its two operands:
// a string operand makes the result string; else if either operand is
// floating, the result is the widest floating type among the operands;
// otherwise the widest integer rank.
func CommonType(a, b InferredType) InferredType {
	if a.Tag == ast.TagString || b.Tag == ast.TagString {
		return InferredType{Tag: ast.TagString}
	}
	if a.Tag.IsFloating() || b.Tag.IsFloating() {
		if !a.Tag.IsFloating() {
			return InferredType{Tag: b.Tag}
		}
		if !b.Tag.IsFloating() {
			return InferredType{Tag: a.Tag}
		}
		return InferredType{Tag: ast.WidestFloating(a.Tag, b.Tag)}
	}
	if a.Tag.IsInteger() && b.Tag.IsInteger() {
		return InferredType{Tag: ast.WidestInteger(a.Tag, b.Tag)}
	}
	return a
}

// Coerce converts v to the destination tag, per assignment
// target 1's "type-coerce e to x's type". Struct/array/enum/union/
// pointer values pass through unchanged (their compatibility is checked
// structurally elsewhere); only numeric conversions happen here.
func Coerce(v Value, dstTag ast.TypeTag) Value {
	if v.Tag() == dstTag {
		return v
	}
	switch dstTag {
	case ast.TagBool, ast.TagChar, ast.TagTiny, ast.TagShort, ast.TagInt, ast.TagLong:
		if v.Tag().IsNumeric() {
			return NewIntValue(AsInt64(v), dstTag)
		}
	case ast.TagBig:
		if v.Tag().IsNumeric() {
			return BigValue{Value: big.NewInt(AsInt64(v))}
		}
	case ast.TagFloat:
		if v.Tag().IsNumeric() {
			return FloatValue{Value: float32(AsFloat64(v))}
		}
	case ast.TagDouble:
		if v.Tag().IsNumeric() {
			return DoubleValue{Value: AsFloat64(v)}
		}
	case ast.TagQuad:
		if v.Tag().IsNumeric() {
			return QuadValue{Value: big.NewFloat(AsFloat64(v))}
		}
	}
	return v
}
