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

// Eval is the expression evaluator's entry point: a recursive
// dispatch over every expression kind.
func (inter *Interpreter) Eval(e ast.Expr) Value {
	switch n := e.(type) {
	case *ast.NumberExpr:
		if n.IsFloat {
			return floatValueOfTag(n.FloatValue, n.Tag)
		}
		return NewIntValue(n.IntValue, n.Tag)

	case *ast.StringExpr:
		return StringValue{Value: n.Value}

	case *ast.BoolExpr:
		return BoolAsInt(n.Value)

	case *ast.VariableExpr:
		return inter.evalVariable(n)

	case *ast.BinaryExpr:
		return inter.evalBinary(n)

	case *ast.UnaryExpr:
		return inter.evalUnary(n)

	case *ast.IncDecExpr:
		return inter.evalIncDec(n)

	case *ast.AddressOfExpr:
		return inter.evalAddressOf(n)

	case *ast.DereferenceExpr:
		return inter.evalDereference(n)

	case *ast.TernaryExpr:
		return inter.evalTernary(n)

	case *ast.ErrorPropagationExpr:
		return inter.evalErrorPropagation(n)

	case *ast.TryExpr:
		return inter.evalTry(n)

	case *ast.CallExpr:
		return inter.evalCall(n)

	case *ast.MemberAccessExpr:
		return inter.evalMemberAccess(n)

	case *ast.ArrayRefExpr:
		return inter.evalArrayRef(n)

	case *ast.StructLiteralExpr:
		return inter.evalStructLiteral(n)

	case *ast.ArrayLiteralExpr:
		return inter.evalArrayLiteral(n, nil)

	case *ast.FunctionPointerExpr:
		return inter.evalFunctionPointerExpr(n)

	case *ast.QualifiedNameExpr:
		return inter.evalQualifiedName(n)

	default:
		inter.throw(cberrors.TypeMismatch, "unsupported expression kind", e.SourceRange())
		return nil
	}
}

func (inter *Interpreter) evalVariable(n *ast.VariableExpr) Value {
	v, ok := inter.scope.Find(n.Name)
	if !ok {
		// Enum type access (Type::Variant) is spelled as a
		// QualifiedNameExpr by the parser; a bare name that isn't a
		// variable is always UndefinedVariable here.
		inter.throwUndefinedVariable(n.Name, n.SourceRange())
	}
	v = inter.followReference(v, n.SourceRange())
	return v.Value
}

func (inter *Interpreter) evalAddressOf(n *ast.AddressOfExpr) Value {
	// "for a function name, yields a function-pointer binding"
	//.
	if ve, ok := n.Operand.(*ast.VariableExpr); ok {
		if _, isVar := inter.scope.Find(ve.Name); !isVar {
			if fn, isFunc := inter.scope.LookupFunction(ve.Name); isFunc {
				return FunctionPointerValue{FuncName: ve.Name, Decl: fn, ReturnType: fn.ReturnType}
			}
		}
	}
	p := inter.addressOf(n.Operand)
	return p
}

// evalDereference implements: for struct pointers it
// returns the struct snapshot (tagged struct(Name), retaining the base
// cell so chained .m access composes); for scalars it reads through the
// element type; null raises NullPointer.
func (inter *Interpreter) evalDereference(n *ast.DereferenceExpr) Value {
	ptr := inter.evalPointerOperand(n.Operand)
	cell := inter.pointerTargetVariable(ptr, n.SourceRange())
	return cell.Value
}

func (inter *Interpreter) evalMemberAccess(n *ast.MemberAccessExpr) Value {
	// Qualified enum access Type::Variant arrives as a MemberAccessExpr
	// when the receiver names a declared enum rather than a variable.
	if ve, ok := n.Receiver.(*ast.VariableExpr); ok && !n.Arrow {
		if _, isVar := inter.scope.Find(ve.Name); !isVar {
			if ed, isEnum := inter.scope.Enums[ve.Name]; isEnum {
				return inter.evalEnumAccess(ed, n.Member, n.SourceRange())
			}
		}
	}
	cell := inter.resolveLValue(n)
	return cell.Value
}

func (inter *Interpreter) evalArrayRef(n *ast.ArrayRefExpr) Value {
	if cell, idx, ok := inter.stringIndexTarget(n); ok {
		return inter.stringCharAt(cell, idx, n.SourceRange())
	}
	cell := inter.resolveLValue(n)
	return cell.Value
}

func (inter *Interpreter) evalFunctionPointerExpr(n *ast.FunctionPointerExpr) Value {
	fn, ok := inter.scope.LookupFunction(n.FuncName)
	if !ok {
		inter.throw(cberrors.FunctionNotFound, "function not found: "+n.FuncName, n.SourceRange())
	}
	return FunctionPointerValue{FuncName: n.FuncName, Decl: fn, ReturnType: fn.ReturnType}
}

func (inter *Interpreter) evalQualifiedName(n *ast.QualifiedNameExpr) Value {
	if len(n.Path) == 2 {
		if ed, ok := inter.scope.Enums[n.Path[0]]; ok {
			return inter.evalEnumAccess(ed, n.Path[1], n.SourceRange())
		}
	}
	qualified := inter.namespaces.Resolve(n.Path, nil)
	fn, ok := inter.scope.LookupFunction(qualified)
	if !ok {
		inter.throw(cberrors.FunctionNotFound, "function not found: "+qualified, n.SourceRange())
	}
	return FunctionPointerValue{FuncName: qualified, Decl: fn, ReturnType: fn.ReturnType}
}
