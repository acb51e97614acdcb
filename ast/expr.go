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

package ast

// Expr is any node the evaluator can reduce to a value. Every
// concrete expression kind has a struct below.
type Expr interface {
	HasRange
	isExpr()
}

type exprBase struct{ baseNode }

func (exprBase) isExpr() {}

// NumberExpr is an integer or floating-point literal.
type NumberExpr struct {
	exprBase
	IsFloat    bool
	IntValue   int64
	FloatValue float64
	Tag        TypeTag
}

// StringExpr is a string literal.
type StringExpr struct {
	exprBase
	Value string
}

// BoolExpr is a boolean literal.
type BoolExpr struct {
	exprBase
	Value bool
}

// VariableExpr references a name looked up via the scope chain.
type VariableExpr struct {
	exprBase
	Name string
}

// BinaryExpr covers + - * / % == != < > <= >= && || & | ^ << >>.
type BinaryExpr struct {
	exprBase
	Op          string
	Left, Right Expr
}

// UnaryExpr covers the prefix operators ! - + (logical not, negate, identity).
type UnaryExpr struct {
	exprBase
	Op      string
	Operand Expr
}

// IncDecExpr covers pre/post ++ and -- on an lvalue.
type IncDecExpr struct {
	exprBase
	Op      string // "++" or "--"
	Operand Expr
	Prefix  bool
}

// AddressOfExpr is unary &, yielding a pointer or function-pointer binding.
type AddressOfExpr struct {
	exprBase
	Operand Expr
}

// DereferenceExpr is unary *, reading (or, as an lvalue target, writing)
// through a pointer.
type DereferenceExpr struct {
	exprBase
	Operand Expr
}

// TernaryExpr is c ? a : b; exactly one of Then/Else is evaluated, and
// any side effect in the untaken branch must never occur.
type TernaryExpr struct {
	exprBase
	Cond, Then, Else Expr
}

// ErrorPropagationExpr is the `?` postfix operator: on Ok/Some yields the
// payload, on Err/None returns it from the enclosing function immediately.
type ErrorPropagationExpr struct {
	exprBase
	Operand Expr
}

// TryExpr implements `try E` / `checked E`: wraps a success
// in Result::Ok, and any thrown runtime error in Result::Err. Checked
// tags uncategorized errors CheckedError; plain try tags them Custom.
type TryExpr struct {
	exprBase
	Operand Expr
	Checked bool
}

// CallExpr is a function, method, or function-pointer call.
type CallExpr struct {
	exprBase
	// Callee is a VariableExpr (free function or function pointer),
	// MemberAccessExpr (method call recv.m(...)), or a qualified name.
	Callee Expr
	Args   []Expr
}

// MemberAccessExpr covers both `.` and `->` member access; Arrow records
// which, so the evaluator can implicitly dereference for `->`.
type MemberAccessExpr struct {
	exprBase
	Receiver Expr
	Member   string
	Arrow    bool
}

// ArrayRefExpr is `a[i]` (also used as the multi-dim subscript chain's
// innermost link: `a[i][j]` parses as ArrayRefExpr{ArrayRefExpr{a,i}, j}).
type ArrayRefExpr struct {
	exprBase
	Array Expr
	Index Expr
}

// StructLiteralField is one field in a struct literal; Name is empty for
// a positional field.
type StructLiteralField struct {
	Name  string
	Value Expr
}

// StructLiteralExpr is `{ ...fields... }`, optionally with an explicit
// type name (`Point{x: 1, y: 2}`); TypeName is resolved from the
// declaration context when empty.
type StructLiteralExpr struct {
	exprBase
	TypeName string
	Fields   []StructLiteralField
}

// ArrayLiteralExpr is `[e1, e2, ...]`, including nested literals for
// multi-dimensional arrays (`[[1,2],[3,4]]`).
type ArrayLiteralExpr struct {
	exprBase
	Elements []Expr
}

// FunctionPointerExpr is `&f` where f names a declared function, binding
// a function-pointer value.
type FunctionPointerExpr struct {
	exprBase
	FuncName string
}

// QualifiedNameExpr is `ns::name`, resolved through the namespace
// registry rather than the lexical scope chain.
type QualifiedNameExpr struct {
	exprBase
	Path []string
}
