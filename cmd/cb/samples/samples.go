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

// Package samples builds, directly as ast.Program values, the literal
// end-to-end scenarios cataloged as S1-S6.
// With lexing/parsing out of scope for this repository, these
// hand-built ASTs are cmd/cb's only source of programs to run: they
// exercise the same AST contract a real parser would produce, without
// this repository having to grow one of its own.
package samples

import (
	"github.com/cb-lang/cb/ast"
	cberrors "github.com/cb-lang/cb/errors"
)

// Sample names a runnable scenario and its expected stdout, so cmd/cb
// can both execute it and report whether the observed output matched.
// ExpectedErr is non-empty for a scenario that must fail before any
// print runs (S3); the runner checks the thrown error's Variant against
// it rather than treating any failure as a pass.
type Sample struct {
	Name        string
	Program     *ast.Program
	Expected    string
	ExpectedErr cberrors.Variant
}

// All returns every cataloged sample in S1..S6 order.
func All() []Sample {
	return []Sample{
		{Name: "s1-arithmetic", Program: s1ArithmeticAndPrinting(), Expected: "7"},
		{Name: "s2-pointer-arith", Program: s2PointerArithmeticOnArray(), Expected: "40"},
		{Name: "s3-const-violation", Program: s3ConstViolation(), ExpectedErr: cberrors.ConstPointerViolation},
		{Name: "s4-struct-sync", Program: s4StructMemberSync(), Expected: "9"},
		{Name: "s5-ternary", Program: s5TernaryHeterogeneous(), Expected: "zero"},
		{Name: "s6-generic-cache", Program: s6GenericInstantiationCache(), Expected: "15"},
	}
}

func intType() ast.TypeAnnotation { return ast.TypeAnnotation{Tag: ast.TagInt} }
func stringType() ast.TypeAnnotation { return ast.TypeAnnotation{Tag: ast.TagString} }

func num(n int64) ast.Expr {
	return &ast.NumberExpr{IntValue: n, Tag: ast.TagInt}
}

func call(name string, args ...ast.Expr) ast.Expr {
	return &ast.CallExpr{Callee: &ast.VariableExpr{Name: name}, Args: args}
}

func block(stmts ...ast.Stmt) *ast.BlockStmt {
	return &ast.BlockStmt{Statements: stmts}
}

func mainFunc(body *ast.BlockStmt) *ast.Program {
	return &ast.Program{Declarations: []ast.Stmt{
		&ast.FuncDeclStmt{Name: "main", ReturnType: intType(), Body: body},
	}}
}

// s1ArithmeticAndPrinting builds:
//
//	int main(){ int a = 2; int b = 3; print(a * b + 1); return 0; }
func s1ArithmeticAndPrinting() *ast.Program {
	return mainFunc(block(
		&ast.VarDeclStmt{Name: "a", Type: intType(), Initializer: num(2)},
		&ast.VarDeclStmt{Name: "b", Type: intType(), Initializer: num(3)},
		&ast.ExprStmt{Expr: call("print", &ast.BinaryExpr{
			Op:   "+",
			Left: &ast.BinaryExpr{Op: "*", Left: &ast.VariableExpr{Name: "a"}, Right: &ast.VariableExpr{Name: "b"}},
			Right: num(1),
		})},
		&ast.ReturnStmt{Value: num(0)},
	))
}

// s2PointerArithmeticOnArray builds:
//
//	int[4] a = [10,20,30,40]; int* p = &a[1]; p = p + 2;
//	print(*p);
func s2PointerArithmeticOnArray() *ast.Program {
	arrType := ast.TypeAnnotation{
		Tag: ast.TagArray,
		Array: &ast.ArrayTypeInfo{
			ElementType: intType(),
			Dimensions:  []ast.Dimension{{Size: 4}},
		},
	}
	ptrType := ast.TypeAnnotation{Tag: ast.TagInt, PointerDepth: 1}

	return mainFunc(block(
		&ast.ArrayDeclStmt{
			Name: "a",
			Type: arrType,
			Initializer: &ast.ArrayLiteralExpr{Elements: []ast.Expr{num(10), num(20), num(30), num(40)}},
		},
		&ast.VarDeclStmt{
			Name: "p",
			Type: ptrType,
			Initializer: &ast.AddressOfExpr{Operand: &ast.ArrayRefExpr{
				Array: &ast.VariableExpr{Name: "a"},
				Index: num(1),
			}},
		},
		&ast.AssignStmt{
			Kind:   ast.AssignPlain,
			Target: &ast.VariableExpr{Name: "p"},
			Value:  &ast.BinaryExpr{Op: "+", Left: &ast.VariableExpr{Name: "p"}, Right: num(2)},
		},
		&ast.ExprStmt{Expr: call("print", &ast.DereferenceExpr{Operand: &ast.VariableExpr{Name: "p"}})},
		&ast.ReturnStmt{Value: num(0)},
	))
}

// s3ConstViolation builds:
//
//	const int x = 1; int* p = &x;
//
// Expected to fail with ConstPointerViolation before any print runs.
func s3ConstViolation() *ast.Program {
	constIntType := intType()
	constIntType.IsConst = true
	ptrType := ast.TypeAnnotation{Tag: ast.TagInt, PointerDepth: 1}

	return mainFunc(block(
		&ast.VarDeclStmt{Name: "x", Type: constIntType, Initializer: num(1)},
		&ast.VarDeclStmt{
			Name:        "p",
			Type:        ptrType,
			Initializer: &ast.AddressOfExpr{Operand: &ast.VariableExpr{Name: "x"}},
		},
		&ast.ReturnStmt{Value: num(0)},
	))
}

// s4StructMemberSync builds:
//
//	struct P { int x; int y; }
//	P a = {1, 2}; P* p = &a; p->x = 9; print(a.x);
func s4StructMemberSync() *ast.Program {
	ptrType := ast.TypeAnnotation{Tag: ast.TagStruct, Name: "P", PointerDepth: 1}

	structDecl := &ast.StructDeclStmt{Name: "P", Fields: []ast.StructField{
		{Name: "x", Type: intType()},
		{Name: "y", Type: intType()},
	}}

	main := &ast.FuncDeclStmt{Name: "main", ReturnType: intType(), Body: block(
		&ast.VarDeclStmt{
			Name: "a",
			Type: ast.TypeAnnotation{Tag: ast.TagStruct, Name: "P"},
			Initializer: &ast.StructLiteralExpr{TypeName: "P", Fields: []ast.StructLiteralField{
				{Value: num(1)},
				{Value: num(2)},
			}},
		},
		&ast.VarDeclStmt{
			Name:        "p",
			Type:        ptrType,
			Initializer: &ast.AddressOfExpr{Operand: &ast.VariableExpr{Name: "a"}},
		},
		&ast.AssignStmt{
			Kind:   ast.AssignArrow,
			Target: &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "p"}, Member: "x", Arrow: true},
			Value:  num(9),
		},
		&ast.ExprStmt{Expr: call("print", &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "a"}, Member: "x"})},
		&ast.ReturnStmt{Value: num(0)},
	)}

	return &ast.Program{Declarations: []ast.Stmt{structDecl, main}}
}

// s5TernaryHeterogeneous builds:
//
//	int main(){ int n = 0; string s = n == 0 ? "zero" : "nonzero"; print(s); return 0; }
func s5TernaryHeterogeneous() *ast.Program {
	return mainFunc(block(
		&ast.VarDeclStmt{Name: "n", Type: intType(), Initializer: num(0)},
		&ast.VarDeclStmt{
			Name: "s",
			Type: stringType(),
			Initializer: &ast.TernaryExpr{
				Cond: &ast.BinaryExpr{Op: "==", Left: &ast.VariableExpr{Name: "n"}, Right: num(0)},
				Then: &ast.StringExpr{Value: "zero"},
				Else: &ast.StringExpr{Value: "nonzero"},
			},
		},
		&ast.ExprStmt{Expr: call("print", &ast.VariableExpr{Name: "s"})},
		&ast.ReturnStmt{Value: num(0)},
	))
}

// s6GenericInstantiationCache builds:
//
//	T identity<T>(T x){ return x; }
//	int main(){ print(identity<int>(7) + identity<int>(8)); return 0; }
//
// Generic instantiation is argument-driven (see interpreter/generics.go),
// so there is no explicit <int> syntax in the AST contract: both calls
// simply pass an int argument and the cache key they produce collides,
// exercising "Generic cache idempotence".
func s6GenericInstantiationCache() *ast.Program {
	identity := &ast.FuncDeclStmt{
		Name:          "identity",
		GenericParams: []string{"T"},
		Params:        []ast.Parameter{{Name: "x", Type: ast.TypeAnnotation{Name: "T"}}},
		ReturnType:    ast.TypeAnnotation{Name: "T"},
		Body:          block(&ast.ReturnStmt{Value: &ast.VariableExpr{Name: "x"}}),
	}

	main := mainFunc(block(
		&ast.ExprStmt{Expr: call("print", &ast.BinaryExpr{
			Op:    "+",
			Left:  call("identity", num(7)),
			Right: call("identity", num(8)),
		})},
		&ast.ReturnStmt{Value: num(0)},
	))

	return &ast.Program{Declarations: append([]ast.Stmt{identity}, main.Declarations...)}
}
