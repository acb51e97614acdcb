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

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/cb-lang/cb/ast"
	cberrors "github.com/cb-lang/cb/errors"
)

// Property-based checks for the universal invariants: each property
// builds a fresh interpreter, drives it with generated inputs, and
// asserts the invariant held regardless of the values chosen.

func TestScopeBalanceInvariant(t *testing.T) {

	properties := gopter.NewProperties(nil)

	properties.Property("scope depth is unchanged whether a statement completes or unwinds", prop.ForAll(
		func(depth int, returns bool) bool {
			inter := NewInterpreter(&ast.Program{}, module("prop-scope"))

			var innermost []ast.Stmt
			if returns {
				innermost = []ast.Stmt{&ast.ReturnStmt{Value: intLit(1)}}
			}
			stmt := ast.Stmt(&ast.BlockStmt{Statements: innermost})
			for i := 0; i < depth; i++ {
				stmt = &ast.BlockStmt{Statements: []ast.Stmt{stmt}}
			}

			before := inter.scope.Depth()
			func() {
				defer func() {
					// A Return unwinding out of a bare block is recovered
					// here the way invokeBody would.
					_ = recover()
				}()
				inter.Exec(stmt)
			}()
			return inter.scope.Depth() == before
		},
		gen.IntRange(0, 6),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestPointerRoundTripInvariant(t *testing.T) {

	properties := gopter.NewProperties(nil)

	properties.Property("*(&x) == x, and writes through &x are observed by x", prop.ForAll(
		func(v int64, w int64) bool {
			inter := NewInterpreter(&ast.Program{}, module("prop-ptr"))
			cell := NewVariable(ast.TagInt, "")
			cell.Value = NewIntValue(v, ast.TagInt)
			inter.scope.Declare("x", cell)

			read := inter.Eval(&ast.DereferenceExpr{
				Operand: &ast.AddressOfExpr{Operand: &ast.VariableExpr{Name: "x"}},
			})
			if read.(IntValue).Value != v {
				return false
			}

			ptr := inter.Eval(&ast.AddressOfExpr{Operand: &ast.VariableExpr{Name: "x"}}).(*PointerValue)
			inter.pointerTargetVariable(ptr, ast.Range{}).Value = NewIntValue(w, ast.TagInt)
			got, _ := inter.scope.Find("x")
			return got.Value.(IntValue).Value == w
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestArithmeticClosureInvariant(t *testing.T) {

	properties := gopter.NewProperties(nil)

	properties.Property("integer operands yield the widest integer rank", prop.ForAll(
		func(a int64, b int64) bool {
			inter := NewInterpreter(&ast.Program{}, module("prop-arith"))
			result := inter.Eval(&ast.BinaryExpr{
				Op:    "+",
				Left:  &ast.NumberExpr{IntValue: a, Tag: ast.TagShort},
				Right: &ast.NumberExpr{IntValue: b, Tag: ast.TagLong},
			})
			iv, ok := result.(IntValue)
			return ok && iv.Tag() == ast.TagLong && iv.Value == a+b
		},
		gen.Int64Range(-1<<30, 1<<30),
		gen.Int64Range(-1<<30, 1<<30),
	))

	properties.Property("one floating operand makes the result floating", prop.ForAll(
		func(a int64, b float64) bool {
			inter := NewInterpreter(&ast.Program{}, module("prop-arith-f"))
			result := inter.Eval(&ast.BinaryExpr{
				Op:    "*",
				Left:  &ast.NumberExpr{IntValue: a, Tag: ast.TagInt},
				Right: &ast.NumberExpr{IsFloat: true, FloatValue: b, Tag: ast.TagDouble},
			})
			dv, ok := result.(DoubleValue)
			return ok && dv.Value == float64(a)*b
		},
		gen.Int64Range(-1000, 1000),
		gen.Float64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}

func TestTernaryLazinessInvariant(t *testing.T) {

	properties := gopter.NewProperties(nil)

	properties.Property("exactly one branch's side effect occurs", prop.ForAll(
		func(cond bool) bool {
			inter := NewInterpreter(&ast.Program{}, module("prop-ternary"))
			inter.scope.Declare("taken", NewVariable(ast.TagInt, ""))
			inter.scope.Declare("untaken", NewVariable(ast.TagInt, ""))

			inter.Eval(&ast.TernaryExpr{
				Cond: &ast.BoolExpr{Value: cond},
				Then: &ast.IncDecExpr{Op: "++", Operand: &ast.VariableExpr{Name: "taken"}, Prefix: true},
				Else: &ast.IncDecExpr{Op: "++", Operand: &ast.VariableExpr{Name: "untaken"}, Prefix: true},
			})

			taken, _ := inter.scope.Find("taken")
			untaken, _ := inter.scope.Find("untaken")
			if cond {
				return taken.Value.(IntValue).Value == 1 && untaken.Value.(IntValue).Value == 0
			}
			return taken.Value.(IntValue).Value == 0 && untaken.Value.(IntValue).Value == 1
		},
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestConstEnforcementInvariant(t *testing.T) {

	properties := gopter.NewProperties(nil)

	properties.Property("a rejected const reassignment leaves the prior value observable", prop.ForAll(
		func(v int64, w int64) bool {
			inter := NewInterpreter(&ast.Program{}, module("prop-const"))
			inter.Exec(&ast.VarDeclStmt{
				Name:        "x",
				Type:        ast.TypeAnnotation{Tag: ast.TagInt, IsConst: true},
				Initializer: &ast.NumberExpr{IntValue: v, Tag: ast.TagInt},
			})

			threw := false
			func() {
				defer func() {
					if r := recover(); r != nil {
						re, ok := r.(*cberrors.RuntimeError)
						threw = ok && re.Variant == cberrors.ConstReassignment
					}
				}()
				inter.Exec(&ast.AssignStmt{
					Kind:   ast.AssignPlain,
					Target: &ast.VariableExpr{Name: "x"},
					Value:  &ast.NumberExpr{IntValue: w, Tag: ast.TagInt},
				})
			}()

			got, _ := inter.scope.Find("x")
			return threw && got.Value.(IntValue).Value == v
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestStructSyncInvariant(t *testing.T) {

	properties := gopter.NewProperties(nil)

	properties.Property("a write through p->m is observed via a.m", prop.ForAll(
		func(v int64) bool {
			inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{pointDecl()}}, module("prop-sync"))
			if err := inter.Run(); err != nil {
				return false
			}

			cell := NewVariable(ast.TagStruct, "Point")
			cell.Value = inter.NewStructInstance("Point", ast.Range{})
			inter.scope.Declare("a", cell)

			ptr := inter.Eval(&ast.AddressOfExpr{Operand: &ast.VariableExpr{Name: "a"}})
			pCell := NewVariable(ast.TagPointer, "")
			pCell.Value = ptr
			inter.scope.Declare("p", pCell)

			inter.Exec(&ast.AssignStmt{
				Kind:   ast.AssignArrow,
				Target: &ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "p"}, Member: "x", Arrow: true},
				Value:  &ast.NumberExpr{IntValue: v, Tag: ast.TagInt},
			})

			got := inter.Eval(&ast.MemberAccessExpr{Receiver: &ast.VariableExpr{Name: "a"}, Member: "x"})
			return got.(IntValue).Value == v
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func TestGenericCacheIdempotenceInvariant(t *testing.T) {

	properties := gopter.NewProperties(nil)

	properties.Property("repeated same-type calls keep exactly one instantiation", prop.ForAll(
		func(calls int) bool {
			fn := genericIdentityDecl()
			inter := NewInterpreter(&ast.Program{Declarations: []ast.Stmt{fn}}, module("prop-generic"))
			if err := inter.Run(); err != nil {
				return false
			}
			for i := 0; i < calls; i++ {
				result, err := inter.Invoke("identity", NewIntValue(int64(i), ast.TagInt))
				if err != nil || result.(IntValue).Value != int64(i) {
					return false
				}
			}
			return len(inter.generics.bindings) == 1
		},
		gen.IntRange(2, 10),
	))

	properties.TestingRun(t)
}
