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

// Exec is the C4 statement executor's entry point, dispatching every
// statement kind the AST contract defines.
func (inter *Interpreter) Exec(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		inter.execBlock(n)

	case *ast.ExprStmt:
		inter.Eval(n.Expr)

	case *ast.VarDeclStmt:
		inter.execVarDecl(n)

	case *ast.ArrayDeclStmt:
		inter.execArrayDecl(n)

	case *ast.AssignStmt:
		inter.execAssign(n)

	case *ast.IfStmt:
		inter.execIf(n)

	case *ast.WhileStmt:
		inter.execWhile(n)

	case *ast.ForStmt:
		inter.execFor(n)

	case *ast.ReturnStmt:
		if inter.returnsReference && n.Value != nil {
			cell := inter.resolveLValue(n.Value)
			cell = inter.followReference(cell, n.SourceRange())
			panic(ReturnSignal{Value: cell.Value, Ref: cell})
		}
		var v Value = NullValue{}
		if n.Value != nil {
			v = inter.Eval(n.Value)
		}
		panic(ReturnSignal{Value: v})

	case *ast.BreakStmt:
		n2 := n.N
		if n2 == 0 {
			n2 = 1
		}
		panic(BreakSignal{N: n2})

	case *ast.ContinueStmt:
		n2 := n.N
		if n2 == 0 {
			n2 = 1
		}
		panic(ContinueSignal{N: n2})

	case *ast.UsingStmt:
		inter.namespaces.PushUsing(n.Namespace)

	default:
		inter.throw(cberrors.TypeMismatch, "unsupported statement kind", s.SourceRange())
	}
}

// execBlock pushes a new lexical scope, runs every statement, and pops it
// again before returning — including when a Return/Break/Continue panics
// through it, so deferred cleanup always runs ( "Scope
// cleanup").
func (inter *Interpreter) execBlock(n *ast.BlockStmt) {
	inter.pushScope()
	inter.namespaces.PushScope()
	defer func() {
		inter.namespaces.PopScope()
		inter.popScope()
	}()
	for _, stmt := range n.Statements {
		inter.Exec(stmt)
		if inter.Yield != nil && inter.AutoYield {
			inter.Yield()
		}
	}
}

func (inter *Interpreter) execIf(n *ast.IfStmt) {
	if Truthy(inter.Eval(n.Cond)) {
		inter.Exec(n.Then)
	} else if n.Else != nil {
		inter.Exec(n.Else)
	}
}

func (inter *Interpreter) execWhile(n *ast.WhileStmt) {
	for Truthy(inter.Eval(n.Cond)) {
		if inter.runLoopBody(n.Body) {
			break
		}
	}
}

func (inter *Interpreter) execFor(n *ast.ForStmt) {
	inter.pushScope()
	defer inter.popScope()

	if n.Init != nil {
		inter.Exec(n.Init)
	}
	for n.Cond == nil || Truthy(inter.Eval(n.Cond)) {
		if inter.runLoopBody(n.Body) {
			break
		}
		if n.Step != nil {
			inter.Exec(n.Step)
		}
	}
}

// runLoopBody executes one loop iteration's body, absorbing a Break/
// Continue targeting this loop and reporting whether the loop should stop
// (true) or keep iterating (false). Anything else (Return, a deeper
// Break/Continue's N, a *errors.RuntimeError) is rethrown unchanged.
func (inter *Interpreter) runLoopBody(body ast.Stmt) (stop bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		isBreak, _, rethrow := unwindLoop(r)
		if isBreak {
			stop = true
			return
		}
		if rethrow == nil {
			// isContinue with N == 1: absorbed, fall through to next iteration.
			return
		}
		panic(rethrow)
	}()
	inter.Exec(body)
	return false
}
