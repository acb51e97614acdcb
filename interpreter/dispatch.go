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
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cb-lang/cb/ast"
	cberrors "github.com/cb-lang/cb/errors"
)

// evalCall is the C7 call-site dispatcher: it classifies the callee
// expression into a free function, a method call (`.`/`->`), a bound
// function-pointer variable, or an evaluated function-pointer value, and
// routes to the one shared execution path in callFunctionFromCall.
func (inter *Interpreter) evalCall(n *ast.CallExpr) Value {
	switch callee := n.Callee.(type) {
	case *ast.MemberAccessExpr:
		return inter.evalMethodCall(callee, n.Args)

	case *ast.VariableExpr:
		if fp, ok := inter.scope.FindFunctionPointer(callee.Name); ok {
			return inter.callFunctionFromCall(fp.Decl, n.Args, nil)
		}
		if v, ok := inter.scope.Find(callee.Name); ok {
			v = inter.followReference(v, n.SourceRange())
			if fp, ok := v.Value.(FunctionPointerValue); ok {
				return inter.callFunctionFromCall(fp.Decl, n.Args, nil)
			}
		}
		if native, ok := inter.builtins[callee.Name]; ok {
			args := make([]Value, len(n.Args))
			for i, ae := range n.Args {
				args[i] = inter.Eval(ae)
			}
			return native(inter, args)
		}
		fn, ok := inter.scope.LookupFunction(callee.Name)
		if !ok {
			if decl, isForeign := inter.ffi.Lookup(callee.Name); isForeign {
				args := make([]Value, len(n.Args))
				for i, ae := range n.Args {
					args[i] = inter.Eval(ae)
				}
				return inter.callForeign(decl, args, n.SourceRange())
			}
			message := withSuggestion("function not found: "+callee.Name, callee.Name, inter.callableNames())
			inter.throw(cberrors.FunctionNotFound, message, n.SourceRange())
		}
		return inter.callFunctionFromCall(fn, n.Args, nil)

	case *ast.QualifiedNameExpr:
		rng := n.SourceRange()
		qualified := inter.namespaces.Resolve(callee.Path, &rng)
		fn, ok := inter.scope.LookupFunction(qualified)
		if !ok {
			inter.throw(cberrors.FunctionNotFound, "function not found: "+qualified, n.SourceRange())
		}
		return inter.callFunctionFromCall(fn, n.Args, nil)

	default:
		v := inter.Eval(n.Callee)
		fp, ok := v.(FunctionPointerValue)
		if !ok {
			inter.throw(cberrors.TypeMismatch, "expression is not callable", n.SourceRange())
		}
		return inter.callFunctionFromCall(fp.Decl, n.Args, nil)
	}
}

// evalMethodCall resolves `recv.method(args)` / `recv->method(args)`
// against a struct's own methods or an interface impl's methods. The
// receiver is resolved to its *Variable cell (not a copy), so a method
// that mutates self's members is visible at the call site afterward:
// "self" is bound as a reference to that same cell rather than a clone.
func (inter *Interpreter) evalMethodCall(callee *ast.MemberAccessExpr, argExprs []ast.Expr) Value {
	var selfCell *Variable
	if callee.Arrow {
		ptr := inter.evalPointerOperand(callee.Receiver)
		selfCell = inter.pointerTargetVariable(ptr, callee.SourceRange())
	} else {
		selfCell = inter.resolveLValue(callee.Receiver)
		selfCell = inter.followReference(selfCell, callee.SourceRange())
	}

	var structName string
	switch sv := selfCell.Value.(type) {
	case *StructValue:
		structName = sv.TypeName
	case InterfaceValue:
		structName = sv.Underlying.TypeName
	default:
		inter.throw(cberrors.TypeMismatch, "method call receiver is not a struct", callee.SourceRange())
	}

	fn, ok := inter.scope.Functions[structName+"."+callee.Member]
	if !ok {
		methods := inter.methodNames(structName)
		if _, isInterfaceRecv := selfCell.Value.(InterfaceValue); isInterfaceRecv {
			message := withSuggestion("interface method not found: "+callee.Member, callee.Member, methods)
			inter.throw(cberrors.InterfaceMethodNotFound, message, callee.SourceRange())
		}
		message := withSuggestion("method not found: "+structName+"."+callee.Member, callee.Member, methods)
		inter.throw(cberrors.FunctionNotFound, message, callee.SourceRange())
	}
	return inter.callFunctionFromCall(fn, argExprs, selfCell)
}

// callFunction is the Values-only entry point used by Invoke, where no
// AST call site exists: arguments are already evaluated and reference
// parameters are not supported (an external caller has no lvalue to
// bind).
func (inter *Interpreter) callFunction(fn *ast.FuncDeclStmt, args []Value, selfCell *Variable) Value {
	bindings := inter.resolveGenericBindings(fn, args)
	return inter.invokeBody(fn, selfCell, bindings, func() {
		for i, p := range fn.Params {
			resolved := resolveTypeAnnotation(p.Type, bindings)
			var val Value = NullValue{}
			if i < len(args) {
				val = args[i]
			}
			cell := inter.newParamCell(resolved)
			inter.storeInto(cell, val, fn.SourceRange())
			inter.scope.Declare(p.Name, cell)
		}
	})
}

// callFunctionFromCall is the AST-driven entry point used by evalCall: it
// evaluates each argument in the caller's scope before pushing the
// callee's scope (arguments are never evaluated inside the callee), and
// binds a reference-typed parameter to the argument's lvalue cell rather
// than a copy.
func (inter *Interpreter) callFunctionFromCall(fn *ast.FuncDeclStmt, argExprs []ast.Expr, selfCell *Variable) Value {
	args := make([]Value, len(argExprs))
	refCells := make([]*Variable, len(argExprs))
	for i, ae := range argExprs {
		if i < len(fn.Params) && fn.Params[i].Type.IsReference {
			cell := inter.resolveLValue(ae)
			refCells[i] = cell
			args[i] = cell.Value
			continue
		}
		args[i] = inter.Eval(ae)
	}

	bindings := inter.resolveGenericBindings(fn, args)
	return inter.invokeBody(fn, selfCell, bindings, func() {
		for i, p := range fn.Params {
			resolved := resolveTypeAnnotation(p.Type, bindings)
			if i >= len(argExprs) {
				inter.scope.Declare(p.Name, inter.defaultMember(resolved, fn.SourceRange()))
				continue
			}
			if refCells[i] != nil {
				cell := NewVariable(resolved.Tag, resolved.Name)
				cell.SetReference(true)
				cell.Referent = &VarHandle{ScopeID: inter.cellScopeID(refCells[i]), Cell: refCells[i]}
				inter.scope.Declare(p.Name, cell)
				continue
			}
			cell := inter.newParamCell(resolved)
			inter.storeInto(cell, args[i], fn.SourceRange())
			inter.scope.Declare(p.Name, cell)
		}
	})
}

func (inter *Interpreter) newParamCell(t ast.TypeAnnotation) *Variable {
	cell := NewVariable(t.Tag, t.Name)
	cell.PointerDepth = t.PointerDepth
	cell.SetIsPointer(t.PointerDepth > 0)
	cell.SetPointeeConst(t.PointeeConst)
	cell.SetPointerConst(t.PointerConst)
	cell.SetConst(t.IsConst)
	cell.SetUnsigned(t.IsUnsigned)
	if cell.IsPointer() {
		cell.PointerBase = t.Tag
		cell.Value = NullPointer()
	}
	return cell
}

// invokeBody pushes the call frame and scope, declares `self` (as a
// reference, never a copy) when this is a method call, runs bindParams,
// executes the body, and recovers a propagating ReturnSignal into an
// ordinary Go return value. Scope and frame teardown (including deferred
// cleanup) runs whether the body returns normally, via
// `return`, or via an uncaught Break/Continue — the latter is a
// programmer error in a well-formed program but is not silently
// swallowed here; it propagates past invokeBody exactly like a
// RuntimeError would.
func (inter *Interpreter) invokeBody(fn *ast.FuncDeclStmt, selfCell *Variable, bindings map[string]ast.TypeAnnotation, bindParams func()) (result Value) {
	frame := frameFor(fn, inter.Module.Name)
	inter.pushFrame(frame)
	defer inter.popFrame()

	if inter.Tracer != nil {
		_, span := inter.Tracer.Start(context.Background(), frame.Function,
			trace.WithAttributes(attribute.String("cb.module", frame.Module)))
		defer span.End()
	}

	inter.pushScope()
	defer inter.popScope()

	savedReturnsRef := inter.returnsReference
	inter.returnsReference = fn.ReturnType.IsReference
	defer func() { inter.returnsReference = savedReturnsRef }()

	if fn.Receiver != "" && selfCell != nil {
		selfRef := NewVariable(ast.TagStruct, fn.Receiver)
		selfRef.SetReference(true)
		selfRef.Referent = &VarHandle{ScopeID: inter.cellScopeID(selfCell), Cell: selfCell}
		inter.scope.Declare("self", selfRef)
	}
	bindParams()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if rs, ok := r.(ReturnSignal); ok {
			if fn.ReturnType.IsReference && rs.Ref == nil {
				inter.throw(cberrors.TypeMismatch, "a reference-returning function must return an lvalue", fn.SourceRange())
			}
			inter.checkReturnCompatible(fn, rs.Value)
			inter.lastReturnRef = rs.Ref
			result = rs.Value
			return
		}
		panic(r)
	}()

	if fn.Body != nil {
		for _, stmt := range fn.Body.Statements {
			inter.Exec(stmt)
		}
	}
	result = NullValue{}
	return
}

// checkReturnCompatible rejects a returned value whose family cannot
// coerce to the declared return type. Unresolved generic returns
// (Tag == "") and void/untyped declarations accept anything; within the
// numeric families every coercion of §4.2 is legal, so only a
// string/numeric cross is a mismatch here.
func (inter *Interpreter) checkReturnCompatible(fn *ast.FuncDeclStmt, v Value) {
	declared := fn.ReturnType.Tag
	if declared == "" || declared == ast.TagVoid || fn.ReturnType.IsPointer() {
		return
	}
	_, isString := v.(StringValue)
	if declared == ast.TagString && !isString {
		if _, isNull := v.(NullValue); !isNull {
			inter.throw(cberrors.TypeMismatch, "returned a non-string from a string-returning function", fn.SourceRange())
		}
	}
	if declared.IsNumeric() && isString {
		inter.throw(cberrors.TypeMismatch, "returned a string from a numeric-returning function", fn.SourceRange())
	}
}

func frameFor(fn *ast.FuncDeclStmt, module string) cberrors.Frame {
	name := fn.Name
	if fn.Receiver != "" {
		name = fn.Receiver + "." + fn.Name
	}
	return cberrors.Frame{Function: name, Module: module, Location: fn.SourceRange()}
}
