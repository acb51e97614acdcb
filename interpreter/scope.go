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

// Package interpreter implements the Cb execution core: the scope and
// variable store, the type model, the expression evaluator, the
// statement executor, the pointer/reference system, the
// struct/array/union/enum manager, function/method dispatch, namespace
// resolution, and control-flow exceptions.
package interpreter

import (
	"github.com/cb-lang/cb/activations"
	"github.com/cb-lang/cb/ast"
)

// Scope is the C1 scope & variable store: nested lexical scopes over a
// variable activation stack and a parallel function-pointer activation
// stack, plus the global-only declaration tables.
type Scope struct {
	vars     activations.Activations
	funcPtrs activations.Activations

	// deferredStack holds one []func() per pushed scope, run in reverse
	// order as the scope is popped. Index 0 is the global scope's list,
	// never popped.
	deferredStack [][]func()

	// Global-only declaration tables.
	Functions  map[string]*ast.FuncDeclStmt
	Structs    map[string]*ast.StructDeclStmt
	Enums      map[string]*ast.EnumDeclStmt
	Unions     map[string]*ast.UnionDeclStmt
	Interfaces map[string]*ast.InterfaceDeclStmt
	Impls      map[string][]*ast.ImplDeclStmt // keyed by struct name

	nextScopeID int
	scopeIDs    []int // parallel to deferredStack, current scope id at each depth
}

func NewScope() *Scope {
	s := &Scope{
		Functions:  map[string]*ast.FuncDeclStmt{},
		Structs:    map[string]*ast.StructDeclStmt{},
		Enums:      map[string]*ast.EnumDeclStmt{},
		Unions:     map[string]*ast.UnionDeclStmt{},
		Interfaces: map[string]*ast.InterfaceDeclStmt{},
		Impls:      map[string][]*ast.ImplDeclStmt{},
	}
	s.deferredStack = [][]func(){nil}
	s.scopeIDs = []int{0}
	s.nextScopeID = 1
	return s
}

// Push opens a new lexical scope (function entry, or block entry where
// the language dictates). Returns the new scope's id, usable by
// VarHandle.
func (s *Scope) Push() int {
	s.vars.PushCurrent()
	s.funcPtrs.PushCurrent()
	s.deferredStack = append(s.deferredStack, nil)
	id := s.nextScopeID
	s.nextScopeID++
	s.scopeIDs = append(s.scopeIDs, id)
	return id
}

// Pop runs this scope's deferred cleanups in LIFO order, then discards
// it (: "Before return propagates, run any
// deferred cleanup registered for the current scope ... in LIFO order").
// Invariant 1: the global scope (depth 0) is never popped.
func (s *Scope) Pop() {
	if len(s.deferredStack) <= 1 {
		return
	}
	s.RunDeferred()
	s.deferredStack = s.deferredStack[:len(s.deferredStack)-1]
	s.scopeIDs = s.scopeIDs[:len(s.scopeIDs)-1]
	s.vars.Pop()
	s.funcPtrs.Pop()
}

// RunDeferred executes (without popping) the current scope's cleanup
// list in LIFO order; called both by Pop and directly before a Return
// exception propagates through intermediate block scopes.
func (s *Scope) RunDeferred() {
	top := len(s.deferredStack) - 1
	list := s.deferredStack[top]
	for i := len(list) - 1; i >= 0; i-- {
		list[i]()
	}
	s.deferredStack[top] = nil
}

// Defer registers a cleanup to run in LIFO order when the current scope
// is popped or a Return unwinds through it.
func (s *Scope) Defer(fn func()) {
	top := len(s.deferredStack) - 1
	s.deferredStack[top] = append(s.deferredStack[top], fn)
}

// Depth reports the current scope nesting depth (0 = global only).
func (s *Scope) Depth() int { return len(s.deferredStack) - 1 }

// CurrentScopeID returns the id of the innermost pushed scope.
func (s *Scope) CurrentScopeID() int {
	return s.scopeIDs[len(s.scopeIDs)-1]
}

// Declare inserts name into the current (innermost) scope, shadowing any
// outer binding.variables.insert").
func (s *Scope) Declare(name string, v *Variable) {
	v.DeclScopeID = s.CurrentScopeID()
	s.vars.Set(name, v)
}

// ForEachVariableName visits every variable name visible from the
// current scope chain, shadowed names once.
func (s *Scope) ForEachVariableName(fn func(name string)) {
	s.vars.ForEach(func(name string, _ any) {
		fn(name)
	})
}

// Find walks innermost to global, per.
func (s *Scope) Find(name string) (*Variable, bool) {
	v := s.vars.Find(name)
	if v == nil {
		return nil, false
	}
	return v.(*Variable), true
}

// DeclareFunctionPointer binds name to a function-pointer value in the
// current scope's function-pointer table ( "Function
// pointers: a separate per-scope table").
func (s *Scope) DeclareFunctionPointer(name string, fp FunctionPointerValue) {
	s.funcPtrs.Set(name, fp)
}

// FindFunctionPointer looks up a bound function-pointer variable.
func (s *Scope) FindFunctionPointer(name string) (FunctionPointerValue, bool) {
	v := s.funcPtrs.Find(name)
	if v == nil {
		return FunctionPointerValue{}, false
	}
	return v.(FunctionPointerValue), true
}

// LookupFunction resolves a (possibly qualified) function name against
// the global function table.
func (s *Scope) LookupFunction(name string) (*ast.FuncDeclStmt, bool) {
	f, ok := s.Functions[name]
	return f, ok
}

// forkActivations builds a Scope for a concurrently-scheduled task: it
// shares this Scope's global declaration tables (never mutated after
// registerDeclarations runs) but starts with a fresh, independent
// activation stack, so the new task's local variables are invisible to
// every other task.
func (s *Scope) forkActivations() *Scope {
	return &Scope{
		Functions:     s.Functions,
		Structs:       s.Structs,
		Enums:         s.Enums,
		Unions:        s.Unions,
		Interfaces:    s.Interfaces,
		Impls:         s.Impls,
		deferredStack: [][]func(){nil},
		scopeIDs:      []int{0},
		nextScopeID:   1,
	}
}
