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
	"go.opentelemetry.io/otel/trace"

	"github.com/cb-lang/cb/ast"
	"github.com/cb-lang/cb/common"
	cberrors "github.com/cb-lang/cb/errors"
)

// Interpreter is the single owned value holding every piece of mutable
// execution state — scope, namespaces, generics, FFI bindings, call
// stack — passed as *Interpreter rather than scattered across
// process-wide singletons.
type Interpreter struct {
	scope   *Scope
	Module  common.ModuleLocation
	Program *ast.Program

	namespaces *NamespaceRegistry
	generics   *GenericCache
	ffi        *FFIRegistry

	moduleResolver ModuleResolver
	loadedModules  map[string]bool

	// liveScopes tracks currently-pushed scope ids, used by dereference
	// to give a best-effort DanglingPointer diagnostic (
	// "Pointer lifetime": "implementations should detect and fail with
	// DanglingPointer on a best-effort basis").
	liveScopes map[int]bool

	callStack []cberrors.Frame

	// Tracer is an optional OpenTelemetry tracer wrapping call frames and
	// task execution in spans.
	// Nil by default; cmd/cb does not set it.
	Tracer trace.Tracer

	// Stdout receives output from the `print` builtin (stdlib package);
	// defaults to the process's stdout via NewInterpreter.
	Stdout Writer

	// Yield, when non-nil, is called by the statement executor after every
	// top-level statement of a block ( "cooperative yield after
	// every statement"). The scheduler package sets this on a task's forked
	// Interpreter to hand control back to the scheduler loop; it is nil on
	// a plain synchronous Interpreter, where Exec never blocks.
	Yield func()

	// AutoYield mirrors cbconfig.Config.AutoYield ( "Suspension
	// points": tasks yield after every statement "unless explicitly
	// disabled"). Defaults to true; a driver that loaded AutoYield=false
	// from config sets this false on the top-level Interpreter before
	// spawning tasks from it, and Fork carries the setting to every
	// spawned task so a task known never to block can run a whole
	// scheduler turn without parking after each statement.
	AutoYield bool

	// SleepTicks, when non-nil, backs the `sleep` builtin: it parks the
	// calling task for the given number of logical scheduler ticks rather
	// than blocking a real OS thread. Nil on a plain synchronous
	// Interpreter, where `sleep` is a no-op.
	SleepTicks func(ticks int64)

	// returnsReference is true while executing the body of a function
	// whose declared return type is a reference; the statement executor
	// resolves `return e` to e's cell instead of copying its value.
	// lastReturnRef holds that cell after the call recovers, so a
	// reference declaration initialized from the call can alias it.
	returnsReference bool
	lastReturnRef    *Variable

	builtins map[string]BuiltinFunc
}

// BuiltinFunc is a natively-implemented callable. It receives the
// interpreter actually executing the call — which for a scheduled task
// is the task's own fork, not the interpreter the builtin was registered
// on — so a builtin reads Stdout/SleepTicks from the right place.
type BuiltinFunc func(inter *Interpreter, args []Value) Value

// RegisterBuiltin installs a natively-implemented callable under name,
// checked by the call dispatcher ahead of user-declared functions (the
// stdlib package's print/sleep/Result/Option constructors use this to
// hook into call syntax without an AST function body).
func (inter *Interpreter) RegisterBuiltin(name string, fn BuiltinFunc) {
	if inter.builtins == nil {
		inter.builtins = map[string]BuiltinFunc{}
	}
	inter.builtins[name] = fn
}

// Writer is the minimal sink `print` writes to; satisfied by io.Writer,
// kept as a narrow interface so tests can capture output without pulling
// in io.
type Writer interface {
	WriteString(s string) (int, error)
}

// NewInterpreter constructs an interpreter over a parsed Program
//"). Module identifies the program
// for error locations and the stack trace.
func NewInterpreter(program *ast.Program, module common.ModuleLocation) *Interpreter {
	inter := &Interpreter{
		scope:         NewScope(),
		Module:        module,
		Program:       program,
		namespaces:    NewNamespaceRegistry(),
		generics:      NewGenericCache(),
		ffi:           NewFFIRegistry(),
		liveScopes:    map[int]bool{0: true},
		loadedModules: map[string]bool{},
		AutoYield:     true,
	}
	return inter
}

// Run registers every top-level declaration (functions, structs, enums,
// unions, interfaces, impls, namespaces) into the global scope, then
// does not itself invoke main — callers drive execution via Invoke.
func (inter *Interpreter) Run() error {
	if err := inter.registerDeclarations(inter.Program.Declarations, ""); err != nil {
		return err
	}
	inter.namespaces.Freeze()
	return nil
}

// Invoke calls a registered top-level function by name with already-
// evaluated arguments, and returns its Return value (or the zero Value
// for a void function). This is the driver's entry point (
// "Exit codes").
func (inter *Interpreter) Invoke(name string, args ...Value) (result Value, err error) {
	fn, ok := inter.scope.LookupFunction(name)
	if !ok {
		return nil, cberrors.New(cberrors.FunctionNotFound, "function not found: "+name, common.Range{})
	}
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(*cberrors.RuntimeError); ok {
				err = re
				return
			}
			panic(r)
		}
	}()
	return inter.callFunction(fn, args, nil), nil
}

// InvokeDecl is Invoke's counterpart for a caller that already holds the
// *ast.FuncDeclStmt (the scheduler package, dispatching a spawned task's
// entry point by value rather than by name).
func (inter *Interpreter) InvokeDecl(fn *ast.FuncDeclStmt, args ...Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if re, ok := r.(*cberrors.RuntimeError); ok {
				err = re
				return
			}
			panic(r)
		}
	}()
	return inter.callFunction(fn, args, nil), nil
}

// Fork creates an independent Interpreter for a concurrently-scheduled
// task: it shares the declaration tables, namespace
// registry, generic cache, and FFI registry (all immutable or
// internally-synchronized after Run registers the program), but gets its
// own activation stack and call stack, so a task's local variables never
// collide with another task's.
func (inter *Interpreter) Fork() *Interpreter {
	child := &Interpreter{
		scope:          inter.scope.forkActivations(),
		Module:         inter.Module,
		Program:        inter.Program,
		namespaces:     inter.namespaces.forkView(),
		generics:       inter.generics,
		ffi:            inter.ffi,
		moduleResolver: inter.moduleResolver,
		loadedModules:  inter.loadedModules,
		liveScopes:     map[int]bool{0: true},
		Tracer:         inter.Tracer,
		Stdout:         inter.Stdout,
		builtins:       inter.builtins,
		AutoYield:      inter.AutoYield,
	}
	return child
}

func (inter *Interpreter) pushScope() int {
	id := inter.scope.Push()
	inter.liveScopes[id] = true
	return id
}

func (inter *Interpreter) popScope() {
	id := inter.scope.CurrentScopeID()
	inter.scope.Pop()
	delete(inter.liveScopes, id)
}

func (inter *Interpreter) pushFrame(f cberrors.Frame) {
	inter.callStack = append(inter.callStack, f)
}

func (inter *Interpreter) popFrame() {
	if len(inter.callStack) > 0 {
		inter.callStack = inter.callStack[:len(inter.callStack)-1]
	}
}

// Frames returns the current call stack, innermost last, for pretty
// printing.
func (inter *Interpreter) Frames() []cberrors.Frame {
	return inter.callStack
}

func (inter *Interpreter) throwUndefinedVariable(name string, rng ast.Range) {
	message := withSuggestion("undefined variable "+name, name, inter.visibleVariableNames())
	inter.throw(cberrors.UndefinedVariable, message, rng)
}

func (inter *Interpreter) throw(variant cberrors.Variant, message string, rng ast.Range) {
	err := cberrors.New(variant, message, rng)
	err.Module = inter.Module
	for i := len(inter.callStack) - 1; i >= 0; i-- {
		err.WithFrame(inter.callStack[i])
	}
	panic(err)
}
