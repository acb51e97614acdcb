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

// Package errors defines the runtime errors: a single RuntimeError type
// that satisfies error, names one of a closed set of Variant values, and
// carries a source location and a stack of call frames.
package errors

import (
	"fmt"

	"golang.org/x/xerrors"

	"github.com/cb-lang/cb/common"
)

// Variant is one of the closed set of runtime error variants a
// RuntimeError can carry.
type Variant string

const (
	DivisionByZero             Variant = "DivisionByZero"
	NullPointer                Variant = "NullPointer"
	IndexOutOfBounds           Variant = "IndexOutOfBounds"
	PointerOutOfBounds         Variant = "PointerOutOfBounds"
	TypeMismatch               Variant = "TypeMismatch"
	ModuleNotFound             Variant = "ModuleNotFound"
	FunctionNotFound           Variant = "FunctionNotFound"
	UndefinedVariable          Variant = "UndefinedVariable"
	ConstReassignment          Variant = "ConstReassignment"
	ConstPointerViolation      Variant = "ConstPointerViolation"
	StructMemberNotFound       Variant = "StructMemberNotFound"
	UnionValueNotAllowed       Variant = "UnionValueNotAllowed"
	InterfaceMethodNotFound    Variant = "InterfaceMethodNotFound"
	DanglingPointer            Variant = "DanglingPointer"
	ForeignSignatureUnsupported Variant = "ForeignSignatureUnsupported"
	RuntimeGeneric             Variant = "RuntimeGeneric"
)

// Frame is one entry in a stack trace.
type Frame struct {
	Function string
	Module   string
	Location common.Range
}

// RuntimeError is the error type thrown by every unconditional runtime
// unwind. It is distinct from the control-flow exceptions
// (Return/Break/Continue), which never use this type.
type RuntimeError struct {
	Variant  Variant
	Message  string
	Location common.Range
	Module   common.ModuleLocation
	Frames   []Frame
	cause    error
}

func New(variant Variant, message string, loc common.Range) *RuntimeError {
	return &RuntimeError{
		Variant:  variant,
		Message:  message,
		Location: loc,
	}
}

// Wrap attaches an underlying cause, preserving xerrors-style chain
// walking for the pretty printer and for errors.Is/As callers.
func (e *RuntimeError) Wrap(cause error) *RuntimeError {
	e.cause = xerrors.Errorf("%s: %w", e.Message, cause)
	return e
}

func (e *RuntimeError) Unwrap() error {
	return e.cause
}

func (e *RuntimeError) Error() string {
	if e.Location.Start.Line != 0 {
		return fmt.Sprintf("%s: %s at %s:%s", e.Variant, e.Message, e.Module, e.Location.Start)
	}
	return fmt.Sprintf("%s: %s", e.Variant, e.Message)
}

// SourceRange reports the location the error was thrown from, letting
// the pretty printer locate and underline it without a type switch over
// every error variant.
func (e *RuntimeError) SourceRange() common.Range {
	return e.Location
}

// WithFrame appends a call frame, innermost first, matching the order the
// top-level driver must print them in.
func (e *RuntimeError) WithFrame(f Frame) *RuntimeError {
	e.Frames = append(e.Frames, f)
	return e
}

// AmbiguousNameError is raised during namespace resolution when more than
// one active `using namespace` directive resolves the same identifier.
// It reports both candidates, folded into the message of a RuntimeGeneric
// RuntimeError.
func AmbiguousNameError(name string, candidates []string, loc common.Range) *RuntimeError {
	return New(
		RuntimeGeneric,
		fmt.Sprintf("ambiguous reference to %q: candidates are %v", name, candidates),
		loc,
	)
}
