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
	"fmt"

	"github.com/cb-lang/cb/ast"
	cberrors "github.com/cb-lang/cb/errors"
)

// RuntimeErrorKind distinguishes how an error ended up wrapped in a
// Result::Err by `try`/`checked`.
type RuntimeErrorKind string

const (
	ErrorKindCustom  RuntimeErrorKind = "Custom"
	ErrorKindChecked RuntimeErrorKind = "CheckedError"
)

// RuntimeErrorValue is the payload of Result::Err produced by try/checked:
// RuntimeError{variant, message}.
type RuntimeErrorValue struct {
	valueBase
	Variant cberrors.Variant
	Kind    RuntimeErrorKind
	Message string
}

func (RuntimeErrorValue) Tag() ast.TypeTag { return ast.TagStruct }
func (v RuntimeErrorValue) String() string {
	return fmt.Sprintf("RuntimeError{%s, %q}", v.Variant, v.Message)
}

// ResultValue is Result::Ok(v) | Result::Err(RuntimeErrorValue).
type ResultValue struct {
	valueBase
	IsOk  bool
	Ok    Value
	Err   RuntimeErrorValue
}

func (ResultValue) Tag() ast.TypeTag { return ast.TagUnion }
func (v ResultValue) String() string {
	if v.IsOk {
		return fmt.Sprintf("Result::Ok(%s)", v.Ok)
	}
	return fmt.Sprintf("Result::Err(%s)", v.Err)
}

// OptionValue is Option::Some(v) | Option::None.
type OptionValue struct {
	valueBase
	HasValue bool
	Some     Value
}

func (OptionValue) Tag() ast.TypeTag { return ast.TagUnion }
func (v OptionValue) String() string {
	if v.HasValue {
		return fmt.Sprintf("Option::Some(%s)", v.Some)
	}
	return "Option::None"
}

// evalErrorPropagation implements the postfix `?` operator: on Ok/Some
// it yields the payload; on Err/None it immediately
// returns that Err/None from the enclosing function by panicking
// ReturnSignal, which callFunction recovers exactly like an explicit
// `return`.
func (inter *Interpreter) evalErrorPropagation(n *ast.ErrorPropagationExpr) Value {
	v := inter.Eval(n.Operand)
	switch val := v.(type) {
	case ResultValue:
		if val.IsOk {
			return val.Ok
		}
		panic(ReturnSignal{Value: val})
	case OptionValue:
		if val.HasValue {
			return val.Some
		}
		panic(ReturnSignal{Value: val})
	default:
		inter.throw(cberrors.TypeMismatch, "`?` requires a Result or Option value", n.SourceRange())
		return nil
	}
}

// evalTry implements `try E` / `checked E`: evaluates E;
// on success wraps it in Result::Ok with its inferred type; on any thrown
// RuntimeError, wraps it in Result::Err, tagging the error Custom for
// `try` and CheckedError for `checked`.
func (inter *Interpreter) evalTry(n *ast.TryExpr) (result Value) {
	defer func() {
		if r := recover(); r != nil {
			re, ok := r.(*cberrors.RuntimeError)
			if !ok {
				panic(r)
			}
			kind := ErrorKindCustom
			if n.Checked {
				kind = ErrorKindChecked
			}
			result = ResultValue{
				IsOk: false,
				Err: RuntimeErrorValue{
					Variant: re.Variant,
					Kind:    kind,
					Message: re.Message,
				},
			}
		}
	}()
	value := inter.Eval(n.Operand)
	return ResultValue{IsOk: true, Ok: value}
}
