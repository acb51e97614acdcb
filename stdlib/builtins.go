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

// Package stdlib installs the small set of natively-implemented
// callables every Cb program can use without a `foreign` declaration:
// `print`, `println`, `sleep`, and the Result/Option constructors.
package stdlib

import (
	"strings"

	cberrors "github.com/cb-lang/cb/errors"
	"github.com/cb-lang/cb/interpreter"
)

// Register installs every builtin onto inter. Call once per top-level
// Interpreter, before Run; a task forked by the scheduler package
// inherits the table (Interpreter.Fork), and each builtin reads
// Stdout/SleepTicks from whichever interpreter is executing the call.
func Register(inter *interpreter.Interpreter) {
	inter.RegisterBuiltin("print", biPrint)
	inter.RegisterBuiltin("println", biPrintln)
	inter.RegisterBuiltin("sleep", biSleep)
	inter.RegisterBuiltin("Ok", biOk)
	inter.RegisterBuiltin("Err", biErr)
	inter.RegisterBuiltin("Some", biSome)
	inter.RegisterBuiltin("None", biNone)
}

func biPrint(inter *interpreter.Interpreter, args []interpreter.Value) interpreter.Value {
	writeArgs(inter, args, "")
	return interpreter.NullValue{}
}

func biPrintln(inter *interpreter.Interpreter, args []interpreter.Value) interpreter.Value {
	writeArgs(inter, args, "\n")
	return interpreter.NullValue{}
}

func writeArgs(inter *interpreter.Interpreter, args []interpreter.Value, suffix string) {
	if inter.Stdout == nil {
		return
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	inter.Stdout.WriteString(strings.Join(parts, " ") + suffix)
}

func biSleep(inter *interpreter.Interpreter, args []interpreter.Value) interpreter.Value {
	if inter.SleepTicks != nil && len(args) > 0 {
		inter.SleepTicks(interpreter.AsInt64(args[0]))
	}
	return interpreter.NullValue{}
}

func biOk(_ *interpreter.Interpreter, args []interpreter.Value) interpreter.Value {
	var v interpreter.Value = interpreter.NullValue{}
	if len(args) > 0 {
		v = args[0]
	}
	return interpreter.ResultValue{IsOk: true, Ok: v}
}

func biErr(_ *interpreter.Interpreter, args []interpreter.Value) interpreter.Value {
	message := ""
	if len(args) > 0 {
		if s, ok := args[0].(interpreter.StringValue); ok {
			message = s.Value
		}
	}
	return interpreter.ResultValue{
		IsOk: false,
		Err: interpreter.RuntimeErrorValue{
			Variant: cberrors.RuntimeGeneric,
			Kind:    interpreter.ErrorKindCustom,
			Message: message,
		},
	}
}

func biSome(_ *interpreter.Interpreter, args []interpreter.Value) interpreter.Value {
	var v interpreter.Value = interpreter.NullValue{}
	if len(args) > 0 {
		v = args[0]
	}
	return interpreter.OptionValue{HasValue: true, Some: v}
}

func biNone(_ *interpreter.Interpreter, _ []interpreter.Value) interpreter.Value {
	return interpreter.OptionValue{HasValue: false}
}
