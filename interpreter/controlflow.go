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

// Return, Break, and Continue are not errors; they are modeled as
// distinct Go types panicked by the statement executor and recovered at
// the appropriate boundary (function call for Return, loop body for
// Break/Continue). *errors.RuntimeError is panicked separately and never
// satisfies these types, so a recover() type-switch cannot confuse them.

// ReturnSignal carries the value thrown by a `return [e]` statement.
// Ref is non-nil only when the enclosing function returns a reference:
// it identifies the referent cell, so the caller can alias it rather
// than copy the value.
type ReturnSignal struct {
	Value Value
	Ref   *Variable
}

// BreakSignal unwinds N enclosing loops; default N = 1.
type BreakSignal struct {
	N int
}

// ContinueSignal skips to the next iteration of the N-th enclosing loop;
// default N = 1.
type ContinueSignal struct {
	N int
}

// unwindLoop is called by while/for bodies' panic recovery. It returns
// (handled, rethrow):
//   - a Break/Continue with N == 1 is fully handled here
//   - a Break/Continue with N > 1 is decremented and rethrown so the next
//     enclosing loop up the stack consumes one level
func unwindLoop(r any) (isBreak, isContinue bool, rethrow any) {
	switch sig := r.(type) {
	case BreakSignal:
		if sig.N <= 1 {
			return true, false, nil
		}
		return false, false, BreakSignal{N: sig.N - 1}
	case ContinueSignal:
		if sig.N <= 1 {
			return false, true, nil
		}
		return false, false, ContinueSignal{N: sig.N - 1}
	default:
		return false, false, r
	}
}
