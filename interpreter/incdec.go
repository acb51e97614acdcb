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

// evalIncDec implements pre/post ++/--: it mutates the
// lvalue and returns either the new value (pre) or the old one (post).
// It works on numeric, pointer (advances one element with bounds check
// for array-element pointers), and composite-member lvalues.
func (inter *Interpreter) evalIncDec(n *ast.IncDecExpr) Value {
	cell := inter.resolveLValue(n.Operand)
	if cell.IsConst() && cell.IsAssigned() {
		inter.throw(cberrors.ConstReassignment, "cannot modify a const value", n.SourceRange())
	}

	old := cell.Value
	var next Value

	switch v := old.(type) {
	case *PointerValue:
		delta := int64(1)
		if n.Op == "--" {
			delta = -1
		}
		next = inter.pointerAdd(v, delta, n.SourceRange())
	case IntValue:
		delta := int64(1)
		if n.Op == "--" {
			delta = -1
		}
		next = NewIntValue(v.Value+delta, v.tag)
	case FloatValue:
		delta := float32(1)
		if n.Op == "--" {
			delta = -1
		}
		next = FloatValue{Value: v.Value + delta}
	case DoubleValue:
		delta := 1.0
		if n.Op == "--" {
			delta = -1
		}
		next = DoubleValue{Value: v.Value + delta}
	default:
		inter.throw(cberrors.TypeMismatch, "++/-- on a non-numeric, non-pointer value", n.SourceRange())
	}

	cell.Value = next
	cell.SetAssigned(true)

	if n.Prefix {
		return next
	}
	return old
}
