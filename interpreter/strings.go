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
	"strings"

	"github.com/rivo/uniseg"

	"github.com/cb-lang/cb/ast"
	cberrors "github.com/cb-lang/cb/errors"
)

// Strings index by user-perceived character, not by byte: `s[i]` reads
// or replaces the i-th grapheme cluster, so a combining sequence or an
// emoji counts as one position.

// stringIndexTarget recognizes `s[i]` where s resolves to a string cell.
// Chained subscripts (`a[i][j]`) never target a string; those stay on
// the array path.
func (inter *Interpreter) stringIndexTarget(n *ast.ArrayRefExpr) (*Variable, int, bool) {
	switch n.Array.(type) {
	case *ast.VariableExpr, *ast.MemberAccessExpr:
	default:
		return nil, 0, false
	}
	cell := inter.resolveLValue(n.Array)
	cell = inter.followReference(cell, n.SourceRange())
	if _, isString := cell.Value.(StringValue); !isString {
		return nil, 0, false
	}
	idx := int(AsInt64(inter.Eval(n.Index)))
	return cell, idx, true
}

func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// stringCharAt reads the idx-th character of the string held by cell.
func (inter *Interpreter) stringCharAt(cell *Variable, idx int, rng ast.Range) Value {
	chars := graphemes(cell.Value.(StringValue).Value)
	if idx < 0 || idx >= len(chars) {
		inter.throw(cberrors.IndexOutOfBounds, "string index out of bounds", rng)
	}
	return StringValue{Value: chars[idx]}
}

// stringReplaceChar replaces the idx-th character of the string held by
// cell with the whole text of val, which must be a string value.
func (inter *Interpreter) stringReplaceChar(cell *Variable, idx int, val Value, rng ast.Range) {
	if cell.IsConst() && cell.IsAssigned() {
		inter.throw(cberrors.ConstReassignment, "cannot modify a const string", rng)
	}
	chars := graphemes(cell.Value.(StringValue).Value)
	if idx < 0 || idx >= len(chars) {
		inter.throw(cberrors.IndexOutOfBounds, "string index out of bounds", rng)
	}
	replacement, ok := val.(StringValue)
	if !ok {
		inter.throw(cberrors.TypeMismatch, "replacing a string character requires a string value", rng)
	}
	chars[idx] = replacement.Value
	cell.Value = StringValue{Value: strings.Join(chars, "")}
	cell.SetAssigned(true)
}
