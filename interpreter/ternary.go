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

import "github.com/cb-lang/cb/ast"

// evalTernary implements `c ? a : b`: exactly one of Then/Else is
// evaluated. The untaken branch's AST is never visited, so no side
// effect inside it can occur.
func (inter *Interpreter) evalTernary(n *ast.TernaryExpr) Value {
	cond := inter.Eval(n.Cond)
	var chosen ast.Expr
	if Truthy(cond) {
		chosen = n.Then
	} else {
		chosen = n.Else
	}
	value := inter.Eval(chosen)

	// Box to the common type of the two branches so that
	// `int n = 0; string s = n == 0 ? "zero" : "nonzero";` and numeric
	// ternaries alike yield a value typed consistently with both arms.
	common := CommonType(inter.InferType(n.Then), inter.InferType(n.Else))
	if common.Tag.IsNumeric() {
		return Coerce(value, common.Tag)
	}
	return value
}
