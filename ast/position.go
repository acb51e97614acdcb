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

// Package ast defines the AST node contract the interpreter core consumes
//"). The parser that produces
// these nodes is an external collaborator, out of scope here; this
// package defines only the shape it must hand the interpreter.
package ast

import "github.com/cb-lang/cb/common"

// Position and Range re-export the common source-location types under
// ast-local names, so callers can write ast.Position/ast.Range without
// importing common directly.
type Position = common.Position
type Range = common.Range

// HasRange is implemented by every node so error formatting (pretty
// package) can locate the offending source span.
type HasRange interface {
	SourceRange() Range
}

// baseNode factors the range every concrete node embeds.
type baseNode struct {
	Range Range
}

func (n baseNode) SourceRange() Range {
	return n.Range
}
