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

// pointerAdd implements `p + n` / `p - n` in element units
// (PointerMetadata.ElementSize is always 1, since pointers are handles
// rather than raw addresses). An array-element pointer's new address
// must stay within [array_start, array_end), else PointerOutOfBounds.
func (inter *Interpreter) pointerAdd(p *PointerValue, delta int64, rng ast.Range) *PointerValue {
	m := p.Metadata
	if m.Variant == PointerNull {
		inter.throw(cberrors.NullPointer, "pointer arithmetic on a null pointer", rng)
	}
	if m.Variant != PointerArrayElement {
		// Non-array pointers (variable-ref, struct-member) don't carry a
		// bounds range to walk; arithmetic on them is not meaningful in
		// this handle-based model and is rejected as a type mismatch
		// rather than silently producing an unrelated cell.
		inter.throw(cberrors.TypeMismatch, "pointer arithmetic requires an array-element pointer", rng)
	}
	newIndex := m.Index + int(delta)
	if newIndex < m.RangeStart || newIndex >= m.RangeEnd {
		inter.throw(cberrors.PointerOutOfBounds, "pointer arithmetic left the array bounds", rng)
	}
	next := *m
	next.Index = newIndex
	return &PointerValue{Metadata: &next}
}

// pointerDiff implements `p - q`: the element-unit distance between two
// array-element pointers into the same array.
func (inter *Interpreter) pointerDiff(p, q *PointerValue, rng ast.Range) int64 {
	if p.Metadata.Variant != PointerArrayElement || q.Metadata.Variant != PointerArrayElement {
		inter.throw(cberrors.TypeMismatch, "pointer difference requires two array-element pointers", rng)
	}
	if p.Metadata.Array != q.Metadata.Array {
		inter.throw(cberrors.TypeMismatch, "pointer difference across unrelated arrays", rng)
	}
	return int64(p.Metadata.Index - q.Metadata.Index)
}
