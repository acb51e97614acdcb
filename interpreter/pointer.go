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

// PointerVariant distinguishes the kinds of lvalue a pointer can target:
// a plain variable, a struct member, or an array element, plus the null
// pointer. Pointers and integers are distinct Go types from the
// start — there is no tagged-integer encoding to recover from.
type PointerVariant int

const (
	PointerNull PointerVariant = iota
	PointerVariableRef
	PointerArrayElement
	PointerStructMember
)

// PointerMetadata describes what a non-null pointer refers to.
type PointerMetadata struct {
	Variant PointerVariant

	// Target identifies the referent cell for PointerVariableRef and
	// PointerStructMember (the struct cell containing Path); for
	// PointerArrayElement it identifies the owning array variable.
	Target *VarHandle

	ElementTag  ast.TypeTag
	ElementType string // struct/enum/union type name of the pointee, if composite

	// PointerArrayElement fields: bounds-checked pointer arithmetic
	//.
	Array      *ArrayValue
	Index      int
	RangeStart int
	RangeEnd   int // exclusive

	// PointerStructMember fields: the dotted path from Target to the
	// pointed-to member, e.g. ["inner", "x"] for &s.inner.x.
	Path []string

	// PointeeConst mirrors the qualifier the pointer was constructed
	// with, enforced at dereference-write time.
	PointeeConst bool
}

// PointerValue is the Value carried by a pointer-typed Variable.
type PointerValue struct {
	valueBase
	Metadata *PointerMetadata
}

func (v *PointerValue) Tag() ast.TypeTag { return ast.TagPointer }
func (v *PointerValue) String() string {
	if v.Metadata == nil || v.Metadata.Variant == PointerNull {
		return "nullptr"
	}
	return "&<cell>"
}

func NullPointer() *PointerValue {
	return &PointerValue{Metadata: &PointerMetadata{Variant: PointerNull}}
}

// ElementSize reports the element size used by pointer arithmetic; this
// implementation uses "1 unit" for every tag since no raw memory layout
// is modeled (handles, not addresses). Pointer arithmetic therefore
// always advances in element units, without needing a byte size.
func (m *PointerMetadata) ElementSize() int64 { return 1 }
