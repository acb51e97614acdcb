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

package ast

import (
	"strings"

	"github.com/turbolent/prettier"
)

// TypeTag is one of the primitive type tags enumerated in
type TypeTag string

const (
	TagVoid      TypeTag = "void"
	TagBool      TypeTag = "bool"
	TagChar      TypeTag = "char"
	TagTiny      TypeTag = "tiny"
	TagShort     TypeTag = "short"
	TagInt       TypeTag = "int"
	TagLong      TypeTag = "long"
	TagBig       TypeTag = "big"
	TagFloat     TypeTag = "float"
	TagDouble    TypeTag = "double"
	TagQuad      TypeTag = "quad"
	TagString    TypeTag = "string"
	TagPointer   TypeTag = "pointer"
	TagStruct    TypeTag = "struct"
	TagEnum      TypeTag = "enum"
	TagUnion     TypeTag = "union"
	TagInterface TypeTag = "interface"
	TagArray     TypeTag = "array"
)

// integerRank gives the widening order for integer tags:
// bool < char/tiny < short < int < long < big.
var integerRank = map[TypeTag]int{
	TagBool:  0,
	TagChar:  1,
	TagTiny:  1,
	TagShort: 2,
	TagInt:   3,
	TagLong:  4,
	TagBig:   5,
}

// floatRank gives the widening order for floating tags: float < double < quad.
var floatRank = map[TypeTag]int{
	TagFloat:  0,
	TagDouble: 1,
	TagQuad:   2,
}

func (t TypeTag) IsInteger() bool {
	_, ok := integerRank[t]
	return ok
}

func (t TypeTag) IsFloating() bool {
	_, ok := floatRank[t]
	return ok
}

func (t TypeTag) IsNumeric() bool {
	return t.IsInteger() || t.IsFloating()
}

// Rank returns the widening rank within the operand's numeric family
// (integer or floating); operands from different families are compared
// by the caller, which always prefers the floating operand.
func (t TypeTag) Rank() int {
	if r, ok := integerRank[t]; ok {
		return r
	}
	if r, ok := floatRank[t]; ok {
		return r
	}
	return -1
}

// WidestInteger returns whichever of a, b has the higher integer rank.
func WidestInteger(a, b TypeTag) TypeTag {
	if a.Rank() >= b.Rank() {
		return a
	}
	return b
}

// WidestFloating returns whichever of a, b has the higher floating rank.
func WidestFloating(a, b TypeTag) TypeTag {
	if a.Rank() >= b.Rank() {
		return a
	}
	return b
}

// Dimension is one array dimension: either a fixed size or dynamic (sized
// at runtime from an initializer).
type Dimension struct {
	Size    int
	Dynamic bool
}

// ArrayTypeInfo describes an array type's element type and dimension list
//.
type ArrayTypeInfo struct {
	ElementType TypeAnnotation
	Dimensions  []Dimension
}

func (a *ArrayTypeInfo) IsMultiDimensional() bool {
	return len(a.Dimensions) > 1
}

// TypeAnnotation is a declared type occurrence: a tag, an optional named
// type (struct/enum/union/interface/generic-parameter name), qualifier
// flags, and — for arrays — an ArrayTypeInfo. Doc() renders it for
// diagnostics via turbolent/prettier.
type TypeAnnotation struct {
	Tag            TypeTag
	Name           string // struct/enum/union/interface/generic-param name
	IsConst        bool
	IsStatic       bool
	IsUnsigned     bool
	IsReference    bool
	PointerDepth   int
	PointeeConst   bool // const T* : the pointee may not be mutated through this pointer
	PointerConst   bool // T* const : the pointer variable itself may not be reassigned
	Array          *ArrayTypeInfo
}

func (t *TypeAnnotation) IsArray() bool {
	return t.Array != nil
}

func (t *TypeAnnotation) IsPointer() bool {
	return t.PointerDepth > 0
}

func (t *TypeAnnotation) String() string {
	var sb strings.Builder
	prettier.Prettier(&sb, t.Doc(), 80, "    ")
	return sb.String()
}

func (t *TypeAnnotation) Doc() prettier.Doc {
	var doc prettier.Concat

	if t.IsConst {
		doc = append(doc, prettier.Text("const "))
	}

	name := t.Name
	if name == "" {
		name = string(t.Tag)
	}
	doc = append(doc, prettier.Text(name))

	if t.IsArray() {
		for _, dim := range t.Array.Dimensions {
			if dim.Dynamic {
				doc = append(doc, prettier.Text("[]"))
			} else {
				doc = append(doc, prettier.Text("["), prettier.Text(itoa(dim.Size)), prettier.Text("]"))
			}
		}
	}

	for i := 0; i < t.PointerDepth; i++ {
		doc = append(doc, prettier.Text("*"))
	}
	if t.PointerConst {
		doc = append(doc, prettier.Text(" const"))
	}
	if t.IsReference {
		doc = append(doc, prettier.Text("&"))
	}

	return doc
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
