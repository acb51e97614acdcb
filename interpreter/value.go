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
	"math/big"

	"github.com/cb-lang/cb/ast"
)

// Value is the dynamically-typed payload produced by the expression
// evaluator. Each concrete type corresponds to one ast.TypeTag; an
// operation dispatches on the tag and only ever touches the slot the tag
// authorizes — there is no parallel "multiple slots valid at once" state.
type Value interface {
	Tag() ast.TypeTag
	fmt.Stringer
	isValue()
}

type valueBase struct{}

func (valueBase) isValue() {}

// NullValue represents void / an unassigned default.
type NullValue struct{ valueBase }

func (NullValue) Tag() ast.TypeTag { return ast.TagVoid }
func (NullValue) String() string   { return "null" }

// IntValue backs bool, char, tiny, short, int, long — a plain 64-bit
// integer tagged with its declared width.
type IntValue struct {
	valueBase
	Value int64
	tag   ast.TypeTag
}

func NewIntValue(v int64, tag ast.TypeTag) IntValue { return IntValue{Value: v, tag: tag} }
func (v IntValue) Tag() ast.TypeTag                 { return v.tag }
func (v IntValue) String() string                   { return fmt.Sprintf("%d", v.Value) }

// BigValue backs the "big" tag: arbitrary-precision integers. No
// arbitrary-precision integer library appears anywhere in the example
// pack (see DESIGN.md), so this one numeric tag uses stdlib math/big.
type BigValue struct {
	valueBase
	Value *big.Int
}

func (BigValue) Tag() ast.TypeTag { return ast.TagBig }
func (v BigValue) String() string { return v.Value.String() }

// FloatValue backs "float" (32-bit).
type FloatValue struct {
	valueBase
	Value float32
}

func (FloatValue) Tag() ast.TypeTag { return ast.TagFloat }
func (v FloatValue) String() string { return fmt.Sprintf("%g", v.Value) }

// DoubleValue backs "double" (64-bit).
type DoubleValue struct {
	valueBase
	Value float64
}

func (DoubleValue) Tag() ast.TypeTag { return ast.TagDouble }
func (v DoubleValue) String() string { return fmt.Sprintf("%g", v.Value) }

// QuadValue backs "quad" (long double). The host's native long double
// has no portable Go representation, so it is emulated with big.Float.
// The one high-precision numeric library in the dependency set,
// github.com/onflow/fixed-point, is a bounded fixed-point decimal
// (Fix128/UFix128): it has no +-Inf or NaN, which quad's IEEE
// division semantics require, and it sits outside the
// float < double < quad binary-float widening chain, so it cannot host
// this tag (see DESIGN.md).
type QuadValue struct {
	valueBase
	Value *big.Float
}

func (QuadValue) Tag() ast.TypeTag { return ast.TagQuad }
func (v QuadValue) String() string { return v.Value.Text('g', -1) }

// StringValue backs "string"; indexing/char-replace operations on it use
// github.com/rivo/uniseg for grapheme-aware indexing rather than raw byte
// slicing.
type StringValue struct {
	valueBase
	Value string
}

func (StringValue) Tag() ast.TypeTag { return ast.TagString }
func (v StringValue) String() string { return v.Value }

// BoolAsInt renders a bool as the canonical IntValue used throughout the
// evaluator.
func BoolAsInt(b bool) IntValue {
	if b {
		return NewIntValue(1, ast.TagBool)
	}
	return NewIntValue(0, ast.TagBool)
}

// Truthy implements: any nonzero numeric
// or non-null pointer is true.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case IntValue:
		return val.Value != 0
	case BigValue:
		return val.Value.Sign() != 0
	case FloatValue:
		return val.Value != 0
	case DoubleValue:
		return val.Value != 0
	case QuadValue:
		return val.Value.Sign() != 0
	case StringValue:
		return val.Value != ""
	case *PointerValue:
		return val.Metadata.Variant != PointerNull
	case NullValue:
		return false
	default:
		return true
	}
}

// FunctionPointerValue binds a variable to a declared function, used for
// `T v = &f;` and for calling through a function-pointer variable.
type FunctionPointerValue struct {
	valueBase
	FuncName   string
	Decl       *ast.FuncDeclStmt
	ReturnType ast.TypeAnnotation
}

func (FunctionPointerValue) Tag() ast.TypeTag { return ast.TagPointer }
func (v FunctionPointerValue) String() string { return "&" + v.FuncName }

// EnumValue is the result of `Type::Variant`.
type EnumValue struct {
	valueBase
	TypeName  string
	Variant   string
	Associated Value // nil if the variant carries no associated value
}

func (EnumValue) Tag() ast.TypeTag { return ast.TagEnum }
func (v EnumValue) String() string { return v.TypeName + "::" + v.Variant }

// UnionValue is a tagged union whose CurrentType records which of the
// union's allowed types is presently active.
type UnionValue struct {
	valueBase
	TypeName    string
	CurrentType ast.TypeTag
	Payload     Value
}

func (UnionValue) Tag() ast.TypeTag { return ast.TagUnion }
func (v UnionValue) String() string { return fmt.Sprintf("%s(%s)", v.TypeName, v.Payload) }

// InterfaceValue is an "interface view": a struct snapshot carried under
// a declared interface type, dispatching methods through that
// interface's impl table.
type InterfaceValue struct {
	valueBase
	InterfaceName string
	Underlying    *StructValue
}

func (InterfaceValue) Tag() ast.TypeTag { return ast.TagInterface }
func (v InterfaceValue) String() string { return v.InterfaceName + "(" + v.Underlying.String() + ")" }
