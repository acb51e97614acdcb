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
	"math"

	"github.com/rivo/uniseg"

	"github.com/cb-lang/cb/ast"
	cberrors "github.com/cb-lang/cb/errors"
)

// FFIRegistry is the foreign-function contract: `foreign` declarations
// name a signature the host environment must already know how to bridge.
// Resolving an arbitrary foreign symbol against the host's dynamic loader
// is explicitly out of scope; instead a fixed, enumerated set of
// signatures (the host's math and string primitives) is wired natively,
// and any declared-but-unrecognized signature raises
// ForeignSignatureUnsupported at call time rather than at declaration
// time, matching the way every other name-resolution failure in this
// interpreter is reported lazily, at first use.
type FFIRegistry struct {
	declared map[string]*ast.ForeignFuncDeclStmt
	natives  map[string]func(args []Value) Value
}

func NewFFIRegistry() *FFIRegistry {
	r := &FFIRegistry{
		declared: map[string]*ast.ForeignFuncDeclStmt{},
	}
	r.natives = map[string]func(args []Value) Value{
		"sqrt":   unaryMath(math.Sqrt),
		"floor":  unaryMath(math.Floor),
		"ceil":   unaryMath(math.Ceil),
		"abs":    unaryMath(math.Abs),
		"pow":    binaryMath(math.Pow),
		"strlen": ffiStrlen,
	}
	return r
}

// Register records a `foreign` declaration's name and signature so a
// later call site can be checked against it.
func (r *FFIRegistry) Register(decl *ast.ForeignFuncDeclStmt) {
	r.declared[decl.Name] = decl
}

// Lookup reports whether name was declared foreign, and if so, its
// declaration (for arity/signature checks by the caller).
func (r *FFIRegistry) Lookup(name string) (*ast.ForeignFuncDeclStmt, bool) {
	d, ok := r.declared[name]
	return d, ok
}

// supportedSignature reports whether a foreign declaration's shape is
// one of the bridgeable parameter/return combinations:
//
//	() -> int, (int) -> int, (int, int) -> int
//	(double) -> double, (double, double) -> double
//	() -> void, (int) -> void
//	(string) -> int  (string-pointer argument, e.g. strlen)
func supportedSignature(decl *ast.ForeignFuncDeclStmt) bool {
	ret := decl.ReturnType.Tag
	tags := make([]ast.TypeTag, len(decl.Params))
	for i, p := range decl.Params {
		tags[i] = p.Type.Tag
	}
	allInt := true
	allDouble := true
	for _, t := range tags {
		if t != ast.TagInt {
			allInt = false
		}
		if t != ast.TagDouble {
			allDouble = false
		}
	}
	switch ret {
	case ast.TagInt:
		if len(tags) == 1 && tags[0] == ast.TagString {
			return true
		}
		return len(tags) <= 2 && allInt
	case ast.TagDouble:
		return len(tags) >= 1 && len(tags) <= 2 && allDouble
	case ast.TagVoid, "":
		if len(tags) == 0 {
			return true
		}
		return len(tags) == 1 && tags[0] == ast.TagInt
	default:
		return false
	}
}

// callForeign invokes a declared foreign function's native
// implementation. A declaration whose signature falls outside the
// bridgeable set, or one this host has no native binding for, raises
// ForeignSignatureUnsupported with the rendered signature.
func (inter *Interpreter) callForeign(decl *ast.ForeignFuncDeclStmt, args []Value, rng ast.Range) Value {
	if !supportedSignature(decl) {
		inter.throw(cberrors.ForeignSignatureUnsupported, "unsupported foreign signature: "+signatureString(decl), rng)
	}
	native, ok := inter.ffi.natives[decl.Name]
	if !ok {
		inter.throw(cberrors.ForeignSignatureUnsupported, "unsupported foreign signature: "+signatureString(decl), rng)
	}
	// Arguments are coerced to the FFI-permitted tags before crossing
	// the boundary.
	coerced := make([]Value, len(args))
	for i, a := range args {
		if i < len(decl.Params) {
			coerced[i] = Coerce(a, decl.Params[i].Type.Tag)
		} else {
			coerced[i] = a
		}
	}
	return native(coerced)
}

// signatureString renders a foreign declaration's signature for the
// ForeignSignatureUnsupported diagnostic, e.g. "strchr(string, int) -> int"
// ("enumerate the exact supported signatures").
func signatureString(decl *ast.ForeignFuncDeclStmt) string {
	params := make([]string, len(decl.Params))
	for i, p := range decl.Params {
		params[i] = p.Type.String()
	}
	sep := ""
	if len(params) > 0 {
		sep = " "
	}
	return decl.Name + "(" + joinComma(params) + ")" + sep + "-> " + decl.ReturnType.String()
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

func unaryMath(fn func(float64) float64) func([]Value) Value {
	return func(args []Value) Value {
		if len(args) < 1 {
			return DoubleValue{}
		}
		return DoubleValue{Value: fn(AsFloat64(args[0]))}
	}
}

func binaryMath(fn func(float64, float64) float64) func([]Value) Value {
	return func(args []Value) Value {
		if len(args) < 2 {
			return DoubleValue{}
		}
		return DoubleValue{Value: fn(AsFloat64(args[0]), AsFloat64(args[1]))}
	}
}

// ffiStrlen counts grapheme clusters rather than bytes, using the same
// uniseg-based notion of "character" the string type uses elsewhere
//.
func ffiStrlen(args []Value) Value {
	if len(args) < 1 {
		return NewIntValue(0, ast.TagInt)
	}
	s, ok := args[0].(StringValue)
	if !ok {
		return NewIntValue(0, ast.TagInt)
	}
	return NewIntValue(int64(uniseg.GraphemeClusterCount(s.Value)), ast.TagInt)
}
