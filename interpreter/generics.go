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
	"sort"
	"strings"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/cb-lang/cb/ast"
)

// GenericCache stores the generic-parameter-name -> concrete-type
// binding set of each instantiation, keyed by "name<t1,t2,...>" with the
// concrete types in GenericParams order. A generic function/method is
// never monomorphized into separate code (there is only ever one AST
// body to walk). The bindings are matched against the arguments on every
// call and the key is built from that result, so a repeat call with the
// same concrete types gets back the map stored by the first call; the
// matching itself is not skipped.
type GenericCache struct {
	mu       sync.Mutex
	bindings map[string]map[string]ast.TypeAnnotation
}

func NewGenericCache() *GenericCache {
	return &GenericCache{bindings: map[string]map[string]ast.TypeAnnotation{}}
}

func (c *GenericCache) get(key string) (map[string]ast.TypeAnnotation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.bindings[key]
	return b, ok
}

func (c *GenericCache) put(key string, bindings map[string]ast.TypeAnnotation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[key] = bindings
}

// cachedEntry is the CBOR wire shape for one instantiation cache entry,
// keyed by the same "name<t1,t2,...>" string instantiationKey produces.
type cachedEntry struct {
	Key      string            `cbor:"key"`
	Bindings map[string]string `cbor:"bindings"`
}

// DumpCache CBOR-encodes a snapshot of every cached generic instantiation
// for debug inspection (the CLI's `--dump-cache` flag): each entry's
// binding set is flattened to generic-parameter-name -> rendered type tag
// so the encoding doesn't need to know about ast.TypeAnnotation's shape.
func (c *GenericCache) DumpCache() ([]byte, error) {
	c.mu.Lock()
	entries := make([]cachedEntry, 0, len(c.bindings))
	for key, bindings := range c.bindings {
		flat := make(map[string]string, len(bindings))
		for param, ann := range bindings {
			if ann.Name != "" {
				flat[param] = ann.Name
			} else {
				flat[param] = string(ann.Tag)
			}
		}
		entries = append(entries, cachedEntry{Key: key, Bindings: flat})
	}
	c.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return cbor.Marshal(entries)
}

// instantiationKey renders a stable cache key from a resolved binding set,
// e.g. "max<int,int>" or "box<Point>".
func instantiationKey(funcName string, bindings map[string]ast.TypeAnnotation, order []string) string {
	parts := make([]string, 0, len(order))
	for _, name := range order {
		b := bindings[name]
		tag := string(b.Tag)
		if b.Name != "" {
			tag = b.Name
		}
		parts = append(parts, tag)
	}
	return funcName + "<" + strings.Join(parts, ",") + ">"
}

// DumpGenericCache exposes the generic-instantiation cache's CBOR
// snapshot (cmd/cb's `--dump-cache` flag).
func (inter *Interpreter) DumpGenericCache() ([]byte, error) {
	return inter.generics.DumpCache()
}

// resolveGenericBindings infers each of fn.GenericParams' concrete types
// from the actual argument values passed at this call site: the first
// parameter whose declared type names that generic parameter (Tag == ""
// is the AST contract's placeholder spelling for an unresolved generic
// occurrence, Name the parameter name it stands for) supplies the
// binding, taken from the corresponding argument's own runtime type
// (unwrapping one array level when the parameter itself is an array of T).
func (inter *Interpreter) resolveGenericBindings(fn *ast.FuncDeclStmt, args []Value) map[string]ast.TypeAnnotation {
	if len(fn.GenericParams) == 0 {
		return nil
	}
	bindings := map[string]ast.TypeAnnotation{}
	for _, g := range fn.GenericParams {
		for i, p := range fn.Params {
			if i >= len(args) {
				continue
			}
			if p.Type.IsArray() && p.Type.Array.ElementType.Tag == "" && p.Type.Array.ElementType.Name == g {
				if av, ok := args[i].(*ArrayValue); ok {
					bindings[g] = annotationOfValue(av.elementSample())
					break
				}
			}
			if p.Type.Tag == "" && p.Type.Name == g {
				bindings[g] = annotationOfValue(args[i])
				break
			}
		}
		if _, ok := bindings[g]; !ok {
			// No argument carried this generic parameter (e.g. it only
			// appears in the return type): default it to int rather than
			// leaving it unresolved, since every runtime value still needs
			// a concrete tag.
			bindings[g] = ast.TypeAnnotation{Tag: ast.TagInt}
		}
	}
	key := instantiationKey(fn.QualifiedName(""), bindings, fn.GenericParams)
	if cached, ok := inter.generics.get(key); ok {
		return cached
	}
	inter.generics.put(key, bindings)
	return bindings
}

// elementSample returns a representative element value used only to infer
// a generic binding's concrete type, or NullValue{} for an empty array.
func (a *ArrayValue) elementSample() Value {
	if len(a.Elements) == 0 {
		return NullValue{}
	}
	return a.Elements[0].Value
}

// annotationOfValue captures a runtime value's shape as a TypeAnnotation,
// used to bind a generic parameter to the concrete type it was called
// with.
func annotationOfValue(v Value) ast.TypeAnnotation {
	switch val := v.(type) {
	case *StructValue:
		return ast.TypeAnnotation{Tag: ast.TagStruct, Name: val.TypeName}
	case EnumValue:
		return ast.TypeAnnotation{Tag: ast.TagEnum, Name: val.TypeName}
	case UnionValue:
		return ast.TypeAnnotation{Tag: ast.TagUnion, Name: val.TypeName}
	case InterfaceValue:
		return ast.TypeAnnotation{Tag: ast.TagInterface, Name: val.InterfaceName}
	case *PointerValue:
		return ast.TypeAnnotation{Tag: ast.TagPointer, PointerDepth: 1}
	case nil:
		return ast.TypeAnnotation{Tag: ast.TagInt}
	default:
		return ast.TypeAnnotation{Tag: v.Tag()}
	}
}

// resolveTypeAnnotation substitutes a resolved generic binding into a
// placeholder type occurrence, preserving the occurrence's own qualifier
// flags (const/pointer-depth/etc., which belong to the occurrence, not
// the generic parameter it names). Array annotations recurse into their
// element type; everything else is returned unchanged.
func resolveTypeAnnotation(t ast.TypeAnnotation, bindings map[string]ast.TypeAnnotation) ast.TypeAnnotation {
	if bindings == nil {
		return t
	}
	if t.Tag == "" {
		if resolved, ok := bindings[t.Name]; ok {
			out := resolved
			out.IsConst = t.IsConst
			out.IsStatic = t.IsStatic
			out.IsUnsigned = t.IsUnsigned
			out.IsReference = t.IsReference
			out.PointerDepth = t.PointerDepth
			out.PointeeConst = t.PointeeConst
			out.PointerConst = t.PointerConst
			return out
		}
	}
	if t.IsArray() {
		elem := resolveTypeAnnotation(t.Array.ElementType, bindings)
		out := t
		info := *t.Array
		info.ElementType = elem
		out.Array = &info
		return out
	}
	return t
}
