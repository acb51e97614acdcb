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

	"github.com/SaveTheRbtz/mph"

	"github.com/cb-lang/cb/activations"
	"github.com/cb-lang/cb/common"
	cberrors "github.com/cb-lang/cb/errors"
)

// NamespaceRegistry is the C8 namespace resolver: every qualified
// declaration name registered by declarations.go, plus the stack of
// `using namespace` directives active at the point of lookup. The active
// stack reuses the activations package the variable store is built on,
// one entry set per pushed scope, so `using` obeys normal block scoping.
type NamespaceRegistry struct {
	qualified map[string]bool      // every "N1::N2::name" ever registered
	short     map[string][]string // unqualified name -> all qualified forms it could mean
	using     activations.Activations

	// index is a minimal perfect hash over every name in qualified,
	// built once by Freeze after all imports/declarations have been
	// registered ("consults the struct-definition table" runs once
	// execution starts, not per lookup). Nil before Freeze is called, in
	// which case Resolve falls back to the qualified map directly.
	index *mph.CHD
}

func NewNamespaceRegistry() *NamespaceRegistry {
	r := &NamespaceRegistry{
		qualified: map[string]bool{},
		short:     map[string][]string{},
	}
	r.using.PushCurrent()
	return r
}

// Freeze builds the perfect-hash index over every qualified name
// registered so far. Called once declaration registration completes
// ("all imported modules' top-level declarations have been appended to
// the global scope and registered" — Run calls this after
// registerDeclarations returns). Registering further names after Freeze
// (e.g. a late `import`) simply invalidates the index for the new names;
// Resolve's fallback path still finds them via the qualified map.
func (r *NamespaceRegistry) Freeze() {
	if len(r.qualified) == 0 {
		return
	}
	b := mph.Builder()
	for name := range r.qualified {
		b.Add([]byte(name), []byte(name))
	}
	h, err := b.Build()
	if err != nil {
		// A degenerate key set (e.g. a single name) can fail CHD
		// construction; the qualified map remains authoritative.
		return
	}
	r.index = h
}

// has reports whether name is a registered qualified name, consulting
// the perfect-hash index when available and falling back to the
// qualified map otherwise (also the map's final say, since the index
// only ever confirms membership of a name inserted into it).
func (r *NamespaceRegistry) has(name string) bool {
	if r.index != nil {
		if v := r.index.Get([]byte(name)); v != nil && string(v) == name {
			return true
		}
	}
	return r.qualified[name]
}

// Register records a fully qualified declaration name produced by
// FuncDeclStmt.QualifiedName (or the equivalent for a type declaration).
func (r *NamespaceRegistry) Register(qualifiedName string) {
	r.qualified[qualifiedName] = true
	parts := strings.Split(qualifiedName, "::")
	short := parts[len(parts)-1]
	r.short[short] = append(r.short[short], qualifiedName)
}

// forkView builds a registry for a concurrently-scheduled task: it
// shares the registration tables and the frozen index (read-only once
// execution starts) but carries its own `using` stack, so one task's
// block-scoped directives never leak into — or get popped by — another.
func (r *NamespaceRegistry) forkView() *NamespaceRegistry {
	child := &NamespaceRegistry{
		qualified: r.qualified,
		short:     r.short,
		index:     r.index,
	}
	child.using.PushCurrent()
	return child
}

// PushUsing activates a `using namespace N;` for the remainder of the
// enclosing block.
func (r *NamespaceRegistry) PushUsing(namespace string) {
	active, _ := r.activeList()
	list := make([]string, len(active), len(active)+1)
	copy(list, active)
	list = append(list, namespace)
	r.using.Set("", list)
}

func (r *NamespaceRegistry) activeList() ([]string, bool) {
	v := r.using.Find("")
	if v == nil {
		return nil, false
	}
	return v.([]string), true
}

// PushScope/PopScope bracket a block so `using` directives declared
// inside it fall out of scope at the closing brace, mirroring variable
// scoping.
func (r *NamespaceRegistry) PushScope() { r.using.PushCurrent() }
func (r *NamespaceRegistry) PopScope()  { r.using.Pop() }

// Resolve looks up a possibly-qualified reference path. An explicit
// multi-segment path (N::name) is joined and returned as-is if
// registered. A bare name is first tried unqualified, then against every
// active `using namespace`; more than one match is an ambiguous
// reference.
func (r *NamespaceRegistry) Resolve(path []string, loc *common.Range) string {
	joined := strings.Join(path, "::")
	if len(path) > 1 {
		return joined
	}

	name := path[0]
	if r.has(name) {
		return name
	}

	var candidates []string
	if active, ok := r.activeList(); ok {
		for _, ns := range active {
			q := ns + "::" + name
			if r.has(q) {
				candidates = append(candidates, q)
			}
		}
	}
	switch len(candidates) {
	case 0:
		return name
	case 1:
		return candidates[0]
	default:
		var rng common.Range
		if loc != nil {
			rng = *loc
		}
		panic(cberrors.AmbiguousNameError(name, candidates, rng))
	}
}
