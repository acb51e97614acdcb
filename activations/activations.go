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

// Package activations implements a generic, copy-on-write activation
// stack: a LIFO sequence of name->value maps where lookups search the
// innermost map first and fall through to outer ones. This backs both
// the variable scope stack and the namespace "using" stack.
package activations

// entry is one pushed activation record: an immutable map (copy-on-write)
// plus a parent pointer to the record it was pushed on top of.
type entry struct {
	values map[string]any
	parent *entry
}

// Activations is a LIFO stack of scopes. The zero value is an empty stack
// with one implicit bottom scope, so Set/Find work before any Push call.
type Activations struct {
	current *entry
}

// Set inserts or shadows name in the current (innermost) scope.
func (a *Activations) Set(name string, value any) {
	if a.current == nil {
		a.current = &entry{values: map[string]any{}}
	}
	if a.current.values == nil {
		a.current.values = map[string]any{}
	}
	a.current.values[name] = value
}

// Find walks innermost to outermost, returning the first match or nil.
func (a *Activations) Find(name string) any {
	for e := a.current; e != nil; e = e.parent {
		if v, ok := e.values[name]; ok {
			return v
		}
	}
	return nil
}

// FindWithDepth is like Find but also reports how many scopes were walked
// past to find it (0 = current scope).
func (a *Activations) FindWithDepth(name string) (value any, depth int, ok bool) {
	depth = 0
	for e := a.current; e != nil; e = e.parent {
		if v, found := e.values[name]; found {
			return v, depth, true
		}
		depth++
	}
	return nil, 0, false
}

// PushCurrent pushes a fresh scope on top, inheriting the current one as
// its lookup parent. Mutations made after this call are invisible once
// Pop returns to the parent.
func (a *Activations) PushCurrent() {
	a.current = &entry{parent: a.current}
}

// Pop discards the current (innermost) scope. Popping past the bottom is
// a no-op rather than a panic, so an unbalanced Pop can never crash a
// caller that is already unwinding from an error.
func (a *Activations) Pop() {
	if a.current == nil {
		return
	}
	a.current = a.current.parent
}

// Depth reports the number of scopes on the stack, the bottom scope
// included once it exists (0 = a zero value with no Set or PushCurrent
// yet).
func (a *Activations) Depth() int {
	depth := 0
	for e := a.current; e != nil; e = e.parent {
		depth++
	}
	return depth
}

// ForEachLocal iterates only the bindings in the current (innermost)
// scope.
func (a *Activations) ForEachLocal(fn func(name string, value any)) {
	if a.current == nil {
		return
	}
	for k, v := range a.current.values {
		fn(k, v)
	}
}

// ForEach iterates every visible binding, innermost scope first. A name
// shadowed in an inner scope is reported once, with its visible value.
func (a *Activations) ForEach(fn func(name string, value any)) {
	seen := map[string]struct{}{}
	for e := a.current; e != nil; e = e.parent {
		for k, v := range e.values {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			fn(k, v)
		}
	}
}
