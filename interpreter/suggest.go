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
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Name-lookup failures (UndefinedVariable, FunctionNotFound,
// InterfaceMethodNotFound, StructMemberNotFound) carry a "did you mean" hint when a declared name
// sits within a small edit distance of the one the program asked for.

// suggestName returns the candidate closest to name by Levenshtein
// distance, if any candidate is close enough to plausibly be a typo.
// Ties resolve to the lexicographically first candidate so the hint is
// deterministic.
func suggestName(name string, candidates []string) (string, bool) {
	limit := 1
	if len(name) >= 4 {
		limit = 2
	}
	sort.Strings(candidates)
	best := ""
	bestDist := limit + 1
	for _, c := range candidates {
		if c == "" || c == name {
			continue
		}
		d := levenshtein.DistanceForStrings([]rune(name), []rune(c), levenshtein.Options{
			InsCost: 1,
			DelCost: 1,
			SubCost: 1,
			Matches: levenshtein.IdenticalRunes,
		})
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

// withSuggestion appends a "did you mean" clause to message when a
// near-miss candidate exists.
func withSuggestion(message, name string, candidates []string) string {
	if s, ok := suggestName(name, candidates); ok {
		return fmt.Sprintf("%s (did you mean %q?)", message, s)
	}
	return message
}

// visibleVariableNames collects every variable name the current scope
// chain can see.
func (inter *Interpreter) visibleVariableNames() []string {
	var names []string
	inter.scope.ForEachVariableName(func(name string) {
		names = append(names, name)
	})
	return names
}

// callableNames collects everything call syntax could resolve: declared
// (possibly qualified) functions, builtins, and declared foreign
// functions.
func (inter *Interpreter) callableNames() []string {
	var names []string
	for name := range inter.scope.Functions {
		if strings.Contains(name, ".") {
			// Method table aliases ("Struct.method") are not callable by
			// bare name.
			continue
		}
		names = append(names, name)
	}
	for name := range inter.builtins {
		names = append(names, name)
	}
	for name := range inter.ffi.declared {
		names = append(names, name)
	}
	return names
}

// methodNames collects the method names dispatchable on a struct type.
func (inter *Interpreter) methodNames(structName string) []string {
	prefix := structName + "."
	var names []string
	for name := range inter.scope.Functions {
		if strings.HasPrefix(name, prefix) {
			names = append(names, strings.TrimPrefix(name, prefix))
		}
	}
	return names
}
