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

	"golang.org/x/mod/semver"

	"github.com/cb-lang/cb/ast"
	cberrors "github.com/cb-lang/cb/errors"
)

// ModuleResolver is the external module-loader contract (
// "Module resolver contract (consumed)"): given a module name it returns
// the parsed top-level declarations to append to the global scope, or an
// error if the module cannot be found. The core never parses source
// text itself; this interface is the only way another module's
// declarations enter the interpreter.
type ModuleResolver interface {
	Resolve(modulePath string) (*ast.Program, error)
}

// SetModuleResolver installs the driver's module resolver. Without one,
// any `import` statement fails with ModuleNotFound, matching the spec's
// "no module resolver configured" fallback used by tests that have no
// imports to satisfy.
func (inter *Interpreter) SetModuleResolver(r ModuleResolver) {
	inter.moduleResolver = r
	if inter.loadedModules == nil {
		inter.loadedModules = map[string]bool{}
	}
}

// splitModuleVersion separates an optional "@vX.Y.Z" suffix from a
// qualified import path such as "std::io@v1", validating it with
// golang.org/x/mod/semver the way a module path's version suffix would
// be validated in the Go module system this interpreter is itself built
// with.
func splitModuleVersion(modulePath string) (path, version string, err *cberrors.RuntimeError) {
	at := strings.LastIndex(modulePath, "@")
	if at < 0 {
		return modulePath, "", nil
	}
	path, version = modulePath[:at], modulePath[at+1:]
	if !semver.IsValid(version) {
		return path, version, cberrors.New(cberrors.ModuleNotFound,
			"invalid module version suffix: "+version, ast.Range{})
	}
	return path, version, nil
}

// loadImport implements the "Imports (module resolution)" contract:
// resolves modulePath via the configured ModuleResolver, registers its
// top-level declarations into the global scope, and remembers the path
// so a second `import` of the same name is a no-op ("Loaded-once
// semantics").
func (inter *Interpreter) loadImport(n *ast.ImportStmt) {
	path, _, verErr := splitModuleVersion(n.ModulePath)
	if verErr != nil {
		verErr.Module = inter.Module
		panic(verErr)
	}

	if inter.loadedModules == nil {
		inter.loadedModules = map[string]bool{}
	}
	if inter.loadedModules[path] {
		return
	}

	if inter.moduleResolver == nil {
		inter.throw(cberrors.ModuleNotFound, "no module resolver configured for import "+n.ModulePath, n.SourceRange())
	}

	prog, err := inter.moduleResolver.Resolve(path)
	if err != nil {
		inter.throw(cberrors.ModuleNotFound, "module not found: "+path+": "+err.Error(), n.SourceRange())
	}
	inter.loadedModules[path] = true
	if regErr := inter.registerDeclarations(prog.Declarations, ""); regErr != nil {
		panic(regErr)
	}
}
