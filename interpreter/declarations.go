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

// registerDeclarations walks a top-level declaration list, populating the
// global scope's tables and the namespace registry. It recurses into
// `namespace N { ... }` bodies, prefixing every nested declaration's
// qualified name with N::, and accumulates ForeignFuncDeclStmt signatures
// into the FFI registry.
func (inter *Interpreter) registerDeclarations(decls []ast.Stmt, namespace string) error {
	for _, d := range decls {
		switch n := d.(type) {
		case *ast.FuncDeclStmt:
			qualified := n.QualifiedName(namespace)
			inter.scope.Functions[qualified] = n
			inter.namespaces.Register(qualified)

		case *ast.StructDeclStmt:
			inter.scope.Structs[n.Name] = n
			inter.namespaces.Register(qualifyName(namespace, n.Name))

		case *ast.EnumDeclStmt:
			inter.scope.Enums[n.Name] = n
			inter.namespaces.Register(qualifyName(namespace, n.Name))

		case *ast.UnionDeclStmt:
			inter.scope.Unions[n.Name] = n
			inter.namespaces.Register(qualifyName(namespace, n.Name))

		case *ast.InterfaceDeclStmt:
			inter.scope.Interfaces[n.Name] = n
			inter.namespaces.Register(qualifyName(namespace, n.Name))

		case *ast.ImplDeclStmt:
			inter.scope.Impls[n.StructName] = append(inter.scope.Impls[n.StructName], n)
			for _, m := range n.Methods {
				m.Receiver = n.StructName
				qualified := m.QualifiedName(namespace)
				inter.scope.Functions[qualified] = m
				inter.namespaces.Register(qualified)
				// Also register under the bare method name so dispatch.go's
				// receiver-based lookup (struct type + method name) finds it
				// without needing the enclosing namespace.
				inter.scope.Functions[n.StructName+"."+m.Name] = m
			}

		case *ast.NamespaceDeclStmt:
			nested := n.Name
			if namespace != "" {
				nested = namespace + "::" + n.Name
			}
			if err := inter.registerDeclarations(n.Declarations, nested); err != nil {
				return err
			}

		case *ast.UsingStmt:
			inter.namespaces.PushUsing(n.Namespace)

		case *ast.ForeignFuncDeclStmt:
			inter.ffi.Register(n)

		case *ast.ImportStmt:
			// Resolving an import to another module's declarations is an
			// external module-loader concern; loadImport delegates to the
			// configured ModuleResolver and enforces loaded-once semantics.
			inter.loadImport(n)

		default:
			// VarDeclStmt/ArrayDeclStmt/AssignStmt and other statement kinds
			// do not appear at top level in a well-formed program; ignore
			// rather than reject so partial programs built for testing can
			// omit a `main`.
		}
	}
	return nil
}

func qualifyName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "::" + name
}

// execVarDecl implements `T name [= initializer];` (
// "Variable declaration"): a declared struct type gets an eagerly
// constructed instance even with no initializer; everything else gets
// its zero value, then the initializer (if any) is applied through the
// same coercion path as assignment.
func (inter *Interpreter) execVarDecl(n *ast.VarDeclStmt) {
	var cell *Variable
	if n.Type.IsReference {
		cell = inter.bindReference(n, n.Initializer)
	} else if n.Type.Tag == ast.TagStruct && n.Initializer == nil {
		cell = NewVariable(ast.TagStruct, n.Type.Name)
		cell.Value = inter.NewStructInstance(n.Type.Name, n.SourceRange())
	} else {
		cell = NewVariable(n.Type.Tag, n.Type.Name)
		cell.PointerDepth = n.Type.PointerDepth
		cell.SetIsPointer(n.Type.PointerDepth > 0)
		cell.SetPointeeConst(n.Type.PointeeConst)
		cell.SetPointerConst(n.Type.PointerConst)
		cell.SetUnsigned(n.Type.IsUnsigned)
		cell.SetStatic(n.Type.IsStatic)
		if cell.IsPointer() {
			cell.PointerBase = n.Type.Tag
			cell.Value = NullPointer()
		}
	}

	if n.Initializer != nil && !n.Type.IsReference {
		inter.assignCell(cell, n.Initializer)
	}
	cell.SetConst(n.Type.IsConst)
	inter.scope.Declare(n.Name, cell)
}

// bindReference implements a reference declaration `T& name = lvalue;`:
// the new cell carries no storage of its own, only a handle to the
// referent cell, which every subsequent read/write dereferences through
//.
func (inter *Interpreter) bindReference(n *ast.VarDeclStmt, initializer ast.Expr) *Variable {
	if initializer == nil {
		inter.throw(cberrors.TypeMismatch, "a reference declaration requires an initializer", n.SourceRange())
	}
	var target *Variable
	if call, ok := initializer.(*ast.CallExpr); ok {
		// Binding a reference to a reference-returning call aliases the
		// callee's returned referent.
		inter.lastReturnRef = nil
		inter.Eval(call)
		if inter.lastReturnRef == nil {
			inter.throw(cberrors.TypeMismatch, "a reference can only bind to a reference-returning call", n.SourceRange())
		}
		target = inter.lastReturnRef
	} else {
		target = inter.resolveLValue(initializer)
	}
	cell := NewVariable(n.Type.Tag, n.Type.Name)
	cell.SetReference(true)
	cell.Referent = &VarHandle{ScopeID: inter.cellScopeID(target), Cell: target}
	return cell
}

// execArrayDecl implements array declaration with an optional literal or
// function-call initializer (
// "Array-from-function-return").
func (inter *Interpreter) execArrayDecl(n *ast.ArrayDeclStmt) {
	var cell *Variable
	switch init := n.Initializer.(type) {
	case nil:
		cell = inter.NewArrayVariable(n.Type, nil, n.SourceRange())
	case *ast.ArrayLiteralExpr:
		cell = inter.NewArrayVariable(n.Type, init, n.SourceRange())
	default:
		cell = NewVariable(ast.TagArray, "")
		val := inter.Eval(init)
		av, ok := val.(*ArrayValue)
		if !ok {
			inter.throw(cberrors.TypeMismatch, "array initializer did not produce an array", init.SourceRange())
		}
		cell.Value = av.Clone()
	}
	cell.SetConst(n.Type.IsConst)
	inter.scope.Declare(n.Name, cell)
}
