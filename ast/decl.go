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

// Parameter is one function/method parameter.
type Parameter struct {
	Name string
	Type TypeAnnotation
}

// FuncDeclStmt declares a free function, or — when Receiver is non-empty
// — a method inside an `impl` block. GenericParams is non-empty for
// a generic function/impl.
type FuncDeclStmt struct {
	stmtBase
	Name           string
	Receiver       string // struct type name this is a method of, else ""
	GenericParams  []string
	Params         []Parameter
	ReturnType     TypeAnnotation
	Body           *BlockStmt
}

// QualifiedName is the name under which this declaration should be
// registered by the namespace registry: "name" outside any
// namespace, "N::name" inside `namespace N { ... }`.
func (f *FuncDeclStmt) QualifiedName(namespace string) string {
	if namespace == "" {
		return f.Name
	}
	return namespace + "::" + f.Name
}

// StructField is one declared member of a struct type.
type StructField struct {
	Name string
	Type TypeAnnotation
}

// StructDeclStmt declares a struct type.
type StructDeclStmt struct {
	stmtBase
	Name          string
	GenericParams []string
	Fields        []StructField
}

// EnumVariant is one variant of an enum type, with an optional associated
// value expression.
type EnumVariant struct {
	Name  string
	Value Expr // nil if the variant carries no associated value
}

// EnumDeclStmt declares an enum type.
type EnumDeclStmt struct {
	stmtBase
	Name     string
	Variants []EnumVariant
}

// UnionDeclStmt declares a union type: a variable of this type may hold a
// value of any one of AllowedTypes at a time ( "Union
// assignment").
type UnionDeclStmt struct {
	stmtBase
	Name          string
	AllowedTypes  []TypeAnnotation
}

// InterfaceMethodSig is one method signature an interface requires.
type InterfaceMethodSig struct {
	Name       string
	Params     []Parameter
	ReturnType TypeAnnotation
}

// InterfaceDeclStmt declares an interface type that a struct's impl
// block can provide a view onto.
type InterfaceDeclStmt struct {
	stmtBase
	Name    string
	Methods []InterfaceMethodSig
}

// ImplDeclStmt is `impl StructName { ...methods... }` or
// `impl Interface for StructName { ...methods... }`.
type ImplDeclStmt struct {
	stmtBase
	StructName    string
	InterfaceName string // "" for a plain inherent impl block
	GenericParams []string
	Methods       []*FuncDeclStmt
}

// NamespaceDeclStmt is `namespace N { ...declarations... }`.
type NamespaceDeclStmt struct {
	stmtBase
	Name         string
	Declarations []Stmt
	Exported     bool
}

// UsingStmt is `using namespace N;`.
type UsingStmt struct {
	stmtBase
	Namespace string
}

// ForeignFuncDeclStmt declares a foreign function signature the FFI
// contract will resolve at call time.
type ForeignFuncDeclStmt struct {
	stmtBase
	Name       string
	Params     []Parameter
	ReturnType TypeAnnotation
}

// ImportStmt requests that a module be loaded by the external module
// resolver before execution continues.
type ImportStmt struct {
	stmtBase
	ModulePath string
}

// Program is the root AST node handed to Interpreter.Run.
type Program struct {
	Declarations []Stmt
}
