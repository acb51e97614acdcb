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

// resolveLValue locates the *Variable cell an expression designates
//. Every one of the eleven assignment
// target shapes, unary & and *, and ++/-- bottom out here. References
// are transparently followed one step ( scope-stack invariant
// 4: "every read/write dereferences it once").
func (inter *Interpreter) resolveLValue(e ast.Expr) *Variable {
	switch n := e.(type) {
	case *ast.VariableExpr:
		v, ok := inter.scope.Find(n.Name)
		if !ok {
			inter.throwUndefinedVariable(n.Name, n.SourceRange())
		}
		return inter.followReference(v, n.SourceRange())

	case *ast.DereferenceExpr:
		ptr := inter.evalPointerOperand(n.Operand)
		return inter.pointerTargetVariable(ptr, n.SourceRange())

	case *ast.MemberAccessExpr:
		var base *Variable
		if n.Arrow {
			ptr := inter.evalPointerOperand(n.Receiver)
			base = inter.pointerTargetVariable(ptr, n.SourceRange())
		} else {
			base = inter.materializeReceiver(n.Receiver)
		}
		return inter.structMember(base, n.Member, n.SourceRange())

	case *ast.ArrayRefExpr:
		return inter.resolveSubscript(n)

	default:
		inter.throw(cberrors.TypeMismatch, "expression is not an lvalue", e.SourceRange())
		return nil
	}
}

// materializeReceiver resolves a member-access receiver to a cell. A
// call expression receiver (`f().m`, `f()[i].m`) is not an lvalue, but
// member access over a returned struct snapshot is still legal: the
// returned value is held in an anonymous cell for the duration of the
// access chain.
func (inter *Interpreter) materializeReceiver(e ast.Expr) *Variable {
	if call, ok := e.(*ast.CallExpr); ok {
		v := inter.Eval(call)
		cell := &Variable{Value: v}
		switch val := v.(type) {
		case *StructValue:
			cell.Type = ast.TagStruct
			cell.TypeName = val.TypeName
		case *ArrayValue:
			cell.Type = ast.TagArray
		default:
			cell.Type = v.Tag()
		}
		return cell
	}
	return inter.resolveLValue(e)
}

// resolveSubscript locates the element cell a (possibly chained)
// subscript expression designates.
func (inter *Interpreter) resolveSubscript(n *ast.ArrayRefExpr) *Variable {
	av, idx := inter.subscriptArrayAndIndex(n)
	return av.Elements[idx]
}

// subscriptArrayAndIndex resolves a (possibly chained) subscript
// expression to its owning array and bounds-checked flat element index.
// A multi-dimensional array stores its elements in one flat, row-major
// slice, so a full chain `a[i][j]` computes the flat index from the
// declared dimensions; every index is bounds-checked against its own
// dimension.
func (inter *Interpreter) subscriptArrayAndIndex(n *ast.ArrayRefExpr) (*ArrayValue, int) {
	// Walk to the base, accumulating index expressions outermost-last.
	var chain []ast.Expr
	base := ast.Expr(n)
	for {
		ref, ok := base.(*ast.ArrayRefExpr)
		if !ok {
			break
		}
		chain = append([]ast.Expr{ref.Index}, chain...)
		base = ref.Array
	}

	arrVar := inter.materializeReceiver(base)
	arrVar = inter.followReference(arrVar, n.SourceRange())
	av, ok := arrVar.Value.(*ArrayValue)
	if !ok {
		inter.throw(cberrors.TypeMismatch, "indexing a non-array value", n.SourceRange())
	}

	indices := make([]int, len(chain))
	for i, idxExpr := range chain {
		indices[i] = int(AsInt64(inter.Eval(idxExpr)))
	}

	if av.IsMultiDim {
		if len(indices) != len(av.Dimensions) {
			inter.throw(cberrors.IndexOutOfBounds, "wrong number of subscripts for multi-dimensional array", n.SourceRange())
		}
		for i, idx := range indices {
			if idx < 0 || idx >= av.Dimensions[i] {
				inter.throw(cberrors.IndexOutOfBounds, "array index out of bounds", n.SourceRange())
			}
		}
		return av, av.FlatIndex(indices)
	}

	if len(indices) != 1 {
		inter.throw(cberrors.IndexOutOfBounds, "too many subscripts for one-dimensional array", n.SourceRange())
	}
	idx := indices[0]
	if idx < 0 || idx >= len(av.Elements) {
		inter.throw(cberrors.IndexOutOfBounds, "array index out of bounds", n.SourceRange())
	}
	return av, idx
}

// followReference resolves a reference-kind variable to its referent
// cell; non-reference variables are returned unchanged.
func (inter *Interpreter) followReference(v *Variable, rng ast.Range) *Variable {
	if !v.IsReference() || v.Referent == nil {
		return v
	}
	if !inter.liveScopes[v.Referent.ScopeID] {
		inter.throw(cberrors.DanglingPointer, "dereferenced a dangling reference", rng)
	}
	return v.Referent.Cell
}

// structMember looks up a named member on a struct (or interface-view
// underlying struct) cell, auto-creating nothing: struct member cells are
// created eagerly at struct-creation time ( open question,
// resolved in favor of eager creation; see DESIGN.md).
func (inter *Interpreter) structMember(base *Variable, member string, rng ast.Range) *Variable {
	base = inter.followReference(base, rng)
	var sv *StructValue
	switch val := base.Value.(type) {
	case *StructValue:
		sv = val
	case InterfaceValue:
		sv = val.Underlying
	default:
		inter.throw(cberrors.TypeMismatch, "member access on a non-struct value", rng)
	}
	cell, ok := sv.Members[member]
	if !ok {
		message := withSuggestion("struct "+sv.TypeName+" has no member "+member, member, sv.Order)
		inter.throw(cberrors.StructMemberNotFound, message, rng)
	}
	return cell
}

// evalPointerOperand evaluates an expression expected to produce a
// pointer value, panicking TypeMismatch otherwise.
func (inter *Interpreter) evalPointerOperand(e ast.Expr) *PointerValue {
	v := inter.Eval(e)
	p, ok := v.(*PointerValue)
	if !ok {
		inter.throw(cberrors.TypeMismatch, "expected a pointer value", e.SourceRange())
	}
	return p
}

// pointerTargetVariable dereferences pointer metadata to the *Variable
// cell it designates. A null pointer raises
// NullPointer; an out-of-range array-element pointer was already rejected
// at arithmetic time, so this only re-validates liveness.
func (inter *Interpreter) pointerTargetVariable(p *PointerValue, rng ast.Range) *Variable {
	m := p.Metadata
	switch m.Variant {
	case PointerNull:
		inter.throw(cberrors.NullPointer, "dereferenced a null pointer", rng)
		return nil
	case PointerVariableRef:
		if !inter.liveScopes[m.Target.ScopeID] {
			inter.throw(cberrors.DanglingPointer, "dereferenced a dangling pointer", rng)
		}
		return m.Target.Cell
	case PointerArrayElement:
		if m.Index < m.RangeStart || m.Index >= m.RangeEnd {
			inter.throw(cberrors.PointerOutOfBounds, "pointer arithmetic left the array bounds", rng)
		}
		return m.Array.Elements[m.Index]
	case PointerStructMember:
		if !inter.liveScopes[m.Target.ScopeID] {
			inter.throw(cberrors.DanglingPointer, "dereferenced a dangling pointer", rng)
		}
		cell := m.Target.Cell
		for _, seg := range m.Path {
			cell = inter.structMember(cell, seg, rng)
		}
		return cell
	default:
		inter.throw(cberrors.TypeMismatch, "invalid pointer metadata", rng)
		return nil
	}
}

// addressOf builds pointer metadata for unary & (
// "address-of"). The three lvalue shapes it must recognize are a plain
// variable, an array-element a[i], and a struct-member a.b; anything else
// resolves through resolveLValue first and is treated as a plain
// variable-ref to the resulting cell (e.g. &(*p)).
func (inter *Interpreter) addressOf(e ast.Expr) *PointerValue {
	switch n := e.(type) {
	case *ast.VariableExpr:
		v, ok := inter.scope.Find(n.Name)
		if !ok {
			inter.throwUndefinedVariable(n.Name, n.SourceRange())
		}
		if v.IsConst() {
			return inter.constPointer(v, n.SourceRange())
		}
		return inter.variableRefPointer(v, n.SourceRange())

	case *ast.ArrayRefExpr:
		av, idx := inter.subscriptArrayAndIndex(n)
		return &PointerValue{Metadata: &PointerMetadata{
			Variant:    PointerArrayElement,
			Array:      av,
			Index:      idx,
			RangeStart: 0,
			RangeEnd:   len(av.Elements),
			ElementTag: av.ElementTag,
		}}

	case *ast.MemberAccessExpr:
		base, path := inter.structMemberPath(n)
		return &PointerValue{Metadata: &PointerMetadata{
			Variant: PointerStructMember,
			Target:  &VarHandle{ScopeID: inter.cellScopeID(base), Cell: base},
			Path:    path,
		}}

	default:
		cell := inter.resolveLValue(e)
		return inter.variableRefPointer(cell, e.SourceRange())
	}
}

func (inter *Interpreter) variableRefPointer(v *Variable, rng ast.Range) *PointerValue {
	return &PointerValue{Metadata: &PointerMetadata{
		Variant:    PointerVariableRef,
		Target:     &VarHandle{ScopeID: inter.cellScopeID(v), Cell: v},
		ElementTag: v.Type,
	}}
}

// constPointer is identical to variableRefPointer except it marks the
// resulting metadata pointee-const, which is what makes
// `const int x = 1; int* p = &x;` a ConstPointerViolation once the
// destination pointer's own PointeeConst flag is checked against it at
// declaration/assignment time.
func (inter *Interpreter) constPointer(v *Variable, rng ast.Range) *PointerValue {
	p := inter.variableRefPointer(v, rng)
	p.Metadata.PointeeConst = true
	return p
}

// structMemberPath flattens a (possibly nested) member-access chain into
// its struct base cell and the dotted path from there, e.g. a.b.c -> (a,
// ["b","c"]).
func (inter *Interpreter) structMemberPath(n *ast.MemberAccessExpr) (*Variable, []string) {
	switch recv := n.Receiver.(type) {
	case *ast.MemberAccessExpr:
		base, path := inter.structMemberPath(recv)
		return base, append(path, n.Member)
	default:
		base := inter.resolveLValue(n.Receiver)
		return base, []string{n.Member}
	}
}

// cellScopeID is a best-effort reverse lookup of which live scope a cell
// belongs to, for dangling-pointer detection. Global-scope cells report
// 0, the scope that is never popped, so pointers into it are never
// dangling.
func (inter *Interpreter) cellScopeID(v *Variable) int {
	return v.DeclScopeID
}
