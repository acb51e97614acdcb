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

// execAssign implements every one of the eleven assignment target
// shapes: it resolves Target to a *Variable cell, re-checking
// const-through-pointer violations for the two pointer-based shapes
// before the generic cell resolver would silently hand back a writable
// cell, then hands off to assignCell for the value side.
func (inter *Interpreter) execAssign(n *ast.AssignStmt) {
	var cell *Variable

	switch n.Kind {
	case ast.AssignDeref:
		deref := n.Target.(*ast.DereferenceExpr)
		ptr := inter.evalPointerOperand(deref.Operand)
		if ptr.Metadata.PointeeConst {
			inter.throw(cberrors.ConstPointerViolation, "cannot assign through a const pointer", n.SourceRange())
		}
		cell = inter.pointerTargetVariable(ptr, n.SourceRange())

	case ast.AssignArrow:
		member := n.Target.(*ast.MemberAccessExpr)
		ptr := inter.evalPointerOperand(member.Receiver)
		if ptr.Metadata.PointeeConst {
			inter.throw(cberrors.ConstPointerViolation, "cannot assign through a const pointer", n.SourceRange())
		}
		base := inter.pointerTargetVariable(ptr, n.SourceRange())
		cell = inter.structMember(base, member.Member, n.SourceRange())

	case ast.AssignIndex:
		ref := n.Target.(*ast.ArrayRefExpr)
		if strCell, idx, ok := inter.stringIndexTarget(ref); ok {
			inter.stringReplaceChar(strCell, idx, inter.Eval(n.Value), n.SourceRange())
			return
		}
		cell = inter.resolveLValue(n.Target)

	default:
		if ma, ok := n.Target.(*ast.MemberAccessExpr); ok && !ma.Arrow {
			inter.checkConstReceiver(ma, n.SourceRange())
		}
		cell = inter.resolveLValue(n.Target)
	}

	inter.assignCell(cell, n.Value)
}

// checkConstReceiver rejects `obj.m = e` (and any longer member path)
// when the root struct variable is declared const; the member cell's own
// const-and-assigned state is checked separately by assignCell.
func (inter *Interpreter) checkConstReceiver(ma *ast.MemberAccessExpr, rng ast.Range) {
	base := ast.Expr(ma)
	for {
		switch n := base.(type) {
		case *ast.MemberAccessExpr:
			if n.Arrow {
				return
			}
			base = n.Receiver
		case *ast.ArrayRefExpr:
			base = n.Array
		case *ast.VariableExpr:
			if v, ok := inter.scope.Find(n.Name); ok {
				v = inter.followReference(v, rng)
				if v.IsConst() {
					inter.throw(cberrors.ConstReassignment, "cannot assign to a member of const "+n.Name, rng)
				}
			}
			return
		default:
			return
		}
	}
}

// assignCell evaluates valueExpr and stores it into cell, enforcing the
// const-reassignment rule and the struct/array/union/interface coercions
// that keep the nested-map and flat-key representations in sync.
func (inter *Interpreter) assignCell(cell *Variable, valueExpr ast.Expr) {
	if cell.IsConst() && cell.IsAssigned() {
		inter.throw(cberrors.ConstReassignment, "cannot reassign a const value", valueExpr.SourceRange())
	}
	if cell.IsPointer() && cell.PointerConst() && cell.IsAssigned() {
		inter.throw(cberrors.ConstPointerViolation, "cannot reassign a const pointer variable", valueExpr.SourceRange())
	}

	// A struct literal with no spelled type takes the destination's
	// declared struct type: `P a; a = {1, 2};`.
	if lit, ok := valueExpr.(*ast.StructLiteralExpr); ok && lit.TypeName == "" && cell.Type == ast.TagStruct && cell.TypeName != "" {
		sv := inter.NewStructInstance(cell.TypeName, lit.SourceRange())
		inter.ApplyStructLiteral(sv, lit)
		inter.storeInto(cell, sv, valueExpr.SourceRange())
		return
	}

	inter.storeInto(cell, inter.Eval(valueExpr), valueExpr.SourceRange())
}

// checkPointerConstStore enforces rule 1 of (
// "its address may not be stored in a non-const T* pointer"): a pointer
// whose referent was taken as const (PointeeConst on the source
// PointerValue's metadata) may only be stored into a destination cell
// that is itself declared pointee-const.
func (inter *Interpreter) checkPointerConstStore(cell *Variable, p *PointerValue, rng ast.Range) {
	if p.Metadata != nil && p.Metadata.PointeeConst && !cell.PointeeConst() {
		inter.throw(cberrors.ConstPointerViolation, "cannot store a const pointer into a non-const pointer", rng)
	}
}

// storeInto is the coercion-aware store used by both assignment and
// initializer evaluation: a struct cell clones its source struct, an
// array cell clones its source array or rebuilds from an array-returning
// call, a union cell
// revalidates the payload's allowed type, and an interface cell wraps a
// struct snapshot.
func (inter *Interpreter) storeInto(cell *Variable, val Value, rng ast.Range) {
	if p, ok := val.(*PointerValue); ok && cell.IsPointer() {
		inter.checkPointerConstStore(cell, p, rng)
	}

	switch cell.Type {
	case ast.TagStruct:
		sv, ok := val.(*StructValue)
		if !ok {
			inter.throw(cberrors.TypeMismatch, "expected a struct value", rng)
		}
		cell.Value = sv.Clone()

	case ast.TagArray:
		av, ok := val.(*ArrayValue)
		if !ok {
			inter.throw(cberrors.TypeMismatch, "expected an array value", rng)
		}
		// A literal or returned array must match the declared element
		// count; shape (dims) may legitimately differ between a flat
		// literal and a declared multi-dim destination as long as the
		// row-major element count agrees.
		if existing, ok := cell.Value.(*ArrayValue); ok && len(existing.Dimensions) > 0 && existing.Len() != av.Len() {
			inter.throw(cberrors.TypeMismatch, "array literal element count does not match declared dimensions", rng)
		}
		cell.Value = av.Clone()

	case ast.TagUnion:
		decl, ok := inter.scope.Unions[cell.TypeName]
		if !ok {
			inter.throw(cberrors.TypeMismatch, "unknown union type "+cell.TypeName, rng)
		}
		cell.Value = inter.AssignUnion(decl, val, rng)

	case ast.TagInterface:
		sv, ok := val.(*StructValue)
		if ok {
			cell.Value = inter.AssignInterfaceView(cell.TypeName, sv.Clone())
			break
		}
		if iv, ok := val.(InterfaceValue); ok {
			cell.Value = iv
			break
		}
		inter.throw(cberrors.TypeMismatch, "expected a struct implementing "+cell.TypeName, rng)

	case ast.TagPointer:
		if fp, ok := val.(FunctionPointerValue); ok {
			cell.Value = fp
			break
		}
		p, ok := val.(*PointerValue)
		if !ok {
			inter.throw(cberrors.TypeMismatch, "expected a pointer value", rng)
		}
		cell.Value = p

	default:
		cell.Value = Coerce(val, cell.Type)
	}
	cell.SetAssigned(true)
}
