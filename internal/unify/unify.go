package unify

import (
	"github.com/CalvinKrist/tipc/internal/ast"
	"github.com/CalvinKrist/tipc/internal/constraints"
	"github.com/CalvinKrist/tipc/internal/diag"
	"github.com/CalvinKrist/tipc/internal/types"
)

// Unify internalizes l and r and equates them, implementing the five steps
// of spec.md §4.3's unify(a, b).
func (s *Store) Unify(l, r types.Type) error {
	return s.unifyClasses(s.internalize(l), s.internalize(r))
}

// unifyClasses is spec.md §4.3's unify(a, b) operating directly on class ids
// already present in the arena.
func (s *Store) unifyClasses(a, b int) error {
	a, b = s.find(a), s.find(b)
	if a == b {
		return nil
	}

	na, nb := s.nodes[a], s.nodes[b]
	if na.kind == kVar || nb.kind == kVar {
		s.union(a, b)
		return nil
	}
	if na.kind != nb.kind {
		return diag.NewUnificationError(diag.HeadMismatch, termString{s, a}, termString{s, b}, "")
	}

	switch na.kind {
	case kInt:
		s.union(a, b)
		return nil

	case kRef:
		s.union(a, b)
		return s.unifyClasses(na.elem, nb.elem)

	case kFunction:
		if len(na.params) != len(nb.params) {
			return diag.NewUnificationError(diag.ArityMismatch, termString{s, a}, termString{s, b}, "")
		}
		s.union(a, b)
		for i := range na.params {
			if err := s.unifyClasses(na.params[i], nb.params[i]); err != nil {
				return err
			}
		}
		return s.unifyClasses(na.ret, nb.ret)

	case kRecord:
		if !sameFieldNames(na.fields, nb.fields) {
			return diag.NewUnificationError(diag.FieldSetMismatch, termString{s, a}, termString{s, b}, "")
		}
		s.union(a, b)
		for i := range na.fields {
			if err := s.unifyClasses(na.fields[i].Class, nb.fields[i].Class); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

func sameFieldNames(a, b []fieldSlot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}

// termString renders a class's current reified form for error messages,
// implementing fmt.Stringer lazily (only formatted if the error is actually
// printed) rather than eagerly reifying every unify call's operands.
type termString struct {
	s  *Store
	id int
}

func (t termString) String() string { return t.s.Reify(t.id).String() }

// Solve applies Unify to every constraint in order; the first failure aborts
// (spec.md §4.3's solve(constraints), the monomorphic mode used for the
// recursive closure and the whole-program preseed).
func (s *Store) Solve(cs []constraints.Constraint) error {
	for _, c := range cs {
		if err := s.Unify(c.L, c.R); err != nil {
			return err
		}
	}
	return nil
}

// SolvePolymorphic applies Unify to every constraint, except that whenever a
// constraint's left side is a Var anchored at a function declaration that is
// not in the current recursive closure AND whose inferred-so-far type has
// already resolved to a Function term, that side is first replaced by a
// fresh per-callsite instantiation of the callee's current scheme (spec.md
// §4.3's solvePolymorphic, "inferred-so-far type is a Function term"). A
// function's own signature constraint — [[f]] = Function(...), emitted
// first in its batch by constraints.Collector.ForFunction — still has
// Var(f) unbound at the time it is processed, so this gate leaves it to
// unify monomorphically; only already-resolved callees at real callsites
// get copied. isRecursive reports whether a function declaration is in the
// caller's recursive closure — callers not in recSet (the driver's only
// SolvePolymorphic callers, see internal/tipc) always pass the same
// callgraph.Graph.InRecursiveClosure.
func (s *Store) SolvePolymorphic(cs []constraints.Constraint, isRecursive func(*ast.FunctionDecl) bool) error {
	for _, c := range cs {
		lClass := s.internalize(c.L)
		rClass := s.internalize(c.R)

		if fn, ok := funcDeclOf(c.L); ok && !isRecursive(fn) {
			if s.nodes[s.find(lClass)].kind == kFunction {
				lClass = s.instantiate(lClass)
			}
		}

		if err := s.unifyClasses(lClass, rClass); err != nil {
			return err
		}
	}
	return nil
}

// funcDeclOf reports whether t is a Var anchored at a function declaration —
// the shape the collector emits on the left side of a call constraint
// (collector.VisitCallExpr's static-callee branch).
func funcDeclOf(t types.Type) (*ast.FunctionDecl, bool) {
	v, ok := t.(types.Var)
	if !ok {
		return nil, false
	}
	decl, ok := v.Origin.(types.DeclOrigin)
	if !ok {
		return nil, false
	}
	fn, ok := decl.Decl.(*ast.FunctionDecl)
	return fn, ok
}
