// Package types defines the closed type-term grammar of spec.md §3.1: Int,
// Ref, Record, Function, and Var. Unlike the teacher's typesystem package
// (github.com/funvibe/funxy/internal/typesystem), which represents types as
// a substitution-based Hindley-Milner system with kinds and traits, this
// package intentionally has no Apply/Subst or Kind methods — resolving a
// term to its current representative is the union-find store's job
// (internal/unify), not the term's own, per spec.md §3.4. Terms here are
// plain, comparison-free value types; only the store knows how to compare
// them through the DAG.
package types

import (
	"fmt"
	"strings"
)

// Type is any node in the term grammar. String renders the spec.md §6.3
// textual form; it never resolves through a union-find store, so a Type
// holding an unresolved Var prints that variable's own origin, not its
// current binding.
type Type interface {
	String() string
	isType()
}

// Int is the integer type.
type Int struct{}

func (Int) String() string { return "int" }
func (Int) isType()        {}

// Ref is a pointer to Elem, produced by `alloc` and `&`.
type Ref struct {
	Elem Type
}

func (r Ref) String() string { return "&" + r.Elem.String() }
func (Ref) isType()          {}

// Field is one named member of a Record, in declaration order.
type Field struct {
	Name string
	Type Type
}

// Record is a structural record with an ordered field list. Two records
// unify only if their field-name sequences match (spec.md §3.1) — order,
// not just set membership, is part of the type.
type Record struct {
	Fields []Field
}

func (r Record) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = fmt.Sprintf("%s:%s", f.Name, f.Type.String())
	}
	return "{" + strings.Join(parts, ",") + "}"
}
func (Record) isType() {}

// FieldNames returns the record's field names in order, used by the unifier
// to compare field-name sequences without re-walking Fields twice.
func (r Record) FieldNames() []string {
	names := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the type of field name and whether it is present.
func (r Record) Lookup(name string) (Type, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Function is a function type; zero params is a valid, common case.
type Function struct {
	Params []Type
	Return Type
}

func (f Function) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Return.String())
}
func (Function) isType() {}

// Var is a type variable identified by its Origin (spec.md §3.1): either an
// AST-anchored identity (the "home" declaration or expression) or a
// synthetic fresh identity minted during polymorphic instantiation.
type Var struct {
	Origin Origin
}

// String prints "α<origin>" per spec.md §6.3. Note this is the variable's
// own label, not its resolved binding — callers that want the resolved type
// go through unify.Store.Inferred instead.
func (v Var) String() string { return "α<" + v.Origin.String() + ">" }
func (Var) isType()          {}
