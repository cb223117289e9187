// Package unify implements spec.md §3.4/§4.3: a union-find store over a term
// arena, the monomorphic and polymorphic solving modes, and cycle-safe
// reification. It is the single source of truth for resolved types — the
// types package itself is comparison-free (internal/types's doc comment).
//
// Split into store_core.go (arena + union-find), unify.go (unify/solve),
// instantiate.go (let-polymorphism copying), and reify.go (cycle-safe
// inferred-type queries), mirroring the teacher's convention of splitting one
// package across files by concern (e.g. symbol_table_core.go /
// symbol_table_aliases.go in funvibe/funxy's internal/symbols).
package unify

import (
	"github.com/CalvinKrist/tipc/internal/config"
	"github.com/CalvinKrist/tipc/internal/types"
)

type kind int

const (
	kVar kind = iota
	kInt
	kRef
	kRecord
	kFunction
)

type fieldSlot struct {
	Name  string
	Class int
}

// node is one arena slot: either a free Var (kind == kVar, Origin set) or a
// composite whose children are themselves class ids, so cyclic terms like
// `x = Ref(x)` are representable without a self-referential Go value.
type node struct {
	kind   kind
	origin types.Origin // kVar only
	elem   int          // kRef only
	fields []fieldSlot  // kRecord only
	params []int        // kFunction only
	ret    int          // kFunction only
}

// Store is a union-find over a term arena: spec.md §3.4's "mapping from
// terms to representative terms", plus the fresh-variable minting and
// instantiation machinery of §4.3. One Store belongs to exactly one
// inference run (spec.md §5: not safe to share across goroutines).
type Store struct {
	nodes  []node
	parent []int
	rank   []int

	varIndex map[any]int // Origin.Key() -> class id, for Var deduplication

	memoCacheSize int // Reify's per-call LRU size (config.Settings.MemoCacheSize)
}

// NewStore returns an empty store configured from settings.
func NewStore(settings config.Settings) *Store {
	size := settings.MemoCacheSize
	if size <= 0 {
		size = 256
	}
	return &Store{
		varIndex:      map[any]int{},
		memoCacheSize: size,
	}
}

func (s *Store) alloc(n node) int {
	id := len(s.nodes)
	s.nodes = append(s.nodes, n)
	s.parent = append(s.parent, id)
	s.rank = append(s.rank, 0)
	return id
}

// find returns the representative class id for id, path-compressing as it
// walks (spec.md §3.4).
func (s *Store) find(id int) int {
	for s.parent[id] != id {
		s.parent[id] = s.parent[s.parent[id]]
		id = s.parent[id]
	}
	return id
}

// union merges the classes of a and b, returning the surviving
// representative. Non-variable classes always win over variable classes
// (spec.md §3.4, last bullet); between two variable classes, a
// declaration-anchored variable wins over an expression-anchored or fresh
// one, so a free type displays as α<decl-name>; otherwise (both non-var, or
// two vars of the same anchoring) rank decides, per the standard
// union-by-rank discipline. Children are NOT unioned here — unifyClasses in
// unify.go is responsible for recursing into children before or after
// calling union, per the kind of composite.
func (s *Store) union(a, b int) int {
	a, b = s.find(a), s.find(b)
	if a == b {
		return a
	}
	aVar := s.nodes[a].kind == kVar
	bVar := s.nodes[b].kind == kVar
	switch {
	case aVar && !bVar:
		s.parent[a] = b
		return b
	case bVar && !aVar:
		s.parent[b] = a
		return a
	}
	if aVar && bVar {
		_, aDecl := s.nodes[a].origin.(types.DeclOrigin)
		_, bDecl := s.nodes[b].origin.(types.DeclOrigin)
		if aDecl && !bDecl {
			s.parent[b] = a
			return a
		}
		if bDecl && !aDecl {
			s.parent[a] = b
			return b
		}
	}
	switch {
	case s.rank[a] > s.rank[b]:
		s.parent[b] = a
		return a
	case s.rank[b] > s.rank[a]:
		s.parent[a] = b
		return b
	default:
		s.parent[b] = a
		s.rank[a]++
		return a
	}
}

// classFor returns the class id for v, creating it on first sighting so a
// declaration that is never mentioned in any constraint (an unused local)
// still resolves to a fresh free variable rather than panicking.
func (s *Store) classFor(v types.Var) int {
	key := v.Origin.Key()
	if id, ok := s.varIndex[key]; ok {
		return id
	}
	id := s.alloc(node{kind: kVar, origin: v.Origin})
	s.varIndex[key] = id
	return id
}

func (s *Store) newVarClass(origin types.Origin) int {
	return s.alloc(node{kind: kVar, origin: origin})
}

// internalize converts a types.Type term (as produced by the constraint
// collector) into a class id, recursively internalizing composite children.
// Each call allocates fresh classes for composites — they are compared
// structurally through unification, not hash-consed — except Var terms,
// which always resolve to the single shared class for their origin.
func (s *Store) internalize(t types.Type) int {
	switch v := t.(type) {
	case types.Var:
		return s.classFor(v)
	case types.Int:
		return s.alloc(node{kind: kInt})
	case types.Ref:
		id := s.alloc(node{kind: kRef})
		s.nodes[id].elem = s.internalize(v.Elem)
		return id
	case types.Record:
		fields := make([]fieldSlot, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = fieldSlot{Name: f.Name, Class: s.internalize(f.Type)}
		}
		return s.alloc(node{kind: kRecord, fields: fields})
	case types.Function:
		params := make([]int, len(v.Params))
		for i, p := range v.Params {
			params[i] = s.internalize(p)
		}
		id := s.alloc(node{kind: kFunction, params: params})
		s.nodes[id].ret = s.internalize(v.Return)
		return id
	default:
		panic("unify: internalize: unknown type term")
	}
}
