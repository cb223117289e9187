package unify

import "github.com/CalvinKrist/tipc/internal/types"

// instantiate builds a fresh per-callsite copy of the scheme rooted at root,
// implementing spec.md §4.3's "simplest correct policy": a single traversal
// that freshens every free variable reached from root, shares every class
// whose closure is already fully ground (no free variable reachable from
// it), and otherwise rebuilds composites so the freshened leaves attach to
// new classes rather than mutating the original scheme. Free variables
// belonging to other declarations are never touched, because they are only
// reached by starting a *different* traversal from a *different* root.
func (s *Store) instantiate(root int) int {
	freeMemo := map[int]bool{}
	copyMemo := map[int]int{}
	return s.copyClass(root, freeMemo, map[int]bool{}, copyMemo)
}

// hasFreeVar reports whether any class reachable from id (through composite
// children) is an unbound Var. visiting guards against infinite recursion on
// a cyclic term (e.g. a pointer type x = Ref(x)): a class revisited while
// still being evaluated has, by construction, no *new* free variable to
// contribute along that path, so it is treated as ground there — correct
// because a genuinely free variable can only be discovered via some
// non-cyclic edge into it.
func (s *Store) hasFreeVar(id int, visiting map[int]bool, memo map[int]bool) bool {
	id = s.find(id)
	if v, ok := memo[id]; ok {
		return v
	}
	if visiting[id] {
		return false
	}
	visiting[id] = true
	defer delete(visiting, id)

	n := s.nodes[id]
	var result bool
	switch n.kind {
	case kVar:
		result = true
	case kInt:
		result = false
	case kRef:
		result = s.hasFreeVar(n.elem, visiting, memo)
	case kRecord:
		for _, f := range n.fields {
			if s.hasFreeVar(f.Class, visiting, memo) {
				result = true
				break
			}
		}
	case kFunction:
		for _, p := range n.params {
			if s.hasFreeVar(p, visiting, memo) {
				result = true
				break
			}
		}
		if !result {
			result = s.hasFreeVar(n.ret, visiting, memo)
		}
	}
	// A false result reached while an ancestor is still being evaluated may
	// rest on that ancestor's provisional "ground" answer, so only a true
	// result, or a false one at the top of the traversal, is final.
	if result || len(visiting) == 1 {
		memo[id] = result
	}
	return result
}

// copyClass returns the class id to use in place of id within the
// instantiation being built. Ground (no-free-var) classes are returned
// unchanged (shared); classes with a free variable in their closure are
// rebuilt with fresh leaves, memoized per id so a scheme's internal sharing
// (e.g. a parameter used twice) is preserved in the copy, and so cyclic
// composites terminate.
func (s *Store) copyClass(id int, freeMemo map[int]bool, freeVisiting map[int]bool, copyMemo map[int]int) int {
	id = s.find(id)
	if nid, ok := copyMemo[id]; ok {
		return nid
	}
	if !s.hasFreeVar(id, freeVisiting, freeMemo) {
		copyMemo[id] = id
		return id
	}

	n := s.nodes[id]
	switch n.kind {
	case kVar:
		nid := s.newVarClass(types.NewFresh())
		copyMemo[id] = nid
		return nid

	case kRef:
		nid := s.alloc(node{kind: kRef})
		copyMemo[id] = nid // register before recursing: handles x = Ref(x)
		s.nodes[nid].elem = s.copyClass(n.elem, freeMemo, freeVisiting, copyMemo)
		return nid

	case kRecord:
		fields := make([]fieldSlot, len(n.fields))
		for i, f := range n.fields {
			fields[i] = fieldSlot{Name: f.Name}
		}
		nid := s.alloc(node{kind: kRecord, fields: fields})
		copyMemo[id] = nid
		for i, f := range n.fields {
			s.nodes[nid].fields[i].Class = s.copyClass(f.Class, freeMemo, freeVisiting, copyMemo)
		}
		return nid

	case kFunction:
		params := make([]int, len(n.params))
		nid := s.alloc(node{kind: kFunction, params: params})
		copyMemo[id] = nid
		for i, p := range n.params {
			s.nodes[nid].params[i] = s.copyClass(p, freeMemo, freeVisiting, copyMemo)
		}
		s.nodes[nid].ret = s.copyClass(n.ret, freeMemo, freeVisiting, copyMemo)
		return nid

	default: // kInt: unreachable, hasFreeVar is always false for it
		copyMemo[id] = id
		return id
	}
}
