package unify

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/CalvinKrist/tipc/internal/types"
)

// Inferred returns reify(find(v)) (spec.md §3.5), creating v's class on
// first sighting so querying an unconstrained declaration returns a bare
// free variable instead of panicking.
func (s *Store) Inferred(v types.Var) types.Type {
	return s.Reify(s.classFor(v))
}

// Reify walks the DAG rooted at class id, substituting each class for its
// representative's term. A per-call LRU memo table keyed by class id (spec.md
// §3.5's required "memoization table on class identity") makes reification
// of a term with internal sharing linear instead of exponential, and —
// together with the in-progress marker below — lets a cyclic representative
// such as `x = Ref(x)` reify without non-termination: a class revisited
// while its own children are still being computed resolves to a synthetic
// free variable standing for "this same recursive position" rather than
// recursing forever.
func (s *Store) Reify(id int) types.Type {
	cache, _ := lru.New[int, types.Type](s.memoCacheSize)
	inProgress := map[int]types.Var{}

	var rec func(int) types.Type
	rec = func(id int) types.Type {
		id = s.find(id)
		if t, ok := cache.Get(id); ok {
			return t
		}
		if placeholder, ok := inProgress[id]; ok {
			return placeholder
		}

		n := s.nodes[id]
		switch n.kind {
		case kVar:
			result := types.Var{Origin: n.origin}
			cache.Add(id, result)
			return result

		case kInt:
			cache.Add(id, types.Int{})
			return types.Int{}

		case kRef:
			placeholder := types.Var{Origin: types.NewFresh()}
			inProgress[id] = placeholder
			elem := rec(n.elem)
			delete(inProgress, id)
			result := types.Ref{Elem: elem}
			cache.Add(id, result)
			return result

		case kRecord:
			placeholder := types.Var{Origin: types.NewFresh()}
			inProgress[id] = placeholder
			fields := make([]types.Field, len(n.fields))
			for i, f := range n.fields {
				fields[i] = types.Field{Name: f.Name, Type: rec(f.Class)}
			}
			delete(inProgress, id)
			result := types.Record{Fields: fields}
			cache.Add(id, result)
			return result

		case kFunction:
			placeholder := types.Var{Origin: types.NewFresh()}
			inProgress[id] = placeholder
			params := make([]types.Type, len(n.params))
			for i, p := range n.params {
				params[i] = rec(p)
			}
			ret := rec(n.ret)
			delete(inProgress, id)
			result := types.Function{Params: params, Return: ret}
			cache.Add(id, result)
			return result

		default:
			panic("unify: reify: unknown class kind")
		}
	}

	return rec(id)
}
