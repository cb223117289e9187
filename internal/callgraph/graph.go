// Package callgraph implements spec.md §3.3/§4.2: building the function call
// graph, collapsing cycles into strongly-connected groups, and answering
// isRecursive / recursiveFunctions / inverseTopologicalOrder queries.
//
// The cycle-collapsing algorithm is grounded directly on
// original_source/src/semantic/types/constraints/FunctionGraph.cpp and
// FunctionGroup.cpp (the C++ project, CalvinKrist/tipc, this spec was
// distilled from): a DFS over call edges that unions every group still on
// the active call-stack when a back-edge is found, using a rank-based
// union-find over groups rather than Tarjan's single-pass algorithm — one of
// the two "divergent implementations" spec.md §9 says either is acceptable
// (the other, Tarjan's, is sketched in other_examples'
// sunholo-ailang-internal-elaborate-scc.go.go).
package callgraph

import (
	"github.com/CalvinKrist/tipc/internal/ast"
	"golang.org/x/tools/container/intsets"
)

// Graph is the call graph of one program: one node per function, indexed by
// position in symbols.Table.Functions().
type Graph struct {
	funcs   []*ast.FunctionDecl
	index   map[*ast.FunctionDecl]int
	edges   [][]int // edges[i] = callee indices of funcs[i], pre-collapse
	selfRec []bool  // selfRec[i] = funcs[i] has a direct self-call edge

	parent []int // union-find over function indices, post-collapse
	rank   []int

	recSet intsets.Sparse // recursiveFunctions() closure, computed once in Build
}

// Build analyzes program and returns its call graph.
func Build(program *ast.Program) *Graph {
	funcs := program.Functions()
	g := &Graph{
		funcs:   funcs,
		index:   make(map[*ast.FunctionDecl]int, len(funcs)),
		edges:   make([][]int, len(funcs)),
		selfRec: make([]bool, len(funcs)),
		parent:  make([]int, len(funcs)),
		rank:    make([]int, len(funcs)),
	}
	for i, fn := range funcs {
		g.index[fn] = i
		g.parent[i] = i
	}
	for i, fn := range funcs {
		g.edges[i] = collectCallEdges(fn, g.index)
		for _, j := range g.edges[i] {
			if j == i {
				g.selfRec[i] = true
			}
		}
	}
	g.collapseCycles()
	g.computeRecursiveClosure()
	return g
}

// collectCallEdges walks fn's body tracking locally bound names (parameters
// and var declarations) and records an edge for every call whose callee is
// a bare identifier resolving to a program function and not shadowed by a
// local (spec.md §4.2).
func collectCallEdges(fn *ast.FunctionDecl, index map[*ast.FunctionDecl]int) []int {
	w := &callEdgeWalker{index: index, locals: map[string]bool{}}
	for _, p := range fn.Params() {
		w.locals[p.Name()] = true
	}
	for _, l := range fn.Locals() {
		w.locals[l.Name()] = true
	}
	ast.Walk(w, fn.Body())
	ast.WalkExpr(w, fn.Return)
	return w.callees
}

type callEdgeWalker struct {
	ast.BaseVisitor
	index   map[*ast.FunctionDecl]int
	locals  map[string]bool
	callees []int
}

func (w *callEdgeWalker) VisitCallExpr(n *ast.CallExpr) {
	id, ok := n.Callee.(*ast.Identifier)
	if !ok {
		return // not a bare-identifier callee: no edge (spec.md §9 limitation)
	}
	if w.locals[id.Name] {
		return // shadowed by a local: calls through a local are not edges
	}
	fn, ok := id.Resolved.(*ast.FunctionDecl)
	if !ok {
		return
	}
	if j, ok := w.index[fn]; ok {
		w.callees = append(w.callees, j)
	}
}

func (g *Graph) find(i int) int {
	for g.parent[i] != i {
		g.parent[i] = g.parent[g.parent[i]]
		i = g.parent[i]
	}
	return i
}

func (g *Graph) union(a, b int) {
	ra, rb := g.find(a), g.find(b)
	if ra == rb {
		return
	}
	switch {
	case g.rank[ra] > g.rank[rb]:
		g.parent[rb] = ra
	case g.rank[rb] > g.rank[ra]:
		g.parent[ra] = rb
	default:
		g.parent[rb] = ra
		g.rank[ra]++
	}
}

// collapseCycles runs a DFS from every function, tracking the active
// call-stack; whenever it reaches a node already on the stack, every group
// from that node's first stack appearance to the current node is unioned
// together, exactly as FunctionGraphCreator::DfsTraverseAsDAG does.
func (g *Graph) collapseCycles() {
	onStack := make([]bool, len(g.funcs))
	var stack []int

	var visit func(i int)
	visit = func(i int) {
		root := g.find(i)
		for pos, s := range stack {
			if g.find(s) == root && onStack[s] {
				for j := pos + 1; j < len(stack); j++ {
					g.union(stack[j], root)
				}
				return
			}
		}
		onStack[i] = true
		stack = append(stack, i)
		for _, j := range g.edges[i] {
			visit(j)
		}
		stack = stack[:len(stack)-1]
		onStack[i] = false
	}

	for i := range g.funcs {
		visit(i)
	}
}

// computeRecursiveClosure computes recursiveFunctions(): every function in a
// recursive group (size > 1, or a singleton with a self-edge), union every
// function forward-reachable from such a group along call edges (spec.md
// §4.2) — the extended set original_source/TypeInference.cpp solves
// monomorphically up front.
func (g *Graph) computeRecursiveClosure() {
	groupMembers := map[int][]int{}
	for i := range g.funcs {
		r := g.find(i)
		groupMembers[r] = append(groupMembers[r], i)
	}

	isRecursiveGroup := func(root int) bool {
		members := groupMembers[root]
		if len(members) > 1 {
			return true
		}
		return g.selfRec[members[0]]
	}

	var seeds []int
	for root := range groupMembers {
		if isRecursiveGroup(root) {
			seeds = append(seeds, groupMembers[root]...)
		}
	}

	visited := make([]bool, len(g.funcs))
	var stack []int
	for _, s := range seeds {
		if !visited[s] {
			visited[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g.recSet.Insert(i)
		for _, j := range g.edges[i] {
			if !visited[j] {
				visited[j] = true
				stack = append(stack, j)
			}
		}
	}
}

// IsRecursive reports whether fn lies in an SCC of size > 1 or has a
// self-edge (spec.md §3.3).
func (g *Graph) IsRecursive(fn *ast.FunctionDecl) bool {
	i, ok := g.index[fn]
	if !ok {
		return false
	}
	root := g.find(i)
	count := 0
	for j := range g.funcs {
		if g.find(j) == root {
			count++
			if count > 1 {
				return true
			}
		}
	}
	return g.selfRec[i]
}

// RecursiveFunctions returns every function that must be solved
// monomorphically: the union of all recursive SCCs together with every
// function reachable from a recursive SCC along call edges (spec.md §4.2).
func (g *Graph) RecursiveFunctions() []*ast.FunctionDecl {
	var out []*ast.FunctionDecl
	for i, fn := range g.funcs {
		if g.recSet.Has(i) {
			out = append(out, fn)
		}
	}
	return out
}

// InRecursiveClosure reports whether fn is in the RecursiveFunctions() set.
func (g *Graph) InRecursiveClosure(fn *ast.FunctionDecl) bool {
	i, ok := g.index[fn]
	return ok && g.recSet.Has(i)
}

// InverseTopologicalOrder returns every function ordered so that callees
// precede their callers (spec.md §4.2, "solve callees before callers"),
// operating over the post-collapse group DAG so that mutually recursive
// functions are adjacent and any one of them may stand in for the whole
// group. Ties (functions with no ordering constraint between them) fall
// back to declaration order, for deterministic output.
//
// The analyzer must remain queryable (IsRecursive, RecursiveFunctions) after
// this call (spec.md §4.2's restoration invariant); rather than sort g's own
// adjacency in place and restore it afterward, this sorts a private copy of
// the group DAG, which trivially satisfies the invariant and is the
// alternative spec.md §9 explicitly allows.
func (g *Graph) InverseTopologicalOrder() []*ast.FunctionDecl {
	groupOf := make([]int, len(g.funcs))
	var groupRoots []int
	rootSeen := map[int]bool{}
	for i := range g.funcs {
		r := g.find(i)
		groupOf[i] = r
		if !rootSeen[r] {
			rootSeen[r] = true
			groupRoots = append(groupRoots, r)
		}
	}

	// groupEdges[r] = set of distinct group-roots called from group r,
	// excluding self-loops within the same group.
	groupEdges := make(map[int]map[int]bool, len(groupRoots))
	indegree := make(map[int]int, len(groupRoots))
	for _, r := range groupRoots {
		groupEdges[r] = map[int]bool{}
		indegree[r] = 0
	}
	for i := range g.funcs {
		from := groupOf[i]
		for _, j := range g.edges[i] {
			to := groupOf[j]
			if to == from {
				continue
			}
			if !groupEdges[from][to] {
				groupEdges[from][to] = true
			}
		}
	}
	for _, edges := range groupEdges {
		for to := range edges {
			indegree[to]++
		}
	}

	// Kahn's algorithm seeded with leaf groups (no outgoing calls get
	// processed first would be a forward topo sort; here we want callees
	// first, so we seed with groups nobody calls INTO this round by
	// repeatedly peeling groups whose callees are already emitted) —
	// equivalently, a forward topological sort of the *reversed* graph.
	// We build it by peeling groups with indegree-in-the-reversed-graph
	// zero, i.e. groups that call nothing not yet emitted.
	remaining := map[int]int{} // remaining outgoing edges to not-yet-emitted groups
	for _, r := range groupRoots {
		remaining[r] = len(groupEdges[r])
	}
	calledBy := make(map[int][]int, len(groupRoots)) // reverse adjacency
	for from, edges := range groupEdges {
		for to := range edges {
			calledBy[to] = append(calledBy[to], from)
		}
	}

	var queue []int
	for _, r := range groupRoots {
		if remaining[r] == 0 {
			queue = append(queue, r)
		}
	}
	sortInts(queue)

	var order []int
	emitted := map[int]bool{}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		if emitted[r] {
			continue
		}
		emitted[r] = true
		order = append(order, r)
		var freed []int
		for _, caller := range calledBy[r] {
			remaining[caller]--
			if remaining[caller] == 0 {
				freed = append(freed, caller)
			}
		}
		sortInts(freed)
		queue = append(queue, freed...)
		sortInts(queue)
	}
	// Any group left out (shouldn't happen on a finite condensation DAG,
	// but guards against a bug leaving orphans) is appended in declaration
	// order so the function is still total.
	for _, r := range groupRoots {
		if !emitted[r] {
			order = append(order, r)
		}
	}

	var out []*ast.FunctionDecl
	for _, r := range order {
		for i, fn := range g.funcs {
			if groupOf[i] == r {
				out = append(out, fn)
			}
		}
	}
	return out
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
