package callgraph_test

import (
	"testing"

	"github.com/CalvinKrist/tipc/internal/ast"
	"github.com/CalvinKrist/tipc/internal/callgraph"
)

// fn builds a function with no params/locals whose body is just
// `return <ret>`. Tests that need a self or forward reference pass nil and
// set Return once the referenced decls exist, so identifiers resolve by
// pointer.
func fn(name string, ret ast.Expression) *ast.FunctionDecl {
	return &ast.FunctionDecl{FuncName: name, Return: ret}
}

func callOf(target *ast.FunctionDecl) *ast.CallExpr {
	return &ast.CallExpr{Callee: &ast.Identifier{Name: target.Name(), Resolved: target}}
}

func TestPureRecursion(t *testing.T) {
	rec := fn("rec", nil)
	rec.Return = callOf(rec)
	nonRec := fn("nonRec", &ast.IntLiteral{Value: 0})

	g := callgraph.Build(&ast.Program{Funcs: []*ast.FunctionDecl{rec, nonRec}})

	if !g.IsRecursive(rec) {
		t.Error("rec should be recursive")
	}
	if g.IsRecursive(nonRec) {
		t.Error("nonRec should not be recursive")
	}
}

func TestMutualRecursion(t *testing.T) {
	rec1 := fn("rec1", nil)
	rec2 := fn("rec2", nil)
	rec1.Return = callOf(rec2)
	rec2.Return = callOf(rec1)

	g := callgraph.Build(&ast.Program{Funcs: []*ast.FunctionDecl{rec1, rec2}})

	if !g.IsRecursive(rec1) || !g.IsRecursive(rec2) {
		t.Error("both rec1 and rec2 should be recursive")
	}
}

func TestTopologicalOrder(t *testing.T) {
	c := fn("c", &ast.IntLiteral{Value: 0})
	b := fn("b", nil)
	b.Return = callOf(c)
	a := fn("a", nil)
	a.Return = callOf(b)

	g := callgraph.Build(&ast.Program{Funcs: []*ast.FunctionDecl{c, b, a}})

	order := g.InverseTopologicalOrder()
	if len(order) != 3 {
		t.Fatalf("expected 3 functions in order, got %d", len(order))
	}
	pos := map[string]int{}
	for i, f := range order {
		pos[f.Name()] = i
	}
	if !(pos["c"] < pos["b"] && pos["b"] < pos["a"]) {
		t.Errorf("expected order c, b, a; got positions %v", pos)
	}
	for _, f := range order {
		if g.IsRecursive(f) {
			t.Errorf("%s unexpectedly recursive", f.Name())
		}
	}
}

func TestSiblingPartialOrder(t *testing.T) {
	d := fn("d", &ast.IntLiteral{Value: 0})
	c := fn("c", nil)
	c.Return = callOf(d)
	b := fn("b", nil)
	b.Return = callOf(d)
	xDecl := &ast.VarDecl{VarName: "x"}
	a := &ast.FunctionDecl{
		FuncName:   "a",
		FuncLocals: []*ast.VarDecl{xDecl},
		FuncBody: []ast.Statement{
			&ast.AssignStatement{
				Target: &ast.Identifier{Name: "x", Resolved: xDecl},
				Value:  callOf(b),
			},
		},
		Return: callOf(c),
	}

	g := callgraph.Build(&ast.Program{Funcs: []*ast.FunctionDecl{d, c, b, a}})
	order := g.InverseTopologicalOrder()
	if len(order) != 4 {
		t.Fatalf("expected 4 functions, got %d", len(order))
	}
	if order[0].Name() != "d" {
		t.Errorf("expected d first, got %s", order[0].Name())
	}
	if order[3].Name() != "a" {
		t.Errorf("expected a last, got %s", order[3].Name())
	}
	middle := map[string]bool{order[1].Name(): true, order[2].Name(): true}
	if !middle["b"] || !middle["c"] {
		t.Errorf("expected b and c in the middle, got %v", middle)
	}
}

func TestNonRecursiveSingleton(t *testing.T) {
	leaf := fn("leaf", &ast.IntLiteral{Value: 0})
	g := callgraph.Build(&ast.Program{Funcs: []*ast.FunctionDecl{leaf}})
	if g.IsRecursive(leaf) {
		t.Error("a function with no SCC and no self-call must be non-recursive")
	}
	if g.InRecursiveClosure(leaf) {
		t.Error("a non-recursive leaf must not be in the recursive closure")
	}
}

func TestCallThroughLocalIsNotAnEdge(t *testing.T) {
	// x = rec; x() inside rec itself — spec.md §9's documented limitation:
	// calls through a local holding a function are not treated as recursion.
	xDecl := &ast.VarDecl{VarName: "x"}
	rec := &ast.FunctionDecl{
		FuncName:   "rec",
		FuncLocals: []*ast.VarDecl{xDecl},
		Return:     &ast.IntLiteral{Value: 0},
	}
	rec.FuncBody = []ast.Statement{
		&ast.AssignStatement{
			Target: &ast.Identifier{Name: "x", Resolved: xDecl},
			Value:  &ast.Identifier{Name: "rec", Resolved: rec},
		},
		&ast.ExprStatement{
			Value: &ast.CallExpr{Callee: &ast.Identifier{Name: "x", Resolved: xDecl}},
		},
	}

	g := callgraph.Build(&ast.Program{Funcs: []*ast.FunctionDecl{rec}})
	if g.IsRecursive(rec) {
		t.Error("calling through a local must not create a call edge")
	}
}
