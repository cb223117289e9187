package tipc_test

import (
	"testing"

	"github.com/CalvinKrist/tipc/internal/ast"
	"github.com/CalvinKrist/tipc/internal/config"
	"github.com/CalvinKrist/tipc/internal/symbols"
	"github.com/CalvinKrist/tipc/internal/tipc"
)

func init() { config.IsTestMode = true }

func ident(d ast.Decl) *ast.Identifier { return &ast.Identifier{Name: d.Name(), Resolved: d} }

func call(target *ast.FunctionDecl, args ...ast.Expression) *ast.CallExpr {
	return &ast.CallExpr{Callee: ident(target), Args: args}
}

func mkProgram(fns ...*ast.FunctionDecl) (*ast.Program, *symbols.Table) {
	p := &ast.Program{Funcs: fns}
	return p, symbols.New(p)
}

// Scenario 1: pure recursion (spec.md §8.1).
func TestPureRecursion(t *testing.T) {
	rec := &ast.FunctionDecl{FuncName: "rec"}
	rec.Return = call(rec)
	nonRec := &ast.FunctionDecl{FuncName: "nonRec", Return: &ast.IntLiteral{Value: 0}}

	program, table := mkProgram(rec, nonRec)
	result, err := tipc.Check(program, table, config.DefaultSettings())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !result.IsRecursive(rec) {
		t.Error("rec should be recursive")
	}
	if result.IsRecursive(nonRec) {
		t.Error("nonRec should not be recursive")
	}
	if got := result.GetInferredType(nonRec).String(); got != "() -> int" {
		t.Errorf("nonRec : %s, want () -> int", got)
	}
}

// Scenario 3: topological order, all three infer () -> int (spec.md §8.3).
func TestTopologicalOrderInference(t *testing.T) {
	c := &ast.FunctionDecl{FuncName: "c", Return: &ast.IntLiteral{Value: 0}}
	b := &ast.FunctionDecl{FuncName: "b"}
	b.Return = call(c)
	a := &ast.FunctionDecl{FuncName: "a"}
	a.Return = call(b)

	program, table := mkProgram(c, b, a)
	result, err := tipc.Check(program, table, config.DefaultSettings())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	for _, fn := range []*ast.FunctionDecl{a, b, c} {
		if got := result.GetInferredType(fn).String(); got != "() -> int" {
			t.Errorf("%s : %s, want () -> int", fn.Name(), got)
		}
	}
}

// Scenario 5: let-polymorphism (spec.md §8.5).
func TestLetPolymorphism(t *testing.T) {
	aParam := &ast.ParamDecl{ParamName: "a"}
	id := &ast.FunctionDecl{
		FuncName:   "id",
		FuncParams: []*ast.ParamDecl{aParam},
		Return:     ident(aParam),
	}

	xDecl := &ast.VarDecl{VarName: "x"}
	zDecl := &ast.VarDecl{VarName: "z"}
	f2 := &ast.FunctionDecl{
		FuncName:   "f2",
		FuncLocals: []*ast.VarDecl{xDecl, zDecl},
		FuncBody: []ast.Statement{
			&ast.AssignStatement{Target: ident(xDecl), Value: call(id, &ast.IntLiteral{Value: 0})},
			&ast.AssignStatement{Target: ident(zDecl), Value: &ast.RecordExpr{
				Fields: []ast.RecordField{{Name: "f", Value: &ast.IntLiteral{Value: 1}}},
			}},
			&ast.AssignStatement{Target: ident(zDecl), Value: call(id, ident(zDecl))},
		},
		Return: &ast.IntLiteral{Value: 0},
	}

	program, table := mkProgram(id, f2)
	result, err := tipc.Check(program, table, config.DefaultSettings())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if got := result.GetInferredType(id).String(); got != "(α<a>) -> α<a>" {
		t.Errorf("id : %s, want (α<a>) -> α<a>", got)
	}
	if got := result.GetInferredType(xDecl).String(); got != "int" {
		t.Errorf("x : %s, want int", got)
	}
	if got := result.GetInferredType(zDecl).String(); got != "{f:int}" {
		t.Errorf("z : %s, want {f:int}", got)
	}
}

// Scenario 6: polymorphic recursion is rejected (spec.md §8.6).
func TestPolymorphicRecursionRejected(t *testing.T) {
	aParam := &ast.ParamDecl{ParamName: "a"}
	bParam := &ast.ParamDecl{ParamName: "b"}
	pDecl := &ast.VarDecl{VarName: "p"}
	swapper := &ast.FunctionDecl{
		FuncName:   "swapper",
		FuncParams: []*ast.ParamDecl{aParam, bParam},
		FuncLocals: []*ast.VarDecl{pDecl},
	}
	swapper.FuncBody = []ast.Statement{
		&ast.AssignStatement{Target: ident(pDecl), Value: call(swapper, ident(bParam), ident(aParam))},
	}
	swapper.Return = ident(aParam)

	x := &ast.FunctionDecl{
		FuncName: "x",
		Return:   call(swapper, &ast.IntLiteral{Value: 1}, &ast.AllocExpr{Value: &ast.IntLiteral{Value: 3}}),
	}

	program, table := mkProgram(swapper, x)
	_, err := tipc.Check(program, table, config.DefaultSettings())
	if err == nil {
		t.Fatal("expected a UnificationError from unsupported polymorphic recursion")
	}
}

// Scenario 7: flow-polymorphism rejection (spec.md §8.7).
func TestFlowPolymorphismRejected(t *testing.T) {
	xParam := &ast.ParamDecl{ParamName: "x"}
	yDecl := &ast.VarDecl{VarName: "y"}
	poly := &ast.FunctionDecl{
		FuncName:   "poly",
		FuncParams: []*ast.ParamDecl{xParam},
		FuncLocals: []*ast.VarDecl{yDecl},
		FuncBody: []ast.Statement{
			&ast.IfStatement{
				Cond: &ast.BinaryExpr{Op: ast.OpEq, Left: ident(yDecl), Right: &ast.IntLiteral{Value: 0}},
				Then: []ast.Statement{&ast.AssignStatement{Target: ident(xParam), Value: &ast.IntLiteral{Value: 0}}},
				Else: []ast.Statement{&ast.AssignStatement{Target: ident(xParam), Value: &ast.RecordExpr{
					Fields: []ast.RecordField{{Name: "d", Value: &ast.IntLiteral{Value: 1}}},
				}}},
			},
		},
		Return: ident(xParam),
	}

	program, table := mkProgram(poly)
	_, err := tipc.Check(program, table, config.DefaultSettings())
	if err == nil {
		t.Fatal("expected a UnificationError from conflicting assignments to x")
	}
}

// Scenario 8: recursive pointer type (spec.md §8.8). rec(p) calls itself
// with `alloc p`, the same p deref'd in its own return — forcing p's class
// to equal Ref(p)'s class, a cyclic representative that must reify without
// non-termination.
func TestRecursivePointerType(t *testing.T) {
	pParam := &ast.ParamDecl{ParamName: "p"}
	tmpDecl := &ast.VarDecl{VarName: "tmp"}
	rec := &ast.FunctionDecl{
		FuncName:   "rec",
		FuncParams: []*ast.ParamDecl{pParam},
		FuncLocals: []*ast.VarDecl{tmpDecl},
	}
	rec.FuncBody = []ast.Statement{
		&ast.AssignStatement{
			Target: ident(tmpDecl),
			Value:  call(rec, &ast.AllocExpr{Value: ident(pParam)}),
		},
	}
	rec.Return = &ast.DerefExpr{Value: ident(pParam)}

	program, table := mkProgram(rec)
	result, err := tipc.Check(program, table, config.DefaultSettings())
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	// Must terminate; exact textual form of a cyclic type is unspecified.
	_ = result.GetInferredType(pParam).String()
}
