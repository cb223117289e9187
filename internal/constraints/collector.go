// Package constraints implements the constraint-collector component of
// spec.md §4.1: a post-order AST walk that emits one or more type-equality
// constraints per construct. It is grounded on funxy's analyzer package
// (internal/analyzer/inference_decl.go and friends walk the AST emitting
// unification work against an InferenceContext) but is much smaller, since
// this language has five expression families instead of funxy's dozens of
// trait/pattern/pipe forms.
package constraints

import (
	"fmt"

	"github.com/CalvinKrist/tipc/internal/ast"
	"github.com/CalvinKrist/tipc/internal/diag"
	"github.com/CalvinKrist/tipc/internal/types"
)

// Constraint is an unordered pair (L, R) of type terms meaning "L must equal
// R" (spec.md §3.2). Pos is optional source-location context for
// diagnostics; it does not participate in equality.
type Constraint struct {
	L, R types.Type
	Pos  ast.Pos
}

// String matches the regex ^.* = .*$ (spec.md §3.2, tested).
func (c Constraint) String() string {
	return fmt.Sprintf("%s = %s", c.L.String(), c.R.String())
}

// Collector walks one function body at a time and accumulates the
// constraints it implies. Collector state resets per function-body walk
// (ForFunction), so constraint batches for different functions are
// independent and can be handed to the unifier as isolated lists
// (spec.md §4.1, last paragraph).
type Collector struct {
	ast.BaseVisitor
	out []Constraint
	err error
}

// NewCollector returns a ready-to-use Collector.
func NewCollector() *Collector { return &Collector{} }

func (c *Collector) emit(l, r types.Type, pos ast.Pos) {
	c.out = append(c.out, Constraint{L: l, R: r, Pos: pos})
}

// ForFunction resets the collector and returns the full constraint list for
// fn's signature and body, including its return expression. err is non-nil
// (a *diag.MissingSymbolError) if the walk reached an Identifier whose
// Resolved field is nil — a driver/caller bug, since this package assumes an
// already name-resolved AST (spec.md §7).
func (c *Collector) ForFunction(fn *ast.FunctionDecl) ([]Constraint, error) {
	c.out = nil
	c.err = nil

	params := make([]types.Type, len(fn.Params()))
	for i, p := range fn.Params() {
		params[i] = types.NewVar(p)
	}
	retVar := types.NewExprVar(fn.Return)
	c.emit(types.NewVar(fn), types.Function{Params: params, Return: retVar}, fn.GetPos())

	ast.Walk(c, fn.Body())
	ast.WalkExpr(c, fn.Return)

	if c.err != nil {
		return nil, c.err
	}
	return c.out, nil
}

// ProgramWide collects and concatenates the constraints for every function
// in program, used by the whole-program preseed solver strategy
// (config.PreseedWholeProgram). It stops at the first function whose walk
// reports an error (spec.md §7: no partial result on failure).
func ProgramWide(program *ast.Program) ([]Constraint, error) {
	c := NewCollector()
	var all []Constraint
	for _, fn := range program.Functions() {
		cs, err := c.ForFunction(fn)
		if err != nil {
			return nil, err
		}
		all = append(all, cs...)
	}
	return all, nil
}

// --- Visitor methods: one per construct row of spec.md §4.1's table. ---

func (c *Collector) VisitIntLiteral(n *ast.IntLiteral) {
	c.emit(types.NewExprVar(n), types.Int{}, n.Pos)
}

func (c *Collector) VisitIdentifier(n *ast.Identifier) {
	if n.Resolved == nil {
		if c.err == nil {
			c.err = diag.NewMissingSymbolError(n.Name)
		}
		return
	}
	c.emit(types.NewExprVar(n), types.NewVar(n.Resolved), n.Pos)
}

func (c *Collector) VisitBinaryExpr(n *ast.BinaryExpr) {
	left := types.NewExprVar(n.Left)
	right := types.NewExprVar(n.Right)
	self := types.NewExprVar(n)
	if n.Op.IsArithmetic() {
		c.emit(left, types.Int{}, n.Pos)
		c.emit(right, types.Int{}, n.Pos)
		c.emit(self, types.Int{}, n.Pos)
	} else {
		c.emit(left, right, n.Pos)
		c.emit(self, types.Int{}, n.Pos)
	}
}

func (c *Collector) VisitInputExpr(n *ast.InputExpr) {
	c.emit(types.NewExprVar(n), types.Int{}, n.Pos)
}

func (c *Collector) VisitAllocExpr(n *ast.AllocExpr) {
	c.emit(types.NewExprVar(n), types.Ref{Elem: types.NewExprVar(n.Value)}, n.Pos)
}

func (c *Collector) VisitAddressOfExpr(n *ast.AddressOfExpr) {
	c.emit(types.NewExprVar(n), types.Ref{Elem: types.NewExprVar(n.Target)}, n.Pos)
}

func (c *Collector) VisitDerefExpr(n *ast.DerefExpr) {
	c.emit(types.NewExprVar(n.Value), types.Ref{Elem: types.NewExprVar(n)}, n.Pos)
}

func (c *Collector) VisitRecordExpr(n *ast.RecordExpr) {
	fields := make([]types.Field, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = types.Field{Name: f.Name, Type: types.NewExprVar(f.Value)}
	}
	c.emit(types.NewExprVar(n), types.Record{Fields: fields}, n.Pos)
}

// VisitFieldAccessExpr implements the partial-record row of spec.md §4.1:
// a fresh variable stands for the field's value, and the record expression
// is constrained to be a record containing exactly that one field. This is
// a known imprecision (spec.md §4.1's "open-record subtlety"): without row
// polymorphism, a value whose only observed record
// constraint is a single field access cannot later be unified with a
// concrete record that has additional fields.
func (c *Collector) VisitFieldAccessExpr(n *ast.FieldAccessExpr) {
	field := types.NewFreshVar()
	c.emit(types.NewExprVar(n.Record), types.Record{Fields: []types.Field{{Name: n.Field, Type: field}}}, n.Pos)
	c.emit(types.NewExprVar(n), field, n.Pos)
}

func (c *Collector) VisitCallExpr(n *ast.CallExpr) {
	args := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		args[i] = types.NewExprVar(a)
	}
	self := types.NewExprVar(n)

	if callee, ok := n.StaticCallee(); ok {
		c.emit(types.NewVar(callee), types.Function{Params: args, Return: self}, n.Pos)
		return
	}
	c.emit(types.NewExprVar(n.Callee), types.Function{Params: args, Return: self}, n.Pos)
}

func (c *Collector) VisitAssignStatement(n *ast.AssignStatement) {
	c.emit(types.NewExprVar(n.Target), types.NewExprVar(n.Value), n.Pos)
}

func (c *Collector) VisitOutputStatement(n *ast.OutputStatement) {
	c.emit(types.NewExprVar(n.Value), types.Int{}, n.Pos)
}

func (c *Collector) VisitIfStatement(n *ast.IfStatement) {
	c.emit(types.NewExprVar(n.Cond), types.Int{}, n.Pos)
}

func (c *Collector) VisitWhileStatement(n *ast.WhileStatement) {
	c.emit(types.NewExprVar(n.Cond), types.Int{}, n.Pos)
}
