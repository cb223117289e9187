package types

import (
	"fmt"

	"github.com/CalvinKrist/tipc/internal/ast"
	"github.com/CalvinKrist/tipc/internal/config"
	"github.com/google/uuid"
)

// Origin identifies a type variable: where it "lives" for display purposes,
// and a comparable Key usable by the union-find arena to recognize "the
// same variable" across multiple sightings of the same AST node.
type Origin interface {
	// Key is a comparable value (safe as a Go map key) that uniquely
	// identifies this origin within one inference run.
	Key() any
	String() string
}

// DeclOrigin anchors a variable to a declaration node (a function,
// parameter, or local) — [[d]] in spec.md §4.1.
type DeclOrigin struct {
	Decl ast.Decl
}

func (o DeclOrigin) Key() any      { return o.Decl }
func (o DeclOrigin) String() string { return o.Decl.Name() }

// ExprOrigin anchors a variable to an expression node — [[e]] in spec.md
// §4.1. Display falls back to a short node-kind label (e.g. "int-literal")
// and the node's line:column position, since
// this module never sees source text (lexing/parsing is out of scope).
type ExprOrigin struct {
	Expr ast.Expression
}

func (o ExprOrigin) Key() any { return o.Expr }
func (o ExprOrigin) String() string {
	pos := o.Expr.GetPos()
	return fmt.Sprintf("%s@%d:%d", exprKind(o.Expr), pos.Line, pos.Col)
}

func exprKind(e ast.Expression) string {
	switch e.(type) {
	case *ast.IntLiteral:
		return "int-literal"
	case *ast.Identifier:
		return "ident"
	case *ast.BinaryExpr:
		return "binop"
	case *ast.InputExpr:
		return "input"
	case *ast.AllocExpr:
		return "alloc"
	case *ast.AddressOfExpr:
		return "addr-of"
	case *ast.DerefExpr:
		return "deref"
	case *ast.RecordExpr:
		return "record"
	case *ast.FieldAccessExpr:
		return "field-access"
	case *ast.CallExpr:
		return "call"
	default:
		return "expr"
	}
}

// FreshOrigin is a synthetic identity minted by the unifier during
// polymorphic instantiation (spec.md §3.1) or to stand in for an open
// record field (spec.md §4.1, field access row). Two FreshOrigins are equal
// only if they share the same minted id.
type FreshOrigin struct {
	id string
}

// NewFresh mints a synthetic origin with a fresh, collision-free identity.
// Minting via google/uuid rather than a shared package counter means two
// Store instances (e.g. a long-lived LSP host re-running Check on every
// edit, config.IsLSPMode) never collide even if neither ever learns about
// the other's counter state.
func NewFresh() FreshOrigin {
	return FreshOrigin{id: uuid.NewString()}
}

func (o FreshOrigin) Key() any { return o.id }
func (o FreshOrigin) String() string {
	if config.IsTestMode {
		return "fresh"
	}
	return "fresh:" + o.id[:8]
}

// NewVar builds a Var anchored at a declaration.
func NewVar(d ast.Decl) Var { return Var{Origin: DeclOrigin{Decl: d}} }

// NewExprVar builds a Var anchored at an expression node.
func NewExprVar(e ast.Expression) Var { return Var{Origin: ExprOrigin{Expr: e}} }

// NewFreshVar builds a Var with a synthetic fresh identity.
func NewFreshVar() Var { return Var{Origin: NewFresh()} }
