// Package ast defines the node types for the small imperative language the
// inference core consumes: integers, first-class-by-name functions,
// structural records, and pointers. Building a Program from source text
// (lexing/parsing) is out of scope for this module — callers construct the
// tree directly or via an external front end.
package ast

// Pos is a source location, the minimal slice of the teacher's token concept
// this package needs once lexing is someone else's job: just enough to
// attach a location to a constraint for diagnostics (spec.md §3.2).
type Pos struct {
	Line, Col int
}

// Node is the base interface for all AST nodes, mirroring funxy's
// ast.Node: every node can be visited and reports a position for
// diagnostics.
type Node interface {
	Accept(v Visitor)
	GetPos() Pos
}

// Statement is a Node that appears in a function body.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Decl is any declaration node that anchors a type variable: a function, a
// parameter, or a local (var). Decl values are compared by pointer identity,
// which is what makes them usable as types.Origin and as map keys.
type Decl interface {
	Node
	Name() string
	declNode()
}

// Program is the root node: an ordered list of function declarations.
type Program struct {
	Funcs []*FunctionDecl
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) GetPos() Pos {
	if len(p.Funcs) > 0 {
		return p.Funcs[0].GetPos()
	}
	return Pos{}
}

// Functions returns every function declared in the program, in declaration
// order.
func (p *Program) Functions() []*FunctionDecl { return p.Funcs }

// FindFunctionByName resolves a static callee name against the program's
// function table. Returns nil if no function with that name exists.
func (p *Program) FindFunctionByName(name string) *FunctionDecl {
	for _, f := range p.Funcs {
		if f.FuncName == name {
			return f
		}
	}
	return nil
}

// ParamDecl is a function parameter declaration.
type ParamDecl struct {
	Pos       Pos
	ParamName string
}

func (p *ParamDecl) Accept(v Visitor) { v.VisitParamDecl(p) }
func (p *ParamDecl) GetPos() Pos      { return p.Pos }
func (p *ParamDecl) Name() string     { return p.ParamName }
func (p *ParamDecl) declNode()        {}

// VarDecl is a local `var` declaration inside a function body.
type VarDecl struct {
	Pos     Pos
	VarName string
}

func (v *VarDecl) Accept(vis Visitor) { vis.VisitVarDecl(v) }
func (v *VarDecl) GetPos() Pos        { return v.Pos }
func (v *VarDecl) Name() string       { return v.VarName }
func (v *VarDecl) declNode()          {}

// FunctionDecl is a top-level function: f(p1, ..., pn) { locals; stmts; return r; }
type FunctionDecl struct {
	Pos        Pos
	FuncName   string
	FuncParams []*ParamDecl
	FuncLocals []*VarDecl
	FuncBody   []Statement
	Return     Expression
}

func (f *FunctionDecl) Accept(v Visitor)    { v.VisitFunctionDecl(f) }
func (f *FunctionDecl) GetPos() Pos         { return f.Pos }
func (f *FunctionDecl) Name() string        { return f.FuncName }
func (f *FunctionDecl) declNode()           {}
func (f *FunctionDecl) Params() []*ParamDecl { return f.FuncParams }
func (f *FunctionDecl) Locals() []*VarDecl   { return f.FuncLocals }
func (f *FunctionDecl) Body() []Statement    { return f.FuncBody }

// Decl returns the function's own declaration node, the anchor for
// [[f-decl]] in the constraint table (spec.md §4.1). A function is its own
// Decl since FunctionDecl already satisfies the Decl interface.
func (f *FunctionDecl) Decl() Decl { return f }
