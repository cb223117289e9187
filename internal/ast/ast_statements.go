package ast

// VarDeclStatement is the `var x, y, z;` form that introduces locals. The
// declared names themselves live in FunctionDecl.FuncLocals; this statement
// just marks where in the body they were introduced, matching how funxy
// keeps declaration and binding-site nodes separate.
type VarDeclStatement struct {
	Pos   Pos
	Decls []*VarDecl
}

func (s *VarDeclStatement) Accept(v Visitor) { v.VisitVarDeclStatement(s) }
func (s *VarDeclStatement) GetPos() Pos      { return s.Pos }
func (s *VarDeclStatement) statementNode()   {}

// AssignStatement is `lhs = rhs;`. Target is an Identifier, a DerefExpr
// (`*e = rhs`), or a FieldAccessExpr (`e.f = rhs`).
type AssignStatement struct {
	Pos    Pos
	Target Expression
	Value  Expression
}

func (s *AssignStatement) Accept(v Visitor) { v.VisitAssignStatement(s) }
func (s *AssignStatement) GetPos() Pos      { return s.Pos }
func (s *AssignStatement) statementNode()   {}

// OutputStatement is `output e;`.
type OutputStatement struct {
	Pos   Pos
	Value Expression
}

func (s *OutputStatement) Accept(v Visitor) { v.VisitOutputStatement(s) }
func (s *OutputStatement) GetPos() Pos      { return s.Pos }
func (s *OutputStatement) statementNode()   {}

// IfStatement is `if (cond) { then } [else { alt }]`.
type IfStatement struct {
	Pos  Pos
	Cond Expression
	Then []Statement
	Else []Statement // nil if there is no else branch
}

func (s *IfStatement) Accept(v Visitor) { v.VisitIfStatement(s) }
func (s *IfStatement) GetPos() Pos      { return s.Pos }
func (s *IfStatement) statementNode()   {}

// WhileStatement is `while (cond) { body }`.
type WhileStatement struct {
	Pos  Pos
	Cond Expression
	Body []Statement
}

func (s *WhileStatement) Accept(v Visitor) { v.VisitWhileStatement(s) }
func (s *WhileStatement) GetPos() Pos      { return s.Pos }
func (s *WhileStatement) statementNode()   {}

// ExprStatement wraps an expression evaluated for its side effect, e.g. a
// bare call `f(x);`.
type ExprStatement struct {
	Pos   Pos
	Value Expression
}

func (s *ExprStatement) Accept(v Visitor) { v.VisitExprStatement(s) }
func (s *ExprStatement) GetPos() Pos      { return s.Pos }
func (s *ExprStatement) statementNode()   {}
