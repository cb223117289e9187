// Package symbols exposes the resolved symbol table the inference core
// consumes (spec.md §6.1). Building the table from a parsed program — name
// resolution, scope checking — is out of scope here (spec.md §1, "external
// collaborators"); this package only defines the query shape the core
// requires. The whole package, construction (New) included, lives in this
// one file.
package symbols

import "github.com/CalvinKrist/tipc/internal/ast"

// Table is the read-only view of a resolved program the driver queries.
// The AST and the Table are both treated as read-only inputs for the
// duration of inference (spec.md §5).
type Table struct {
	program *ast.Program
	locals  map[*ast.FunctionDecl][]ast.Decl
}

// New builds a Table over an already-resolved program. locals for a
// function are its parameters followed by its var-declared locals, in
// declaration order — the set symbols.Locals(fn) returns.
func New(program *ast.Program) *Table {
	t := &Table{
		program: program,
		locals:  make(map[*ast.FunctionDecl][]ast.Decl, len(program.Functions())),
	}
	for _, fn := range program.Functions() {
		decls := make([]ast.Decl, 0, len(fn.Params())+len(fn.Locals()))
		for _, p := range fn.Params() {
			decls = append(decls, p)
		}
		for _, l := range fn.Locals() {
			decls = append(decls, l)
		}
		t.locals[fn] = decls
	}
	return t
}

// Functions returns every function in the program, in declaration order.
func (t *Table) Functions() []*ast.FunctionDecl { return t.program.Functions() }

// Locals returns fn's parameters and var-declared locals, in declaration
// order (parameters first).
func (t *Table) Locals(fn *ast.FunctionDecl) []ast.Decl { return t.locals[fn] }

// Program returns the underlying AST the table was built over.
func (t *Table) Program() *ast.Program { return t.program }
