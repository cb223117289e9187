// Package tipc is the public entry point: spec.md §6.2's core API
// (Check / GetInferredType / IsRecursive / Print), orchestrating the
// six-step algorithm of spec.md §4.4 over the analyzer, collector, and
// unifier packages. It plays the role of funxy's internal/analyzer as the
// driver a host tool calls, minus funxy's trait/pattern machinery.
package tipc

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/CalvinKrist/tipc/internal/ast"
	"github.com/CalvinKrist/tipc/internal/callgraph"
	"github.com/CalvinKrist/tipc/internal/config"
	"github.com/CalvinKrist/tipc/internal/constraints"
	"github.com/CalvinKrist/tipc/internal/symbols"
	"github.com/CalvinKrist/tipc/internal/types"
	"github.com/CalvinKrist/tipc/internal/unify"
)

// Result is the outcome of a completed Check: a queryable, immutable view
// over the unifier's final state (spec.md §6.2).
type Result struct {
	program  *ast.Program
	table    *symbols.Table
	graph    *callgraph.Graph
	store    *unify.Store
	settings config.Settings
}

// Check runs the full pipeline over program and table and returns a Result,
// or a *diag.UnificationError (or wraps one) if inference fails. No partial
// result is ever returned on failure (spec.md §7). An internal invariant
// panic raised during inference is recovered here and returned as an error.
func Check(program *ast.Program, table *symbols.Table, settings config.Settings) (result *Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			result, err = nil, fmt.Errorf("tipc: invariant violation: %v", p)
		}
	}()
	graph := callgraph.Build(program)
	store := unify.NewStore(settings)

	isRecursive := func(fn *ast.FunctionDecl) bool { return graph.InRecursiveClosure(fn) }

	switch settings.Solver {
	case config.PreseedWholeProgram:
		// Step 3 (whole-program variant): one monomorphic pass over every
		// function's constraints pins every recursive group's types, safe
		// but stricter than necessary (spec.md §9).
		cs, err := constraints.ProgramWide(program)
		if err != nil {
			return nil, err
		}
		if err := store.Solve(cs); err != nil {
			return nil, err
		}
	default:
		// Step 3 (default, matches original_source/TypeInference.cpp):
		// solve only the recursive closure monomorphically.
		c := constraints.NewCollector()
		for _, fn := range graph.RecursiveFunctions() {
			cs, err := c.ForFunction(fn)
			if err != nil {
				return nil, err
			}
			if err := store.Solve(cs); err != nil {
				return nil, err
			}
		}
	}

	// Steps 4-5: non-recursive groups, in inverse topological order,
	// solved polymorphically with per-callsite instantiation.
	c := constraints.NewCollector()
	for _, fn := range graph.InverseTopologicalOrder() {
		if graph.InRecursiveClosure(fn) {
			continue
		}
		cs, err := c.ForFunction(fn)
		if err != nil {
			return nil, err
		}
		if err := store.SolvePolymorphic(cs, isRecursive); err != nil {
			return nil, err
		}
	}

	return &Result{program: program, table: table, graph: graph, store: store, settings: settings}, nil
}

// GetInferredType returns decl's inferred type (spec.md §6.2), O(α) after
// Check has completed.
func (r *Result) GetInferredType(decl ast.Decl) types.Type {
	return r.store.Inferred(types.NewVar(decl))
}

// IsRecursive re-exposes the analyzer's verdict for fn (spec.md §6.2).
func (r *Result) IsRecursive(fn *ast.FunctionDecl) bool {
	return r.graph.IsRecursive(fn)
}

// Print writes a human-readable dump of every function and local's inferred
// type to w. The format is for humans only, not a stable interface (spec.md
// §6.2). Color is used only when settings.Color allows it and w looks like a
// terminal, detected with go-isatty the way funxy's builtins_term.go does
// for its own REPL output.
func (r *Result) Print(w io.Writer) {
	bold, reset := "", ""
	if r.colorEnabled(w) {
		bold, reset = "\x1b[1m", "\x1b[0m"
	}
	for _, fn := range r.table.Functions() {
		fmt.Fprintf(w, "%s%s%s : %s\n", bold, fn.Name(), reset, r.GetInferredType(fn).String())
		for _, local := range r.table.Locals(fn) {
			fmt.Fprintf(w, "  %s : %s\n", local.Name(), r.GetInferredType(local).String())
		}
	}
}

func (r *Result) colorEnabled(w io.Writer) bool {
	switch r.settings.Color {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
