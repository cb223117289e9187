// Package config holds package-level mode flags and solver knobs shared
// across the inference pipeline, the way funxy's internal/config does for
// its analyzer and LSP layers.
package config

// Version is the current tipc version.
var Version = "0.1.0"

// IsTestMode indicates the program is running under `go test`.
// In test mode every synthetic (fresh) type-variable origin prints as
// "fresh" instead of "fresh:<id prefix>", so expected strings stay stable
// across runs; set this in TestMain or individual tests that print inferred
// types.
var IsTestMode = false

// IsLSPMode indicates the program is running as a long-lived query server
// (e.g. an editor-integration host repeatedly calling Check on edited
// programs). No code in this module reads it: inference results, Print
// formatting and the reify memo cache size do not depend on it.
var IsLSPMode = false

// SolverMode selects between the two program-order strategies the
// specification's Open Questions section (§9) declares equally valid.
type SolverMode int

const (
	// SolveRecursiveGroupsOnly first solves the recursive closure (every
	// function in a recursive SCC plus every function reachable from one)
	// monomorphically, one function's constraints at a time in declaration
	// order, then solves each remaining function polymorphically in inverse
	// topological order. This is what original_source/TypeInference.cpp does
	// and is the default.
	SolveRecursiveGroupsOnly SolverMode = iota
	// PreseedWholeProgram collects constraints for the entire program up
	// front and solves them monomorphically in one pass before overlaying
	// per-callsite polymorphic instantiation for non-recursive groups. Safe
	// but does strictly more unification work than necessary.
	PreseedWholeProgram
)

func (m SolverMode) String() string {
	switch m {
	case PreseedWholeProgram:
		return "preseed-whole-program"
	default:
		return "solve-recursive-groups-only"
	}
}

// Settings are the solver knobs a driver reads before running Check.
// They are the kind of thing a host tool loads once from a YAML document
// (see LoadSettings) rather than hardcoding, mirroring how funxy resolves
// funxy.yaml via internal/ext/config.go.
type Settings struct {
	Solver SolverMode `yaml:"solver"`
	// MemoCacheSize bounds the unifier's reify memoization cache (see
	// internal/unify). Zero means the package default.
	MemoCacheSize int `yaml:"memoCacheSize"`
	// Color controls Print's use of ANSI coloring: "auto" (default, detect
	// via go-isatty), "always", or "never".
	Color string `yaml:"color"`
}

// DefaultSettings returns the zero-config behavior: solve recursive groups
// independently, a package-chosen memo cache size, and isatty-detected color.
func DefaultSettings() Settings {
	return Settings{
		Solver:        SolveRecursiveGroupsOnly,
		MemoCacheSize: 0,
		Color:         "auto",
	}
}
