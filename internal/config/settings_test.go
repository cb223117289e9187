package config_test

import (
	"os"
	"testing"

	"github.com/CalvinKrist/tipc/internal/config"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}

func TestDefaultSettings(t *testing.T) {
	s := config.DefaultSettings()
	if s.Solver != config.SolveRecursiveGroupsOnly {
		t.Errorf("default solver = %v, want SolveRecursiveGroupsOnly", s.Solver)
	}
	if s.Color != "auto" {
		t.Errorf("default color = %q, want \"auto\"", s.Color)
	}
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	s, err := config.LoadSettings("/nonexistent/path/tipc.yaml")
	if err != nil {
		t.Fatalf("LoadSettings on a missing file should not error, got %v", err)
	}
	if s != config.DefaultSettings() {
		t.Errorf("LoadSettings(missing) = %+v, want defaults", s)
	}
}

func TestLoadSettingsParsesSolverMode(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/tipc.yaml"
	if err := writeFile(path, "solver: preseed-whole-program\nmemoCacheSize: 64\n"); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	s, err := config.LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Solver != config.PreseedWholeProgram {
		t.Errorf("solver = %v, want PreseedWholeProgram", s.Solver)
	}
	if s.MemoCacheSize != 64 {
		t.Errorf("memoCacheSize = %d, want 64", s.MemoCacheSize)
	}
}

func TestLoadSettingsRejectsUnknownSolver(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/tipc.yaml"
	if err := writeFile(path, "solver: bogus\n"); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := config.LoadSettings(path); err == nil {
		t.Fatal("expected an error for an unknown solver mode")
	}
}
