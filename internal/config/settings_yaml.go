package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlSettings is the on-disk shape for Settings; Solver is a string here
// since SolverMode has no native YAML representation.
type yamlSettings struct {
	Solver        string `yaml:"solver"`
	MemoCacheSize int    `yaml:"memoCacheSize"`
	Color         string `yaml:"color"`
}

// LoadSettings reads solver settings from a YAML document at path, the way
// funxy's ext.Config is resolved from funxy.yaml. A missing file is not an
// error: DefaultSettings is returned unchanged, since most callers never need
// to override the defaults.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var raw yamlSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return settings, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	switch raw.Solver {
	case "", "solve-recursive-groups-only":
		settings.Solver = SolveRecursiveGroupsOnly
	case "preseed-whole-program":
		settings.Solver = PreseedWholeProgram
	default:
		return settings, fmt.Errorf("config: unknown solver mode %q", raw.Solver)
	}

	if raw.MemoCacheSize > 0 {
		settings.MemoCacheSize = raw.MemoCacheSize
	}
	if raw.Color != "" {
		settings.Color = raw.Color
	}

	return settings, nil
}
