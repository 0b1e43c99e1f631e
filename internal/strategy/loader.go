package strategy

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk shape of a strategy override file
type file struct {
	Strategies []Definition `yaml:"strategies"`
}

// Load returns the default definitions merged with overrides from a
// YAML file. An empty path returns the defaults unchanged. Unknown
// YAML fields fail loudly so typos cannot silently drop a bound.
func Load(path string) (map[string]Definition, error) {
	defs := Defaults()
	if path == "" {
		return defs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy file: %w", err)
	}

	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse strategy file: %w", err)
	}

	for _, def := range f.Strategies {
		if err := validate(def); err != nil {
			return nil, fmt.Errorf("strategy %q: %w", def.Name, err)
		}
		defs[def.Name] = def
	}

	return defs, nil
}

// validate rejects definitions a run could not execute
func validate(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("name is required")
	}
	if def.Universe == "" {
		return fmt.Errorf("universe is required")
	}
	if def.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", def.TopN)
	}
	if def.MinScore < 0 || def.MinScore > 100 {
		return fmt.Errorf("min_score must be in [0, 100], got %.1f", def.MinScore)
	}
	if def.MaxSymbols < 0 {
		return fmt.Errorf("max_symbols must not be negative, got %d", def.MaxSymbols)
	}
	return nil
}
