package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML scenario file from the given path.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario

	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	applyDefaults(&s)

	return &s, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(s *Scenario) {
	if s.Version == "" {
		s.Version = CurrentVersion
	}

	if s.Name == "" {
		s.Name = DefaultName
	}

	if s.URL == "" {
		s.URL = UnknownURL
	}

	if s.Bindings == nil {
		s.Bindings = []Binding{}
	}

	for i := range s.Bindings {
		if s.Bindings[i].Type == "" {
			s.Bindings[i].Type = BindingDynamic
		}
	}
}

// Marshal serializes a Scenario to YAML.
func Marshal(s *Scenario) ([]byte, error) {
	return yaml.Marshal(s)
}

// WriteFile writes a Scenario to the given path.
func WriteFile(s *Scenario, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scenario file %s: %w", path, err)
	}

	return nil
}
