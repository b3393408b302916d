package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/choc/internal/compiler"
)

// Scenario defines one conformance case: a source program and the
// expectations on its compilation.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// fixture name when Expect.Golden is set.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Mode is the emit mode: ir, ast, or py.
	Mode string `yaml:"mode"`

	// Source is the program under test.
	Source string `yaml:"source"`

	// Cache runs the compilation twice through a fresh in-memory
	// build cache and requires the second run to be a hit.
	Cache bool `yaml:"cache,omitempty"`

	// BuildID is an optional fixed build ID for deterministic cache
	// rows. Defaults to "test-build-default".
	BuildID string `yaml:"build_id,omitempty"`

	// Expect holds the assertions evaluated against the run.
	Expect ExpectClause `yaml:"expect"`
}

// ExpectClause specifies the expected compilation outcome.
type ExpectClause struct {
	// Contains lists substrings the artifact must include.
	Contains []string `yaml:"contains,omitempty"`

	// Golden compares the artifact against testdata/golden/<name>.
	Golden bool `yaml:"golden,omitempty"`

	// Phase names the phase expected to reject the source ("parse"
	// or "check"). Empty means the compilation must succeed.
	Phase string `yaml:"phase,omitempty"`

	// Diagnostics lists substrings that must each appear in some
	// reported diagnostic. Only meaningful with Phase set.
	Diagnostics []string `yaml:"diagnostics,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields
// are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Source == "" {
		return fmt.Errorf("source is required")
	}
	if _, err := compiler.ParseMode(s.Mode); err != nil {
		return err
	}
	if s.Expect.Phase != "" &&
		s.Expect.Phase != compiler.PhaseParse &&
		s.Expect.Phase != compiler.PhaseCheck {
		return fmt.Errorf("unknown phase %q", s.Expect.Phase)
	}
	if s.Expect.Phase == "" && len(s.Expect.Diagnostics) > 0 {
		return fmt.Errorf("diagnostics require a phase")
	}
	if s.Expect.Phase != "" && (s.Expect.Golden || len(s.Expect.Contains) > 0 || s.Cache) {
		return fmt.Errorf("a failing scenario cannot assert on an artifact")
	}
	return nil
}
