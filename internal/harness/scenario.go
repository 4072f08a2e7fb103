package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario: a physics description and
// what resolving and applying it must produce.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is the inline CUE source holding the physics struct.
	Config string `yaml:"config,omitempty"`

	// ConfigFile is a path to a CUE, JSON or YAML description.
	// Relative paths are resolved against the scenario file location.
	// Exactly one of Config and ConfigFile must be set.
	ConfigFile string `yaml:"config_file,omitempty"`

	// Expect holds the expected resolution outcome.
	Expect Expectation `yaml:"expect"`

	// Assertions validate the engine call trace.
	// Supported types: trace_contains, trace_order, trace_count
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// Golden enables comparison of the trace against testdata/golden/{name}.golden.
	Golden bool `yaml:"golden,omitempty"`

	// RunID is an optional fixed run id for the ledger record.
	// If empty, defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`
}

// Expectation specifies the expected resolution outcome. Unset fields are
// not checked.
type Expectation struct {
	// Error is the expected error code. When set, the scenario must fail
	// with exactly this code and the remaining fields are ignored.
	Error string `yaml:"error,omitempty"`

	// Electromagnetic is the expected EM module name; "" expects none.
	Electromagnetic *string `yaml:"electromagnetic,omitempty"`

	// Hadronic is the expected hadronic module list, in order.
	Hadronic *[]string `yaml:"hadronic,omitempty"`

	// EMOptions are expected resolved EM toggles, keyed fluorescence, auger, pixe.
	EMOptions map[string]bool `yaml:"em_options,omitempty"`

	// Cuts maps species (or "default") to the expected length, e.g. "0.01 mm".
	Cuts map[string]string `yaml:"cuts,omitempty"`

	// Limiters are rules that must appear in the plan, e.g. "e- e-Step".
	Limiters []string `yaml:"limiters,omitempty"`

	// LimiterCount is the expected total number of limiter rules.
	LimiterCount *int `yaml:"limiter_count,omitempty"`

	// Diagnostics are codes that must have been recorded.
	Diagnostics []string `yaml:"diagnostics,omitempty"`
}

// Assertion validates the engine call trace.
type Assertion struct {
	// Type specifies the assertion type:
	// - "trace_contains": Check a call appears in the trace
	// - "trace_order": Check calls appear in order
	// - "trace_count": Check an op appears exactly N times
	Type string `yaml:"type"`

	// Call is a call pattern "op [target [value]]" (used by trace_contains).
	Call string `yaml:"call,omitempty"`

	// Calls is the expected call order (used by trace_order).
	Calls []string `yaml:"calls,omitempty"`

	// Op is the engine operation (used by trace_count).
	Op string `yaml:"op,omitempty"`

	// Count is the expected number of occurrences (used by trace_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving config_file relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.ConfigFile != "" && !filepath.IsAbs(scenario.ConfigFile) && basePath != "" {
		scenario.ConfigFile = filepath.Join(basePath, scenario.ConfigFile)
	}

	// Validate required fields (now with resolved paths)
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml and *.yml scenario in dir, sorted by
// file name.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Config == "" && s.ConfigFile == "":
		return fmt.Errorf("config or config_file is required")
	case s.Config != "" && s.ConfigFile != "":
		return fmt.Errorf("config and config_file are mutually exclusive")
	}

	if s.ConfigFile != "" {
		if _, err := os.Stat(s.ConfigFile); os.IsNotExist(err) {
			return fmt.Errorf("config file not found: %s", s.ConfigFile)
		}
	}

	if s.Expect.LimiterCount != nil && *s.Expect.LimiterCount < 0 {
		return fmt.Errorf("expect.limiter_count must be non-negative")
	}

	for key := range s.Expect.EMOptions {
		switch key {
		case "fluorescence", "auger", "pixe":
		default:
			return fmt.Errorf("expect.em_options: unknown option %q", key)
		}
	}

	// Validate assertions
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Call == "" {
			return fmt.Errorf("assertions[%d]: call is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Calls) == 0 {
			return fmt.Errorf("assertions[%d]: calls list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("assertions[%d]: op is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
