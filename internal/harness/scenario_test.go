package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: basic
description: basic scenario
config: |
  physics: modules: ["G4DecayPhysics"]
expect:
  hadronic: []
  limiter_count: 4
assertions:
  - type: trace_count
    op: cut
    count: 6
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "basic", s.Name)
	require.NotNil(t, s.Expect.Hadronic)
	assert.Empty(t, *s.Expect.Hadronic)
	require.NotNil(t, s.Expect.LimiterCount)
	assert.Equal(t, 4, *s.Expect.LimiterCount)
	assert.Nil(t, s.Expect.Electromagnetic)
	require.Len(t, s.Assertions, 1)
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: typo in a field
config: "physics: {}"
assertion: []
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing name", "description: d\nconfig: x\n", "name is required"},
		{"missing description", "name: n\nconfig: x\n", "description is required"},
		{"missing config", "name: n\ndescription: d\n", "config or config_file is required"},
		{"both configs", "name: n\ndescription: d\nconfig: x\nconfig_file: y.cue\n", "mutually exclusive"},
		{"missing config file", "name: n\ndescription: d\nconfig_file: nope.cue\n", "config file not found"},
		{"bad em option", "name: n\ndescription: d\nconfig: x\nexpect:\n  em_options: {msc: true}\n", "unknown option"},
		{"negative limiter count", "name: n\ndescription: d\nconfig: x\nexpect:\n  limiter_count: -1\n", "non-negative"},
		{"assertion without type", "name: n\ndescription: d\nconfig: x\nassertions:\n  - op: cut\n", "type is required"},
		{"contains without call", "name: n\ndescription: d\nconfig: x\nassertions:\n  - type: trace_contains\n", "call is required"},
		{"order without calls", "name: n\ndescription: d\nconfig: x\nassertions:\n  - type: trace_order\n", "calls list is required"},
		{"count without op", "name: n\ndescription: d\nconfig: x\nassertions:\n  - type: trace_count\n", "op is required"},
		{"unknown assertion", "name: n\ndescription: d\nconfig: x\nassertions:\n  - type: final_state\n", "unknown assertion type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarioDir_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"b.yaml":    "name: b\ndescription: d\nconfig: x\n",
		"a.yml":     "name: a\ndescription: d\nconfig: x\n",
		"notes.txt": "ignored",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	scenarios, err := LoadScenarioDir(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "a", scenarios[0].Name)
	assert.Equal(t, "b", scenarios[1].Name)
}
