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
	path := writeScenario(t, `name: minimal
description: a valid scenario
mode: ir
source: |
  pass
expect:
  contains:
    - define i32 @main()
`)
	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", scenario.Name)
	assert.Equal(t, "pass\n", scenario.Source)
	assert.Len(t, scenario.Expect.Contains, 1)
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `name: typo
description: has a typo
mode: ir
source: "pass\n"
expects:
  contains: []
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "no name",
			content: "description: d\nmode: ir\nsource: \"pass\\n\"\n",
			want:    "name is required",
		},
		{
			name:    "no description",
			content: "name: n\nmode: ir\nsource: \"pass\\n\"\n",
			want:    "description is required",
		},
		{
			name:    "no source",
			content: "name: n\ndescription: d\nmode: ir\n",
			want:    "source is required",
		},
		{
			name:    "bad mode",
			content: "name: n\ndescription: d\nmode: wasm\nsource: \"pass\\n\"\n",
			want:    "unknown emit mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_DiagnosticsRequirePhase(t *testing.T) {
	path := writeScenario(t, `name: n
description: d
mode: ir
source: "pass\n"
expect:
  diagnostics:
    - some error
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diagnostics require a phase")
}

func TestLoadScenario_FailingScenarioCannotAssertArtifact(t *testing.T) {
	path := writeScenario(t, `name: n
description: d
mode: ir
source: "pass\n"
expect:
  phase: check
  golden: true
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot assert on an artifact")
}
