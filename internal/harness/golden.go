package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and fails the test on any
// assertion failure. When the scenario's expect clause enables golden
// comparison, the artifact is also matched against
// testdata/golden/<name>.golden.
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	h := New(nil)
	result, err := h.Run(scenario)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}

	for _, failure := range result.Failures {
		t.Error(failure)
	}

	if scenario.Expect.Golden {
		g := goldie.New(t,
			goldie.WithFixtureDir("testdata/golden"),
			goldie.WithNameSuffix(".golden"),
		)
		g.Assert(t, scenario.Name, []byte(result.Artifact))
	}
}
