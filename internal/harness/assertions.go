package harness

import (
	"fmt"
	"strings"
)

// evaluateExpect checks a run against the scenario's expect clause and
// returns one message per failed assertion.
func evaluateExpect(result *Result, scenario *Scenario) []string {
	var failures []string

	if scenario.Expect.Phase == "" {
		if result.Phase != "" {
			failures = append(failures, fmt.Sprintf(
				"expected success, but %s rejected the source: %s",
				result.Phase, strings.Join(result.Diagnostics, "; ")))
			return failures
		}
	} else {
		if result.Phase == "" {
			failures = append(failures, fmt.Sprintf(
				"expected %s to reject the source, but compilation succeeded",
				scenario.Expect.Phase))
			return failures
		}
		if result.Phase != scenario.Expect.Phase {
			failures = append(failures, fmt.Sprintf(
				"expected %s to reject the source, but %s did",
				scenario.Expect.Phase, result.Phase))
		}
		for _, want := range scenario.Expect.Diagnostics {
			if !anyContains(result.Diagnostics, want) {
				failures = append(failures, fmt.Sprintf(
					"no diagnostic contains %q (got: %s)",
					want, strings.Join(result.Diagnostics, "; ")))
			}
		}
		return failures
	}

	for _, want := range scenario.Expect.Contains {
		if !strings.Contains(result.Artifact, want) {
			failures = append(failures, fmt.Sprintf("artifact does not contain %q", want))
		}
	}

	if scenario.Cache && !result.CacheHit {
		failures = append(failures, "second compile was not served from the cache")
	}

	return failures
}

func anyContains(haystacks []string, needle string) bool {
	for _, h := range haystacks {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}
