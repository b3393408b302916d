package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/choc/internal/compiler"
	"github.com/roach88/choc/internal/store"
	"github.com/roach88/choc/internal/testutil"
)

// Result captures one scenario execution.
type Result struct {
	// Artifact is the compiled output, empty when the source was
	// rejected.
	Artifact string

	// Phase and Diagnostics describe a rejection, empty on success.
	Phase       string
	Diagnostics []string

	// CacheHit reports whether the second compile of a cache
	// scenario was served from the store.
	CacheHit bool

	// Failures collects assertion failures. Empty means the
	// scenario passed.
	Failures []string
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Harness executes scenarios through the same pipeline the CLI uses.
type Harness struct {
	logger *slog.Logger
}

// New creates a harness. logger may be nil to discard logs.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a scenario and evaluates its assertions.
//
// Cache scenarios run in a fresh in-memory database for isolation,
// with a fixed build ID generator so cache rows are reproducible.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()
	mode := compiler.Mode(scenario.Mode)
	result := &Result{}

	var cache *store.Store
	if scenario.Cache {
		st, err := store.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory store: %w", err)
		}
		defer st.Close()
		cache = st
	}

	c := compiler.New(cache, testutil.NewFixedIDGenerator(scenario.BuildID))

	h.logger.Debug("compiling scenario",
		"name", scenario.Name, "mode", scenario.Mode, "cache", scenario.Cache)

	res, err := c.Compile(ctx, scenario.Source, mode)
	if err != nil {
		var diags *compiler.Diagnostics
		if !errors.As(err, &diags) {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		result.Phase = diags.Phase
		result.Diagnostics = diags.Messages()
	} else {
		result.Artifact = res.Artifact
	}

	if scenario.Cache && result.Phase == "" {
		second, err := c.Compile(ctx, scenario.Source, mode)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: recompile: %w", scenario.Name, err)
		}
		result.CacheHit = second.Cached
		if second.Artifact != result.Artifact {
			result.Failures = append(result.Failures,
				"cached artifact differs from compiled artifact")
		}
	}

	result.Failures = append(result.Failures, evaluateExpect(result, scenario)...)
	return result, nil
}
