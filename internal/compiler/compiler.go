// Package compiler runs the full pipeline: parse, type-check, then
// emit the requested artifact. It also fronts the optional build
// cache, so repeated compiles of identical source are served from
// SQLite instead of being re-lowered.
package compiler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/choc/internal/ast"
	"github.com/roach88/choc/internal/check"
	"github.com/roach88/choc/internal/frontend"
	"github.com/roach88/choc/internal/lower"
	"github.com/roach88/choc/internal/pyemit"
	"github.com/roach88/choc/internal/store"
)

// Mode selects the artifact a compilation produces.
type Mode string

const (
	// ModeIR emits the textual LLVM IR module.
	ModeIR Mode = "ir"
	// ModeAST emits the typed AST as indented JSON.
	ModeAST Mode = "ast"
	// ModePy emits untyped Python source.
	ModePy Mode = "py"
)

// ParseMode validates a mode string from the command line.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeIR, ModeAST, ModePy:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown emit mode %q (want ir, ast, or py)", s)
	}
}

// Result is the outcome of one compilation.
type Result struct {
	Artifact    string
	Fingerprint string
	BuildID     string
	Cached      bool
}

// Compiler compiles source programs, optionally memoizing artifacts in
// a build cache.
type Compiler struct {
	cache *store.Store
	ids   store.IDGenerator
}

// New creates a compiler. cache may be nil to disable memoization; ids
// may be nil to use time-ordered UUIDs.
func New(cache *store.Store, ids store.IDGenerator) *Compiler {
	if ids == nil {
		ids = store.UUIDGenerator{}
	}
	return &Compiler{cache: cache, ids: ids}
}

// Compile produces the artifact for source in the given mode. Source
// diagnostics are returned as *Diagnostics; anything else is an
// environment or internal failure.
func (c *Compiler) Compile(ctx context.Context, source string, mode Mode) (Result, error) {
	fingerprint := store.Fingerprint(source, string(mode))

	if c.cache != nil {
		b, err := c.cache.ReadBuild(ctx, fingerprint)
		switch {
		case err == nil:
			return Result{
				Artifact:    b.Artifact,
				Fingerprint: fingerprint,
				BuildID:     b.ID,
				Cached:      true,
			}, nil
		case err != store.ErrNotFound:
			return Result{}, fmt.Errorf("cache read: %w", err)
		}
	}

	artifact, err := c.build(source, mode)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Artifact:    artifact,
		Fingerprint: fingerprint,
		BuildID:     c.ids.Generate(),
	}

	if c.cache != nil {
		inserted, err := c.cache.WriteBuild(ctx, store.Build{
			ID:          res.BuildID,
			Fingerprint: fingerprint,
			Mode:        string(mode),
			Source:      source,
			Artifact:    artifact,
		})
		if err != nil {
			return Result{}, fmt.Errorf("cache write: %w", err)
		}
		if !inserted {
			// Lost a race to a concurrent compile; adopt its row.
			b, err := c.cache.ReadBuild(ctx, fingerprint)
			if err != nil {
				return Result{}, fmt.Errorf("cache reread: %w", err)
			}
			res.BuildID = b.ID
			res.Cached = true
		}
	}
	return res, nil
}

func (c *Compiler) build(source string, mode Mode) (string, error) {
	prog, errs := frontend.Parse(source)
	if len(errs) > 0 {
		return "", &Diagnostics{Phase: PhaseParse, Errs: errs}
	}
	if errs := check.Check(prog); len(errs) > 0 {
		return "", &Diagnostics{Phase: PhaseCheck, Errs: errs}
	}

	switch mode {
	case ModeIR:
		m, err := lower.Lower(prog)
		if err != nil {
			return "", err
		}
		return m.String(), nil
	case ModeAST:
		out, err := json.MarshalIndent(ast.Dump(prog, true), "", "  ")
		if err != nil {
			return "", fmt.Errorf("dump ast: %w", err)
		}
		return string(out), nil
	case ModePy:
		return pyemit.Emit(prog), nil
	default:
		return "", fmt.Errorf("unknown emit mode %q", mode)
	}
}
