package testutil

import (
	"fmt"
	"sync/atomic"
)

// FixedIDGenerator returns the same build ID every time.
//
// This enables deterministic test execution and golden snapshot
// comparison: the same source compiled with the same FixedIDGenerator
// produces byte-identical cache rows.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent
// use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a fixed build ID generator. If id is
// empty, Generate() returns "test-build-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-build-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed build ID.
//
// Implements store.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}

// SequenceIDGenerator returns "prefix-1", "prefix-2", ... in call
// order. Build IDs are primary keys, so tests that write more than one
// cache row through a single compiler use this to keep every row's key
// distinct while staying deterministic.
//
// Thread-safety: SequenceIDGenerator is safe for concurrent use; the
// sequence is atomic.
type SequenceIDGenerator struct {
	prefix string
	n      atomic.Int64
}

// NewSequenceIDGenerator creates a counting build ID generator. If
// prefix is empty, IDs start at "test-build-1".
func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	if prefix == "" {
		prefix = "test-build"
	}
	return &SequenceIDGenerator{prefix: prefix}
}

// Generate returns the next build ID in the sequence.
//
// Implements store.IDGenerator.
func (g *SequenceIDGenerator) Generate() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1))
}
