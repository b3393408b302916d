package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Build is one cached compilation.
type Build struct {
	ID          string
	Fingerprint string
	Mode        string
	Source      string
	Artifact    string
	CreatedAt   string
}

// IDGenerator produces build identifiers. The default generator uses
// time-ordered UUIDs; tests substitute a fixed one for byte-identical
// cache rows.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates UUIDv7 build IDs. Their timestamp prefix
// keeps primary-key inserts roughly append-ordered.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// WriteBuild inserts a build record. Uses ON CONFLICT(fingerprint)
// DO NOTHING for idempotency: a fingerprint already in the cache is
// silently kept, and inserted reports false. Other constraint
// violations still return errors.
func (s *Store) WriteBuild(ctx context.Context, b Build) (inserted bool, err error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO builds
		(id, fingerprint, mode, source, artifact)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`,
		b.ID,
		b.Fingerprint,
		b.Mode,
		b.Source,
		b.Artifact,
	)
	if err != nil {
		return false, fmt.Errorf("write build: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write build: rows affected: %w", err)
	}
	return n > 0, nil
}
