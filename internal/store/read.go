package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no build matches the requested key.
var ErrNotFound = errors.New("build not found")

// ReadBuild fetches the cached build for a fingerprint. Returns
// ErrNotFound when the fingerprint has never been compiled.
func (s *Store) ReadBuild(ctx context.Context, fingerprint string) (Build, error) {
	var b Build
	err := s.db.QueryRowContext(ctx, `
		SELECT id, fingerprint, mode, source, artifact, created_at
		FROM builds
		WHERE fingerprint = ?
	`, fingerprint).Scan(
		&b.ID,
		&b.Fingerprint,
		&b.Mode,
		&b.Source,
		&b.Artifact,
		&b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, ErrNotFound
	}
	if err != nil {
		return Build{}, fmt.Errorf("read build: %w", err)
	}
	return b, nil
}

// ListBuilds returns all cached builds, oldest first. The UUIDv7
// primary key makes insertion order and ID order agree.
func (s *Store) ListBuilds(ctx context.Context) ([]Build, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, fingerprint, mode, source, artifact, created_at
		FROM builds
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var b Build
		if err := rows.Scan(&b.ID, &b.Fingerprint, &b.Mode, &b.Source, &b.Artifact, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("list builds: scan: %w", err)
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list builds: %w", err)
	}
	return builds, nil
}
