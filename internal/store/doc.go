// Package store persists compiled artifacts in a SQLite build cache.
//
// Each row records one successful compilation: the source fingerprint,
// the emit mode, the source text, and the artifact produced. The
// fingerprint is the cache key, so recompiling unchanged source is a
// single indexed read. Writes are idempotent: inserting a fingerprint
// that already exists is a silent no-op, which makes the cache safe to
// share between concurrent invocations.
package store
