package store

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Fingerprint computes the cache key for a compilation. The source is
// NFC-normalized first so that visually identical programs hash the
// same regardless of how their editors composed accented characters.
// The mode participates in the hash because one source produces a
// different artifact per emit mode.
func Fingerprint(source, mode string) string {
	normalized := norm.NFC.String(source)
	h := sha256.New()
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write([]byte(normalized))
	return hex.EncodeToString(h.Sum(nil))
}
