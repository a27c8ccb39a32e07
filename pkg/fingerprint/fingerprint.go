// Package fingerprint derives deterministic identities for entities that have
// no natural key of their own (authors, annotations, journal issues).
package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"
)

// separator keeps ("ab","c") and ("a","bc") from colliding
const separator = "\x1f"

// Generate creates a deterministic fingerprint for the given parts.
// The fingerprint is a SHA256 hash of the separator-joined parts.
func Generate(parts ...string) string {
	hash := sha256.Sum256([]byte(canonicalize(parts)))
	return hex.EncodeToString(hash[:])
}

// ID folds the fingerprint of the given parts into a non-negative int64.
// Used for node kinds whose graph key is an integer id.
func ID(parts ...string) int64 {
	hash := sha256.Sum256([]byte(canonicalize(parts)))
	v := int64(binary.BigEndian.Uint64(hash[:8]) &^ (uint64(1) << 63))
	return v
}

// canonicalize produces a stable string representation of the parts.
// Order is preserved; identity is positional.
func canonicalize(parts []string) string {
	trimmed := make([]string, len(parts))
	for i, p := range parts {
		trimmed[i] = strings.TrimSpace(p)
	}
	return strings.Join(trimmed, separator)
}

// HasChanged compares two fingerprints to detect changes
func HasChanged(oldFingerprint, newFingerprint string) bool {
	return oldFingerprint != newFingerprint
}
