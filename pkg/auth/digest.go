// Package auth holds the password gate for the terminal's hidden listing.
//
// The gate compares an unsalted SHA-256 digest that ships with the binary, so
// it hides an easter egg and nothing more. Do not put anything behind it that
// needs real access control.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// DefaultDigest is the digest of the built-in terminal password.
// Generate a replacement with `folio hash`.
const DefaultDigest = "5994471abb01112afcc18159f6cc74b4f511b99806da59b3caf5a9c173cacfc5"

// Hash returns the lower-case hex SHA-256 digest of s.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// Verifier checks submitted passwords against a fixed digest.
type Verifier struct {
	digest string
}

// NewVerifier builds a Verifier for a hex digest. An empty digest selects
// DefaultDigest.
func NewVerifier(digest string) (*Verifier, error) {
	digest = strings.ToLower(strings.TrimSpace(digest))
	if digest == "" {
		digest = DefaultDigest
	}
	raw, err := hex.DecodeString(digest)
	if err != nil {
		return nil, fmt.Errorf("auth: digest is not hex: %w", err)
	}
	if len(raw) != sha256.Size {
		return nil, fmt.Errorf("auth: digest has %d bytes, want %d", len(raw), sha256.Size)
	}
	return &Verifier{digest: digest}, nil
}

// Verify reports whether the trimmed password hashes to the stored digest.
func (v *Verifier) Verify(password string) bool {
	got := Hash(strings.TrimSpace(password))
	return subtle.ConstantTimeCompare([]byte(got), []byte(v.digest)) == 1
}

// Digest returns the stored hex digest.
func (v *Verifier) Digest() string { return v.digest }
