// Package auth holds the credential hasher and the access token manager used
// by registration, login and the auth middleware.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// bcrypt only reads the first 72 bytes of a password. Longer inputs are
// truncated the same way other bcrypt implementations do, so hashes produced
// elsewhere keep verifying.
const maxPasswordBytes = 72

// BcryptHasher hashes passwords with a fresh random salt per call. The salt
// and cost are embedded in the produced digest.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when cost
// is out of range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hashed. A malformed hash is a
// mismatch, never an error.
func (h *BcryptHasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), truncate(plaintext)) == nil
}

func truncate(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
