package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes passwords with bcrypt at the given cost.
type BcryptHasher struct {
	Cost int
}

// Hash hashes a plain password with bcrypt.
func (h BcryptHasher) Hash(password string) (string, error) {
	return HashPassword(password, h.Cost)
}

// Verify compares a plain password with a stored hash.
func (h BcryptHasher) Verify(hash, password string) bool {
	return CheckPasswordHash(password, hash)
}

// HashPassword hashes a plain password using bcrypt. Costs outside bcrypt's
// accepted range fall back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a stored hash. Besides
// bcrypt hashes it accepts the unsalted SHA-256 hex digests written by older
// data files.
func CheckPasswordHash(password, hash string) bool {
	if isLegacyHash(hash) {
		sum := sha256.Sum256([]byte(password))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(hash)) == 1
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func isLegacyHash(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}
