// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword computes the SHA256 hash of a password for storage.
// The hash is deterministic: login recomputes it and compares against
// the stored value. Plaintext passwords are never persisted.
func HashPassword(password string) string {
	hash := sha256.Sum256([]byte(password))
	return hex.EncodeToString(hash[:])
}

// VerifyPassword reports whether password matches the stored hash,
// using a constant-time comparison.
func VerifyPassword(password, storedHash string) bool {
	computed := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}

// HashToken computes the SHA256 hash of a verification or reset
// token. Tokens are stored hashed and looked up by recomputed hash.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
