// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package auth

import "crypto/rand"

const (
	// resetCodePrefix marks a code as a password reset code.
	resetCodePrefix = "R"
	// resetCodeLength is the number of random characters after the prefix.
	resetCodeLength = 6
)

// alphabet for reset codes (uppercase + digits, excluding confusing
// chars: 0, O, I, L, 1).
const resetCodeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// GenerateResetCode generates a short, human-typeable password reset
// code such as "R8KQT2M".
func GenerateResetCode() (string, error) {
	bytes := make([]byte, resetCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	for i := range bytes {
		bytes[i] = resetCodeAlphabet[int(bytes[i])%len(resetCodeAlphabet)]
	}

	return resetCodePrefix + string(bytes), nil
}
