// utils/tokens.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// GenerateSecureToken returns a hex token (length = bytes).
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
