package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// codePrefix is prepended to every generated code string so codes are easy
// to recognise in logs and support tickets.
const codePrefix = "QR-"

// codeRandomBytes yields 8 hex characters after encoding.
const codeRandomBytes = 4

// GenerateCodeString generates a cryptographically random code string of the
// form "QR-XXXXXXXX" where X is an uppercase hex character.
func GenerateCodeString() (string, error) {
	b := make([]byte, codeRandomBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return codePrefix + strings.ToUpper(hex.EncodeToString(b)), nil
}
