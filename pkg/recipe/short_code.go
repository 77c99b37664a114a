package recipe

import (
	"crypto/rand"
	"encoding/hex"
)

const shortCodeLength = 8

// GenerateShortCode returns a random hex token used for link redirection.
// Four random bytes give ~4 billion values; creation still retries on the
// unique-constraint collision.
func GenerateShortCode() (string, error) {
	buf := make([]byte, shortCodeLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
