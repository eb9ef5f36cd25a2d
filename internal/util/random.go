package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomString returns a random hex string of length n.
func GenerateRandomString(n int) string {
	b := make([]byte, (n+1)/2)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)[:n]
}
