// internal/utils/crypto.go
package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes returns the hex-encoded SHA-256 digest of data. Stored with
// uploaded artifacts so delivered content can be verified byte-for-byte
// during dispute resolution.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyBytes reports whether data matches the recorded hex digest.
func VerifyBytes(data []byte, expectedHash string) bool {
	return HashBytes(data) == expectedHash
}
