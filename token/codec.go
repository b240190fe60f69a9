package token

import (
	"encoding/base64"
	"fmt"
)

// EncodeSecret returns the transport-safe form of a secret, suitable for a
// persisted store. The encoding is reversible base64, not encryption.
func EncodeSecret(secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(secret))
}

// DecodeSecret reverses EncodeSecret.
func DecodeSecret(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding secret: %w", err)
	}
	return string(raw), nil
}
