package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// GenerateHMAC returns the hex HMAC-SHA256 of data under secret
func GenerateHMAC(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint identifies a value by the HMAC of its JSON encoding
func Fingerprint(v any, secret string) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode fingerprint input: %w", err)
	}
	return GenerateHMAC(data, secret), nil
}
