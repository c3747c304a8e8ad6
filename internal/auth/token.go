package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const (
	SessionTokenBytes = 32
	InviteCodeBytes   = 18
)

// RandomString returns n random bytes encoded as unpadded base64url,
// usable in headers and URL paths alike.
func RandomString(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func NewSessionToken() (string, error) {
	return RandomString(SessionTokenBytes)
}

func NewInviteCode() (string, error) {
	return RandomString(InviteCodeBytes)
}
