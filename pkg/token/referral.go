package token

import (
	"crypto/rand"
	"encoding/base64"
	"strings"
)

// GenerateReferralCode - 8 символов из 6 случайных байт
func GenerateReferralCode() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return strings.ToUpper(base64.RawURLEncoding.EncodeToString(b)), nil
}
