package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

// GenerateSecureToken generates a secure random token of the specified length.
// It returns a base32 encoded string (without padding) truncated to the
// desired length.
func GenerateSecureToken(length int) (string, error) {
	numBytes := (length*5 + 7) / 8
	randomBytes := make([]byte, numBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	token := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(randomBytes)
	if len(token) > length {
		token = token[:length]
	}
	return token, nil
}

// SendEmail delivers a message to the given address. Replace the body of this
// function with your actual integration with a transactional mail provider.
// For now, we log the outgoing message.
func SendEmail(address, subject, body string) error {
	GetLogger().Sugar().Infof("Sending email to %s: %s — %s", address, subject, body)
	return nil
}
