package utils

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	inviteTokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	inviteTokenLength   = 21
)

// GenerateInviteToken returns a URL-safe random token identifying an invite in e-mail links.
func GenerateInviteToken() (string, error) {
	token, err := gonanoid.Generate(inviteTokenAlphabet, inviteTokenLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}
	return token, nil
}
