package validation

import (
	"errors"
	"net/mail"
	"strings"
)

const maxEmailLength = 254

// NormalizeEmail trims and lowercases email and checks it is a bare
// RFC 5322 address. Display-name forms like "Ana <ana@example.com>" are rejected.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" {
		return "", errors.New("email address is required")
	}
	if len(email) > maxEmailLength {
		return "", errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", errors.New("invalid email address format")
	}

	return email, nil
}
