package validation

import (
	"errors"
	"strings"
)

const (
	minPasswordLength = 12
	// bcrypt ignores everything past 72 bytes
	maxPasswordBytes = 72
)

var weakPasswordFragments = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// ValidatePassword enforces length bounds and rejects well-known weak fragments.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 12 characters")
	}
	if len(password) > maxPasswordBytes {
		return errors.New("password must not exceed 72 bytes")
	}

	lower := strings.ToLower(password)
	for _, fragment := range weakPasswordFragments {
		if strings.Contains(lower, fragment) {
			return errors.New("password is too common, please choose a stronger one")
		}
	}

	return nil
}
