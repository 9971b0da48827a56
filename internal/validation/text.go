package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxNameLength  = 100
	maxTitleLength = 200
)

// ValidateName checks a user's display name.
func ValidateName(name string) error {
	return validateText("name", name, maxNameLength)
}

// ValidateTitle checks a goal title.
func ValidateTitle(title string) error {
	return validateText("title", title, maxTitleLength)
}

func validateText(field, value string, max int) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(trimmed) > max {
		return fmt.Errorf("%s is too long (max %d characters)", field, max)
	}
	return nil
}
