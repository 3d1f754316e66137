package image

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"image-hosting-api/internal/domain"
)

var (
	ErrDisplayNameRequired = fmt.Errorf("%w: name is required", domain.ErrValidation)
	ErrDisplayNameTooLong  = fmt.Errorf("%w: name must be at most %d characters", domain.ErrValidation, MaxDisplayNameLen)
)

// NormalizeDisplayName trims and NFC-normalizes a caller supplied name.
func NormalizeDisplayName(name string) (string, error) {
	n := norm.NFC.String(strings.TrimSpace(name))
	if n == "" {
		return "", ErrDisplayNameRequired
	}
	if utf8.RuneCountInString(n) > MaxDisplayNameLen {
		return "", ErrDisplayNameTooLong
	}
	return n, nil
}
