package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFieldSize bounds the free-text fields of a trip query (countries and purpose).
const MaxFieldSize = 256

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeField cleans one free-text request field. Oversized or malformed input is
// rejected rather than truncated; control characters (ANSI escapes, NUL, newlines)
// are stripped so they never reach logs, cache keys or terminal output.
func SanitizeField(field, input string) (string, error) {
	if len(input) > MaxFieldSize {
		return "", &ValidationError{
			Field:  field,
			Value:  fmt.Sprintf("%d bytes", len(input)),
			Reason: fmt.Sprintf("exceeds %d bytes", MaxFieldSize),
			Err:    ErrInputTooLarge,
		}
	}
	if !utf8.ValidString(input) {
		return "", &ValidationError{Field: field, Value: "", Reason: "is not valid UTF-8", Err: ErrInvalidUTF8}
	}

	if strings.IndexFunc(input, unicode.IsControl) < 0 {
		return input, nil
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, input), nil
}
