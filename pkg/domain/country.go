package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CountryCode identifies a country. It is compared case-insensitively and stored lowercase.
// Values are not checked against any ISO list: an unknown code is valid and simply has no
// known policy.
type CountryCode string

// NormalizeCountry returns the canonical form of a country name or code.
func NormalizeCountry(s string) CountryCode {
	return CountryCode(strings.ToLower(strings.TrimSpace(s)))
}

// String returns the canonical (lowercase) form.
func (c CountryCode) String() string {
	return string(c)
}

// Display returns the title-cased form used in reports.
func (c CountryCode) Display() string {
	return TitleCase(string(c))
}

// TitleCase upper-cases the first letter of every word and lower-cases the rest.
func TitleCase(s string) string {
	// cases.Caser keeps state between calls, so one is built per call.
	return cases.Title(language.Und).String(s)
}
