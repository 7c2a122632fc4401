// Package validation holds the field rules for names, passwords and emails.
// All functions are pure: they return the normalized value or a *ValidationError.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SpecialChars is the set a password must draw at least one character from.
const SpecialChars = `!@#$%^&*(),.?":{}|<>`

const (
	MinNameLength     = 2
	MinPasswordLength = 12
)

// ValidationError reports the field and the rule it broke.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Name trims s, checks it and returns it in title case. field names the
// input in the error ("first_name", "last_name").
func Name(field, s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if utf8.RuneCountInString(trimmed) < MinNameLength {
		return "", invalid(field, "name must be at least %d characters long", MinNameLength)
	}

	for _, r := range trimmed {
		if !isASCIILetter(r) && !unicode.IsSpace(r) && r != '-' {
			return "", invalid(field, "name can only contain letters, spaces, and hyphens")
		}
	}

	return titleCase(trimmed), nil
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "jean-luc o" becomes "Jean-Luc O".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	startOfWord := true
	for _, r := range s {
		if isASCIILetter(r) {
			if startOfWord {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			startOfWord = false
			continue
		}
		b.WriteRune(r)
		startOfWord = true
	}

	return b.String()
}

// Password checks s against the password policy and returns it unchanged.
// Rules are checked in order and the first one broken is reported.
func Password(s string) (string, error) {
	const field = "password"

	if utf8.RuneCountInString(s) < MinPasswordLength {
		return "", invalid(field, "password must be at least %d characters long", MinPasswordLength)
	}

	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(SpecialChars, r):
			special = true
		}
	}

	switch {
	case !upper:
		return "", invalid(field, "password must contain at least one uppercase letter")
	case !lower:
		return "", invalid(field, "password must contain at least one lowercase letter")
	case !digit:
		return "", invalid(field, "password must contain at least one number")
	case !special:
		return "", invalid(field, "password must contain at least one special character")
	}

	return s, nil
}

// Email trims s and requires a bare address with a dotted domain. Case is kept.
func Email(s string) (string, error) {
	const field = "email"

	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", invalid(field, "email is required")
	}

	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", invalid(field, "value is not a valid email address")
	}

	at := strings.LastIndexByte(trimmed, '@')
	domain := trimmed[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", invalid(field, "value is not a valid email address")
	}

	return trimmed, nil
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
