// Package validate holds the per-field rules for the employee registration
// form. Every rule is a pure function of the raw input.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field names as used by the form and the CLI.
const (
	FirstName  = "firstName"
	LastName   = "lastName"
	Email      = "email"
	EmployeeID = "employeeId"
	Phone      = "phone"
	Location   = "location"
)

// Fields lists every form field in display order.
var Fields = []string{FirstName, LastName, Email, EmployeeID, Phone, Location}

// Messages returned by the rules.
const (
	MsgRequired      = "required"
	MsgTooShort      = "too short"
	MsgLettersOnly   = "letters only"
	MsgInvalidFormat = "invalid format"
	MsgEmployeeID    = "format: EMP-XXX"
	MsgPhoneDigits   = "at least 10 digits required"
	MsgLocationShort = "at least 3 characters"
)

const (
	minNameLen     = 2
	minPhoneDigits = 10
	minLocationLen = 3
)

var (
	nameRe       = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	employeeIDRe = regexp.MustCompile(`^EMP-\d{3}$`)
)

type rule func(raw string) string

var rules = map[string]rule{
	FirstName:  name,
	LastName:   name,
	Email:      email,
	EmployeeID: employeeID,
	Phone:      phone,
	Location:   location,
}

// Field validates a single raw value and returns an error message, or ""
// when the value is acceptable. Unknown fields have no rule and are valid.
func Field(field, raw string) string {
	r, ok := rules[field]
	if !ok {
		return ""
	}
	return r(raw)
}

// All validates every field in values and returns the failing ones.
// Fields missing from values are validated as empty.
func All(values map[string]string) map[string]string {
	errs := make(map[string]string)
	for _, f := range Fields {
		if msg := Field(f, values[f]); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

// Valid reports whether every field in values passes its rule.
func Valid(values map[string]string) bool {
	return len(All(values)) == 0
}

// Label returns the human-readable label for a field.
func Label(field string) string {
	switch field {
	case FirstName:
		return "first name"
	case LastName:
		return "last name"
	case Email:
		return "email"
	case EmployeeID:
		return "employee id"
	case Phone:
		return "phone"
	case Location:
		return "location"
	}
	return field
}

func name(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return MsgRequired
	}
	if utf8.RuneCountInString(trimmed) < minNameLen {
		return MsgTooShort
	}
	if !nameRe.MatchString(raw) {
		return MsgLettersOnly
	}
	return ""
}

func email(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return MsgRequired
	}
	if !emailRe.MatchString(trimmed) {
		return MsgInvalidFormat
	}
	return ""
}

func employeeID(raw string) string {
	if raw == "" {
		return ""
	}
	if !employeeIDRe.MatchString(raw) {
		return MsgEmployeeID
	}
	return ""
}

func phone(raw string) string {
	if raw == "" {
		return ""
	}
	if len(Digits(raw)) < minPhoneDigits {
		return MsgPhoneDigits
	}
	return ""
}

func location(raw string) string {
	if raw == "" {
		return ""
	}
	if utf8.RuneCountInString(raw) < minLocationLen {
		return MsgLocationShort
	}
	return ""
}

// Digits returns only the ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
