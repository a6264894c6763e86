// Package booking implements the client-facing booking flows: the contact
// form validator, the multi-step booking wizard and the edit-in-place flow,
// all composed from the schedule package and the appointment store.
package booking

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ContactForm carries the client-supplied booking fields.
type ContactForm struct {
	ClientName string
	Phone      string
	Email      string
	Notes      string
}

// FieldErrors maps field names to human-readable validation messages.
// An empty map means the form is valid.
type FieldErrors map[string]string

var (
	phonePattern = regexp.MustCompile(`^\d{10,}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateForm checks the contact fields independent of scheduling. Pure;
// callable per keystroke or as the final gate before submission.
func ValidateForm(form ContactForm) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(form.ClientName) == "" {
		errs["clientName"] = "Name is required"
	} else if utf8.RuneCountInString(form.ClientName) < 2 {
		errs["clientName"] = "Name must be at least 2 characters"
	}

	if strings.TrimSpace(form.Phone) == "" {
		errs["phone"] = "Phone is required"
	} else if !phonePattern.MatchString(form.Phone) {
		errs["phone"] = "Phone number must be at least 10 digits"
	}

	if form.Email != "" && !emailPattern.MatchString(form.Email) {
		errs["email"] = "Invalid email address"
	}

	return errs
}

// Valid reports whether the form passed validation.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// NormalizePhone strips the formatting characters a client may type so only
// digits reach storage; ValidateForm re-checks the digit pattern afterwards.
func NormalizePhone(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '(', ')', '-', '+', '.':
			return -1
		}
		return r
	}, raw)
}
