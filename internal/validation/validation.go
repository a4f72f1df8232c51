// Package validation holds the pure form checks for the auth screens. It
// never touches the database; uniqueness and credentials are the backend's
// problem.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Kenyan mobile format: leading 0, then 1 or 7, then 8 digits.
	phoneRe = regexp.MustCompile(`^0[17]\d{8}$`)
)

const (
	msgEmail    = "Invalid email address"
	msgPassword = "Password must be at least 6 characters"
	msgNameMin  = "Name must be at least 2 characters"
	msgNameMax  = "Name must be at most 100 characters"
	msgPhone    = "Invalid phone number (e.g., 0700123456)"
)

// FieldErrors maps field name to the message shown next to it.
type FieldErrors map[string]string

type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, m := range e.Fields {
		parts = append(parts, f+": "+m)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type SignIn struct {
	Email    string
	Password string
}

type SignUp struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// ValidateSignIn returns the normalized input or a ValidationError listing
// every bad field.
func ValidateSignIn(in SignIn) (SignIn, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	fields := FieldErrors{}
	if !emailRe.MatchString(in.Email) {
		fields["email"] = msgEmail
	}
	if len(in.Password) < 6 {
		fields["password"] = msgPassword
	}
	if len(fields) > 0 {
		return SignIn{}, &ValidationError{Fields: fields}
	}
	return in, nil
}

// ValidateSignUp checks the full registration form. Same contract as
// ValidateSignIn.
func ValidateSignUp(in SignUp) (SignUp, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	fields := FieldErrors{}
	// bounds are characters, not bytes: accented and non-Latin names count
	// one per rune
	if nameLen := utf8.RuneCountInString(in.FullName); nameLen < 2 {
		fields["fullName"] = msgNameMin
	} else if nameLen > 100 {
		fields["fullName"] = msgNameMax
	}
	if !emailRe.MatchString(in.Email) {
		fields["email"] = msgEmail
	}
	if !phoneRe.MatchString(in.Phone) {
		fields["phone"] = msgPhone
	}
	if len(in.Password) < 6 {
		fields["password"] = msgPassword
	}
	if len(fields) > 0 {
		return SignUp{}, &ValidationError{Fields: fields}
	}
	return in, nil
}
