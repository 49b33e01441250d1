package auth

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

var (
	ErrPasswordLength = errors.New("password must be 8-72 chars")
	ErrPasswordWeak   = errors.New("password needs an uppercase letter, a lowercase letter and a digit")
	ErrInvalidEmail   = errors.New("invalid email")
)

// ValidatePassword enforces the account password rules. 72 bytes is the
// bcrypt input limit.
func ValidatePassword(pw string) error {
	if len(pw) < 8 || len(pw) > 72 {
		return ErrPasswordLength
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return ErrPasswordWeak
	}
	return nil
}

// NormalizeEmail lowercases and validates an address.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || len(email) > 255 {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
