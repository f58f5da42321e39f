package validators

import (
	"errors"
	"strings"
)

var (
	ErrPasswordEmpty   = errors.New("password required")
	ErrPasswordWeak    = errors.New("password must be 8-128 characters with uppercase, lowercase, number, and special character")
	ErrPasswordTooLong = errors.New("password too long")
)

const passwordSpecial = "@$!%*?&"

// PasswordValidator enforces the signup policy: 8-128 characters with at
// least one lowercase, uppercase, digit and special character.
func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}
	if len(p) > 128 {
		return ErrPasswordTooLong
	}
	if len(p) < 8 {
		return ErrPasswordWeak
	}

	var lower, upper, digit, special bool
	for _, c := range p {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecial, c):
			special = true
		default:
			return ErrPasswordWeak
		}
	}
	if !lower || !upper || !digit || !special {
		return ErrPasswordWeak
	}
	return nil
}

// ResetPasswordValidator is the lighter rule applied when consuming a reset
// token: the original flow only requires a minimum length.
func ResetPasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}
	if len(p) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if len(p) > 128 {
		return ErrPasswordTooLong
	}
	return nil
}
