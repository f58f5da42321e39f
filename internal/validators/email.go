// Package validators holds input checks shared by the auth and dispatch
// handlers.
package validators

import (
	"errors"
	"net/mail"
	"strings"
)

const maxEmailLength = 254

var (
	ErrEmailEmpty   = errors.New("email required")
	ErrEmailInvalid = errors.New("invalid email format")
	ErrEmailTooLong = errors.New("email too long")
)

func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}
	if len(e) > maxEmailLength {
		return ErrEmailTooLong
	}
	// net/mail accepts display names ("A <a@b.c>"); the API stores bare
	// addresses only
	addr, err := mail.ParseAddress(e)
	if err != nil || addr.Address != e || strings.ContainsAny(e, " \t") {
		return ErrEmailInvalid
	}
	return nil
}
