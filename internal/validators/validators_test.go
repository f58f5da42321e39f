package validators

import (
	"errors"
	"strings"
	"testing"
)

func TestEmailValidator(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		email string
		want  error
	}{
		{"plain address", "user@example.com", nil},
		{"subdomain", "a.b@mail.example.co", nil},
		{"empty", "", ErrEmailEmpty},
		{"no at", "userexample.com", ErrEmailInvalid},
		{"display name form", "User <user@example.com>", ErrEmailInvalid},
		{"embedded space", "us er@example.com", ErrEmailInvalid},
		{"too long", strings.Repeat("a", 250) + "@b.co", ErrEmailTooLong},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := EmailValidator(tc.email); !errors.Is(got, tc.want) {
				t.Fatalf("EmailValidator(%q) = %v, want %v", tc.email, got, tc.want)
			}
		})
	}
}

func TestPasswordValidator(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		password string
		want     error
	}{
		{"strong", "Passw0rd!", nil},
		{"all special classes", "Aa1@$!%*?&", nil},
		{"empty", "", ErrPasswordEmpty},
		{"too short", "Aa1@", ErrPasswordWeak},
		{"no uppercase", "passw0rd!", ErrPasswordWeak},
		{"no digit", "Password!", ErrPasswordWeak},
		{"no special", "Passw0rdX", ErrPasswordWeak},
		{"disallowed character", "Passw0rd#", ErrPasswordWeak},
		{"too long", "Aa1!" + strings.Repeat("a", 130), ErrPasswordTooLong},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := PasswordValidator(tc.password); !errors.Is(got, tc.want) {
				t.Fatalf("PasswordValidator(%q) = %v, want %v", tc.password, got, tc.want)
			}
		})
	}
}

func TestResetPasswordValidator(t *testing.T) {
	t.Parallel()

	if err := ResetPasswordValidator("longenough"); err != nil {
		t.Fatalf("minimum-length password rejected: %v", err)
	}
	if err := ResetPasswordValidator("short"); err == nil {
		t.Fatalf("short password accepted")
	}
	if err := ResetPasswordValidator(""); !errors.Is(err, ErrPasswordEmpty) {
		t.Fatalf("expected ErrPasswordEmpty, got %v", err)
	}
}

func TestMessageValidator(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                    string
		to, subject, text, html string
		want                    error
	}{
		{"text only", "a@b.co", "s", "body", "", nil},
		{"html only", "a@b.co", "s", "", "<p>hi</p>", nil},
		{"missing recipient", "", "s", "body", "", ErrMessageEmpty},
		{"missing subject", "a@b.co", "", "body", "", ErrMessageEmpty},
		{"no body at all", "a@b.co", "s", "", "", ErrMessageEmpty},
		{"bad recipient", "nope", "s", "body", "", ErrRecipientEmail},
		{"subject too long", "a@b.co", strings.Repeat("s", 256), "body", "", ErrMessageTooBig},
		{"text too long", "a@b.co", "s", strings.Repeat("t", 10001), "", ErrMessageTooBig},
		{"html too long", "a@b.co", "s", "", strings.Repeat("h", 50001), ErrMessageTooBig},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := MessageValidator(tc.to, tc.subject, tc.text, tc.html); !errors.Is(got, tc.want) {
				t.Fatalf("MessageValidator = %v, want %v", got, tc.want)
			}
		})
	}
}
