package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound relay boundary: one synchronous send, no delivery
// guarantees beyond the SMTP handshake.
type Mailer interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
	Send(to, subject, text, html string) error
}

type smtpMailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
}

func NewMailer(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, frontendURL string) Mailer {
	return &smtpMailer{
		dialer:      gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:        fromEmail,
		frontendURL: frontendURL,
	}
}

func (m *smtpMailer) SendVerificationEmail(to, token string) error {
	verificationURL := fmt.Sprintf("%s/verify-email?token=%s", m.frontendURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your AirMailer account")
	msg.SetBody("text/plain", fmt.Sprintf("Welcome to AirMailer! Please verify your email by visiting: %s", verificationURL))
	msg.AddAlternative("text/html", fmt.Sprintf(`
		<h1>Welcome to AirMailer!</h1>
		<p>Please verify your email address by clicking the link below:</p>
		<a href="%s">Verify Email</a>
		<p>This link will expire in 24 hours.</p>
		<p>If you didn't create an account, you can ignore this email.</p>
	`, verificationURL))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func (m *smtpMailer) SendPasswordResetEmail(to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", m.frontendURL, token)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your AirMailer password")
	msg.SetBody("text/plain", fmt.Sprintf("Password reset requested. Reset your password here: %s", resetURL))
	msg.AddAlternative("text/html", fmt.Sprintf(`
		<h1>Password Reset Request</h1>
		<p>You requested a password reset for your AirMailer account.</p>
		<p>Click the link below to reset your password:</p>
		<a href="%s">Reset Password</a>
		<p>This link will expire in 1 hour.</p>
		<p>If you didn't request this reset, you can ignore this email.</p>
	`, resetURL))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send password reset email: %w", err)
	}
	return nil
}

// Send relays a user-supplied message. Callers validate and sanitize before
// this point.
func (m *smtpMailer) Send(to, subject, text, html string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	switch {
	case text != "" && html != "":
		msg.SetBody("text/plain", text)
		msg.AddAlternative("text/html", html)
	case html != "":
		msg.SetBody("text/html", html)
	default:
		msg.SetBody("text/plain", text)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("relay send: %w", err)
	}
	return nil
}
