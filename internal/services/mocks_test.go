package services

import "errors"

// fakeMailer records outbound mail instead of touching SMTP.
type fakeMailer struct {
	verifications []string // tokens sent
	resets        []string
	sent          []sentMail
	failNext      bool
}

type sentMail struct {
	to, subject, text, html string
}

var errRelayDown = errors.New("relay down")

func (m *fakeMailer) SendVerificationEmail(to, token string) error {
	if m.failNext {
		m.failNext = false
		return errRelayDown
	}
	m.verifications = append(m.verifications, token)
	return nil
}

func (m *fakeMailer) SendPasswordResetEmail(to, token string) error {
	if m.failNext {
		m.failNext = false
		return errRelayDown
	}
	m.resets = append(m.resets, token)
	return nil
}

func (m *fakeMailer) Send(to, subject, text, html string) error {
	if m.failNext {
		m.failNext = false
		return errRelayDown
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, text: text, html: html})
	return nil
}
