package validators

import "errors"

const (
	maxSubjectLength = 255
	maxTextLength    = 10000
	maxHTMLLength    = 50000
)

var (
	ErrMessageEmpty   = errors.New("recipient, subject, and message content required")
	ErrMessageTooBig  = errors.New("subject too long or content exceeds size limit")
	ErrRecipientEmail = errors.New("invalid recipient email format or too long")
)

// MessageValidator bounds an outbound dispatch request before it reaches the
// relay: recipient shape, subject length and payload sizes.
func MessageValidator(to, subject, text, html string) error {
	if to == "" || subject == "" || (text == "" && html == "") {
		return ErrMessageEmpty
	}
	if len(subject) > maxSubjectLength || len(text) > maxTextLength || len(html) > maxHTMLLength {
		return ErrMessageTooBig
	}
	if err := EmailValidator(to); err != nil {
		return ErrRecipientEmail
	}
	return nil
}
