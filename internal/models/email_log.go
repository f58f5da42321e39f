package models

import "time"

const (
	DispatchPending = "pending"
	DispatchSuccess = "success"
	DispatchFailure = "failure"
)

// EmailLog is append-only; rows are never mutated once they leave the
// pending reservation state.
type EmailLog struct {
	ID        int64     `json:"id"`
	AccountID int       `json:"-"`
	Recipient string    `json:"to"`
	Status    string    `json:"status"`
	SentAt    time.Time `json:"timestamp"`
}

type SendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}
