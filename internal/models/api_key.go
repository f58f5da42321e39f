package models

import "time"

// APIKey is the single long-lived credential of an account. The "am_" prefix
// lets clients and support staff recognise the transport format.
type APIKey struct {
	ID        int       `json:"id"`
	AccountID int       `json:"account_id"`
	Key       string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}
