package models

import "time"

type Account struct {
	ID            int    `json:"id"`
	Email         string `json:"email"`
	PasswordHash  string `json:"-"`
	EmailVerified bool   `json:"email_verified"`

	// verification token state: token and expiry are both set or both NULL
	VerificationToken    *string    `json:"-"`
	VerificationExpires  *time.Time `json:"-"`
	VerificationAttempts int        `json:"-"`
	LastVerificationSent *time.Time `json:"-"`

	// reset token state, same pairing rule
	ResetToken    *string    `json:"-"`
	ResetExpires  *time.Time `json:"-"`
	ResetAttempts int        `json:"-"`
	LastResetSent *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
