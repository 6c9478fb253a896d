package domain

import (
	"time"
)

// MaxLoginOTPAttempts is the default number of failed verifications
// before a login OTP record is burned.
const MaxLoginOTPAttempts = 5

// LoginOTP is an append-only one-time-password record for passwordless login.
// Only the most recent active record per email is honored.
type LoginOTP struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	OTPHash   string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	IP        string    `json:"ip"`
	Attempts  int       `json:"attempts"`
	IsActive  bool      `json:"is_active"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the OTP window has elapsed
func (o *LoginOTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// AttemptsExhausted reports whether the record has been burned by
// failures. A non-positive max falls back to MaxLoginOTPAttempts.
func (o *LoginOTP) AttemptsExhausted(max int) bool {
	if max <= 0 {
		max = MaxLoginOTPAttempts
	}
	return o.Attempts >= max
}
