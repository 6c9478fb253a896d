package domain

import (
	"time"
)

// Session represents a login session. A new row is created per login;
// the refresh token is stored only as a SHA-256 hash.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"-"`
	UserAgent        string    `json:"user_agent"`
	IP               string    `json:"ip"`
	Revoked          bool      `json:"revoked"`
	ExpiredAt        time.Time `json:"expired_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// Expired reports whether the session lifetime has elapsed
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiredAt)
}

// Usable reports whether the session can still mint access tokens
func (s *Session) Usable(now time.Time) bool {
	return !s.Revoked && !s.Expired(now)
}
