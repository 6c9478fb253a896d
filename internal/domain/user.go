package domain

import (
	"time"
)

// AuthProvider identifies how a user account was created
type AuthProvider string

const (
	ProviderCustom AuthProvider = "custom"
	ProviderGoogle AuthProvider = "google"
	ProviderGitHub AuthProvider = "github"
)

// User represents a user entity
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Username     string       `json:"username"`
	PasswordHash *string      `json:"-"` // Never serialize password
	AuthProvider AuthProvider `json:"auth_provider"`
	ProviderID   *string      `json:"-"`
	Verified     bool         `json:"verified"`

	// Pending registration OTP, nulled once consumed
	OTPHash   *string    `json:"-"`
	OTPExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OTPValid reports whether a registration OTP is set and not expired
func (u *User) OTPValid(now time.Time) bool {
	return u.OTPHash != nil && u.OTPExpiry != nil && now.Before(*u.OTPExpiry)
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds until access token expires
}

// Identity is the authenticated principal attached to a request
type Identity struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
}
