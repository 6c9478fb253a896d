package repository

import (
	"context"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error
	// UpsertPending creates an unverified user or refreshes the pending
	// credentials and registration OTP on an existing unverified one
	UpsertPending(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// MarkVerified marks a user verified and clears the pending
	// registration OTP
	MarkVerified(ctx context.Context, id string) error
	// LinkProviderID attaches an OAuth provider identity to a user
	LinkProviderID(ctx context.Context, id string, provider domain.AuthProvider, providerID string) error
	// Update updates a user
	Update(ctx context.Context, user *domain.User) error
}

// SessionRepository defines the interface for session data access
type SessionRepository interface {
	// Create creates a new session
	Create(ctx context.Context, session *domain.Session) error
	// GetByID retrieves a session by ID
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	// Revoke marks a session revoked. Revocation is one-way.
	Revoke(ctx context.Context, id string) error
	// RevokeAllByUserID revokes every session for a user
	RevokeAllByUserID(ctx context.Context, userID string) error
	// DeleteExpired deletes all expired sessions
	DeleteExpired(ctx context.Context) error
}

// LoginOTPRepository defines the interface for login OTP data access
type LoginOTPRepository interface {
	// Create appends a new login OTP record
	Create(ctx context.Context, record *domain.LoginOTP) error
	// GetActiveByEmail retrieves the newest active record for an email
	GetActiveByEmail(ctx context.Context, email string) (*domain.LoginOTP, error)
	// IncrementAttempts bumps the failure counter on a record
	IncrementAttempts(ctx context.Context, id string) error
	// Consume deactivates a record after successful verification
	Consume(ctx context.Context, id string) error
	// DeactivateByEmail deactivates all records for an email
	DeactivateByEmail(ctx context.Context, email string) error
}
