package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
)

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, email, username, password_hash, auth_provider, provider_id, verified, otp_hash, otp_expiry, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.AuthProvider,
		&user.ProviderID,
		&user.Verified,
		&user.OTPHash,
		&user.OTPExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, auth_provider, provider_id, verified, otp_hash, otp_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.AuthProvider,
		user.ProviderID,
		user.Verified,
		user.OTPHash,
		user.OTPExpiry,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// UpsertPending creates an unverified user or refreshes the pending
// credentials and registration OTP when the email already has an
// unverified row. Verified rows are left untouched; callers must check
// verification before calling.
func (r *PostgresUserRepository) UpsertPending(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, auth_provider, provider_id, verified, otp_hash, otp_expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (email) DO UPDATE
		SET username = EXCLUDED.username,
		    password_hash = EXCLUDED.password_hash,
		    otp_hash = EXCLUDED.otp_hash,
		    otp_expiry = EXCLUDED.otp_expiry,
		    updated_at = EXCLUDED.updated_at
		WHERE users.verified = false
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.AuthProvider,
		user.ProviderID,
		user.Verified,
		user.OTPHash,
		user.OTPExpiry,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

// MarkVerified marks a user verified and clears the pending
// registration OTP
func (r *PostgresUserRepository) MarkVerified(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET verified = true,
		    otp_hash = NULL,
		    otp_expiry = NULL,
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// LinkProviderID attaches an OAuth provider identity to a user
func (r *PostgresUserRepository) LinkProviderID(ctx context.Context, id string, provider domain.AuthProvider, providerID string) error {
	query := `
		UPDATE users
		SET auth_provider = $2,
		    provider_id = $3,
		    verified = true,
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, provider, providerID)
	return err
}

// Update updates a user
func (r *PostgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = $2,
		    username = $3,
		    password_hash = $4,
		    auth_provider = $5,
		    provider_id = $6,
		    verified = $7,
		    otp_hash = $8,
		    otp_expiry = $9,
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.AuthProvider,
		user.ProviderID,
		user.Verified,
		user.OTPHash,
		user.OTPExpiry,
	)
	return err
}
