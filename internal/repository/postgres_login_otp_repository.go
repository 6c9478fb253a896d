package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
)

// PostgresLoginOTPRepository implements LoginOTPRepository using PostgreSQL
type PostgresLoginOTPRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLoginOTPRepository creates a new PostgresLoginOTPRepository
func NewPostgresLoginOTPRepository(pool *pgxpool.Pool) *PostgresLoginOTPRepository {
	return &PostgresLoginOTPRepository{pool: pool}
}

// Create appends a new login OTP record
func (r *PostgresLoginOTPRepository) Create(ctx context.Context, record *domain.LoginOTP) error {
	query := `
		INSERT INTO login_otps (id, email, user_id, username, otp_hash, user_agent, ip, attempts, is_active, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.Email,
		record.UserID,
		record.Username,
		record.OTPHash,
		record.UserAgent,
		record.IP,
		record.Attempts,
		record.IsActive,
		record.ExpiresAt,
		record.CreatedAt,
	)
	return err
}

// GetActiveByEmail retrieves the newest active record for an email
func (r *PostgresLoginOTPRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.LoginOTP, error) {
	query := `
		SELECT id, email, user_id, username, otp_hash, user_agent, ip, attempts, is_active, expires_at, created_at
		FROM login_otps
		WHERE email = $1 AND is_active = true
		ORDER BY created_at DESC
		LIMIT 1
	`
	record := &domain.LoginOTP{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&record.ID,
		&record.Email,
		&record.UserID,
		&record.Username,
		&record.OTPHash,
		&record.UserAgent,
		&record.IP,
		&record.Attempts,
		&record.IsActive,
		&record.ExpiresAt,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// IncrementAttempts bumps the failure counter on a record
func (r *PostgresLoginOTPRepository) IncrementAttempts(ctx context.Context, id string) error {
	query := `UPDATE login_otps SET attempts = attempts + 1 WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// Consume deactivates a record after successful verification. The hash
// is scrubbed and the window closed, so the row carries nothing usable
// even if is_active were ever mishandled.
func (r *PostgresLoginOTPRepository) Consume(ctx context.Context, id string) error {
	query := `UPDATE login_otps SET is_active = false, otp_hash = '', expires_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// DeactivateByEmail deactivates all records for an email
func (r *PostgresLoginOTPRepository) DeactivateByEmail(ctx context.Context, email string) error {
	query := `UPDATE login_otps SET is_active = false WHERE email = $1`
	_, err := r.pool.Exec(ctx, query, email)
	return err
}
