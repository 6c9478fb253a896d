package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
)

// PostgresBotRepository implements BotRepository using PostgreSQL
type PostgresBotRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBotRepository creates a new PostgresBotRepository
func NewPostgresBotRepository(pool *pgxpool.Pool) *PostgresBotRepository {
	return &PostgresBotRepository{pool: pool}
}

const botColumns = `id, user_id, name, description, platform, style, status, system_prompt, created_at, updated_at, deleted_at`

func scanBot(row pgx.Row) (*domain.Bot, error) {
	bot := &domain.Bot{}
	err := row.Scan(
		&bot.ID,
		&bot.UserID,
		&bot.Name,
		&bot.Description,
		&bot.Platform,
		&bot.Style,
		&bot.Status,
		&bot.SystemPrompt,
		&bot.CreatedAt,
		&bot.UpdatedAt,
		&bot.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return bot, nil
}

func scanBots(rows pgx.Rows) ([]*domain.Bot, error) {
	defer rows.Close()

	var bots []*domain.Bot
	for rows.Next() {
		bot, err := scanBot(rows)
		if err != nil {
			return nil, err
		}
		bots = append(bots, bot)
	}
	return bots, rows.Err()
}

// Create creates a new bot
func (r *PostgresBotRepository) Create(ctx context.Context, bot *domain.Bot) error {
	query := `
		INSERT INTO bots (id, user_id, name, description, platform, style, status, system_prompt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.pool.Exec(ctx, query,
		bot.ID,
		bot.UserID,
		bot.Name,
		bot.Description,
		bot.Platform,
		bot.Style,
		bot.Status,
		bot.SystemPrompt,
		bot.CreatedAt,
		bot.UpdatedAt,
	)
	return err
}

// GetByID retrieves a bot by ID
func (r *PostgresBotRepository) GetByID(ctx context.Context, id string) (*domain.Bot, error) {
	query := `SELECT ` + botColumns + ` FROM bots WHERE id = $1`
	return scanBot(r.pool.QueryRow(ctx, query, id))
}

// ListPage retrieves one page of non-deleted bots for a user, newest
// first. The cursor is the created_at of the last bot on the previous
// page; limit+1 rows are fetched to detect whether more remain.
func (r *PostgresBotRepository) ListPage(ctx context.Context, userID string, cursor *time.Time, limit int) (*BotPage, error) {
	var rows pgx.Rows
	var err error

	if cursor != nil {
		query := `
			SELECT ` + botColumns + `
			FROM bots
			WHERE user_id = $1 AND status != 'deleted' AND created_at < $2
			ORDER BY created_at DESC
			LIMIT $3
		`
		rows, err = r.pool.Query(ctx, query, userID, *cursor, limit+1)
	} else {
		query := `
			SELECT ` + botColumns + `
			FROM bots
			WHERE user_id = $1 AND status != 'deleted'
			ORDER BY created_at DESC
			LIMIT $2
		`
		rows, err = r.pool.Query(ctx, query, userID, limit+1)
	}
	if err != nil {
		return nil, err
	}

	bots, err := scanBots(rows)
	if err != nil {
		return nil, err
	}

	page := &BotPage{Bots: bots}
	if len(bots) > limit {
		page.Bots = bots[:limit]
		page.HasMore = true
		last := page.Bots[len(page.Bots)-1].CreatedAt
		page.NextCursor = &last
	}

	total, err := r.CountVisible(ctx, userID)
	if err != nil {
		return nil, err
	}
	page.Total = total

	return page, nil
}

// CountVisible counts a user's non-deleted bots
func (r *PostgresBotRepository) CountVisible(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM bots WHERE user_id = $1 AND status != 'deleted'`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

// CountActive counts a user's bots in active status
func (r *PostgresBotRepository) CountActive(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM bots WHERE user_id = $1 AND status = 'active'`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

// ListRecent retrieves the newest non-deleted bots for a user
func (r *PostgresBotRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*domain.Bot, error) {
	query := `
		SELECT ` + botColumns + `
		FROM bots
		WHERE user_id = $1 AND status != 'deleted'
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return scanBots(rows)
}

// ListDeleted retrieves a user's soft-deleted bots, newest first
func (r *PostgresBotRepository) ListDeleted(ctx context.Context, userID string) ([]*domain.Bot, error) {
	query := `
		SELECT ` + botColumns + `
		FROM bots
		WHERE user_id = $1 AND status = 'deleted'
		ORDER BY updated_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanBots(rows)
}

// UpdateStatus sets a bot's lifecycle status. Entering deleted stamps
// deleted_at; leaving it clears the stamp.
func (r *PostgresBotRepository) UpdateStatus(ctx context.Context, id string, status domain.BotStatus) error {
	query := `
		UPDATE bots
		SET status = $2,
		    deleted_at = CASE WHEN $2 = 'deleted' THEN NOW() ELSE NULL END,
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, status)
	return err
}

// HardDelete permanently removes a bot row
func (r *PostgresBotRepository) HardDelete(ctx context.Context, id string) error {
	query := `DELETE FROM bots WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}
