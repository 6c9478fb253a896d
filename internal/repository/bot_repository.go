package repository

import (
	"context"
	"time"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
)

// BotPage is one page of a cursor-paginated bot listing
type BotPage struct {
	Bots       []*domain.Bot
	Total      int
	HasMore    bool
	NextCursor *time.Time
}

// BotRepository defines the interface for bot data access
type BotRepository interface {
	// Create creates a new bot
	Create(ctx context.Context, bot *domain.Bot) error
	// GetByID retrieves a bot by ID
	GetByID(ctx context.Context, id string) (*domain.Bot, error)
	// ListPage retrieves one page of non-deleted bots for a user,
	// newest first. A nil cursor starts from the top.
	ListPage(ctx context.Context, userID string, cursor *time.Time, limit int) (*BotPage, error)
	// CountVisible counts a user's non-deleted bots
	CountVisible(ctx context.Context, userID string) (int, error)
	// CountActive counts a user's bots in active status
	CountActive(ctx context.Context, userID string) (int, error)
	// ListRecent retrieves the newest non-deleted bots for a user
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.Bot, error)
	// ListDeleted retrieves a user's soft-deleted bots, newest first
	ListDeleted(ctx context.Context, userID string) ([]*domain.Bot, error)
	// UpdateStatus sets a bot's lifecycle status
	UpdateStatus(ctx context.Context, id string, status domain.BotStatus) error
	// HardDelete permanently removes a bot row
	HardDelete(ctx context.Context, id string) error
}
