package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/dto"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/repository"
)

var (
	ErrBotNotFound     = errors.New("bot not found")
	ErrInvalidPlatform = errors.New("invalid platform")
)

const (
	// ManagePageSize is the fixed page size of the management listing
	ManagePageSize = 10
	// HomeRecentLimit is how many recent bots the dashboard shows
	HomeRecentLimit = 3
)

// HomeSummary is the dashboard aggregate
type HomeSummary struct {
	TotalBots  int
	ActiveBots int
	RecentBots []*domain.Bot
}

// BotService defines the interface for bot lifecycle operations
type BotService interface {
	// Create creates a new bot in draft status
	Create(ctx context.Context, userID string, req *dto.CreateBotRequest) (*domain.Bot, error)
	// Get retrieves a non-deleted bot owned by the user
	Get(ctx context.Context, userID, botID string) (*domain.Bot, error)
	// ListManage retrieves one page of the management listing
	ListManage(ctx context.Context, userID string, cursor *time.Time) (*repository.BotPage, error)
	// Home retrieves the dashboard summary
	Home(ctx context.Context, userID string) (*HomeSummary, error)
	// SoftDelete moves a bot to deleted status
	SoftDelete(ctx context.Context, userID, botID string) error
	// Restore moves a soft-deleted bot back to draft
	Restore(ctx context.Context, userID, botID string) (*domain.Bot, error)
	// ListDeleted retrieves the user's soft-deleted bots
	ListDeleted(ctx context.Context, userID string) ([]*domain.Bot, error)
	// PermanentDelete removes a soft-deleted bot row for good
	PermanentDelete(ctx context.Context, userID, botID string) error
}

// botService implements BotService
type botService struct {
	botRepo repository.BotRepository
}

// NewBotService creates a new BotService
func NewBotService(botRepo repository.BotRepository) BotService {
	return &botService{botRepo: botRepo}
}

// Create creates a new bot in draft status
func (s *botService) Create(ctx context.Context, userID string, req *dto.CreateBotRequest) (*domain.Bot, error) {
	platform := domain.Platform(req.Platform)
	if !domain.ValidPlatform(platform) {
		return nil, ErrInvalidPlatform
	}

	now := time.Now()
	bot := &domain.Bot{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		Platform:     platform,
		Style:        req.Style,
		Status:       domain.BotStatusDraft,
		SystemPrompt: req.SystemPrompt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.botRepo.Create(ctx, bot); err != nil {
		return nil, err
	}
	return bot, nil
}

// owned fetches a bot and enforces ownership
func (s *botService) owned(ctx context.Context, userID, botID string) (*domain.Bot, error) {
	bot, err := s.botRepo.GetByID(ctx, botID)
	if err != nil {
		return nil, err
	}
	if bot == nil {
		return nil, ErrBotNotFound
	}
	if bot.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return bot, nil
}

// Get retrieves a non-deleted bot owned by the user
func (s *botService) Get(ctx context.Context, userID, botID string) (*domain.Bot, error) {
	bot, err := s.owned(ctx, userID, botID)
	if err != nil {
		return nil, err
	}
	if bot.Deleted() {
		return nil, ErrBotNotFound
	}
	return bot, nil
}

// ListManage retrieves one page of the management listing
func (s *botService) ListManage(ctx context.Context, userID string, cursor *time.Time) (*repository.BotPage, error) {
	return s.botRepo.ListPage(ctx, userID, cursor, ManagePageSize)
}

// Home retrieves the dashboard summary
func (s *botService) Home(ctx context.Context, userID string) (*HomeSummary, error) {
	recent, err := s.botRepo.ListRecent(ctx, userID, HomeRecentLimit)
	if err != nil {
		return nil, err
	}

	total, err := s.botRepo.CountVisible(ctx, userID)
	if err != nil {
		return nil, err
	}

	active, err := s.botRepo.CountActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &HomeSummary{
		TotalBots:  total,
		ActiveBots: active,
		RecentBots: recent,
	}, nil
}

// SoftDelete moves a bot to deleted status
func (s *botService) SoftDelete(ctx context.Context, userID, botID string) error {
	bot, err := s.owned(ctx, userID, botID)
	if err != nil {
		return err
	}

	next, err := domain.Transition(bot.Status, domain.BotStatusDeleted)
	if err != nil {
		return err
	}
	return s.botRepo.UpdateStatus(ctx, bot.ID, next)
}

// Restore moves a soft-deleted bot back to draft
func (s *botService) Restore(ctx context.Context, userID, botID string) (*domain.Bot, error) {
	bot, err := s.owned(ctx, userID, botID)
	if err != nil {
		return nil, err
	}

	next, err := domain.Transition(bot.Status, domain.BotStatusDraft)
	if err != nil {
		return nil, err
	}
	if err := s.botRepo.UpdateStatus(ctx, bot.ID, next); err != nil {
		return nil, err
	}

	bot.Status = next
	bot.DeletedAt = nil
	return bot, nil
}

// ListDeleted retrieves the user's soft-deleted bots
func (s *botService) ListDeleted(ctx context.Context, userID string) ([]*domain.Bot, error) {
	return s.botRepo.ListDeleted(ctx, userID)
}

// PermanentDelete removes a soft-deleted bot row for good. Only bots
// already in deleted status can be purged.
func (s *botService) PermanentDelete(ctx context.Context, userID, botID string) error {
	bot, err := s.owned(ctx, userID, botID)
	if err != nil {
		return err
	}
	if !bot.Deleted() {
		return domain.ErrInvalidTransition
	}
	return s.botRepo.HardDelete(ctx, bot.ID)
}
