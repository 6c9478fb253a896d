package domain

import (
	"time"
)

// BotStatus is the lifecycle state of a bot
type BotStatus string

const (
	BotStatusDraft    BotStatus = "draft"
	BotStatusActive   BotStatus = "active"
	BotStatusInactive BotStatus = "inactive"
	BotStatusPaused   BotStatus = "paused"
	BotStatusDeleted  BotStatus = "deleted"
)

// Platform is the messaging surface a bot is deployed to
type Platform string

const (
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformTelegram  Platform = "telegram"
	PlatformDiscord   Platform = "discord"
	PlatformInstagram Platform = "instagram"
	PlatformWebsite   Platform = "website"
)

// ValidPlatform reports whether p is a known platform
func ValidPlatform(p Platform) bool {
	switch p {
	case PlatformWhatsApp, PlatformTelegram, PlatformDiscord, PlatformInstagram, PlatformWebsite:
		return true
	}
	return false
}

// Bot represents a chatbot owned by a user
type Bot struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Platform     Platform   `json:"platform"`
	Style        string     `json:"style"`
	Status       BotStatus  `json:"status"`
	SystemPrompt string     `json:"system_prompt"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

// Deleted reports whether the bot is soft-deleted
func (b *Bot) Deleted() bool {
	return b.Status == BotStatusDeleted
}

// transitions is the allow-list of legal status changes. Deleted is a
// recoverable state: restore moves back to draft or paused.
var transitions = map[BotStatus][]BotStatus{
	BotStatusDraft:    {BotStatusActive, BotStatusDeleted},
	BotStatusActive:   {BotStatusPaused, BotStatusInactive, BotStatusDeleted},
	BotStatusInactive: {BotStatusActive, BotStatusDeleted},
	BotStatusPaused:   {BotStatusActive, BotStatusDeleted},
	BotStatusDeleted:  {BotStatusDraft, BotStatusPaused},
}

// CanTransition reports whether a bot may move from one status to another
func CanTransition(from, to BotStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition validates a status change and returns the new status.
// It never mutates the bot; callers persist the result themselves.
func Transition(from, to BotStatus) (BotStatus, error) {
	if !CanTransition(from, to) {
		return from, ErrInvalidTransition
	}
	return to, nil
}
