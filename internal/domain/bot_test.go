package domain

import (
	"testing"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from BotStatus
		to   BotStatus
		want bool
	}{
		{"draft to active", BotStatusDraft, BotStatusActive, true},
		{"draft to deleted", BotStatusDraft, BotStatusDeleted, true},
		{"draft to paused", BotStatusDraft, BotStatusPaused, false},
		{"draft to inactive", BotStatusDraft, BotStatusInactive, false},
		{"active to paused", BotStatusActive, BotStatusPaused, true},
		{"active to inactive", BotStatusActive, BotStatusInactive, true},
		{"active to deleted", BotStatusActive, BotStatusDeleted, true},
		{"active to draft", BotStatusActive, BotStatusDraft, false},
		{"inactive to active", BotStatusInactive, BotStatusActive, true},
		{"inactive to deleted", BotStatusInactive, BotStatusDeleted, true},
		{"inactive to paused", BotStatusInactive, BotStatusPaused, false},
		{"paused to active", BotStatusPaused, BotStatusActive, true},
		{"paused to deleted", BotStatusPaused, BotStatusDeleted, true},
		{"paused to draft", BotStatusPaused, BotStatusDraft, false},
		{"deleted to draft", BotStatusDeleted, BotStatusDraft, true},
		{"deleted to paused", BotStatusDeleted, BotStatusPaused, true},
		{"deleted to active", BotStatusDeleted, BotStatusActive, false},
		{"deleted to inactive", BotStatusDeleted, BotStatusInactive, false},
		{"self transition", BotStatusActive, BotStatusActive, false},
		{"unknown status", BotStatus("archived"), BotStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	got, err := Transition(BotStatusDraft, BotStatusActive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != BotStatusActive {
		t.Errorf("got %s, want %s", got, BotStatusActive)
	}

	got, err = Transition(BotStatusDeleted, BotStatusActive)
	if err != ErrInvalidTransition {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if got != BotStatusDeleted {
		t.Errorf("failed transition must return the original status, got %s", got)
	}
}

func TestValidPlatform(t *testing.T) {
	for _, p := range []Platform{PlatformWhatsApp, PlatformTelegram, PlatformDiscord, PlatformInstagram, PlatformWebsite} {
		if !ValidPlatform(p) {
			t.Errorf("ValidPlatform(%s) = false, want true", p)
		}
	}
	if ValidPlatform(Platform("slack")) {
		t.Error("ValidPlatform(slack) = true, want false")
	}
}
