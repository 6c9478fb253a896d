package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/repository"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/logger"
)

// SessionJanitorConfig contains configuration for the session janitor
type SessionJanitorConfig struct {
	// SweepInterval is how often expired session rows are purged
	SweepInterval time.Duration
}

// DefaultSessionJanitorConfig returns default configuration
func DefaultSessionJanitorConfig() *SessionJanitorConfig {
	return &SessionJanitorConfig{
		SweepInterval: time.Hour,
	}
}

// SessionJanitor periodically deletes expired session rows. Expired
// sessions are already rejected at validation time, so the sweep is
// purely storage hygiene and its failures never affect requests.
type SessionJanitor struct {
	sessions repository.SessionRepository
	config   *SessionJanitorConfig
	log      *logger.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
}

// NewSessionJanitor creates a new session janitor
func NewSessionJanitor(sessions repository.SessionRepository, config *SessionJanitorConfig) *SessionJanitor {
	if config == nil {
		config = DefaultSessionJanitorConfig()
	}

	return &SessionJanitor{
		sessions: sessions,
		config:   config,
		log:      logger.Get(),
		stopCh:   make(chan struct{}),
	}
}

// Start starts the janitor. The first sweep runs immediately.
func (j *SessionJanitor) Start(ctx context.Context) error {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return fmt.Errorf("session janitor already running")
	}
	j.running = true
	j.mu.Unlock()

	j.log.Info("Starting session janitor",
		zap.Duration("sweep_interval", j.config.SweepInterval),
	)

	j.wg.Add(1)
	go j.run(ctx)

	return nil
}

// Stop stops the janitor
func (j *SessionJanitor) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	close(j.stopCh)
	j.wg.Wait()
	j.log.Info("Session janitor stopped")
}

func (j *SessionJanitor) run(ctx context.Context) {
	defer j.wg.Done()

	j.sweep(ctx)

	ticker := time.NewTicker(j.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep(ctx)
		case <-j.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (j *SessionJanitor) sweep(ctx context.Context) {
	if err := j.sessions.DeleteExpired(ctx); err != nil {
		j.log.Error("failed to purge expired sessions", zap.Error(err))
	}
}
