package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/mailer"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/logger"
)

// MailerWorkerConfig contains configuration for the mailer worker
type MailerWorkerConfig struct {
	// QueueSize is the capacity of the in-memory mail queue
	QueueSize int
	// SendTimeout bounds each delivery attempt
	SendTimeout time.Duration
}

// DefaultMailerWorkerConfig returns default configuration
func DefaultMailerWorkerConfig() *MailerWorkerConfig {
	return &MailerWorkerConfig{
		QueueSize:   256,
		SendTimeout: 15 * time.Second,
	}
}

// MailerWorker delivers queued mail in the background. Mail is best
// effort: delivery failures are logged and never surface to the
// request that enqueued them.
type MailerWorker struct {
	mail    mailer.Mailer
	config  *MailerWorkerConfig
	log     *logger.Logger
	queue   chan mailer.Message
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

// NewMailerWorker creates a new mailer worker
func NewMailerWorker(mail mailer.Mailer, config *MailerWorkerConfig) *MailerWorker {
	if config == nil {
		config = DefaultMailerWorkerConfig()
	}

	return &MailerWorker{
		mail:   mail,
		config: config,
		log:    logger.Get(),
		queue:  make(chan mailer.Message, config.QueueSize),
		stopCh: make(chan struct{}),
	}
}

// Start starts the mailer worker
func (w *MailerWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("mailer worker already running")
	}
	w.running = true
	w.mu.Unlock()

	w.log.Info("Starting mailer worker")

	w.wg.Add(1)
	go w.run(ctx)

	return nil
}

// Stop stops the mailer worker and drains the queue
func (w *MailerWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	w.log.Info("Stopping mailer worker")
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("Mailer worker stopped")
}

// Enqueue queues a message for delivery without blocking. When the
// queue is full the message is dropped and logged.
func (w *MailerWorker) Enqueue(msg mailer.Message) {
	select {
	case w.queue <- msg:
	default:
		w.log.Warn("mail queue full, dropping message",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
		)
	}
}

func (w *MailerWorker) run(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case msg := <-w.queue:
			w.deliver(msg)
		case <-w.stopCh:
			// Drain what is already queued before shutting down
			for {
				select {
				case msg := <-w.queue:
					w.deliver(msg)
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (w *MailerWorker) deliver(msg mailer.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), w.config.SendTimeout)
	defer cancel()

	if err := w.mail.Send(ctx, msg); err != nil {
		w.log.Error("failed to send mail",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return
	}

	w.log.Info("mail sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
}
