package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/logger"
)

// Message is an outbound email
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends email messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of sending them.
// Used in development and as the fallback when no API key is set.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer creates a LogMailer
func NewLogMailer() *LogMailer {
	return &LogMailer{log: logger.Get()}
}

// Send logs the message
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.log.Info("mail (log only)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

// RegistrationOTP builds the verification mail for a new registration
func RegistrationOTP(email, code string) Message {
	return Message{
		To:      email,
		Subject: "Verify your email",
		Body:    fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code),
	}
}

// LoginOTP builds the one-time-code mail for passwordless login
func LoginOTP(email, code string) Message {
	return Message{
		To:      email,
		Subject: "Your login code",
		Body:    fmt.Sprintf("Your login code is %s. It expires in 10 minutes.", code),
	}
}

// LoginAlert builds the new-login notification mail
func LoginAlert(email, ip, userAgent string) Message {
	return Message{
		To:      email,
		Subject: "New login to your account",
		Body:    fmt.Sprintf("A new login to your account was detected from %s (%s). If this was not you, please reset your password.", ip, userAgent),
	}
}
