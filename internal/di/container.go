package di

import (
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/handler"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/mailer"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/middleware"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/repository"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/service"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/token"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/worker"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/config"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/database"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/redis"
)

// Container holds all dependencies for the service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	LoginOTPRepo repository.LoginOTPRepository
	BotRepo      repository.BotRepository

	// Workers
	MailerWorker   *worker.MailerWorker
	SessionJanitor *worker.SessionJanitor

	// Services
	AuthService  service.AuthService
	OAuthService service.OAuthService
	BotService   service.BotService

	// Handlers
	HealthHandler *handler.HealthHandler
	AuthHandler   *handler.AuthHandler
	OAuthHandler  *handler.OAuthHandler
	BotHandler    *handler.BotHandler

	// Cookie contract shared by handlers and the auth middleware
	Cookies middleware.CookieConfig
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *redis.Client // nil when disabled
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *ContainerConfig) *Container {
	appCfg := cfg.Config

	c := &Container{
		DB:    cfg.DB,
		Redis: cfg.Redis,
	}

	// Repositories
	pool := cfg.DB.Pool()
	c.UserRepo = repository.NewPostgresUserRepository(pool)
	c.SessionRepo = repository.NewPostgresSessionRepository(pool)
	c.LoginOTPRepo = repository.NewPostgresLoginOTPRepository(pool)
	c.BotRepo = repository.NewPostgresBotRepository(pool)

	// Mail worker: real delivery only when an API key is configured
	var mail mailer.Mailer
	if appCfg.Mail.APIKey != "" {
		mail = mailer.NewResendMailer(appCfg.Mail.APIKey, appCfg.Mail.From)
	} else {
		mail = mailer.NewLogMailer()
	}
	c.MailerWorker = worker.NewMailerWorker(mail, &worker.MailerWorkerConfig{
		QueueSize:   appCfg.Mail.QueueSize,
		SendTimeout: worker.DefaultMailerWorkerConfig().SendTimeout,
	})

	// Storage hygiene for expired session rows
	c.SessionJanitor = worker.NewSessionJanitor(c.SessionRepo, nil)

	// Token codec
	codec := token.NewCodec(token.Config{
		AccessSecret:  appCfg.JWT.AccessSecret,
		RefreshSecret: appCfg.JWT.RefreshSecret,
		AccessTTL:     appCfg.JWT.AccessTokenTTL,
		RefreshTTL:    appCfg.JWT.RefreshTokenTTL,
	})

	// Services
	c.AuthService = service.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.LoginOTPRepo,
		codec,
		c.MailerWorker,
		&service.AuthServiceConfig{
			OTPLength:      appCfg.OTP.Length,
			OTPTTL:         appCfg.OTP.TTL,
			OTPMaxAttempts: appCfg.OTP.MaxAttempts,
			SessionTTL:     appCfg.JWT.RefreshTokenTTL,
		},
	)
	c.OAuthService = service.NewOAuthService(c.AuthService, c.UserRepo, &service.OAuthServiceConfig{
		Google: service.OAuthProviderConfig{
			ClientID:     appCfg.OAuth.Google.ClientID,
			ClientSecret: appCfg.OAuth.Google.ClientSecret,
			RedirectURL:  appCfg.OAuth.Google.RedirectURL,
		},
		GitHub: service.OAuthProviderConfig{
			ClientID:     appCfg.OAuth.GitHub.ClientID,
			ClientSecret: appCfg.OAuth.GitHub.ClientSecret,
			RedirectURL:  appCfg.OAuth.GitHub.RedirectURL,
		},
	})
	c.BotService = service.NewBotService(c.BotRepo)

	// Handlers
	c.Cookies = middleware.CookieConfig{
		Secure:     appCfg.IsProduction(),
		AccessTTL:  appCfg.JWT.AccessTokenTTL,
		RefreshTTL: appCfg.JWT.RefreshTokenTTL,
	}
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService, c.Cookies, !appCfg.IsProduction())
	c.OAuthHandler = handler.NewOAuthHandler(c.OAuthService, c.Cookies, appCfg.CORS.FrontendURL)
	c.BotHandler = handler.NewBotHandler(c.BotService)

	return c
}
