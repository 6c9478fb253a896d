package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/dto"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/mailer"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/otp"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/repository"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/token"
)

var (
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserNotFound        = errors.New("user not found")
	ErrOTPInvalid          = errors.New("invalid otp")
	ErrOTPExpired          = errors.New("otp expired")
	ErrOTPAttemptsExceeded = errors.New("otp attempts exceeded")
	ErrUnauthorized        = errors.New("unauthorized")
)

// MailQueue enqueues mail for background delivery
type MailQueue interface {
	Enqueue(msg mailer.Message)
}

// AuthServiceConfig holds configuration for AuthService
type AuthServiceConfig struct {
	BcryptCost     int
	OTPLength      int
	OTPTTL         time.Duration
	OTPMaxAttempts int
	SessionTTL     time.Duration
}

// LoginResult is a freshly issued session with its token pair
type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
	SessionID    string
}

// ValidateResult is the outcome of session validation. NewAccessToken
// is set only when the access token was silently refreshed.
type ValidateResult struct {
	Identity       domain.Identity
	NewAccessToken string
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// RequestRegistrationOTP upserts a pending account from the signup
	// payload and mails an OTP. The returned code is exposed only in
	// non-production environments.
	RequestRegistrationOTP(ctx context.Context, req *dto.RequestOTPRequest) (string, error)
	// CompleteRegistration verifies the OTP and activates the account
	CompleteRegistration(ctx context.Context, req *dto.RegisterRequest, userAgent, ip string) (*LoginResult, error)
	// LoginWithPassword authenticates with email and password
	LoginWithPassword(ctx context.Context, req *dto.LoginRequest, userAgent, ip string) (*LoginResult, error)
	// RequestLoginOTP mails a one-time login code to a known user
	RequestLoginOTP(ctx context.Context, email, userAgent, ip string) (string, error)
	// LoginWithOTP authenticates with an emailed one-time code
	LoginWithOTP(ctx context.Context, req *dto.VerifyLoginOTPRequest, userAgent, ip string) (*LoginResult, error)
	// IssueSession creates a session and token pair for a user that is
	// already authenticated by other means (OAuth callback)
	IssueSession(ctx context.Context, user *domain.User, userAgent, ip string) (*LoginResult, error)
	// Validate checks the cookie triad and silently refreshes the
	// access token when the session still permits it
	Validate(ctx context.Context, accessToken, refreshToken, sessionID string) (*ValidateResult, error)
	// Logout revokes the session. Revocation is idempotent.
	Logout(ctx context.Context, sessionID string) error
	// LogoutAll revokes every session belonging to a user
	LogoutAll(ctx context.Context, userID string) error
	// GetUser retrieves user by ID
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// authService implements AuthService
type authService struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	loginOTPRepo repository.LoginOTPRepository
	codec        *token.Codec
	mail         MailQueue
	config       *AuthServiceConfig
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	loginOTPRepo repository.LoginOTPRepository,
	codec *token.Codec,
	mail MailQueue,
	config *AuthServiceConfig,
) AuthService {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.OTPLength == 0 {
		config.OTPLength = 6
	}
	if config.OTPTTL == 0 {
		config.OTPTTL = 10 * time.Minute
	}
	if config.OTPMaxAttempts == 0 {
		config.OTPMaxAttempts = domain.MaxLoginOTPAttempts
	}
	if config.SessionTTL == 0 {
		config.SessionTTL = 960 * time.Hour
	}
	return &authService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		loginOTPRepo: loginOTPRepo,
		codec:        codec,
		mail:         mail,
		config:       config,
	}
}

// hashToken returns the hex SHA-256 of a token. Refresh tokens are JWTs
// well past bcrypt's 72-byte input limit, so they are stored as SHA-256
// digests and compared in constant time.
func hashToken(tok string) string {
	sum := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(sum[:])
}

func tokenHashMatches(storedHash, tok string) bool {
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(hashToken(tok))) == 1
}

// RequestRegistrationOTP upserts a pending user row from the signup
// payload and mails the OTP that will activate it
func (s *authService) RequestRegistrationOTP(ctx context.Context, req *dto.RequestOTPRequest) (string, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.Verified {
		return "", ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return "", err
	}

	code := otp.Generate(s.config.OTPLength)
	otpHash, err := otp.Hash(code)
	if err != nil {
		return "", err
	}

	now := time.Now()
	expiry := now.Add(s.config.OTPTTL)
	hashStr := string(passwordHash)
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: &hashStr,
		AuthProvider: domain.ProviderCustom,
		Verified:     false,
		OTPHash:      &otpHash,
		OTPExpiry:    &expiry,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.UpsertPending(ctx, user); err != nil {
		return "", err
	}

	s.mail.Enqueue(mailer.RegistrationOTP(req.Email, code))
	return code, nil
}

// CompleteRegistration verifies the OTP and activates the account
func (s *authService) CompleteRegistration(ctx context.Context, req *dto.RegisterRequest, userAgent, ip string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrOTPInvalid
	}
	if user.Verified {
		return nil, ErrUserAlreadyExists
	}

	now := time.Now()
	if !user.OTPValid(now) {
		return nil, ErrOTPExpired
	}
	if !otp.Compare(*user.OTPHash, req.OTP) {
		return nil, ErrOTPInvalid
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	user.Verified = true
	user.OTPHash = nil
	user.OTPExpiry = nil

	return s.IssueSession(ctx, user, userAgent, ip)
}

// LoginWithPassword authenticates with email and password
func (s *authService) LoginWithPassword(ctx context.Context, req *dto.LoginRequest, userAgent, ip string) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Verified || user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	result, err := s.IssueSession(ctx, user, userAgent, ip)
	if err != nil {
		return nil, err
	}

	s.mail.Enqueue(mailer.LoginAlert(user.Email, ip, userAgent))
	return result, nil
}

// RequestLoginOTP mails a one-time login code to a known user
func (s *authService) RequestLoginOTP(ctx context.Context, email, userAgent, ip string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil || !user.Verified {
		return "", ErrUserNotFound
	}

	code := otp.Generate(s.config.OTPLength)
	otpHash, err := otp.Hash(code)
	if err != nil {
		return "", err
	}

	// Older codes are burned so only the newest one is honored
	if err := s.loginOTPRepo.DeactivateByEmail(ctx, email); err != nil {
		return "", err
	}

	now := time.Now()
	record := &domain.LoginOTP{
		ID:        uuid.New().String(),
		Email:     email,
		UserID:    user.ID,
		Username:  user.Username,
		OTPHash:   otpHash,
		UserAgent: userAgent,
		IP:        ip,
		Attempts:  0,
		IsActive:  true,
		ExpiresAt: now.Add(s.config.OTPTTL),
		CreatedAt: now,
	}
	if err := s.loginOTPRepo.Create(ctx, record); err != nil {
		return "", err
	}

	s.mail.Enqueue(mailer.LoginOTP(email, code))
	return code, nil
}

// LoginWithOTP authenticates with an emailed one-time code
func (s *authService) LoginWithOTP(ctx context.Context, req *dto.VerifyLoginOTPRequest, userAgent, ip string) (*LoginResult, error) {
	record, err := s.loginOTPRepo.GetActiveByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrOTPInvalid
	}

	now := time.Now()
	if record.Expired(now) {
		return nil, ErrOTPExpired
	}
	if record.AttemptsExhausted(s.config.OTPMaxAttempts) {
		return nil, ErrOTPAttemptsExceeded
	}

	if !otp.Compare(record.OTPHash, req.OTP) {
		if err := s.loginOTPRepo.IncrementAttempts(ctx, record.ID); err != nil {
			return nil, err
		}
		return nil, ErrOTPInvalid
	}

	// Consume before issuing tokens so a concurrent verify with the
	// same code cannot mint a second session from this record
	if err := s.loginOTPRepo.Consume(ctx, record.ID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Verified {
		return nil, ErrUserNotFound
	}

	result, err := s.IssueSession(ctx, user, userAgent, ip)
	if err != nil {
		return nil, err
	}

	s.mail.Enqueue(mailer.LoginAlert(user.Email, ip, userAgent))
	return result, nil
}

// IssueSession creates a session row and mints the token pair
func (s *authService) IssueSession(ctx context.Context, user *domain.User, userAgent, ip string) (*LoginResult, error) {
	pair, err := s.codec.IssuePair(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:               uuid.New().String(),
		UserID:           user.ID,
		RefreshTokenHash: hashToken(pair.RefreshToken),
		UserAgent:        userAgent,
		IP:               ip,
		Revoked:          false,
		ExpiredAt:        now.Add(s.config.SessionTTL),
		CreatedAt:        now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		SessionID:    session.ID,
	}, nil
}

// Validate checks the cookie triad. A valid access token authenticates
// without touching storage; otherwise the refresh token is checked
// against the session and a new access token is minted. The refresh
// token itself is never rotated here, so concurrent refreshes from the
// same session are harmless.
func (s *authService) Validate(ctx context.Context, accessToken, refreshToken, sessionID string) (*ValidateResult, error) {
	if sessionID == "" || refreshToken == "" {
		return nil, ErrUnauthorized
	}

	if claims := s.codec.VerifyAccess(accessToken); claims != nil {
		return &ValidateResult{
			Identity: domain.Identity{
				UserID:    claims.UserID,
				Username:  claims.Username,
				Email:     claims.Email,
				SessionID: sessionID,
			},
		}, nil
	}

	claims := s.codec.VerifyRefresh(refreshToken)
	if claims == nil {
		return nil, ErrUnauthorized
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || !session.Usable(time.Now()) {
		return nil, ErrUnauthorized
	}
	if !tokenHashMatches(session.RefreshTokenHash, refreshToken) {
		return nil, ErrUnauthorized
	}
	if claims.UserID != session.UserID {
		return nil, ErrUnauthorized
	}

	newAccess, err := s.codec.IssueAccess(claims.UserID, claims.Username, claims.Email)
	if err != nil {
		return nil, err
	}

	return &ValidateResult{
		Identity: domain.Identity{
			UserID:    claims.UserID,
			Username:  claims.Username,
			Email:     claims.Email,
			SessionID: sessionID,
		},
		NewAccessToken: newAccess,
	}, nil
}

// Logout revokes the session
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessionRepo.Revoke(ctx, sessionID)
}

// LogoutAll revokes every session belonging to a user, ending refresh
// on all of their devices at once
func (s *authService) LogoutAll(ctx context.Context, userID string) error {
	return s.sessionRepo.RevokeAllByUserID(ctx, userID)
}

// GetUser retrieves user by ID
func (s *authService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
