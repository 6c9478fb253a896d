package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/dto"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/mailer"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/token"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	users      map[string]*domain.User
	emailIndex map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:      make(map[string]*domain.User),
		emailIndex: make(map[string]*domain.User),
	}
}

func (r *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = user
	r.emailIndex[user.Email] = user
	return nil
}

func (r *mockUserRepository) UpsertPending(ctx context.Context, user *domain.User) error {
	if existing := r.emailIndex[user.Email]; existing != nil {
		if existing.Verified {
			return nil
		}
		existing.Username = user.Username
		existing.PasswordHash = user.PasswordHash
		existing.OTPHash = user.OTPHash
		existing.OTPExpiry = user.OTPExpiry
		existing.UpdatedAt = user.UpdatedAt
		return nil
	}
	return r.Create(ctx, user)
}

func (r *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.users[id], nil
}

func (r *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.emailIndex[email], nil
}

func (r *mockUserRepository) MarkVerified(ctx context.Context, id string) error {
	user := r.users[id]
	if user != nil {
		user.Verified = true
		user.OTPHash = nil
		user.OTPExpiry = nil
	}
	return nil
}

func (r *mockUserRepository) LinkProviderID(ctx context.Context, id string, provider domain.AuthProvider, providerID string) error {
	user := r.users[id]
	if user != nil {
		user.AuthProvider = provider
		user.ProviderID = &providerID
		user.Verified = true
	}
	return nil
}

func (r *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	r.users[user.ID] = user
	r.emailIndex[user.Email] = user
	return nil
}

// mockSessionRepository is a mock implementation of SessionRepository
type mockSessionRepository struct {
	sessions map[string]*domain.Session
}

func newMockSessionRepository() *mockSessionRepository {
	return &mockSessionRepository{sessions: make(map[string]*domain.Session)}
}

func (r *mockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	r.sessions[session.ID] = session
	return nil
}

func (r *mockSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	return r.sessions[id], nil
}

func (r *mockSessionRepository) Revoke(ctx context.Context, id string) error {
	if session := r.sessions[id]; session != nil {
		session.Revoked = true
	}
	return nil
}

func (r *mockSessionRepository) RevokeAllByUserID(ctx context.Context, userID string) error {
	for _, session := range r.sessions {
		if session.UserID == userID {
			session.Revoked = true
		}
	}
	return nil
}

func (r *mockSessionRepository) DeleteExpired(ctx context.Context) error {
	for id, session := range r.sessions {
		if session.Expired(time.Now()) {
			delete(r.sessions, id)
		}
	}
	return nil
}

// mockLoginOTPRepository is a mock implementation of LoginOTPRepository
type mockLoginOTPRepository struct {
	records []*domain.LoginOTP
}

func (r *mockLoginOTPRepository) Create(ctx context.Context, record *domain.LoginOTP) error {
	r.records = append(r.records, record)
	return nil
}

func (r *mockLoginOTPRepository) GetActiveByEmail(ctx context.Context, email string) (*domain.LoginOTP, error) {
	var newest *domain.LoginOTP
	for _, rec := range r.records {
		if rec.Email == email && rec.IsActive {
			if newest == nil || rec.CreatedAt.After(newest.CreatedAt) {
				newest = rec
			}
		}
	}
	return newest, nil
}

func (r *mockLoginOTPRepository) IncrementAttempts(ctx context.Context, id string) error {
	for _, rec := range r.records {
		if rec.ID == id {
			rec.Attempts++
		}
	}
	return nil
}

func (r *mockLoginOTPRepository) Consume(ctx context.Context, id string) error {
	for _, rec := range r.records {
		if rec.ID == id {
			rec.IsActive = false
			rec.OTPHash = ""
			rec.ExpiresAt = time.Now()
		}
	}
	return nil
}

func (r *mockLoginOTPRepository) DeactivateByEmail(ctx context.Context, email string) error {
	for _, rec := range r.records {
		if rec.Email == email {
			rec.IsActive = false
		}
	}
	return nil
}

// mockMailQueue records enqueued mail
type mockMailQueue struct {
	messages []mailer.Message
}

func (q *mockMailQueue) Enqueue(msg mailer.Message) {
	q.messages = append(q.messages, msg)
}

type authFixture struct {
	svc          AuthService
	userRepo     *mockUserRepository
	sessionRepo  *mockSessionRepository
	loginOTPRepo *mockLoginOTPRepository
	mail         *mockMailQueue
	codec        *token.Codec
}

func newAuthFixture() *authFixture {
	return newAuthFixtureConfig(&AuthServiceConfig{
		BcryptCost: bcrypt.MinCost, // Lower cost for faster tests
		OTPLength:  6,
		OTPTTL:     10 * time.Minute,
		SessionTTL: 960 * time.Hour,
	})
}

func newAuthFixtureConfig(cfg *AuthServiceConfig) *authFixture {
	userRepo := newMockUserRepository()
	sessionRepo := newMockSessionRepository()
	loginOTPRepo := &mockLoginOTPRepository{}
	mail := &mockMailQueue{}
	codec := token.NewCodec(token.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    960 * time.Hour,
	})

	svc := NewAuthService(userRepo, sessionRepo, loginOTPRepo, codec, mail, cfg)

	return &authFixture{
		svc:          svc,
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		loginOTPRepo: loginOTPRepo,
		mail:         mail,
		codec:        codec,
	}
}

func (f *authFixture) seedVerifiedUser(t *testing.T, email, password string) *domain.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	hashStr := string(hashed)
	user := &domain.User{
		ID:           "user-" + email,
		Email:        email,
		Username:     "tester",
		PasswordHash: &hashStr,
		AuthProvider: domain.ProviderCustom,
		Verified:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.userRepo.users[user.ID] = user
	f.userRepo.emailIndex[user.Email] = user
	return user
}

func TestAuthService_RegistrationFlow(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	signup := &dto.RequestOTPRequest{
		Username:        "newuser",
		Email:           "new@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	code, err := f.svc.RequestRegistrationOTP(ctx, signup)
	if err != nil {
		t.Fatalf("RequestRegistrationOTP() error = %v", err)
	}
	if len(code) != 6 {
		t.Errorf("OTP length = %d, want 6", len(code))
	}
	if len(f.mail.messages) != 1 {
		t.Fatalf("enqueued %d mails, want 1", len(f.mail.messages))
	}

	pending := f.userRepo.emailIndex["new@example.com"]
	if pending == nil {
		t.Fatal("no pending user row created")
	}
	if pending.Verified {
		t.Error("pending user already verified")
	}
	if pending.Username != "newuser" || pending.PasswordHash == nil {
		t.Error("signup credentials not stored on the pending row")
	}

	t.Run("wrong otp rejected", func(t *testing.T) {
		req := &dto.RegisterRequest{Email: "new@example.com", OTP: "999999"}
		if code == "999999" {
			req.OTP = "000000"
		}
		if _, err := f.svc.CompleteRegistration(ctx, req, "agent", "127.0.0.1"); err != ErrOTPInvalid {
			t.Errorf("CompleteRegistration() error = %v, want %v", err, ErrOTPInvalid)
		}
	})

	t.Run("correct otp verifies and logs in", func(t *testing.T) {
		req := &dto.RegisterRequest{Email: "new@example.com", OTP: code}
		result, err := f.svc.CompleteRegistration(ctx, req, "agent", "127.0.0.1")
		if err != nil {
			t.Fatalf("CompleteRegistration() error = %v", err)
		}
		if result.AccessToken == "" || result.RefreshToken == "" || result.SessionID == "" {
			t.Error("CompleteRegistration() returned incomplete login result")
		}
		if !result.User.Verified {
			t.Error("user not marked verified")
		}
		if result.User.OTPHash != nil {
			t.Error("registration OTP not cleared after consumption")
		}
		if f.sessionRepo.sessions[result.SessionID] == nil {
			t.Error("no session row created")
		}
	})

	t.Run("password set at signup works after verification", func(t *testing.T) {
		result, err := f.svc.LoginWithPassword(ctx, &dto.LoginRequest{
			Email:    "new@example.com",
			Password: "secret1",
		}, "agent", "127.0.0.1")
		if err != nil {
			t.Fatalf("LoginWithPassword() error = %v", err)
		}
		if result.SessionID == "" {
			t.Error("no session issued")
		}
	})

	t.Run("verified email cannot re-request otp", func(t *testing.T) {
		if _, err := f.svc.RequestRegistrationOTP(ctx, signup); err != ErrUserAlreadyExists {
			t.Errorf("RequestRegistrationOTP() error = %v, want %v", err, ErrUserAlreadyExists)
		}
	})
}

func TestAuthService_CompleteRegistrationExpiredOTP(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	code, err := f.svc.RequestRegistrationOTP(ctx, &dto.RequestOTPRequest{
		Username:        "late",
		Email:           "late@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("RequestRegistrationOTP() error = %v", err)
	}

	user := f.userRepo.emailIndex["late@example.com"]
	past := time.Now().Add(-time.Minute)
	user.OTPExpiry = &past

	req := &dto.RegisterRequest{Email: "late@example.com", OTP: code}
	if _, err := f.svc.CompleteRegistration(ctx, req, "agent", "127.0.0.1"); err != ErrOTPExpired {
		t.Errorf("CompleteRegistration() error = %v, want %v", err, ErrOTPExpired)
	}
}

func TestAuthService_LoginWithPassword(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedVerifiedUser(t, "login@example.com", "secret1")

	t.Run("successful login", func(t *testing.T) {
		result, err := f.svc.LoginWithPassword(ctx, &dto.LoginRequest{
			Email:    "login@example.com",
			Password: "secret1",
		}, "agent", "127.0.0.1")
		if err != nil {
			t.Fatalf("LoginWithPassword() error = %v", err)
		}
		if result.AccessToken == "" || result.RefreshToken == "" {
			t.Error("LoginWithPassword() tokens are empty")
		}

		session := f.sessionRepo.sessions[result.SessionID]
		if session == nil {
			t.Fatal("no session created")
		}
		if session.RefreshTokenHash == result.RefreshToken {
			t.Error("refresh token stored in plain text")
		}
		if !tokenHashMatches(session.RefreshTokenHash, result.RefreshToken) {
			t.Error("stored hash does not match issued refresh token")
		}
	})

	t.Run("each login creates a new session", func(t *testing.T) {
		before := len(f.sessionRepo.sessions)
		_, err := f.svc.LoginWithPassword(ctx, &dto.LoginRequest{
			Email:    "login@example.com",
			Password: "secret1",
		}, "agent", "127.0.0.1")
		if err != nil {
			t.Fatalf("LoginWithPassword() error = %v", err)
		}
		if len(f.sessionRepo.sessions) != before+1 {
			t.Error("expected an additional session row")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.LoginWithPassword(ctx, &dto.LoginRequest{
			Email:    "login@example.com",
			Password: "wrong",
		}, "agent", "127.0.0.1")
		if err != ErrInvalidCredentials {
			t.Errorf("LoginWithPassword() error = %v, want %v", err, ErrInvalidCredentials)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.LoginWithPassword(ctx, &dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret1",
		}, "agent", "127.0.0.1")
		if err != ErrInvalidCredentials {
			t.Errorf("LoginWithPassword() error = %v, want %v", err, ErrInvalidCredentials)
		}
	})
}

func TestAuthService_LoginOTPFlow(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedVerifiedUser(t, "otp@example.com", "secret1")

	code, err := f.svc.RequestLoginOTP(ctx, "otp@example.com", "agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("RequestLoginOTP() error = %v", err)
	}

	record := f.loginOTPRepo.records[0]
	if record.UserID == "" || record.Username == "" {
		t.Error("login OTP record not linked to the user")
	}
	if record.UserAgent != "agent" || record.IP != "127.0.0.1" {
		t.Errorf("login OTP record metadata = %q/%q, want agent/127.0.0.1", record.UserAgent, record.IP)
	}

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	t.Run("wrong code increments attempts", func(t *testing.T) {
		_, err := f.svc.LoginWithOTP(ctx, &dto.VerifyLoginOTPRequest{
			Email: "otp@example.com",
			OTP:   wrong,
		}, "agent", "127.0.0.1")
		if err != ErrOTPInvalid {
			t.Errorf("LoginWithOTP() error = %v, want %v", err, ErrOTPInvalid)
		}
		if f.loginOTPRepo.records[len(f.loginOTPRepo.records)-1].Attempts != 1 {
			t.Error("attempts not incremented")
		}
	})

	t.Run("correct code consumes the record", func(t *testing.T) {
		result, err := f.svc.LoginWithOTP(ctx, &dto.VerifyLoginOTPRequest{
			Email: "otp@example.com",
			OTP:   code,
		}, "agent", "127.0.0.1")
		if err != nil {
			t.Fatalf("LoginWithOTP() error = %v", err)
		}
		if result.SessionID == "" {
			t.Error("no session issued")
		}

		record, _ := f.loginOTPRepo.GetActiveByEmail(ctx, "otp@example.com")
		if record != nil {
			t.Error("record still active after consumption")
		}
		if consumed := f.loginOTPRepo.records[0]; consumed.OTPHash != "" {
			t.Error("hash not scrubbed on consumption")
		}
	})

	t.Run("consumed code cannot be replayed", func(t *testing.T) {
		_, err := f.svc.LoginWithOTP(ctx, &dto.VerifyLoginOTPRequest{
			Email: "otp@example.com",
			OTP:   code,
		}, "agent", "127.0.0.1")
		if err != ErrOTPInvalid {
			t.Errorf("LoginWithOTP() error = %v, want %v", err, ErrOTPInvalid)
		}
	})
}

func TestAuthService_LoginOTPAttemptsCap(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedVerifiedUser(t, "cap@example.com", "secret1")

	code, err := f.svc.RequestLoginOTP(ctx, "cap@example.com", "agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("RequestLoginOTP() error = %v", err)
	}

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	for i := 0; i < domain.MaxLoginOTPAttempts; i++ {
		_, err := f.svc.LoginWithOTP(ctx, &dto.VerifyLoginOTPRequest{
			Email: "cap@example.com",
			OTP:   wrong,
		}, "agent", "127.0.0.1")
		if err != ErrOTPInvalid {
			t.Fatalf("attempt %d: error = %v, want %v", i+1, err, ErrOTPInvalid)
		}
	}

	// Even the correct code is dead once attempts are exhausted
	_, err = f.svc.LoginWithOTP(ctx, &dto.VerifyLoginOTPRequest{
		Email: "cap@example.com",
		OTP:   code,
	}, "agent", "127.0.0.1")
	if err != ErrOTPAttemptsExceeded {
		t.Errorf("LoginWithOTP() error = %v, want %v", err, ErrOTPAttemptsExceeded)
	}
}

func TestAuthService_RequestLoginOTPBurnsOlderCodes(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedVerifiedUser(t, "burn@example.com", "secret1")

	first, err := f.svc.RequestLoginOTP(ctx, "burn@example.com", "agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("RequestLoginOTP() error = %v", err)
	}
	if _, err := f.svc.RequestLoginOTP(ctx, "burn@example.com", "agent", "127.0.0.1"); err != nil {
		t.Fatalf("RequestLoginOTP() error = %v", err)
	}

	if f.loginOTPRepo.records[0].IsActive {
		t.Error("older OTP record still active after re-request")
	}
	_ = first
}

func TestAuthService_Validate(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := f.seedVerifiedUser(t, "validate@example.com", "secret1")

	login, err := f.svc.LoginWithPassword(ctx, &dto.LoginRequest{
		Email:    "validate@example.com",
		Password: "secret1",
	}, "agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("LoginWithPassword() error = %v", err)
	}

	t.Run("valid access token authenticates without refresh", func(t *testing.T) {
		result, err := f.svc.Validate(ctx, login.AccessToken, login.RefreshToken, login.SessionID)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if result.Identity.UserID != user.ID {
			t.Errorf("Identity.UserID = %s, want %s", result.Identity.UserID, user.ID)
		}
		if result.NewAccessToken != "" {
			t.Error("access token refreshed while still valid")
		}
	})

	t.Run("bad access token falls through to refresh", func(t *testing.T) {
		result, err := f.svc.Validate(ctx, "garbage", login.RefreshToken, login.SessionID)
		if err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if result.NewAccessToken == "" {
			t.Error("expected a silently refreshed access token")
		}
		if f.codec.VerifyAccess(result.NewAccessToken) == nil {
			t.Error("refreshed access token does not verify")
		}
	})

	t.Run("missing session id", func(t *testing.T) {
		if _, err := f.svc.Validate(ctx, login.AccessToken, login.RefreshToken, ""); err != ErrUnauthorized {
			t.Errorf("Validate() error = %v, want %v", err, ErrUnauthorized)
		}
	})

	t.Run("missing refresh token", func(t *testing.T) {
		if _, err := f.svc.Validate(ctx, login.AccessToken, "", login.SessionID); err != ErrUnauthorized {
			t.Errorf("Validate() error = %v, want %v", err, ErrUnauthorized)
		}
	})

	t.Run("refresh token from another session", func(t *testing.T) {
		other, err := f.svc.LoginWithPassword(ctx, &dto.LoginRequest{
			Email:    "validate@example.com",
			Password: "secret1",
		}, "agent", "127.0.0.1")
		if err != nil {
			t.Fatalf("LoginWithPassword() error = %v", err)
		}

		// Valid refresh token, wrong session row: hash mismatch
		if _, err := f.svc.Validate(ctx, "garbage", other.RefreshToken, login.SessionID); err != ErrUnauthorized {
			t.Errorf("Validate() error = %v, want %v", err, ErrUnauthorized)
		}
	})

	t.Run("revoked session", func(t *testing.T) {
		if err := f.svc.Logout(ctx, login.SessionID); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
		if _, err := f.svc.Validate(ctx, "garbage", login.RefreshToken, login.SessionID); err != ErrUnauthorized {
			t.Errorf("Validate() error = %v, want %v", err, ErrUnauthorized)
		}
	})

	t.Run("expired session", func(t *testing.T) {
		fresh, err := f.svc.LoginWithPassword(ctx, &dto.LoginRequest{
			Email:    "validate@example.com",
			Password: "secret1",
		}, "agent", "127.0.0.1")
		if err != nil {
			t.Fatalf("LoginWithPassword() error = %v", err)
		}
		f.sessionRepo.sessions[fresh.SessionID].ExpiredAt = time.Now().Add(-time.Hour)

		if _, err := f.svc.Validate(ctx, "garbage", fresh.RefreshToken, fresh.SessionID); err != ErrUnauthorized {
			t.Errorf("Validate() error = %v, want %v", err, ErrUnauthorized)
		}
	})
}

func TestAuthService_LoginOTPConfiguredCap(t *testing.T) {
	f := newAuthFixtureConfig(&AuthServiceConfig{
		BcryptCost:     bcrypt.MinCost,
		OTPLength:      6,
		OTPTTL:         10 * time.Minute,
		OTPMaxAttempts: 2,
		SessionTTL:     960 * time.Hour,
	})
	ctx := context.Background()
	f.seedVerifiedUser(t, "tight@example.com", "secret1")

	code, err := f.svc.RequestLoginOTP(ctx, "tight@example.com", "agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("RequestLoginOTP() error = %v", err)
	}

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	for i := 0; i < 2; i++ {
		if _, err := f.svc.LoginWithOTP(ctx, &dto.VerifyLoginOTPRequest{
			Email: "tight@example.com",
			OTP:   wrong,
		}, "agent", "127.0.0.1"); err != ErrOTPInvalid {
			t.Fatalf("attempt %d: error = %v, want %v", i+1, err, ErrOTPInvalid)
		}
	}

	// The configured budget of 2 is spent, well below the default of 5
	if _, err := f.svc.LoginWithOTP(ctx, &dto.VerifyLoginOTPRequest{
		Email: "tight@example.com",
		OTP:   code,
	}, "agent", "127.0.0.1"); err != ErrOTPAttemptsExceeded {
		t.Errorf("LoginWithOTP() error = %v, want %v", err, ErrOTPAttemptsExceeded)
	}
}

func TestAuthService_LogoutAll(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	user := f.seedVerifiedUser(t, "everywhere@example.com", "secret1")

	var logins []*LoginResult
	for i := 0; i < 3; i++ {
		login, err := f.svc.LoginWithPassword(ctx, &dto.LoginRequest{
			Email:    "everywhere@example.com",
			Password: "secret1",
		}, "agent", "127.0.0.1")
		if err != nil {
			t.Fatalf("LoginWithPassword() error = %v", err)
		}
		logins = append(logins, login)
	}

	if err := f.svc.LogoutAll(ctx, user.ID); err != nil {
		t.Fatalf("LogoutAll() error = %v", err)
	}

	for _, session := range f.sessionRepo.sessions {
		if session.UserID == user.ID && !session.Revoked {
			t.Error("session survived LogoutAll")
		}
	}
	for _, login := range logins {
		if _, err := f.svc.Validate(ctx, "garbage", login.RefreshToken, login.SessionID); err != ErrUnauthorized {
			t.Errorf("Validate() after LogoutAll error = %v, want %v", err, ErrUnauthorized)
		}
	}
}

func TestAuthService_LogoutIdempotent(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	f.seedVerifiedUser(t, "logout@example.com", "secret1")

	login, err := f.svc.LoginWithPassword(ctx, &dto.LoginRequest{
		Email:    "logout@example.com",
		Password: "secret1",
	}, "agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("LoginWithPassword() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := f.svc.Logout(ctx, login.SessionID); err != nil {
			t.Fatalf("Logout() attempt %d error = %v", i+1, err)
		}
	}
	if !f.sessionRepo.sessions[login.SessionID].Revoked {
		t.Error("session not revoked")
	}

	// Unknown and empty session IDs are not errors
	if err := f.svc.Logout(ctx, "no-such-session"); err != nil {
		t.Errorf("Logout(unknown) error = %v", err)
	}
	if err := f.svc.Logout(ctx, ""); err != nil {
		t.Errorf("Logout(empty) error = %v", err)
	}
}
