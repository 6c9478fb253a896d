package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/dto"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_GeneratesNew(t *testing.T) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, c.Request)

	headerID := w.Header().Get(RequestIDHeader)
	if headerID == "" {
		t.Error("Expected X-Request-ID header to be set")
	}
	if w.Body.String() != headerID {
		t.Errorf("Header ID (%s) should match body ID (%s)", headerID, w.Body.String())
	}
}

func TestRequestID_UsesExisting(t *testing.T) {
	existingID := "existing-request-id-123"

	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	c.Request.Header.Set(RequestIDHeader, existingID)
	r.ServeHTTP(w, c.Request)

	if w.Body.String() != existingID {
		t.Errorf("Expected existing ID %s, got %s", existingID, w.Body.String())
	}
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(CORSWithConfig(DefaultCORSConfig("http://localhost:3000")))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	c.Request.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, c.Request)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q, want configured origin", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Allow-Credentials not set")
	}
}

func TestCORS_RejectsUnknownOrigin(t *testing.T) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(CORSWithConfig(DefaultCORSConfig("http://localhost:3000")))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	c.Request.Header.Set("Origin", "http://evil.example.com")
	r.ServeHTTP(w, c.Request)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q, want empty for unknown origin", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(CORSWithConfig(DefaultCORSConfig("http://localhost:3000")))

	c.Request = httptest.NewRequest(http.MethodOptions, "/test", nil)
	c.Request.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, c.Request)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

// stubAuthService drives the Auth middleware in tests
type stubAuthService struct {
	result *service.ValidateResult
	err    error

	gotAccess  string
	gotRefresh string
	gotSession string
}

func (s *stubAuthService) RequestRegistrationOTP(ctx context.Context, req *dto.RequestOTPRequest) (string, error) {
	return "", nil
}
func (s *stubAuthService) CompleteRegistration(ctx context.Context, req *dto.RegisterRequest, userAgent, ip string) (*service.LoginResult, error) {
	return nil, nil
}
func (s *stubAuthService) LoginWithPassword(ctx context.Context, req *dto.LoginRequest, userAgent, ip string) (*service.LoginResult, error) {
	return nil, nil
}
func (s *stubAuthService) RequestLoginOTP(ctx context.Context, email, userAgent, ip string) (string, error) {
	return "", nil
}
func (s *stubAuthService) LoginWithOTP(ctx context.Context, req *dto.VerifyLoginOTPRequest, userAgent, ip string) (*service.LoginResult, error) {
	return nil, nil
}
func (s *stubAuthService) IssueSession(ctx context.Context, user *domain.User, userAgent, ip string) (*service.LoginResult, error) {
	return nil, nil
}
func (s *stubAuthService) Validate(ctx context.Context, accessToken, refreshToken, sessionID string) (*service.ValidateResult, error) {
	s.gotAccess = accessToken
	s.gotRefresh = refreshToken
	s.gotSession = sessionID
	return s.result, s.err
}
func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error { return nil }
func (s *stubAuthService) LogoutAll(ctx context.Context, userID string) error { return nil }
func (s *stubAuthService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return nil, nil
}

func authTestRouter(auth service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(Auth(auth, DefaultCookieConfig(false)))
	r.GET("/protected", func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no identity")
			return
		}
		c.String(http.StatusOK, identity.UserID)
	})
	return r
}

func TestAuth_ValidSession(t *testing.T) {
	stub := &stubAuthService{
		result: &service.ValidateResult{
			Identity: domain.Identity{UserID: "user-1", Email: "a@example.com", SessionID: "sess-1"},
		},
	}
	r := authTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "access"})
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "refresh"})
	req.AddCookie(&http.Cookie{Name: SessionIDCookie, Value: "sess-1"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "user-1" {
		t.Errorf("body = %q, want user-1", w.Body.String())
	}
	if stub.gotAccess != "access" || stub.gotRefresh != "refresh" || stub.gotSession != "sess-1" {
		t.Error("cookie triad not forwarded to Validate")
	}

	// No silent refresh happened, so no new access cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == AccessTokenCookie {
			t.Error("access cookie rewritten without a refresh")
		}
	}
}

func TestAuth_SilentRefreshRewritesAccessCookieOnly(t *testing.T) {
	stub := &stubAuthService{
		result: &service.ValidateResult{
			Identity:       domain.Identity{UserID: "user-1", SessionID: "sess-1"},
			NewAccessToken: "fresh-access",
		},
	}
	r := authTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "refresh"})
	req.AddCookie(&http.Cookie{Name: SessionIDCookie, Value: "sess-1"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var accessCookie *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		switch cookie.Name {
		case AccessTokenCookie:
			accessCookie = cookie
		case RefreshTokenCookie, SessionIDCookie:
			t.Errorf("cookie %s rewritten during silent refresh", cookie.Name)
		}
	}
	if accessCookie == nil {
		t.Fatal("access cookie not rewritten")
	}
	if accessCookie.Value != "fresh-access" {
		t.Errorf("access cookie = %q, want fresh-access", accessCookie.Value)
	}
	if !accessCookie.HttpOnly {
		t.Error("access cookie not httpOnly")
	}
	if accessCookie.Path != "/" {
		t.Errorf("access cookie path = %q, want /", accessCookie.Path)
	}
}

func TestAuth_Unauthorized(t *testing.T) {
	stub := &stubAuthService{err: service.ErrUnauthorized}
	r := authTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(w.Body.String(), "UNAUTHORIZED") {
		t.Errorf("body = %s, want UNAUTHORIZED error code", w.Body.String())
	}
}

func TestLocalRateLimiter(t *testing.T) {
	rl := NewLocalRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		BurstSize:         3,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d rejected within burst", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("request allowed after burst exhausted")
	}

	// Separate keys have separate buckets
	if !rl.Allow("5.6.7.8") {
		t.Error("request for a different IP rejected")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.Use(RateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	}))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, c.Request)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, c.Request)
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header not set")
	}
}
