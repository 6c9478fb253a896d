package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/service"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/response"
)

const (
	// AccessTokenCookie carries the short-lived access JWT
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie carries the long-lived refresh JWT
	RefreshTokenCookie = "refreshToken"
	// SessionIDCookie carries the session row ID
	SessionIDCookie = "sessionId"

	// IdentityKey is the gin context key for the authenticated identity
	IdentityKey = "identity"
)

// CookieConfig controls how auth cookies are written
type CookieConfig struct {
	// Secure marks cookies HTTPS-only; enabled in production
	Secure bool
	// AccessTTL is the access cookie lifetime
	AccessTTL time.Duration
	// RefreshTTL is the refresh and session cookie lifetime
	RefreshTTL time.Duration
}

// DefaultCookieConfig returns the cookie contract used by the frontend
func DefaultCookieConfig(secure bool) CookieConfig {
	return CookieConfig{
		Secure:     secure,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 960 * time.Hour,
	}
}

func setCookie(c *gin.Context, cfg CookieConfig, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", cfg.Secure, true)
}

// SetAuthCookies writes the full cookie triad after a login
func SetAuthCookies(c *gin.Context, cfg CookieConfig, accessToken, refreshToken, sessionID string) {
	setCookie(c, cfg, AccessTokenCookie, accessToken, cfg.AccessTTL)
	setCookie(c, cfg, RefreshTokenCookie, refreshToken, cfg.RefreshTTL)
	setCookie(c, cfg, SessionIDCookie, sessionID, cfg.RefreshTTL)
}

// SetAccessCookie rewrites only the access cookie after a silent refresh
func SetAccessCookie(c *gin.Context, cfg CookieConfig, accessToken string) {
	setCookie(c, cfg, AccessTokenCookie, accessToken, cfg.AccessTTL)
}

// ClearAuthCookies expires the full cookie triad on logout
func ClearAuthCookies(c *gin.Context, cfg CookieConfig) {
	setCookie(c, cfg, AccessTokenCookie, "", -time.Second)
	setCookie(c, cfg, RefreshTokenCookie, "", -time.Second)
	setCookie(c, cfg, SessionIDCookie, "", -time.Second)
}

// Auth middleware authenticates the request from the cookie triad and
// rewrites the access cookie when it was silently refreshed
func Auth(auth service.AuthService, cfg CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, _ := c.Cookie(AccessTokenCookie)
		refreshToken, _ := c.Cookie(RefreshTokenCookie)
		sessionID, _ := c.Cookie(SessionIDCookie)

		result, err := auth.Validate(c.Request.Context(), accessToken, refreshToken, sessionID)
		if err != nil {
			response.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		if result.NewAccessToken != "" {
			SetAccessCookie(c, cfg, result.NewAccessToken)
		}

		c.Set(IdentityKey, result.Identity)
		c.Next()
	}
}

// Identity returns the authenticated identity set by the Auth middleware
func Identity(c *gin.Context) (domain.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
