package handler

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/middleware"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/service"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/logger"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/response"
)

const (
	oauthStateCookie = "oauthState"
	oauthStateTTL    = 10 * time.Minute
)

// OAuthHandler handles the Google and GitHub login flows
type OAuthHandler struct {
	oauthService service.OAuthService
	cookies      middleware.CookieConfig
	frontendURL  string
	log          *logger.Logger
}

// NewOAuthHandler creates a new OAuthHandler
func NewOAuthHandler(oauthService service.OAuthService, cookies middleware.CookieConfig, frontendURL string) *OAuthHandler {
	return &OAuthHandler{
		oauthService: oauthService,
		cookies:      cookies,
		frontendURL:  frontendURL,
		log:          logger.Get(),
	}
}

func newState() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}

// begin redirects the browser to the provider consent page
func (h *OAuthHandler) begin(c *gin.Context, provider string) {
	state, err := newState()
	if err != nil {
		response.InternalError(c, err)
		return
	}

	url, err := h.oauthService.AuthURL(provider, state)
	if err != nil {
		response.BadRequest(c, "Unknown provider")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, int(oauthStateTTL.Seconds()), "/", "", h.cookies.Secure, true)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// callback completes the flow and redirects back to the frontend
func (h *OAuthHandler) callback(c *gin.Context, provider string) {
	state := c.Query("state")
	expected, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(state), []byte(expected)) != 1 {
		response.Unauthorized(c, "Invalid OAuth state")
		return
	}

	// State is single use
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, "", -1, "/", "", h.cookies.Secure, true)

	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "Missing authorization code")
		return
	}

	result, err := h.oauthService.HandleCallback(c.Request.Context(), provider, code, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		h.log.Warn("oauth callback failed",
			zap.String("provider", provider),
			zap.Error(err),
		)
		c.Redirect(http.StatusTemporaryRedirect, h.frontendURL+"/login?error=oauth")
		return
	}

	middleware.SetAuthCookies(c, h.cookies, result.AccessToken, result.RefreshToken, result.SessionID)
	c.Redirect(http.StatusTemporaryRedirect, h.frontendURL)
}

// Google handles GET /api/auth/google
func (h *OAuthHandler) Google(c *gin.Context) {
	h.begin(c, "google")
}

// GoogleCallback handles GET /api/auth/google/callback
func (h *OAuthHandler) GoogleCallback(c *gin.Context) {
	h.callback(c, "google")
}

// GitHub handles GET /api/auth/github
func (h *OAuthHandler) GitHub(c *gin.Context) {
	h.begin(c, "github")
}

// GitHubCallback handles GET /api/auth/github/callback
func (h *OAuthHandler) GitHubCallback(c *gin.Context) {
	h.callback(c, "github")
}
