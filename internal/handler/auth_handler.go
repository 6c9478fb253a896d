package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/dto"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/middleware"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/service"
	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/pkg/response"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService service.AuthService
	cookies     middleware.CookieConfig
	// exposeOTP returns generated codes in responses outside production
	exposeOTP bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, cookies middleware.CookieConfig, exposeOTP bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		exposeOTP:   exposeOTP,
	}
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		AuthProvider: string(user.AuthProvider),
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
	}
}

// respondAuthError maps auth service errors to HTTP responses
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists):
		response.Conflict(c, "An account with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, "No account found for this email")
	case errors.Is(err, service.ErrOTPInvalid):
		response.Error(c, http.StatusUnauthorized, "OTP_INVALID", "Invalid verification code", "")
	case errors.Is(err, service.ErrOTPExpired):
		response.Error(c, http.StatusUnauthorized, "OTP_EXPIRED", "Verification code has expired", "")
	case errors.Is(err, service.ErrOTPAttemptsExceeded):
		response.Error(c, http.StatusBadRequest, "OTP_ATTEMPTS_EXCEEDED", "Too many failed attempts. Please request a new code.", "")
	case errors.Is(err, service.ErrUnauthorized):
		response.Unauthorized(c, "Not authenticated")
	default:
		response.InternalError(c, err)
	}
}

// RequestOTP handles POST /api/auth/otp
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if ok, msg := req.ValidatePassword(); !ok {
		response.BadRequest(c, msg)
		return
	}
	if ok, msg := req.ValidateEmail(); !ok {
		response.BadRequest(c, msg)
		return
	}

	code, err := h.authService.RequestRegistrationOTP(c.Request.Context(), &req)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	resp := dto.OTPResponse{Message: "Verification code sent"}
	if h.exposeOTP {
		resp.DevOTP = code
	}
	response.Success(c, resp)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.CompleteRegistration(c.Request.Context(), &req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		respondAuthError(c, err)
		return
	}

	middleware.SetAuthCookies(c, h.cookies, result.AccessToken, result.RefreshToken, result.SessionID)
	response.Success(c, dto.AuthResponse{User: toUserResponse(result.User)})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.LoginWithPassword(c.Request.Context(), &req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		respondAuthError(c, err)
		return
	}

	middleware.SetAuthCookies(c, h.cookies, result.AccessToken, result.RefreshToken, result.SessionID)
	response.Success(c, dto.AuthResponse{User: toUserResponse(result.User)})
}

// RequestLoginOTP handles POST /api/auth/login/otp
func (h *AuthHandler) RequestLoginOTP(c *gin.Context) {
	var req dto.RequestLoginOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	code, err := h.authService.RequestLoginOTP(c.Request.Context(), req.Email, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		respondAuthError(c, err)
		return
	}

	resp := dto.OTPResponse{Message: "Login code sent"}
	if h.exposeOTP {
		resp.DevOTP = code
	}
	response.Success(c, resp)
}

// VerifyLoginOTP handles POST /api/auth/login/otp/verify
func (h *AuthHandler) VerifyLoginOTP(c *gin.Context) {
	var req dto.VerifyLoginOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.LoginWithOTP(c.Request.Context(), &req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		respondAuthError(c, err)
		return
	}

	middleware.SetAuthCookies(c, h.cookies, result.AccessToken, result.RefreshToken, result.SessionID)
	response.Success(c, dto.AuthResponse{User: toUserResponse(result.User)})
}

// Validate handles GET /api/auth/validate. It runs the same check as
// the auth middleware but reports the result instead of guarding.
func (h *AuthHandler) Validate(c *gin.Context) {
	accessToken, _ := c.Cookie(middleware.AccessTokenCookie)
	refreshToken, _ := c.Cookie(middleware.RefreshTokenCookie)
	sessionID, _ := c.Cookie(middleware.SessionIDCookie)

	result, err := h.authService.Validate(c.Request.Context(), accessToken, refreshToken, sessionID)
	if err != nil {
		// A dead session's cookies are useless, drop them so the
		// browser stops presenting them
		if errors.Is(err, service.ErrUnauthorized) {
			middleware.ClearAuthCookies(c, h.cookies)
		}
		respondAuthError(c, err)
		return
	}

	if result.NewAccessToken != "" {
		middleware.SetAccessCookie(c, h.cookies, result.NewAccessToken)
	}

	user, err := h.authService.GetUser(c.Request.Context(), result.Identity.UserID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	response.Success(c, dto.ValidateResponse{
		Authenticated: true,
		User:          toUserResponse(user),
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(middleware.SessionIDCookie)

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		response.InternalError(c, err)
		return
	}

	middleware.ClearAuthCookies(c, h.cookies)
	response.Success(c, gin.H{"message": "Logged out"})
}

// LogoutAll handles POST /api/auth/logout/all. It revokes every session
// of the authenticated user, not just the one presented.
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.authService.LogoutAll(c.Request.Context(), identity.UserID); err != nil {
		response.InternalError(c, err)
		return
	}

	middleware.ClearAuthCookies(c, h.cookies)
	response.Success(c, gin.H{"message": "Logged out everywhere"})
}
