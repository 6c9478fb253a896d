package dto

import (
	"regexp"
)

// RequestOTPRequest starts a registration. The full signup payload is
// submitted here; the account stays pending until the OTP comes back.
type RequestOTPRequest struct {
	Username        string `json:"username" binding:"required,min=2,max=50"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ValidatePassword validates password length and confirmation
func (r *RequestOTPRequest) ValidatePassword() (bool, string) {
	if len(r.Password) < 6 {
		return false, "Password must be at least 6 characters"
	}
	if len(r.Password) > 50 {
		return false, "Password must not exceed 50 characters"
	}
	if r.Password != r.ConfirmPassword {
		return false, "Passwords do not match"
	}
	return true, ""
}

// ValidateEmail validates email format more strictly than the binding tag
func (r *RequestOTPRequest) ValidateEmail() (bool, string) {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(r.Email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// RegisterRequest completes a registration with the emailed OTP
type RegisterRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// LoginRequest represents a password login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RequestLoginOTPRequest requests a one-time login code by email
type RequestLoginOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyLoginOTPRequest completes a passwordless login
type VerifyLoginOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	AuthProvider string `json:"auth_provider"`
	CreatedAt    string `json:"created_at"`
}

// AuthResponse represents a successful authentication. Tokens travel in
// cookies, not in the body.
type AuthResponse struct {
	User UserResponse `json:"user"`
}

// OTPResponse acknowledges an OTP request. DevOTP carries the code in
// non-production environments only.
type OTPResponse struct {
	Message string `json:"message"`
	DevOTP  string `json:"dev_otp,omitempty"`
}

// ValidateResponse represents the session validation result
type ValidateResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          UserResponse `json:"user"`
}
