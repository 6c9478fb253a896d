package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
)

// TokenType discriminates access tokens from refresh tokens so that a
// refresh token can never be replayed as an access token.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims are the JWT claims carried by both token kinds
type Claims struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// Config holds signing configuration for the codec
type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Codec issues and verifies the two token kinds. Each kind is signed
// with its own secret, so a token verifies only against its own kind.
type Codec struct {
	cfg Config
	now func() time.Time
}

// NewCodec creates a token codec
func NewCodec(cfg Config) *Codec {
	return &Codec{cfg: cfg, now: time.Now}
}

// IssueAccess mints a short-lived access token
func (c *Codec) IssueAccess(userID, username, email string) (string, error) {
	return c.issue(userID, username, email, TypeAccess, c.cfg.AccessSecret, c.cfg.AccessTTL)
}

// IssueRefresh mints a long-lived refresh token
func (c *Codec) IssueRefresh(userID, username, email string) (string, error) {
	return c.issue(userID, username, email, TypeRefresh, c.cfg.RefreshSecret, c.cfg.RefreshTTL)
}

// IssuePair mints both token kinds for an identity. ExpiresIn reports
// the access token's lifetime; the refresh token outlives it.
func (c *Codec) IssuePair(userID, username, email string) (*domain.TokenPair, error) {
	access, err := c.IssueAccess(userID, username, email)
	if err != nil {
		return nil, err
	}
	refresh, err := c.IssueRefresh(userID, username, email)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(c.cfg.AccessTTL.Seconds()),
	}, nil
}

func (c *Codec) issue(userID, username, email string, typ TokenType, secret string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := Claims{
		UserID:    userID,
		Username:  username,
		Email:     email,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyAccess verifies an access token. It returns nil for any failure:
// bad signature, expiry, wrong token type, or malformed input. Callers
// treat nil uniformly and never learn why verification failed.
func (c *Codec) VerifyAccess(tokenString string) *Claims {
	return c.verify(tokenString, TypeAccess, c.cfg.AccessSecret)
}

// VerifyRefresh verifies a refresh token, returning nil for any failure
func (c *Codec) VerifyRefresh(tokenString string) *Claims {
	return c.verify(tokenString, TypeRefresh, c.cfg.RefreshSecret)
}

func (c *Codec) verify(tokenString string, typ TokenType, secret string) *Claims {
	if tokenString == "" {
		return nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(c.now))

	if err != nil || !token.Valid {
		return nil
	}
	if claims.TokenType != typ {
		return nil
	}
	return claims
}
