package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"

	"github.com/GURUDAS-DEV/NOVA-BOT-STUDIO-BACKEND/internal/domain"
)

var (
	ErrUnknownProvider = errors.New("unknown oauth provider")
	ErrOAuthExchange   = errors.New("oauth code exchange failed")
	ErrOAuthNoEmail    = errors.New("oauth provider returned no email")
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	githubUserURL     = "https://api.github.com/user"
	githubEmailsURL   = "https://api.github.com/user/emails"
)

// OAuthProviderConfig holds one provider's client credentials
type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// OAuthServiceConfig holds configuration for OAuthService
type OAuthServiceConfig struct {
	Google OAuthProviderConfig
	GitHub OAuthProviderConfig
}

// oauthProfile is the provider-neutral identity extracted from userinfo
type oauthProfile struct {
	ProviderID string
	Email      string
	Name       string
}

// OAuthService handles the Google and GitHub login flows
type OAuthService interface {
	// AuthURL builds the provider consent page URL for a state value
	AuthURL(provider string, state string) (string, error)
	// HandleCallback exchanges the code, resolves the user by email,
	// and issues a session
	HandleCallback(ctx context.Context, provider, code, userAgent, ip string) (*LoginResult, error)
}

type oauthService struct {
	auth    AuthService
	users   userUpserter
	configs map[string]*oauth2.Config
	client  *http.Client
}

// userUpserter is the slice of repository.UserRepository the OAuth flow needs
type userUpserter interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	LinkProviderID(ctx context.Context, id string, provider domain.AuthProvider, providerID string) error
}

// NewOAuthService creates a new OAuthService
func NewOAuthService(auth AuthService, users userUpserter, cfg *OAuthServiceConfig) OAuthService {
	configs := map[string]*oauth2.Config{
		"google": {
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		"github": {
			ClientID:     cfg.GitHub.ClientID,
			ClientSecret: cfg.GitHub.ClientSecret,
			RedirectURL:  cfg.GitHub.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
	}
	return &oauthService{
		auth:    auth,
		users:   users,
		configs: configs,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL builds the provider consent page URL
func (s *oauthService) AuthURL(provider string, state string) (string, error) {
	cfg, ok := s.configs[provider]
	if !ok {
		return "", ErrUnknownProvider
	}
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// HandleCallback exchanges the code and issues a session. Accounts are
// keyed by email: an existing user logging in through a provider is
// linked rather than duplicated.
func (s *oauthService) HandleCallback(ctx context.Context, provider, code, userAgent, ip string) (*LoginResult, error) {
	cfg, ok := s.configs[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOAuthExchange, err)
	}

	var profile *oauthProfile
	switch provider {
	case "google":
		profile, err = s.fetchGoogleProfile(ctx, tok)
	case "github":
		profile, err = s.fetchGitHubProfile(ctx, tok)
	}
	if err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, ErrOAuthNoEmail
	}

	authProvider := domain.ProviderGoogle
	if provider == "github" {
		authProvider = domain.ProviderGitHub
	}

	user, err := s.users.GetByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		now := time.Now()
		user = &domain.User{
			ID:           uuid.New().String(),
			Email:        profile.Email,
			Username:     profile.Name,
			AuthProvider: authProvider,
			ProviderID:   &profile.ProviderID,
			Verified:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	} else {
		if err := s.users.LinkProviderID(ctx, user.ID, authProvider, profile.ProviderID); err != nil {
			return nil, err
		}
		user.AuthProvider = authProvider
		user.ProviderID = &profile.ProviderID
		user.Verified = true
	}

	return s.auth.IssueSession(ctx, user, userAgent, ip)
}

func (s *oauthService) fetchGoogleProfile(ctx context.Context, tok *oauth2.Token) (*oauthProfile, error) {
	body, err := s.getJSON(ctx, tok, googleUserInfoURL)
	if err != nil {
		return nil, err
	}

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode google userinfo: %w", err)
	}

	return &oauthProfile{ProviderID: info.ID, Email: info.Email, Name: info.Name}, nil
}

func (s *oauthService) fetchGitHubProfile(ctx context.Context, tok *oauth2.Token) (*oauthProfile, error) {
	body, err := s.getJSON(ctx, tok, githubUserURL)
	if err != nil {
		return nil, err
	}

	var info struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode github user: %w", err)
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}

	email := info.Email
	if email == "" {
		// Private emails require the dedicated endpoint
		email, err = s.fetchGitHubPrimaryEmail(ctx, tok)
		if err != nil {
			return nil, err
		}
	}

	return &oauthProfile{
		ProviderID: fmt.Sprintf("%d", info.ID),
		Email:      email,
		Name:       name,
	}, nil
}

func (s *oauthService) fetchGitHubPrimaryEmail(ctx context.Context, tok *oauth2.Token) (string, error) {
	body, err := s.getJSON(ctx, tok, githubEmailsURL)
	if err != nil {
		return "", err
	}

	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := json.Unmarshal(body, &emails); err != nil {
		return "", fmt.Errorf("failed to decode github emails: %w", err)
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	return "", ErrOAuthNoEmail
}

func (s *oauthService) getJSON(ctx context.Context, tok *oauth2.Token, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	tok.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
