package services

import (
	"context"
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gcal-driver/internal/connectors/google"
	"github.com/custodia-labs/gcal-driver/internal/core/domain"
	"github.com/custodia-labs/gcal-driver/internal/core/ports/driven"
	"github.com/custodia-labs/gcal-driver/internal/logger"
)

// SessionOptions configures a Session.
type SessionOptions struct {
	// UserID identifies the webmail user the session belongs to.
	UserID string
	// RedirectURI is the host's OAuth callback route. The caller computes
	// it from its own base URL; it is never read from configuration.
	RedirectURI string
	// Config supplies the OAuth client credentials.
	Config driven.ConfigStore
	// Tokens persists the user's token records.
	Tokens driven.TokenStore

	// AuthURL, TokenURL and UserinfoURL override the provider endpoints.
	// Empty values mean Google's production endpoints.
	AuthURL     string
	TokenURL    string
	UserinfoURL string
	// ServiceOptions are extra client options for the Calendar service.
	ServiceOptions []option.ClientOption
}

// Session holds one user's authentication state for the lifetime of a
// request. It is built once at driver initialisation and not shared
// between goroutines.
type Session struct {
	opts    SessionOptions
	handler *google.OAuthHandler
	store   driven.TokenStore

	creds *domain.Credentials
	svc   *calendar.Service
	ready bool
}

// NewSession builds a session for the user. When the OAuth client
// credentials are not configured the session comes up disabled: every
// operation on it degrades to its empty result and AuthURL returns "".
//
// If a stored token is expired and refreshable, exactly one refresh is
// attempted here. A failed refresh still returns a usable (unauthenticated)
// session alongside the error, so the host can keep rendering and offer
// re-authorization.
func NewSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	s := &Session{opts: opts, store: opts.Tokens}

	clientID := opts.Config.GetString(driven.ConfigClientID)
	clientSecret := opts.Config.GetString(driven.ConfigClientSecret)
	if clientID == "" || clientSecret == "" {
		logger.Debug("session: oauth client not configured, driver disabled")
		return s, nil
	}

	s.ready = true
	s.handler = google.NewOAuthHandler(google.OAuthConfig{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURI:  opts.RedirectURI,
		AuthURL:      opts.AuthURL,
		TokenURL:     opts.TokenURL,
	})

	creds, err := s.store.Load(ctx, opts.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading stored token: %w", err)
	}
	if creds == nil {
		return s, nil
	}

	if creds.NeedsRefresh() {
		fresh, err := s.handler.Refresh(ctx, creds.OAuth.RefreshToken)
		if err != nil {
			logger.Warn("session: token refresh failed for user %s: %v", opts.UserID, err)
			return s, fmt.Errorf("%w: %v", domain.ErrTokenRefreshFailed, err)
		}
		creds.OAuth.Merge(fresh)
		creds.UpdatedAt = time.Now().UTC()
		if err := s.store.Save(ctx, *creds); err != nil {
			return nil, fmt.Errorf("persisting refreshed token: %w", err)
		}
		logger.Debug("session: refreshed token for user %s", opts.UserID)
	}

	if err := s.install(ctx, creds); err != nil {
		return nil, err
	}
	return s, nil
}

// install makes creds the session's active credentials and builds the
// Calendar client on top of them.
func (s *Session) install(ctx context.Context, creds *domain.Credentials) error {
	if creds == nil || !creds.IsAuthenticated() {
		s.creds = creds
		return nil
	}

	svc, err := google.NewCalendarService(ctx, google.NewTokenSource(creds.OAuth), s.opts.ServiceOptions...)
	if err != nil {
		return fmt.Errorf("building calendar client: %w", err)
	}

	s.creds = creds
	s.svc = svc
	return nil
}

// Ready reports whether the OAuth client credentials are configured.
func (s *Session) Ready() bool {
	return s.ready
}

// IsAuthenticated reports whether the session carries a usable token.
func (s *Session) IsAuthenticated() bool {
	return s.creds != nil && s.creds.IsAuthenticated()
}

// Account returns the linked Google account's email address, empty when
// not authenticated.
func (s *Session) Account() string {
	if s.creds == nil {
		return ""
	}
	return s.creds.AccountOrEmail()
}

// Service returns the authenticated Calendar client, nil when the session
// is disabled or unauthenticated.
func (s *Session) Service() *calendar.Service {
	return s.svc
}

// AuthURL returns the provider consent URL for the given state value, or
// "" when the OAuth client is not configured.
func (s *Session) AuthURL(state string) string {
	if !s.ready {
		return ""
	}
	return s.handler.AuthCodeURL(state)
}

// HandleCallback completes the authorization code flow: it exchanges the
// code, resolves the account's email address and persists the token keyed
// by it. Returns the email address on success. Nothing is persisted on any
// failure path.
func (s *Session) HandleCallback(ctx context.Context, code string) (string, error) {
	if !s.ready {
		return "", domain.ErrClientNotReady
	}
	if code == "" {
		return "", domain.ErrMissingCode
	}

	oauth, err := s.handler.Exchange(ctx, code)
	if err != nil {
		return "", err
	}

	info, err := s.userInfo(ctx, oauth.AccessToken)
	if err != nil {
		return "", fmt.Errorf("resolving account: %w", err)
	}
	oauth.Email = info.Email

	now := time.Now().UTC()
	creds := &domain.Credentials{
		UserID:    s.opts.UserID,
		Account:   info.Email,
		OAuth:     oauth,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, *creds); err != nil {
		return "", fmt.Errorf("persisting token: %w", err)
	}

	if err := s.install(ctx, creds); err != nil {
		return "", err
	}

	logger.Info("session: linked account %s for user %s", info.Email, s.opts.UserID)
	return info.Email, nil
}

// Disconnect removes the user's stored tokens and resets the session to
// the unauthenticated state.
func (s *Session) Disconnect(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.opts.UserID); err != nil {
		return fmt.Errorf("deleting stored token: %w", err)
	}
	s.creds = nil
	s.svc = nil
	return nil
}

func (s *Session) userInfo(ctx context.Context, accessToken string) (*google.UserInfo, error) {
	if s.opts.UserinfoURL != "" {
		return google.GetUserInfoFrom(ctx, s.opts.UserinfoURL, accessToken)
	}
	return google.GetUserInfo(ctx, accessToken)
}
