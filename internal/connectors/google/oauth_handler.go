package google

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

// userinfoEmailScope lets the driver resolve the authenticated account's
// email address, which keys the stored token.
const userinfoEmailScope = "https://www.googleapis.com/auth/userinfo.email"

// OAuthConfig holds the OAuth application settings for the handler.
// AuthURL and TokenURL are optional overrides; empty values default to
// Google's endpoints.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	// RedirectURI is computed by the caller from its own callback route,
	// never read from configuration.
	RedirectURI string
	AuthURL     string
	TokenURL    string
}

// OAuthHandler implements the authorization code flow for Google.
// It wraps an oauth2.Config with the driver's fixed read-only scope,
// offline access type, and forced consent prompt.
type OAuthHandler struct {
	cfg *oauth2.Config
}

// NewOAuthHandler creates an OAuth handler from application settings.
func NewOAuthHandler(cfg OAuthConfig) *OAuthHandler {
	endpoint := google.Endpoint
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	return &OAuthHandler{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{calendar.CalendarReadonlyScope, userinfoEmailScope},
			Endpoint:     endpoint,
		},
	}
}

// AuthCodeURL returns the provider's consent URL. Offline access and a
// forced consent prompt make Google issue a refresh token on every
// authorization, not only the first.
func (h *OAuthHandler) AuthCodeURL(state string) string {
	return h.cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for tokens. Provider-reported
// errors (e.g. invalid_grant for a rejected code) surface as
// *domain.OAuthProviderError with the provider's tag preserved.
func (h *OAuthHandler) Exchange(ctx context.Context, code string) (*domain.OAuthCredentials, error) {
	tok, err := h.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, wrapOAuthError(err)
	}
	return credentialsFromToken(tok), nil
}

// Refresh performs one refresh round trip through the oauth2 library.
// This is the driver's only refresh path: a single best-effort attempt,
// no retries.
func (h *OAuthHandler) Refresh(ctx context.Context, refreshToken string) (*domain.OAuthCredentials, error) {
	src := h.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, wrapOAuthError(err)
	}
	return credentialsFromToken(tok), nil
}

// credentialsFromToken converts an oauth2 token into the domain shape.
func credentialsFromToken(tok *oauth2.Token) *domain.OAuthCredentials {
	creds := &domain.OAuthCredentials{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		creds.Expiry = tok.Expiry.UTC().Truncate(time.Second)
	}
	return creds
}

// wrapOAuthError converts oauth2 retrieval errors carrying a provider
// error tag into *domain.OAuthProviderError. Transport errors pass
// through unmodified.
func wrapOAuthError(err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) && rerr.ErrorCode != "" {
		return &domain.OAuthProviderError{
			Code:        rerr.ErrorCode,
			Description: rerr.ErrorDescription,
		}
	}
	return err
}
