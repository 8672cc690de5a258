package google

import (
	"golang.org/x/oauth2"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

// credentialsTokenSource serves the installed token to Google API clients.
// It deliberately performs no refreshing: the session refreshes at most
// once during initialisation, and any later expiry surfaces to the caller
// as a provider error.
type credentialsTokenSource struct {
	creds *domain.OAuthCredentials
}

// NewTokenSource creates an oauth2.TokenSource from stored credentials.
// The returned TokenSource can be used with option.WithTokenSource() when
// creating Google API services.
func NewTokenSource(creds *domain.OAuthCredentials) oauth2.TokenSource {
	return &credentialsTokenSource{creds: creds}
}

// Token implements oauth2.TokenSource.
func (t *credentialsTokenSource) Token() (*oauth2.Token, error) {
	if t.creds == nil || t.creds.AccessToken == "" {
		return nil, domain.ErrNotAuthenticated
	}

	tokenType := t.creds.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &oauth2.Token{
		AccessToken: t.creds.AccessToken,
		TokenType:   tokenType,
	}, nil
}
