package domain

import "time"

// Credentials is the per-user OAuth token record. Each webmail user has at
// most one record per linked Google account; the (UserID, Account) pair is
// the unique key in storage.
type Credentials struct {
	// UserID identifies the webmail user the token belongs to.
	UserID string `json:"user_id"`

	// Account is the Google account's email address, empty until the first
	// successful authorization resolves it from the userinfo endpoint.
	Account string `json:"account,omitempty"`

	// OAuth holds the token material. Nil means no authorization yet.
	OAuth *OAuthCredentials `json:"oauth,omitempty"`

	// CreatedAt is when the record was first stored.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the record was last stored.
	UpdatedAt time.Time `json:"updated_at"`
}

// OAuthCredentials stores the OAuth token material for one account.
type OAuthCredentials struct {
	// AccessToken is the bearer token for API access.
	AccessToken string `json:"access_token"`
	// RefreshToken is used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
	// TokenType is typically "Bearer".
	TokenType string `json:"token_type,omitempty"`
	// Expiry is when the access token expires. Zero means unknown,
	// treated as not expired.
	Expiry time.Time `json:"expiry,omitempty"`
	// Email is the account address the provider embedded in the token
	// response, used to derive Account when no explicit address is given.
	Email string `json:"email,omitempty"`
}

// IsExpired returns true if the access token has expired.
func (c *OAuthCredentials) IsExpired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Now().After(c.Expiry)
}

// Merge folds a freshly issued token into c. Google omits the refresh token
// on refresh responses, so the previous one is preserved when the new token
// carries none.
func (c *OAuthCredentials) Merge(fresh *OAuthCredentials) {
	if fresh == nil {
		return
	}
	refresh := fresh.RefreshToken
	if refresh == "" {
		refresh = c.RefreshToken
	}
	email := fresh.Email
	if email == "" {
		email = c.Email
	}
	*c = *fresh
	c.RefreshToken = refresh
	c.Email = email
}

// IsAuthenticated returns true if the record contains a usable token.
func (c *Credentials) IsAuthenticated() bool {
	return c.OAuth != nil && c.OAuth.AccessToken != ""
}

// NeedsRefresh returns true if the token is expired and refreshable.
func (c *Credentials) NeedsRefresh() bool {
	if c.OAuth == nil {
		return false
	}
	return c.OAuth.IsExpired() && c.OAuth.RefreshToken != ""
}

// AccountOrEmail resolves the account key for storage: the explicit Account
// field when set, else the email embedded in the token.
func (c *Credentials) AccountOrEmail() string {
	if c.Account != "" {
		return c.Account
	}
	if c.OAuth != nil {
		return c.OAuth.Email
	}
	return ""
}
