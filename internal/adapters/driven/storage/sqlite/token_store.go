package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
	"github.com/custodia-labs/gcal-driver/internal/core/ports/driven"
)

type tokenStore struct {
	store *Store
}

var _ driven.TokenStore = (*tokenStore)(nil)

// storedToken is the on-disk token shape. Besides the current fields it
// carries the legacy created/expires_in pair written by earlier releases,
// which Load folds into an absolute expiry.
type storedToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	Email        string    `json:"email,omitempty"`
	Expiry       time.Time `json:"expiry,omitempty"`

	// Legacy fields: unix creation time plus lifetime in seconds.
	Created   int64 `json:"created,omitempty"`
	ExpiresIn int64 `json:"expires_in,omitempty"`
}

// Save stores or updates a token record keyed by (user, account).
func (s *tokenStore) Save(ctx context.Context, creds domain.Credentials) error {
	if creds.UserID == "" || !creds.IsAuthenticated() {
		return domain.ErrInvalidInput
	}

	blob, err := json.Marshal(storedToken{
		AccessToken:  creds.OAuth.AccessToken,
		RefreshToken: creds.OAuth.RefreshToken,
		TokenType:    creds.OAuth.TokenType,
		Email:        creds.OAuth.Email,
		Expiry:       creds.OAuth.Expiry,
	})
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}

	createdAt := creds.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := creds.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO oauth_tokens
			(user_id, account, token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, account) DO UPDATE SET
			token = excluded.token,
			updated_at = excluded.updated_at
	`, creds.UserID, creds.AccountOrEmail(), string(blob), createdAt, updatedAt)

	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

// Load returns the user's token record, or nil when none is stored.
// With several linked accounts the first by account ordering wins.
func (s *tokenStore) Load(ctx context.Context, userID string) (*domain.Credentials, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT user_id, account, token, created_at, updated_at
		FROM oauth_tokens WHERE user_id = ?
		ORDER BY account LIMIT 1
	`, userID)

	var creds domain.Credentials
	var blob string
	if err := row.Scan(&creds.UserID, &creds.Account, &blob,
		&creds.CreatedAt, &creds.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning token: %w", err)
	}

	oauth, err := decodeToken(blob)
	if err != nil {
		return nil, fmt.Errorf("decoding token for %s: %w", creds.Account, err)
	}
	creds.OAuth = oauth

	return &creds, nil
}

// Delete removes all token rows for the user.
func (s *tokenStore) Delete(ctx context.Context, userID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM oauth_tokens WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("deleting tokens: %w", err)
	}
	return nil
}

// decodeToken normalises a stored token blob. Blobs that are not valid
// JSON objects are treated as a bare access token, the oldest format the
// host ever wrote.
func decodeToken(blob string) (*domain.OAuthCredentials, error) {
	var st storedToken
	if err := json.Unmarshal([]byte(blob), &st); err != nil {
		return &domain.OAuthCredentials{AccessToken: blob}, nil
	}

	oauth := &domain.OAuthCredentials{
		AccessToken:  st.AccessToken,
		RefreshToken: st.RefreshToken,
		TokenType:    st.TokenType,
		Email:        st.Email,
		Expiry:       st.Expiry,
	}

	if oauth.Expiry.IsZero() && st.Created > 0 && st.ExpiresIn > 0 {
		oauth.Expiry = time.Unix(st.Created+st.ExpiresIn, 0).UTC()
	}

	return oauth, nil
}
