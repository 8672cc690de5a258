package driven

import (
	"context"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

// TokenStore persists per-user OAuth token records. Rows are keyed by
// (user, account); a user may have several linked accounts but the driver
// currently operates on one.
type TokenStore interface {
	// Load returns the user's most recent token record, picking the first
	// row by stable account ordering when several accounts are linked.
	// Returns nil with no error when the user has no stored token.
	Load(ctx context.Context, userID string) (*domain.Credentials, error)

	// Save stores a token record. Creates if new, updates in place on
	// refresh. The upsert key is (UserID, AccountOrEmail()).
	Save(ctx context.Context, creds domain.Credentials) error

	// Delete removes all token rows for the user (full disconnect).
	Delete(ctx context.Context, userID string) error
}
