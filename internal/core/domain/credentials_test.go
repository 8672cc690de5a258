package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOAuthCredentialsIsExpired(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		want   bool
	}{
		{
			name:   "zero expiry never expires",
			expiry: time.Time{},
			want:   false,
		},
		{
			name:   "future expiry",
			expiry: time.Now().Add(time.Hour),
			want:   false,
		},
		{
			name:   "past expiry",
			expiry: time.Now().Add(-time.Hour),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := OAuthCredentials{AccessToken: "tok", Expiry: tt.expiry}
			assert.Equal(t, tt.want, c.IsExpired())
		})
	}
}

func TestOAuthCredentialsMerge(t *testing.T) {
	old := OAuthCredentials{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		TokenType:    "Bearer",
		Email:        "user@gmail.com",
	}

	t.Run("refresh token preserved when provider omits it", func(t *testing.T) {
		c := old
		c.Merge(&OAuthCredentials{AccessToken: "new-access", TokenType: "Bearer"})
		assert.Equal(t, "new-access", c.AccessToken)
		assert.Equal(t, "old-refresh", c.RefreshToken)
		assert.Equal(t, "user@gmail.com", c.Email)
	})

	t.Run("new refresh token wins when present", func(t *testing.T) {
		c := old
		c.Merge(&OAuthCredentials{AccessToken: "new-access", RefreshToken: "new-refresh"})
		assert.Equal(t, "new-refresh", c.RefreshToken)
	})

	t.Run("nil merge is a no-op", func(t *testing.T) {
		c := old
		c.Merge(nil)
		assert.Equal(t, old, c)
	})
}

func TestCredentialsNeedsRefresh(t *testing.T) {
	tests := []struct {
		name  string
		oauth *OAuthCredentials
		want  bool
	}{
		{
			name:  "no oauth",
			oauth: nil,
			want:  false,
		},
		{
			name: "expired with refresh token",
			oauth: &OAuthCredentials{
				AccessToken:  "tok",
				RefreshToken: "refresh",
				Expiry:       time.Now().Add(-time.Minute),
			},
			want: true,
		},
		{
			name: "expired without refresh token",
			oauth: &OAuthCredentials{
				AccessToken: "tok",
				Expiry:      time.Now().Add(-time.Minute),
			},
			want: false,
		},
		{
			name: "current token",
			oauth: &OAuthCredentials{
				AccessToken:  "tok",
				RefreshToken: "refresh",
				Expiry:       time.Now().Add(time.Hour),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Credentials{UserID: "u1", OAuth: tt.oauth}
			assert.Equal(t, tt.want, c.NeedsRefresh())
		})
	}
}

func TestCredentialsAccountOrEmail(t *testing.T) {
	c := Credentials{Account: "explicit@gmail.com", OAuth: &OAuthCredentials{Email: "embedded@gmail.com"}}
	assert.Equal(t, "explicit@gmail.com", c.AccountOrEmail())

	c.Account = ""
	assert.Equal(t, "embedded@gmail.com", c.AccountOrEmail())

	c.OAuth = nil
	assert.Equal(t, "", c.AccountOrEmail())
}
