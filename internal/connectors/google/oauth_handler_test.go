package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gcal-driver/internal/core/domain"
)

func TestAuthCodeURL(t *testing.T) {
	h := NewOAuthHandler(OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "https://mail.example.com/oauth/google",
	})

	raw := h.AuthCodeURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "https://mail.example.com/oauth/google", q.Get("redirect_uri"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Contains(t, q.Get("scope"), "calendar.readonly")
	assert.Contains(t, q.Get("scope"), "userinfo.email")
	// Read-only scope only: the broad calendar scope must never be requested.
	assert.NotContains(t, q.Get("scope"), "auth/calendar ")
}

func TestExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "the-code", r.Form.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"at","refresh_token":"rt","token_type":"Bearer","expires_in":3600}`)
	}))
	defer srv.Close()

	h := NewOAuthHandler(OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     srv.URL,
	})

	creds, err := h.Exchange(context.Background(), "the-code")
	require.NoError(t, err)

	assert.Equal(t, "at", creds.AccessToken)
	assert.Equal(t, "rt", creds.RefreshToken)
	assert.Equal(t, "Bearer", creds.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), creds.Expiry, 5*time.Second)
}

func TestExchange_ProviderErrorTagPreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_grant","error_description":"Bad authorization code."}`)
	}))
	defer srv.Close()

	h := NewOAuthHandler(OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     srv.URL,
	})

	_, err := h.Exchange(context.Background(), "rejected")
	require.Error(t, err)

	perr, ok := domain.AsProviderError(err)
	require.True(t, ok)
	assert.Equal(t, "invalid_grant", perr.Code)
	assert.Equal(t, "Bad authorization code.", perr.Description)
}

func TestRefresh_SingleRoundTrip(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "rt", r.Form.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`)
	}))
	defer srv.Close()

	h := NewOAuthHandler(OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     srv.URL,
	})

	creds, err := h.Refresh(context.Background(), "rt")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "fresh", creds.AccessToken)
	// The provider omitted the refresh token; the caller merges the old one.
	assert.Empty(t, creds.RefreshToken)
}

func TestGetUserInfoFrom(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"email":"alice@example.com","verified_email":true,"name":"Alice"}`)
	}))
	defer srv.Close()

	info, err := GetUserInfoFrom(context.Background(), srv.URL, "at")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", info.Email)
	assert.True(t, info.VerifiedEmail)
	assert.Equal(t, "Alice", info.Name)
}

func TestGetUserInfoFrom_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := GetUserInfoFrom(context.Background(), srv.URL, "expired")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
