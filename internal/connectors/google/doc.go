// Package google provides the shared Google API infrastructure for the
// calendar driver:
//
//   - OAuthHandler for the authorization code flow (golang.org/x/oauth2)
//   - TokenSource adapter bridging stored credentials to Google API clients
//   - Service factory for the Calendar API client
//   - Userinfo lookup to resolve the authenticated account's email
//   - Error mapping for common Google API errors (401, 403, 404, 429)
//   - Rate limiting to respect Google API quotas
//
// # OAuth2 Scopes
//
// The driver requests exactly two scopes:
//   - https://www.googleapis.com/auth/calendar.readonly (sensitive)
//   - https://www.googleapis.com/auth/userinfo.email (non-sensitive)
//
// Write scopes are never requested: the driver is read-only by policy.
package google
