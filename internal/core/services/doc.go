// Package services contains the application services sitting between the
// driving adapters and the provider connector. The session service owns the
// OAuth lifecycle for one webmail user: loading stored credentials,
// refreshing them at most once, and exposing an authenticated Calendar
// client to the rest of the driver.
package services
