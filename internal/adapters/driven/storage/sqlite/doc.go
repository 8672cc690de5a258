// Package sqlite implements the driver's persistent stores on SQLite.
// It uses the pure-Go modernc.org/sqlite driver, so the host binary needs
// no cgo. Token records live in a single oauth_tokens table keyed by
// (user, account); versioned migrations embedded at compile time create
// the schema idempotently on first open.
package sqlite
