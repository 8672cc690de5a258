// Package domain defines the core entities for the Google Calendar driver.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Event: A calendar event in the host application's schema
//   - Calendar: A calendar descriptor shown in the host calendar list
//   - Credentials: The per-user OAuth token record
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
