// Package driving defines the interfaces through which the host application
// drives this adapter.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The webmail host calls these interfaces; internal/adapters/driving
// implements them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or service package
package driving
