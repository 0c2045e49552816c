// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - APIClient: The only channel to the publication service
//   - SessionStore: Credential file persistence
//   - ConfigStore: Service configuration (base URL)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TokenInspector: Reads access token expiry. Without it, Identity.ExpiresAt is zero.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
