// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Every authenticated operation takes the *domain.Identity produced by
// SessionService.Resolve; services never read the credential file
// themselves.
package services
