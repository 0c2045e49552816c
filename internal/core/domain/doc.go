// Package domain defines the core business entities for pubcli.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Session: The persisted login (username plus token pair)
//   - Identity: The live, refreshed credentials of a single command
//   - Reference: A resolved publication (id and name)
//   - UploadOutcome: The tagged result of one upload attempt
//   - Config: The process-wide service configuration
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
