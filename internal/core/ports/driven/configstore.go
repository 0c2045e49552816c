package driven

import "github.com/feds01/cs3099/internal/core/domain"

// ConfigStore provides access to the service configuration.
// Implementations handle persistence and format detection.
type ConfigStore interface {
	// Load reads and validates the configuration.
	// Returns domain.ErrConfigNotFound when no configuration file exists
	// and domain.ErrInvalidConfig when it cannot be parsed or validated.
	Load() (domain.Config, error)

	// Save validates and persists the configuration.
	Save(cfg domain.Config) error

	// Path returns the configuration file path.
	Path() string
}
