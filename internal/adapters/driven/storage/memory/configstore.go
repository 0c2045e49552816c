package memory

import (
	"sync"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is an in-memory implementation of driven.ConfigStore for testing.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg *domain.Config
}

// NewConfigStore creates a config store holding cfg, or an empty one
// when cfg is nil.
func NewConfigStore(cfg *domain.Config) *ConfigStore {
	s := &ConfigStore{}
	if cfg != nil {
		c := *cfg
		s.cfg = &c
	}
	return s
}

// Load returns the stored configuration.
func (s *ConfigStore) Load() (domain.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return domain.Config{}, domain.ErrConfigNotFound
	}
	if err := s.cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return *s.cfg, nil
}

// Save validates and stores cfg.
func (s *ConfigStore) Save(cfg domain.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return ":memory:"
}
