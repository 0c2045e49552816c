package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/feds01/cs3099/internal/core/domain"
	"github.com/feds01/cs3099/internal/core/ports/driven"
	"github.com/feds01/cs3099/internal/logger"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Configuration file names, in lookup order.
const (
	ConfigFileJSON = "config.json"
	ConfigFileTOML = "config.toml"
	ConfigFileYAML = "config.yaml"
)

// Environment variables read by the stores.
const (
	// HomeEnv overrides the default configuration directory.
	HomeEnv = "PUBCLI_HOME"
	// BaseURLEnv overrides the base URL from the configuration file.
	BaseURLEnv = "PUBCLI_BASE_URL"
)

// DefaultDir returns $PUBCLI_HOME, or ~/.pubcli when it is unset.
func DefaultDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".pubcli"), nil
}

// ConfigStore is a file-based implementation of driven.ConfigStore.
// config.json is preferred; config.toml and config.yaml are accepted when
// it does not exist. JSON may carry comments and trailing commas.
type ConfigStore struct {
	mu  sync.RWMutex
	dir string
}

// NewConfigStore creates a config store rooted at configDir.
// If configDir is empty, DefaultDir is used.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}
	return &ConfigStore{dir: configDir}, nil
}

// Path returns the configuration file in use: the first existing
// candidate, or config.json when none exists yet.
func (s *ConfigStore) Path() string {
	for _, name := range []string{ConfigFileJSON, ConfigFileTOML, ConfigFileYAML} {
		path := filepath.Join(s.dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(s.dir, ConfigFileJSON)
}

// Load reads, overrides from the environment and validates the config.
func (s *ConfigStore) Load() (domain.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.Path()
	envURL := os.Getenv(BaseURLEnv)

	var cfg domain.Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if envURL == "" {
			return domain.Config{}, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		logger.Debug("no config file at %s, using %s", path, BaseURLEnv)
	case err != nil:
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	default:
		if cfg, err = decodeConfig(path, data); err != nil {
			return domain.Config{}, fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, path, err)
		}
	}

	if envURL != "" {
		logger.Debug("base url overridden by %s", BaseURLEnv)
		cfg.BaseURL = envURL
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Save validates cfg and writes it in the format of Path.
func (s *ConfigStore) Save(cfg domain.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path()
	data, err := encodeConfig(path, cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeFileAtomic(path, data, 0600)
}

func decodeConfig(path string, data []byte) (domain.Config, error) {
	var cfg domain.Config
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &cfg)
	}
	return cfg, err
}

func encodeConfig(path string, cfg domain.Config) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Marshal(cfg)
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	default:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}
