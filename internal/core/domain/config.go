package domain

import (
	"fmt"
	"net/url"
)

// Config is the process-wide service configuration.
// It is read once at startup and never changes afterwards.
type Config struct {
	// BaseURL is the absolute URL of the publication API.
	BaseURL string `json:"baseUrl" toml:"base_url" yaml:"base_url"`
}

// Validate requires BaseURL to be an absolute http(s) URL.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: baseUrl is required", ErrInvalidConfig)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: baseUrl: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: baseUrl must use http or https, got %q", ErrInvalidConfig, c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: baseUrl must be absolute, got %q", ErrInvalidConfig, c.BaseURL)
	}
	return nil
}
