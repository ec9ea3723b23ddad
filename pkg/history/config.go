package history

import (
	"errors"
	"time"
)

// Define static errors
var (
	// ErrBaseURLRequired is returned when the history API base URL is not provided
	ErrBaseURLRequired = errors.New("history API base URL is required")
)

// Config holds listening-history API client configuration
type Config struct {
	// BaseURL is the root of the history API.
	BaseURL string `yaml:"baseUrl" default:"http://api.thisismyjam.com/1"`
	// APIKey is sent as the key query parameter on every request.
	APIKey string `yaml:"apiKey"`
	// Timeout bounds each page request.
	Timeout time.Duration `yaml:"timeout" default:"10s"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrBaseURLRequired
	}

	return nil
}
