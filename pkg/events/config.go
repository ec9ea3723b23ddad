package events

import (
	"errors"
	"time"
)

// Define static errors
var (
	// ErrBaseURLRequired is returned when the events API base URL is not provided
	ErrBaseURLRequired = errors.New("events API base URL is required")
	// ErrInvalidPerPage is returned when the page size is not positive
	ErrInvalidPerPage = errors.New("events API page size must be positive")
)

// Config holds concert-listing API client configuration
type Config struct {
	// BaseURL is the root of the location/event search API.
	BaseURL string `yaml:"baseUrl" default:"http://api.songkick.com/api/3.0"`
	// APIKey is sent as the apikey query parameter on every request.
	APIKey string `yaml:"apiKey"`
	// PerPage is the upstream page size requested per search.
	PerPage int `yaml:"perPage" default:"50"`
	// Timeout bounds each search request.
	Timeout time.Duration `yaml:"timeout" default:"10s"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrBaseURLRequired
	}

	if c.PerPage <= 0 {
		return ErrInvalidPerPage
	}

	return nil
}
