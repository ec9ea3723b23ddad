package aggregator

import (
	"errors"
	"time"
)

// Define static errors
var (
	// ErrInvalidPerPage is returned when the artists-per-page count is not positive
	ErrInvalidPerPage = errors.New("artists per page must be positive")
	// ErrInvalidWindowMonths is returned when the event window length is not positive
	ErrInvalidWindowMonths = errors.New("event window months must be positive")
	// ErrInvalidFetchConcurrency is returned when the fetch concurrency is not positive
	ErrInvalidFetchConcurrency = errors.New("fetch concurrency must be positive")
)

// Config holds aggregation pipeline configuration
type Config struct {
	// PerPage is how many artists one page of the paged mode covers.
	PerPage int `yaml:"perPage" default:"10"`
	// WindowMonths is how many months ahead the event search window extends,
	// anchored to the first day of the current month.
	WindowMonths int `yaml:"windowMonths" default:"4"`
	// HistoryTTL is how long fetched history feeds stay cached.
	HistoryTTL time.Duration `yaml:"historyTtl" default:"168h"`
	// EventsTTL is how long per-artist event listings stay cached.
	EventsTTL time.Duration `yaml:"eventsTtl" default:"168h"`
	// FetchConcurrency bounds concurrent per-artist event fetches.
	FetchConcurrency int `yaml:"fetchConcurrency" default:"4"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.PerPage <= 0 {
		return ErrInvalidPerPage
	}

	if c.WindowMonths <= 0 {
		return ErrInvalidWindowMonths
	}

	if c.FetchConcurrency <= 0 {
		return ErrInvalidFetchConcurrency
	}

	return nil
}
