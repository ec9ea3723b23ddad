// Package api provides the JSON surface for show aggregation.
package api

import "errors"

// ErrAddrRequired is returned when no listen address is configured
var (
	ErrAddrRequired = errors.New("api address is required")
)

// Config represents API service configuration
type Config struct {
	Addr string `yaml:"addr" default:":8080"`
}

// Validate validates the API configuration
func (c *Config) Validate() error {
	if c.Addr == "" {
		return ErrAddrRequired
	}

	return nil
}
