// Package server provides server configuration and management
package server

import (
	"errors"
	"fmt"

	"github.com/jamkick/jamkick/pkg/aggregator"
	"github.com/jamkick/jamkick/pkg/api"
	"github.com/jamkick/jamkick/pkg/cache"
	"github.com/jamkick/jamkick/pkg/events"
	"github.com/jamkick/jamkick/pkg/history"
)

// Define static errors
var (
	ErrRedisConfigRequired = errors.New("redis configuration is required")
)

// Config holds server configuration
type Config struct {
	// Logging is the logging level to use.
	Logging string `yaml:"logging" default:"info"`
	// MetricsAddr is the address to listen on for metrics.
	MetricsAddr string `yaml:"metricsAddr" default:":9090"`

	// API is the JSON surface configuration.
	API api.Config `yaml:"api"`
	// Redis is the cache store configuration.
	Redis *cache.Config `yaml:"redis"`
	// History is the listening-history API client configuration.
	History history.Config `yaml:"history"`
	// Events is the concert-listing API client configuration.
	Events events.Config `yaml:"events"`
	// Aggregator is the pipeline configuration.
	Aggregator aggregator.Config `yaml:"aggregator"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Redis == nil {
		return ErrRedisConfigRequired
	}

	if err := c.Redis.Validate(); err != nil {
		return fmt.Errorf("invalid redis configuration: %w", err)
	}

	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("invalid api configuration: %w", err)
	}

	if err := c.History.Validate(); err != nil {
		return fmt.Errorf("invalid history configuration: %w", err)
	}

	if err := c.Events.Validate(); err != nil {
		return fmt.Errorf("invalid events configuration: %w", err)
	}

	if err := c.Aggregator.Validate(); err != nil {
		return fmt.Errorf("invalid aggregator configuration: %w", err)
	}

	return nil
}
