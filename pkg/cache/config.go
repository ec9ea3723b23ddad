// Package cache provides Redis-backed memoization for expensive upstream calls.
package cache

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// Define static errors
var (
	// ErrRedisURLRequired is returned when the Redis URL is not provided
	ErrRedisURLRequired = errors.New("redis URL is required")
)

// Config holds Redis connection configuration
type Config struct {
	URL string `yaml:"url" default:"redis://localhost:6379"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrRedisURLRequired
	}

	if _, err := redis.ParseURL(c.URL); err != nil {
		return err
	}

	return nil
}

// NewClient creates a Redis client from the configuration
func (c *Config) NewClient() (*redis.Client, error) {
	opt, err := redis.ParseURL(c.URL)
	if err != nil {
		return nil, err
	}

	return redis.NewClient(opt), nil
}
