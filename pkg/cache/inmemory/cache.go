package inmemory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gobwas/glob"
	gocache "github.com/patrickmn/go-cache"
)

var (
	ErrKeyNotFound = errors.New("key not found in cache")
	ErrBadPattern  = errors.New("syntax error in key pattern")
)

// Config holds the go-cache settings, both values are in seconds.
// -1 disables expiration / the cleanup janitor respectively.
type Config struct {
	DefaultExpiration int32 `mapstructure:"defaultExpiration" yaml:"defaultExpiration"`
	CleanupInterval   int32 `mapstructure:"cleanupInterval" yaml:"cleanupInterval"`
}

// InMemoryCache is a process local cache. It is safe for concurrent use.
type InMemoryCache struct {
	client *gocache.Cache
}

// NewCache inits an InMemoryCache instance
func NewCache(config *Config) (*InMemoryCache, error) {
	if config == nil {
		config = getDefaultConfig()
	}

	defaultExpiration, err := toDuration(config.DefaultExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid defaultExpiration: %w", err)
	}
	cleanupInterval, err := toDuration(config.CleanupInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid cleanupInterval: %w", err)
	}

	return &InMemoryCache{
		client: gocache.New(defaultExpiration, cleanupInterval),
	}, nil
}

func getDefaultConfig() *Config {
	return &Config{
		DefaultExpiration: -1,
		CleanupInterval:   -1,
	}
}

func toDuration(seconds int32) (time.Duration, error) {
	switch {
	case seconds == -1:
		return gocache.NoExpiration, nil
	case seconds < -1:
		return 0, fmt.Errorf("%d is not a valid number of seconds", seconds)
	default:
		return time.Duration(seconds) * time.Second, nil
	}
}

// Set - sets a key value pair in the cache. A zero ttl falls back to the
// default expiration, a negative one never expires.
func (c *InMemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.client.Set(key, value, ttl)
	return nil
}

// Get - gets a value from the cache
func (c *InMemoryCache) Get(_ context.Context, key string) (interface{}, error) {
	val, found := c.client.Get(key)
	if !found {
		return "", ErrKeyNotFound
	}
	return val, nil
}

// GetByPattern returns every unexpired entry whose key matches the glob
// pattern. The pattern is compiled without separators, so as with redis
// * and ? also match '/'.
func (c *InMemoryCache) GetByPattern(_ context.Context, keyPattern string) (map[string]interface{}, error) {
	g, err := glob.Compile(keyPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}

	values := make(map[string]interface{})
	for key, item := range c.client.Items() {
		if g.Match(key) {
			values[key] = item.Object
		}
	}
	return values, nil
}
