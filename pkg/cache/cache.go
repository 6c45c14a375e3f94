package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redhat-data-and-ai/usercache/pkg/cache/inmemory"
)

const (
	DriverMemory = "memory"

	// NoExpiration keeps a key for the lifetime of the cache.
	NoExpiration time.Duration = -1
)

var (
	ErrKeyNotFound   = inmemory.ErrKeyNotFound
	ErrUnknownDriver = errors.New("unknown cache driver")
)

//go:generate mockgen -destination=mocks/mock_cache.go -package=mocks . Cache

// Cache is the key/value backend the store layer is built on.
type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (interface{}, error)
	GetByPattern(ctx context.Context, keyPattern string) (map[string]interface{}, error)
}

// Config selects and configures a cache driver.
type Config struct {
	Driver   string           `mapstructure:"driver" yaml:"driver"`
	InMemory *inmemory.Config `mapstructure:"inmemory" yaml:"inmemory"`
}

// New returns the cache for the configured driver, an empty driver means memory.
func New(config *Config) (Cache, error) {
	if config == nil {
		config = &Config{Driver: DriverMemory}
	}

	switch config.Driver {
	case DriverMemory, "":
		c, err := inmemory.NewCache(config.InMemory)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, config.Driver)
	}
}

var _ Cache = (*inmemory.InMemoryCache)(nil)
