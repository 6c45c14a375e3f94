package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/redhat-data-and-ai/usercache/pkg/cache"
	"github.com/redhat-data-and-ai/usercache/pkg/cache/inmemory"
)

const (
	envPrefix       = "USERCACHE"
	workdirEnv      = "WORKDIR"
	configDirectory = "appconfig"
	DefaultEnv      = "default"
)

type App struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type Server struct {
	Address string `mapstructure:"address"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

// AppConfig is the application configuration read from appconfig/<env>.yaml
type AppConfig struct {
	App    App          `mapstructure:"app"`
	Cache  cache.Config `mapstructure:"cache"`
	Server Server       `mapstructure:"server"`
	Log    Log          `mapstructure:"log"`
}

var (
	mu     sync.RWMutex
	loaded *AppConfig
)

func setDefaults(v *viper.Viper, env string) {
	v.SetDefault("app.name", "usercache")
	v.SetDefault("app.version", "0.0.1")
	v.SetDefault("app.environment", env)
	v.SetDefault("cache.driver", cache.DriverMemory)
	v.SetDefault("cache.inmemory.defaultExpiration", -1)
	v.SetDefault("cache.inmemory.cleanupInterval", -1)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("log.level", "info")
}

func configDir() (string, error) {
	workdir := os.Getenv(workdirEnv)
	if workdir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		workdir = wd
	}
	return filepath.Join(workdir, configDirectory), nil
}

// LoadConfig reads $WORKDIR/appconfig/<env>.yaml, overlays USERCACHE_* environment
// variables and makes the result available through GetConfig.
// A missing file is not an error, the defaults are used instead.
func LoadConfig(env string) (*AppConfig, error) {
	if env == "" {
		env = DefaultEnv
	}

	dir, err := configDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, env)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config %s: %w", env, err)
		}
	}

	cfg := &AppConfig{
		Cache: cache.Config{InMemory: &inmemory.Config{}},
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", env, err)
	}

	mu.Lock()
	loaded = cfg
	mu.Unlock()

	return cfg, nil
}

// GetConfig returns the last loaded config, loading the default one on first use
func GetConfig() (*AppConfig, error) {
	mu.RLock()
	cfg := loaded
	mu.RUnlock()

	if cfg != nil {
		return cfg, nil
	}
	return LoadConfig(DefaultEnv)
}
