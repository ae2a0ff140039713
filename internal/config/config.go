// Package config loads and validates application configuration from a YAML
// file, with environment variables overriding API credentials.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// APIConfig configures the TfL data source
type APIConfig struct {
	BaseURL     string `yaml:"baseURL" validate:"omitempty,url"`
	AppID       string `yaml:"app_id"`
	AppKey      string `yaml:"app_key"`
	Mode        string `yaml:"mode"`
	TimeoutMS   int    `yaml:"timeoutMS" validate:"gte=0"`
	Concurrency int    `yaml:"concurrency" validate:"gte=0"`
}

// CacheConfig configures the network snapshot cache
type CacheConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	API    APIConfig    `yaml:"api"`
	Cache  CacheConfig  `yaml:"cache"`
	Server ServerConfig `yaml:"server"`
}

// Load reads the configuration file at path, validates it and applies
// defaults. A missing file is not an error: defaults plus environment
// credentials are a complete configuration. TFL_API_APP_ID and TFL_API_KEY
// override the file's credentials when set.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		// fall through to defaults
	default:
		return nil, err
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}

	if id := os.Getenv("TFL_API_APP_ID"); id != "" {
		cfg.API.AppID = id
	}
	if key := os.Getenv("TFL_API_KEY"); key != "" {
		cfg.API.AppKey = key
	}

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.tfl.gov.uk"
	}
	if cfg.API.Mode == "" {
		cfg.API.Mode = "tube"
	}
	if cfg.API.TimeoutMS == 0 {
		cfg.API.TimeoutMS = 30000
	}
	if cfg.API.Concurrency == 0 {
		cfg.API.Concurrency = 4
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "tube_network.json"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	return &cfg, nil
}
