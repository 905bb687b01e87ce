package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// SearchPaths are tried in order when no explicit config path is given
var SearchPaths = []string{"config.yml", "./config/config.yml"}

// ErrMissingAPIKey is returned by RequireAPIKey when no key was provisioned
var ErrMissingAPIKey = errors.New("config: maps API key is not set (credentials.apiKey or " + APIKeyEnv + ")")

// LoadAppConfig loads and validates the configuration.
// With an empty path the SearchPaths are tried; when none exists the defaults
// are used. A .env file in the working directory is loaded first if present.
func LoadAppConfig(path string) (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	data, err := readConfigFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	if data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		cfg.Credentials.APIKey = key
	}
	if cfg.Directions.BaseURL == "" {
		cfg.Directions.BaseURL = DefaultDirectionsURL
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		return data, nil
	}
	for _, p := range SearchPaths {
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", p, err)
		}
	}
	return nil, nil
}

// Validate checks struct tags on the whole configuration
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RequireAPIKey returns ErrMissingAPIKey when the key is empty
func (c AppConfig) RequireAPIKey() error {
	if strings.TrimSpace(c.Credentials.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}
