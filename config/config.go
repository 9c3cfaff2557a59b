package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pevans/newsnow/newsapi"
)

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

// NewsAPIConfig holds the upstream API settings.
type NewsAPIConfig struct {
	APIKey  string `yaml:"api_key" json:"-"`
	BaseURL string `yaml:"base_url" json:"base_url" validate:"required,url"`
	Timeout string `yaml:"timeout" json:"timeout" validate:"required,duration"`
}

// DefaultsConfig holds the initial filter state.
type DefaultsConfig struct {
	Country  string `yaml:"country" json:"country" validate:"required,country"`
	Category string `yaml:"category" json:"category" validate:"category"`
}

// ServerConfig holds the web UI listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr" validate:"required,hostname_port"`
}

// Config is the complete application configuration.
type Config struct {
	NewsAPI  NewsAPIConfig  `yaml:"newsapi" json:"newsapi"`
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`
	Server   ServerConfig   `yaml:"server" json:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		NewsAPI: NewsAPIConfig{
			APIKey:  newsapi.PlaceholderAPIKey,
			BaseURL: newsapi.DefaultBaseURL,
			Timeout: "10s",
		},
		Defaults: DefaultsConfig{
			Country: newsapi.DefaultCountry,
		},
		Server: ServerConfig{
			Addr: "localhost:8080",
		},
	}
}

// Load builds the configuration from defaults, the config file, a .env file
// and the environment, in increasing order of precedence. A missing API key
// is not an error here; the controller reports it when a fetch is attempted.
func Load() (Config, error) {
	cfg := Default()

	if _, err := LoadConfigFile(&cfg); err != nil {
		return cfg, err
	}

	if err := loadDotEnv(DotEnvFile); err != nil {
		return cfg, err
	}

	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadDotEnv exports the variables in path without overriding ones already
// set. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func applyEnv(cfg *Config) {
	cfg.NewsAPI.APIKey = getEnv("NEWSNOW_API_KEY", getEnv("NEWSAPI_KEY", cfg.NewsAPI.APIKey))
	cfg.NewsAPI.BaseURL = getEnv("NEWSNOW_BASE_URL", cfg.NewsAPI.BaseURL)
	cfg.NewsAPI.Timeout = getEnv("NEWSNOW_TIMEOUT", cfg.NewsAPI.Timeout)
	cfg.Defaults.Country = getEnv("NEWSNOW_COUNTRY", cfg.Defaults.Country)
	cfg.Defaults.Category = getEnv("NEWSNOW_CATEGORY", cfg.Defaults.Category)
	cfg.Server.Addr = getEnv("NEWSNOW_ADDR", cfg.Server.Addr)
}

// TimeoutDuration returns the parsed per-request timeout.
func (c NewsAPIConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// HasAPIKey reports whether a usable API key is configured.
func (c Config) HasAPIKey() bool {
	return newsapi.HasCredential(c.NewsAPI.APIKey)
}
