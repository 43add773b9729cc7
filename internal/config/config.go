// internal/config/config.go
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	DBURL              string        `mapstructure:"DB_URL"`
	HTTPAddr           string        `mapstructure:"HTTP_ADDR"`
	PublicBaseURL      string        `mapstructure:"PUBLIC_BASE_URL"`
	GithubToken        string        `mapstructure:"GITHUB_TOKEN"`
	IssueLookupTimeout time.Duration `mapstructure:"ISSUE_LOOKUP_TIMEOUT"`
	NotifyTimeout      time.Duration `mapstructure:"NOTIFY_TIMEOUT"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("HTTP_ADDR", ":8080")
	viper.SetDefault("ISSUE_LOOKUP_TIMEOUT", "5s")
	viper.SetDefault("NOTIFY_TIMEOUT", "10s")

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.DBURL == "" {
		return nil, errors.New("DB_URL is a required configuration field")
	}
	if cfg.PublicBaseURL == "" {
		return nil, errors.New("PUBLIC_BASE_URL is a required configuration field")
	}
	if !strings.HasPrefix(cfg.PublicBaseURL, "http://") && !strings.HasPrefix(cfg.PublicBaseURL, "https://") {
		return nil, errors.New("PUBLIC_BASE_URL must be an absolute http(s) URL")
	}

	return &cfg, nil
}
