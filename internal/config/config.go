package config

import (
	"fmt"

	"github.com/caarlos0/env"
	"github.com/dmorgan81/wastebot/internal/gemini"
	"github.com/dmorgan81/wastebot/internal/prompt"
)

// Config is read once at startup and never changed afterwards.
type Config struct {
	APIKey        string `env:"GEMINI_API_KEY"`
	APIKeyParam   string `env:"GEMINI_API_KEY_PARAM"` // SSM parameter consulted when APIKey is empty
	Endpoint      string `env:"GEMINI_ENDPOINT" envDefault:"https://generativelanguage.googleapis.com/v1/models/gemini-1.5-flash:generateContent"`
	Profile       string `env:"PROMPT_PROFILE" envDefault:"detailed"`
	ProfileSource string `env:"PROMPT_PROFILE_SOURCE"` // local path or s3://bucket/key
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	Addr          string `env:"ADDR" envDefault:":8080"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	// explicitly empty variables bypass envDefault
	if cfg.Endpoint == "" {
		cfg.Endpoint = gemini.DefaultEndpoint
	}
	if cfg.Profile == "" {
		cfg.Profile = prompt.DefaultProfile
	}
	return cfg, nil
}
