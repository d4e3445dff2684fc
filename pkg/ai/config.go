package ai

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config selects the completion endpoint and model.
type Config struct {
	APIKey     string `env:"OPENAI_API_KEY"`
	BaseURL    string `env:"OPENAI_BASE_URL"`
	Model      string `env:"MINDLOG_MODEL" envDefault:"gpt-3.5-turbo"`
	MaxRetries int    `env:"MINDLOG_AI_RETRIES" envDefault:"2"`
}

// LoadConfig reads the completion settings from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
