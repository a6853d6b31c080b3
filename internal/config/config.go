package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Tally"`
		Port int    `envconfig:"PORT" default:"5050"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"tally"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Assistant struct {
		// Mode selects the reply source: auto, scripted, or openai. In auto
		// mode the remote backend is used only when an API key is set.
		Mode    string `envconfig:"ASSISTANT_MODE" default:"auto"`
		APIKey  string `envconfig:"OPENAI_API_KEY"`
		Model   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
		BaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
