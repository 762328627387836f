package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"FinWise"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"finwise"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout         time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET" required:"true"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	// Policy selects which version of the reward rules is active.
	Policy struct {
		FirstNBonusThreshold int  `envconfig:"POLICY_FIRST_N_BONUS" default:"20"`
		PenaltyEnabled       bool `envconfig:"POLICY_PENALTY_ENABLED" default:"true"`
		AchievementsEnabled  bool `envconfig:"POLICY_ACHIEVEMENTS_ENABLED" default:"true"`
	}

	Gemini struct {
		APIKey       string        `envconfig:"GEMINI_API_KEY"`
		BaseURL      string        `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
		Model        string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
		KeywordModel string        `envconfig:"GEMINI_KEYWORD_MODEL" default:"gemini-2.5-flash-lite"`
		Timeout      time.Duration `envconfig:"GEMINI_TIMEOUT" default:"30s"`
	}

	News struct {
		APIKey  string        `envconfig:"NEWSAPI_KEY"`
		BaseURL string        `envconfig:"NEWSAPI_BASE_URL" default:"https://newsapi.org/v2"`
		Timeout time.Duration `envconfig:"NEWSAPI_TIMEOUT" default:"10s"`
	}

	Translate struct {
		BaseURL         string        `envconfig:"TRANSLATE_BASE_URL" default:"https://libretranslate.com"`
		APIKey          string        `envconfig:"TRANSLATE_API_KEY"`
		DefaultLanguage string        `envconfig:"TRANSLATE_DEFAULT_LANGUAGE" default:"en"`
		Timeout         time.Duration `envconfig:"TRANSLATE_TIMEOUT" default:"10s"`
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

	// required only checks presence; AUTH_SECRET= would sign tokens with an empty key.
	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		return nil, errors.New("AUTH_SECRET must not be empty")
	}

	return &cfg, nil
}
