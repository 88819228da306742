package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds process-wide configuration, read once at startup and
// immutable for the process lifetime.
type Config struct {
	HTTPAddr      string        `env:"HTTP_ADDR"      envDefault:":8080"`
	MongoURI      string        `env:"MONGO_URI"      envDefault:"mongodb://127.0.0.1:27017"`
	MongoDatabase string        `env:"MONGO_DATABASE" envDefault:"tutorlane"`
	TokenIssuer   string        `env:"TOKEN_ISSUER"   envDefault:"tutorlane-platform"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"720h"`

	// Per-domain session secrets. Tokens minted under one secret must never
	// verify under another, so the three must differ.
	TutorialsSessionSecret string `env:"TUTORIALS_SESSION_SECRET"`
	JobsSessionSecret      string `env:"JOBS_SESSION_SECRET"`
	AdminSessionSecret     string `env:"ADMIN_SESSION_SECRET"`

	// Optional per-domain cookie name overrides, tried before the
	// conventional names.
	TutorialsSessionCookie string `env:"TUTORIALS_SESSION_COOKIE"`
	JobsSessionCookie      string `env:"JOBS_SESSION_COOKIE"`
	AdminSessionCookie     string `env:"ADMIN_SESSION_COOKIE"`

	// Sub-application base URLs, used by the retired-route responses to
	// point callers at the right application.
	MainBaseURL      string `env:"MAIN_BASE_URL"      envDefault:"https://www.tutorlane.com"`
	TutorialsBaseURL string `env:"TUTORIALS_BASE_URL" envDefault:"https://tutorials.tutorlane.com"`
	JobsBaseURL      string `env:"JOBS_BASE_URL"      envDefault:"https://jobs.tutorlane.com"`
	AdminBaseURL     string `env:"ADMIN_BASE_URL"     envDefault:"https://admin.tutorlane.com"`

	// Recipient of withdrawal-request mail.
	AdminInboxEmail string `env:"ADMIN_INBOX_EMAIL"`
}

// Load parses the environment into a Config and fails fast on anything
// unusable.
func Load(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	return &cfg
}

func (c *Config) validate() error {
	if c.TutorialsSessionSecret == "" {
		return fmt.Errorf("missing TUTORIALS_SESSION_SECRET environment variable")
	}
	if c.JobsSessionSecret == "" {
		return fmt.Errorf("missing JOBS_SESSION_SECRET environment variable")
	}
	if c.AdminSessionSecret == "" {
		return fmt.Errorf("missing ADMIN_SESSION_SECRET environment variable")
	}
	if c.TutorialsSessionSecret == c.JobsSessionSecret ||
		c.TutorialsSessionSecret == c.AdminSessionSecret ||
		c.JobsSessionSecret == c.AdminSessionSecret {
		return fmt.Errorf("session secrets must differ between domains")
	}
	return nil
}
