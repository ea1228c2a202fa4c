// Package config manages the relay configuration.
//
// It reads variables from the environment (and from a `.env` file when
// present), optionally from a YAML file, loads them into structured Go
// types and validates them so the relay fails fast on bad config.
//
// Responsibilities:
//   - Provide defaults for every setting the relay needs to boot.
//   - Map env vars into a structured Go config (structs).
//   - Keep the legacy PORT and WEBHOOK_URL variables working.
//   - Validate required values and observability settings.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

/*
	Sources are layered, later ones win:

	1. defaults (confmap)
	2. the YAML file named by ACCESS_CONFIG_FILE, if set
	3. ACCESS_* env vars; a double underscore separates nesting levels
	   e.g. ACCESS_WEBHOOK__TIMEOUT -> webhook.timeout -> Config.Webhook.Timeout
	4. the legacy PORT and WEBHOOK_URL env vars
*/

const (
	// EnvPrefix is the prefix of every env var the relay reads.
	EnvPrefix = "ACCESS_"

	// ConfigFileEnv names the optional YAML config file.
	ConfigFileEnv = "ACCESS_CONFIG_FILE"

	// DefaultPort is the port the relay listens on when nothing overrides it.
	DefaultPort = "3333"

	// DefaultWebhookURL is the automation webhook the relay forwards to.
	DefaultWebhookURL = "https://n8n.valeshop.com.br/webhook/oracle-access/form"

	// DefaultWebhookTimeout bounds every outbound webhook call.
	DefaultWebhookTimeout = 10 * time.Second
)

// Config is the root configuration object for the relay.
//
// It is built once at process start and handed to the server, which passes
// it down to handlers and services. Nothing reads env vars after LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Webhook       WebhookConfig        `koanf:"webhook" validate:"required"`
	Validation    ValidationConfig     `koanf:"validation"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string          `koanf:"port" validate:"required,numeric"`
	ReadTimeout        int             `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int             `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int             `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string        `koanf:"cors_allowed_origins" validate:"required,min=1"`
	BodyLimit          string          `koanf:"body_limit" validate:"required"`
	StaticDir          string          `koanf:"static_dir" validate:"required"`
	RateLimit          RateLimitConfig `koanf:"rate_limit"`
}

// RateLimitConfig controls the per-IP limiter in front of the API routes.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	Rate    float64 `koanf:"rate" validate:"required_if=Enabled true,gte=0"`
	Burst   int     `koanf:"burst" validate:"required_if=Enabled true,gte=0"`
}

// WebhookConfig describes the external automation webhook.
type WebhookConfig struct {
	URL     string        `koanf:"url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout" validate:"required,gt=0"`
}

// ValidationConfig toggles server-side checks.
//
// With Strict off the relay only checks that every field is present, which is
// what the intake form has always relied on. Strict adds the form's format
// rules (email shape, positive duration, known application).
type ValidationConfig struct {
	Strict bool `koanf:"strict"`
}

// defaults returns the flat koanf key map loaded before any other source.
func defaults() map[string]any {
	return map[string]any{
		"primary.env":                 "development",
		"server.port":                 DefaultPort,
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.cors_allowed_origins": []string{"*"},
		"server.body_limit":           "64K",
		"server.static_dir":           "static",
		"server.rate_limit.enabled":   true,
		"server.rate_limit.rate":      5.0,
		"server.rate_limit.burst":     20,
		"webhook.url":                 DefaultWebhookURL,
		"webhook.timeout":             DefaultWebhookTimeout.String(),
		"validation.strict":           false,

		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_webhook_threshold":        "3s",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.checks":                  []string{"webhook"},
	}
}

// envKey turns ACCESS_SERVER__READ_TIMEOUT into server.read_timeout.
// List-valued keys are split on commas; empty values are ignored.
func envKey(key, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	k := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "__", ".")
	switch k {
	case "server.cors_allowed_origins", "observability.health_checks.checks":
		return k, strings.Split(value, ",")
	}
	return k, value
}

// legacyKey maps the env names the relay was first deployed with.
func legacyKey(key, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	switch key {
	case "PORT":
		return "server.port", value
	case "WEBHOOK_URL":
		return "webhook.url", value
	}
	return "", nil
}

// LoadConfig loads configuration from every source, unmarshals it into
// Config, validates it and fills in observability defaults.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load defaults: %w", err)
	}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("could not load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// An empty prefix walks the whole environment; the callback keeps only the two legacy names.
	if err := k.Load(env.ProviderWithValue("", ".", legacyKey), nil); err != nil {
		return nil, fmt.Errorf("could not load legacy env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
