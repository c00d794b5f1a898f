// Package config loads the service configuration.
//
// Values come from process environment variables (a `.env` file is loaded
// first when present) layered over in-code defaults, are mapped into typed
// structs, and validated so the service fails fast on bad or missing config.
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	// EnvPrefix is stripped from every variable name before it becomes a key.
	//
	// Nesting uses ".", so SKILLHUB_DATABASE.HOST -> database.host -> Config.Database.Host.
	EnvPrefix = "SKILLHUB_"

	ServiceName = "skillhub"
)

// Config is the root configuration object.
//
// Observability is a pointer because it is optional; defaults are injected
// when it is missing. Integration is optional for the same reason: an empty
// Resend key disables outbound email.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Query         QueryConfig          `koanf:"query" validate:"required"`
	Cache         CacheConfig          `koanf:"cache" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime. Timeouts are seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details. Address is "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores token signing and sign-in throttling settings.
type AuthConfig struct {
	SecretKey                string  `koanf:"secret_key" validate:"required,min=16"`
	AccessTokenExpireMinutes int     `koanf:"access_token_expire_minutes" validate:"required,gt=0"`
	SignInRateLimit          float64 `koanf:"sign_in_rate_limit" validate:"gte=0"`
}

// AccessTokenTTL is the lifetime of an issued bearer token.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenExpireMinutes) * time.Minute
}

// QueryConfig holds the defaults applied to list endpoints.
type QueryConfig struct {
	Page     int    `koanf:"page" validate:"required,gt=0"`
	PageSize int    `koanf:"page_size" validate:"gte=0"`
	Ordering string `koanf:"ordering" validate:"required"`
}

// CacheConfig tunes the redis read-through cache.
type CacheConfig struct {
	SkillTTL time.Duration `koanf:"skill_ttl" validate:"min=1s"`
}

// IntegrationConfig holds third-party service credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from" validate:"omitempty,email"`
}

// EmailEnabled reports whether outbound email is configured.
func (i IntegrationConfig) EmailEnabled() bool {
	return i.ResendAPIKey != ""
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env":                      "development",
		"server.port":                      "8080",
		"server.read_timeout":              30,
		"server.write_timeout":             30,
		"server.idle_timeout":              60,
		"server.cors_allowed_origins":      []string{"*"},
		"database.port":                    5432,
		"database.ssl_mode":                "disable",
		"database.max_open_conns":          25,
		"database.max_idle_conns":          25,
		"database.conn_max_lifetime":       300,
		"database.conn_max_idle_time":      300,
		"auth.access_token_expire_minutes": 30,
		"auth.sign_in_rate_limit":          5,
		"query.page":                       1,
		"query.page_size":                  20,
		"query.ordering":                   "-created_at",
		"cache.skill_ttl":                  "10m",
		"integration.email_from":           "onboarding@resend.dev",
	}
}

// LoadConfig loads defaults, overlays SKILLHUB_ environment variables,
// unmarshals into Config, validates it, and fills in observability defaults.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "could not load config defaults")
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	// Comma separated origins arrive as a single string from the environment.
	if raw, ok := k.Get("server.cors_allowed_origins").(string); ok {
		origins := strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if err := k.Set("server.cors_allowed_origins", origins); err != nil {
			return nil, errors.Wrap(err, "could not set cors origins")
		}
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal main config")
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid observability config")
	}

	return mainConfig, nil
}
