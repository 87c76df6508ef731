package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded once at process
// start and read-only thereafter; nothing in the dispatch pipeline mutates it.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Mail      MailConfig      `mapstructure:"mail"`
	SMTP      SMTPConfig      `mapstructure:"smtp"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// AuthConfig holds the shared secret callers must present.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// MailConfig holds the sender identity and recipient mailboxes.
type MailConfig struct {
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	To          []string `mapstructure:"to"`
	CC          []string `mapstructure:"cc"`
}

// SMTPConfig describes the transport profile: either a named service
// shortcut or an explicit host/port/TLS triple, plus the credential pair.
// Exactly one profile is active per deployment; switching providers is a
// configuration change, never a runtime decision.
type SMTPConfig struct {
	Service     string `mapstructure:"service"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	SSL         bool   `mapstructure:"ssl"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	InsecureTLS bool   `mapstructure:"insecure_tls"`
}

// CORSConfig holds CORS policy settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// Load reads configuration from config.yaml and environment variables.
// Environment variables use the ORDERALERT_ prefix and underscore
// separators. Example: ORDERALERT_SMTP_PASSWORD overrides smtp.password.
func Load() (*Config, error) {
	v := viper.New()

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Load .env file if it exists
	_ = godotenv.Load()

	// Environment variable settings
	v.SetEnvPrefix("ORDERALERT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Secrets and mailboxes deliberately have none.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("smtp.service", "gmail")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "X-API-Key"})
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)

	// Read config file (optional — env vars can provide everything)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Unmarshal only walks registered keys; secrets have no defaults on
	// purpose, so env-only values are backfilled explicitly.
	if cfg.Auth.APIKey == "" {
		cfg.Auth.APIKey = v.GetString("auth.api_key")
	}
	if cfg.Mail.FromAddress == "" {
		cfg.Mail.FromAddress = v.GetString("mail.from_address")
	}
	if cfg.Mail.FromName == "" {
		cfg.Mail.FromName = v.GetString("mail.from_name")
	}
	if cfg.SMTP.Username == "" {
		cfg.SMTP.Username = v.GetString("smtp.username")
	}
	if cfg.SMTP.Password == "" {
		cfg.SMTP.Password = v.GetString("smtp.password")
	}
	if cfg.SMTP.Host == "" {
		cfg.SMTP.Host = v.GetString("smtp.host")
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = v.GetInt("smtp.port")
	}
	cfg.SMTP.SSL = v.GetBool("smtp.ssl")
	cfg.SMTP.InsecureTLS = v.GetBool("smtp.insecure_tls")

	// Handle comma-separated recipient lists from env vars
	if toStr := v.GetString("mail.to"); toStr != "" && len(cfg.Mail.To) == 0 {
		cfg.Mail.To = splitList(toStr)
	}
	if ccStr := v.GetString("mail.cc"); ccStr != "" && len(cfg.Mail.CC) == 0 {
		cfg.Mail.CC = splitList(ccStr)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate ensures the settings without which no request can ever succeed
// are present, so misconfiguration surfaces at startup instead of per-order.
func (c *Config) validate() error {
	var missing []string
	if c.Auth.APIKey == "" {
		missing = append(missing, "auth.api_key")
	}
	if c.Mail.FromAddress == "" {
		missing = append(missing, "mail.from_address")
	}
	if len(c.Mail.To) == 0 {
		missing = append(missing, "mail.to")
	}
	if len(missing) > 0 {
		return errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
