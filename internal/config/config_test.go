package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ORDERALERT_AUTH_API_KEY", "secret-key")
	t.Setenv("ORDERALERT_MAIL_FROM_ADDRESS", "noreply@example.com")
	t.Setenv("ORDERALERT_MAIL_TO", "admin@example.com, ops@example.com")
	t.Setenv("ORDERALERT_SMTP_USERNAME", "noreply@example.com")
	t.Setenv("ORDERALERT_SMTP_PASSWORD", "app-password")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret-key", cfg.Auth.APIKey)
	assert.Equal(t, []string{"admin@example.com", "ops@example.com"}, cfg.Mail.To)
	assert.Equal(t, "gmail", cfg.SMTP.Service, "default transport profile")
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Contains(t, cfg.CORS.AllowedMethods, "OPTIONS")
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	t.Setenv("ORDERALERT_MAIL_FROM_ADDRESS", "noreply@example.com")
	t.Setenv("ORDERALERT_MAIL_TO", "admin@example.com")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.api_key")
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a@x.com", "b@x.com"}, splitList("a@x.com, b@x.com"))
	assert.Equal(t, []string{"a@x.com"}, splitList("a@x.com,"))
	assert.Empty(t, splitList(" , "))
}
