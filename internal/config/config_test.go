package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Host: "localhost", Name: "booking"},
		Email: EmailConfig{
			Provider:     "resend",
			ContactEmail: "camille@example.com",
		},
		Site: SiteConfig{BaseURL: "https://example.com"},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.applyDefaults()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Captcha.Timeout)
	assert.Equal(t, 3, cfg.RateLimit.Burst)
	assert.Equal(t, 10*time.Second, cfg.RateLimit.BurstWindow)
	assert.Equal(t, 10, cfg.RateLimit.Hourly)
	assert.Equal(t, "resend", cfg.Email.Provider)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.Database.Host = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Email.Provider = "sendgrid"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Email.Provider = "smtp"
	assert.Error(t, cfg.Validate(), "smtp without host must be rejected")
	cfg.Email.SMTP.Host = "smtp.example.com"
	assert.NoError(t, cfg.Validate())

	cfg = validConfig()
	cfg.Email.ContactEmail = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Site.BaseURL = ""
	assert.Error(t, cfg.Validate())
}

func TestEmailConfigured(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.EmailConfigured())

	cfg.Email.ResendAPIKey = "re_key"
	assert.True(t, cfg.EmailConfigured())

	cfg.Email.Provider = "smtp"
	assert.False(t, cfg.EmailConfigured())
	cfg.Email.SMTP.Host = "smtp.example.com"
	assert.True(t, cfg.EmailConfigured())
}
