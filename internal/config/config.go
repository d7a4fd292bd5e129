package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Email     EmailConfig     `mapstructure:"email"`
	Captcha   CaptchaConfig   `mapstructure:"captcha"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Site      SiteConfig      `mapstructure:"site"`
}

type ServerConfig struct {
	Port        int           `mapstructure:"port"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Development bool          `mapstructure:"development" envconfig:"DEVELOPMENT"`
	RPS         float64       `mapstructure:"rps"`
	Burst       int           `mapstructure:"burst"`
}

type DatabaseConfig struct {
	Host           string `mapstructure:"host" envconfig:"DB_HOST"`
	Port           int    `mapstructure:"port" envconfig:"DB_PORT"`
	User           string `mapstructure:"user" envconfig:"DB_USER"`
	Password       string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name           string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode        string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// EmailConfig selects and configures the transactional email provider.
// ClientNotifications gates the patient-facing confirmation/refusal emails;
// it stays off until the sending domain is verified with the provider.
type EmailConfig struct {
	Provider            string     `mapstructure:"provider"` // "resend" or "smtp"
	ResendAPIKey        string     `mapstructure:"resend_api_key" envconfig:"RESEND_API_KEY"`
	From                string     `mapstructure:"from"`
	ContactEmail        string     `mapstructure:"contact_email" envconfig:"CONTACT_EMAIL"`
	ClientNotifications bool       `mapstructure:"client_notifications"`
	SMTP                SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" envconfig:"SMTP_HOST"`
	Port     int    `mapstructure:"port" envconfig:"SMTP_PORT"`
	User     string `mapstructure:"user" envconfig:"SMTP_USER"`
	Password string `mapstructure:"password" envconfig:"SMTP_PASSWORD"`
}

// CaptchaConfig configures hCaptcha verification for the contact form.
type CaptchaConfig struct {
	Secret  string        `mapstructure:"secret" envconfig:"HCAPTCHA_SECRET_KEY"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig configures the Redis-backed per-IP limiter. When URL is
// empty the limiter is a no-op, matching the original deployment where the
// rate-limit service was optional.
type RateLimitConfig struct {
	RedisURL    string        `mapstructure:"redis_url" envconfig:"REDIS_URL"`
	Burst       int           `mapstructure:"burst"`
	BurstWindow time.Duration `mapstructure:"burst_window"`
	Hourly      int           `mapstructure:"hourly"`
}

// SiteConfig holds the identity baked into emails and calendar events.
type SiteConfig struct {
	BaseURL          string `mapstructure:"base_url" envconfig:"BASE_URL"`
	Domain           string `mapstructure:"domain"`
	PractitionerName string `mapstructure:"practitioner_name"`
	Address          string `mapstructure:"address"`
	Phone            string `mapstructure:"phone"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets come from the environment and win over the file.
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.RPS == 0 {
		c.Server.RPS = 50
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = 100
	}
	if c.Captcha.Timeout == 0 {
		c.Captcha.Timeout = 10 * time.Second
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 3
	}
	if c.RateLimit.BurstWindow == 0 {
		c.RateLimit.BurstWindow = 10 * time.Second
	}
	if c.RateLimit.Hourly == 0 {
		c.RateLimit.Hourly = 10
	}
	if c.Email.Provider == "" {
		c.Email.Provider = "resend"
	}
}

// Validate rejects configurations that would otherwise surface as ad hoc
// runtime branches in the handlers.
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.Name == "" {
		return fmt.Errorf("database host and name are required")
	}
	switch c.Email.Provider {
	case "resend", "smtp":
	default:
		return fmt.Errorf("unknown email provider %q", c.Email.Provider)
	}
	if c.Email.Provider == "smtp" && c.Email.SMTP.Host == "" {
		return fmt.Errorf("smtp email provider requires smtp.host")
	}
	if c.Email.ContactEmail == "" {
		return fmt.Errorf("email.contact_email is required")
	}
	if c.Site.BaseURL == "" {
		return fmt.Errorf("site.base_url is required")
	}
	return nil
}

// EmailConfigured reports whether outbound email can actually be sent.
// The contact form degrades to a logged dev-mode response when it cannot.
func (c *Config) EmailConfigured() bool {
	if c.Email.Provider == "smtp" {
		return c.Email.SMTP.Host != ""
	}
	return c.Email.ResendAPIKey != ""
}
