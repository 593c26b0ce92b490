package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Identity  IdentityConfig  `yaml:"identity"`
	Payment   PaymentConfig   `yaml:"payment"`
	Email     EmailConfig     `yaml:"email"`
	Frontend  FrontendConfig  `yaml:"frontend"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// IdentityConfig selects and configures the identity store backend
type IdentityConfig struct {
	Type            string `yaml:"type"`             // "firebase" or "local"
	CredentialsFile string `yaml:"credentials_file"` // Firebase service account JSON
	APIKey          string `yaml:"api_key"`          // Firebase web API key for password sign-in
	JWTSecret       string `yaml:"jwt_secret"`       // For local backend session tokens
	TokenExpiry     int    `yaml:"token_expiry_minutes"`
}

// PaymentConfig selects and configures the payment provider backend
type PaymentConfig struct {
	Type           string `yaml:"type"` // "stripe" or "mock"
	SecretKey      string `yaml:"secret_key"`
	WebhookSecret  string `yaml:"webhook_secret"`
	Currency       string `yaml:"currency"`
	AmountCents    int64  `yaml:"amount_cents"`
	MembershipName string `yaml:"membership_name"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey     string `yaml:"api_key"`
	From       string `yaml:"from"`
	FromName   string `yaml:"from_name"`
	AdminEmail string `yaml:"admin_email"`
}

// FrontendConfig contains settings for the SPA consuming the API
type FrontendConfig struct {
	URL string `yaml:"url"` // CORS origin and checkout redirect base
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	EventStatusSweep     string `yaml:"event_status_sweep"`
	SendRenewalReminders string `yaml:"send_renewal_reminders"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Identity
	if val := os.Getenv("FIREBASE_CREDENTIALS_FILE"); val != "" {
		c.Identity.CredentialsFile = val
	}
	if val := os.Getenv("FIREBASE_API_KEY"); val != "" {
		c.Identity.APIKey = val
	}
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.Identity.JWTSecret = val
	}

	// Payment
	if val := os.Getenv("STRIPE_SECRET_KEY"); val != "" {
		c.Payment.SecretKey = val
	}
	if val := os.Getenv("STRIPE_WEBHOOK_SECRET"); val != "" {
		c.Payment.WebhookSecret = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}

	// Frontend
	if val := os.Getenv("FRONTEND_URL"); val != "" {
		c.Frontend.URL = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Identity validation
	switch c.Identity.Type {
	case "", "local":
		c.Identity.Type = "local"
		if c.Identity.JWTSecret == "" {
			return fmt.Errorf("identity jwt_secret is required for local backend")
		}
		if len(c.Identity.JWTSecret) < 32 {
			return fmt.Errorf("identity jwt_secret must be at least 32 characters")
		}
	case "firebase":
		if c.Identity.CredentialsFile == "" {
			return fmt.Errorf("identity credentials_file is required for firebase backend")
		}
		if c.Identity.APIKey == "" {
			return fmt.Errorf("identity api_key is required for firebase backend")
		}
	default:
		return fmt.Errorf("unknown identity type: %s", c.Identity.Type)
	}
	if c.Identity.TokenExpiry == 0 {
		c.Identity.TokenExpiry = 60
	}

	// Payment validation
	switch c.Payment.Type {
	case "", "mock":
		c.Payment.Type = "mock"
	case "stripe":
		if c.Payment.SecretKey == "" {
			return fmt.Errorf("payment secret_key is required for stripe backend")
		}
	default:
		return fmt.Errorf("unknown payment type: %s", c.Payment.Type)
	}
	if c.Payment.Currency == "" {
		c.Payment.Currency = "MZN"
	}
	if c.Payment.AmountCents == 0 {
		c.Payment.AmountCents = 10000 // 100 MZN
	}
	if c.Payment.MembershipName == "" {
		c.Payment.MembershipName = "Standard Membership"
	}

	// Frontend defaults
	if c.Frontend.URL == "" {
		c.Frontend.URL = "http://localhost:3002"
	}

	// Scheduler defaults
	if c.Scheduler.EventStatusSweep == "" {
		c.Scheduler.EventStatusSweep = "0 0 1 * * *" // 1 AM UTC
	}
	if c.Scheduler.SendRenewalReminders == "" {
		c.Scheduler.SendRenewalReminders = "0 0 9 * * *" // 9 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
