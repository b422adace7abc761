package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application, loaded once at startup.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`

	// Either a Base64-encoded 32-byte key, or a passphrase+salt pair the key
	// is derived from. Exactly one of the two forms must be configured.
	EncryptionKey        string `mapstructure:"ENCRYPTION_KEY"`
	EncryptionPassphrase string `mapstructure:"ENCRYPTION_PASSPHRASE"`
	EncryptionSalt       string `mapstructure:"ENCRYPTION_SALT"`

	ClientURL string `mapstructure:"CLIENT_URL"`

	StrengthEngineURL string `mapstructure:"STRENGTH_ENGINE_URL"`

	RedisAddress  string `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     string `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	AlertSender  string `mapstructure:"ALERT_SENDER"`
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("REDIS_DB", 0)

	for _, key := range []string{
		"PORT", "GIN_MODE",
		"FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
		"ENCRYPTION_KEY", "ENCRYPTION_PASSPHRASE", "ENCRYPTION_SALT",
		"CLIENT_URL", "STRENGTH_ENGINE_URL",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD", "ALERT_SENDER",
	} {
		viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.GoogleApplicationCredentials == "" && cfg.FirebaseServiceAccountJSONBase64 == "" {
		return nil, errors.New("either GOOGLE_APPLICATION_CREDENTIALS or FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is required")
	}
	if cfg.EncryptionKey == "" && cfg.EncryptionPassphrase == "" {
		return nil, errors.New("either ENCRYPTION_KEY or ENCRYPTION_PASSPHRASE is required")
	}
	if cfg.EncryptionKey != "" && cfg.EncryptionPassphrase != "" {
		return nil, errors.New("ENCRYPTION_KEY and ENCRYPTION_PASSPHRASE are mutually exclusive")
	}
	if cfg.EncryptionPassphrase != "" && cfg.EncryptionSalt == "" {
		return nil, errors.New("ENCRYPTION_SALT is required with ENCRYPTION_PASSPHRASE")
	}

	return &cfg, nil
}
