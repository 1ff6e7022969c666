package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take
// precedence over values from the config file.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.token_lifetime_minutes", 60)
	v.SetDefault("report.font_family", "Helvetica")

	// Read from an optional config file in the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Configure environment variables with the BOOKSHELF_ prefix
	v.SetEnvPrefix("BOOKSHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "BOOKSHELF_SERVER_PORT"},
		{"server.log_level", "BOOKSHELF_SERVER_LOG_LEVEL"},
		{"database.url", "BOOKSHELF_DATABASE_URL"},
		{"auth.jwt_secret", "BOOKSHELF_AUTH_JWT_SECRET"},
		{"auth.issuer", "BOOKSHELF_AUTH_ISSUER"},
		{"auth.audience", "BOOKSHELF_AUTH_AUDIENCE"},
		{"auth.token_lifetime_minutes", "BOOKSHELF_AUTH_TOKEN_LIFETIME_MINUTES"},
		{"storage.upload_dir", "BOOKSHELF_STORAGE_UPLOAD_DIR"},
		{"report.font_family", "BOOKSHELF_REPORT_FONT_FAMILY"},
		{"report.font_dir", "BOOKSHELF_REPORT_FONT_DIR"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
