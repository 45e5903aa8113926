package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the configuration carries everything the current
// environment needs. Development and test run with looser requirements so a
// bare checkout can start against local services.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET (or jwt_secret secret) is required")
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			errors = append(errors, "DB_PASSWORD (or db_password secret) is required in production")
		}
		if cfg.DBSSLMode == "disable" {
			errors = append(errors, "DB_SSL_MODE must not be disable in production")
		}
		if cfg.RedisHost != "" && cfg.RedisPassword == "" {
			errors = append(errors, "REDIS_PASSWORD (or redis_password secret) is required in production")
		}
		if cfg.AnthropicAPIKey == "" {
			errors = append(errors, "ANTHROPIC_API_KEY (or anthropic_api_key secret) is required in production")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}
	return nil
}
