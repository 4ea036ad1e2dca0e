package config

import (
	"errors"
	"fmt"
	"slices"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	supportedDrivers    = []string{"postgres", "mysql", "sqlite"}
	supportedGenerators = []string{"stub", "catalog", "llm"}
)

// ValidateConfig checks the loaded configuration and returns every problem found
func ValidateConfig(cfg *Config) error {
	var errs []error

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: "must not be empty"})
	}
	if !slices.Contains(supportedDrivers, cfg.DBDriver) {
		errs = append(errs, ValidationError{
			Field:   "DB_DRIVER",
			Message: fmt.Sprintf("unsupported driver %q, expected one of %v", cfg.DBDriver, supportedDrivers),
		})
	}
	if cfg.DBName == "" {
		errs = append(errs, ValidationError{Field: "DB_NAME", Message: "must not be empty"})
	}
	if !slices.Contains(supportedGenerators, cfg.GeneratorProvider) {
		errs = append(errs, ValidationError{
			Field:   "GENERATOR_PROVIDER",
			Message: fmt.Sprintf("unsupported provider %q, expected one of %v", cfg.GeneratorProvider, supportedGenerators),
		})
	}
	if cfg.GeneratorProvider == "llm" && cfg.LLMAPIKey == "" {
		errs = append(errs, ValidationError{Field: "LLM_API_KEY", Message: "required when GENERATOR_PROVIDER=llm"})
	}
	if cfg.GenerateRateLimit < 0 {
		errs = append(errs, ValidationError{Field: "GENERATE_RATE_LIMIT", Message: "must not be negative"})
	}

	if cfg.Environment == Production {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "must be set in production"})
		}
		if cfg.DBDriver != "sqlite" && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{Field: "DB_PASSWORD", Message: "must be set in production"})
		}
	}

	return errors.Join(errs...)
}
