package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "budget-chef-dev-secret"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort      string
	ServerHost      string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration. Rate limiting is disabled when neither URL nor host is set.
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT configuration
	JWTSecret   string
	JWTDuration time.Duration

	// Recipe generation
	GeneratorProvider string
	GenerateRateLimit int
	LLMAPIKey         string
	LLMAPIURL         string
	LLMModel          string
	LLMTimeout        time.Duration

	// Recipe images
	S3BucketName string
	AWSRegion    string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development || env == Test {
		// a missing .env file is fine, the process env still applies
		_ = godotenv.Load()
	}

	cfg := &Config{Environment: env}
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
	}

	if env == Production {
		applySecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFromEnv(cfg *Config) error {
	var err error

	cfg.ServerPort = getEnv("SERVER_PORT", getEnv("PORT", "5000"))
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.CORSOrigins = getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return err
	}

	cfg.DBDriver = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", defaultDBPort(cfg.DBDriver))
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnv("DB_NAME", "budget_chef")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")

	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return err
	}

	cfg.JWTSecret = getEnv("JWT_SECRET", defaultJWTSecret)
	if cfg.JWTDuration, err = getEnvDuration("JWT_DURATION", 24*time.Hour); err != nil {
		return err
	}

	cfg.GeneratorProvider = strings.ToLower(getEnv("GENERATOR_PROVIDER", "catalog"))
	if cfg.GenerateRateLimit, err = getEnvInt("GENERATE_RATE_LIMIT", 30); err != nil {
		return err
	}
	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	cfg.LLMAPIURL = getEnv("LLM_API_URL", "https://api.deepseek.com/v1/chat/completions")
	cfg.LLMModel = getEnv("LLM_MODEL", "deepseek-chat")
	if cfg.LLMTimeout, err = getEnvDuration("LLM_TIMEOUT", 60*time.Second); err != nil {
		return err
	}

	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")

	return nil
}

// applySecrets overrides sensitive values with Docker secrets when they are mounted
func applySecrets(cfg *Config) {
	overrides := map[string]*string{
		"db_user":        &cfg.DBUser,
		"db_password":    &cfg.DBPassword,
		"db_host":        &cfg.DBHost,
		"db_name":        &cfg.DBName,
		"jwt_secret":     &cfg.JWTSecret,
		"redis_password": &cfg.RedisPassword,
		"redis_url":      &cfg.RedisURL,
		"llm_api_key":    &cfg.LLMAPIKey,
	}
	for name, field := range overrides {
		if v := readSecret(name); v != "" {
			*field = v
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// RedisEnabled reports whether a Redis endpoint was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

func defaultDBPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
