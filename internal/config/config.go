package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. It is only safe for local development.
const DefaultJWTSecret = "dev-secret"

// Token formats accepted in TOKEN_FORMAT.
const (
	TokenFormatJWT    = "jwt"
	TokenFormatPaseto = "paseto"
)

type Config struct {
	Server ServerConfig
	Auth   AuthConfig
}

type ServerConfig struct {
	Port            string
	Env             string // dev or prod
	BasePath        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type AuthConfig struct {
	JWTSecret []byte
	// UsingDefaultSecret is true when JWT_SECRET was not provided.
	UsingDefaultSecret bool
	TokenFormat        string
	// PASETO symmetric key (must be 32 bytes for v4.local)
	PasetoKey            []byte
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	BcryptCost           int
}

// Load reads configuration from environment variables.
// envFile is loaded first if it exists; a missing file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	secret := os.Getenv("JWT_SECRET")
	env := &envReader{}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "10000"),
			Env:             getEnv("APP_ENV", "dev"),
			BasePath:        NormalizeBasePath(getEnv("BASE_PATH", "/api/v1")),
			ReadTimeout:     env.seconds("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    env.seconds("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: env.seconds("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			AllowedOrigins:  getSliceEnv("ALLOWED_ORIGINS", []string{"*"}),
		},
		Auth: AuthConfig{
			JWTSecret:            []byte(secret),
			UsingDefaultSecret:   secret == "",
			TokenFormat:          strings.ToLower(getEnv("TOKEN_FORMAT", TokenFormatJWT)),
			PasetoKey:            []byte(getEnv("PASETO_KEY", "")),
			AccessTokenDuration:  env.seconds("ACCESS_TOKEN_DURATION", 15*time.Minute),
			RefreshTokenDuration: env.seconds("REFRESH_TOKEN_DURATION", 7*24*time.Hour),
			BcryptCost:           env.integer("BCRYPT_COST", 10),
		},
	}

	if err := errors.Join(env.errs...); err != nil {
		return nil, err
	}

	if cfg.Auth.UsingDefaultSecret {
		cfg.Auth.JWTSecret = []byte(DefaultJWTSecret)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Auth.TokenFormat {
	case TokenFormatJWT:
	case TokenFormatPaseto:
		if len(c.Auth.PasetoKey) != 32 {
			return fmt.Errorf("PASETO_KEY must be exactly 32 bytes, got %d", len(c.Auth.PasetoKey))
		}
	default:
		return fmt.Errorf("unsupported TOKEN_FORMAT %q (want %q or %q)", c.Auth.TokenFormat, TokenFormatJWT, TokenFormatPaseto)
	}

	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	if c.Auth.AccessTokenDuration <= 0 || c.Auth.RefreshTokenDuration <= 0 {
		return fmt.Errorf("token durations must be positive")
	}

	return nil
}

// IsDevelopment returns true if the environment is set to dev
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "dev"
}

// Address returns the listen address (":port")
func (c *ServerConfig) Address() string {
	return ":" + c.Port
}

// NormalizeBasePath ensures a single leading slash and no trailing slash.
// "/" and "" both normalize to "".
func NormalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// envReader parses numeric variables and keeps every parse failure, so a
// typo is reported instead of silently replaced by the default.
type envReader struct {
	errs []error
}

func (e *envReader) integer(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s must be an integer, got %q", key, value))
		return defaultValue
	}

	return intValue
}

// seconds reads a whole number of seconds.
func (e *envReader) seconds(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		e.errs = append(e.errs, fmt.Errorf("%s must be a non-negative number of seconds, got %q", key, value))
		return defaultValue
	}

	return time.Duration(n) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Split by comma and trim whitespace
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
