package users

import (
	"os"
	"strconv"

	"github.com/goliatone/go-errors"
)

// ServiceConfig is the immutable runtime configuration, read once from the
// environment at startup
type ServiceConfig struct {
	Address         string
	DatabaseDSN     string
	SigningSecret   string
	TokenExpiration int
	Issuer          string
	AuthScheme      string
	ContextKey      string
	Debug           bool
}

var _ Config = ServiceConfig{}

// LoadConfig reads the configuration from environment variables
func LoadConfig() ServiceConfig {
	return ServiceConfig{
		Address:         getEnv("ADDRESS", ":8080"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "file:users.db?cache=shared&mode=rwc"),
		SigningSecret:   os.Getenv("TOKEN_SECRET"),
		TokenExpiration: getEnvInt("TOKEN_EXPIRATION_HOURS", DefaultTokenExpiration),
		Issuer:          getEnv("TOKEN_ISSUER", "go-users"),
		AuthScheme:      getEnv("AUTH_SCHEME", "Bearer"),
		ContextKey:      getEnv("AUTH_CONTEXT_KEY", DefaultContextKey),
		Debug:           getEnv("DEBUG", "") != "",
	}
}

// Validate rejects a configuration the service could not run with. The
// secret itself is checked again, harder, by NewTokenService.
func (c ServiceConfig) Validate() error {
	if c.SigningSecret == "" {
		return errors.New("TOKEN_SECRET must be set", errors.CategoryBadInput).
			WithTextCode(TextCodeValidation)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must be set", errors.CategoryBadInput).
			WithTextCode(TextCodeValidation)
	}
	return nil
}

func (c ServiceConfig) GetSigningSecret() string {
	return c.SigningSecret
}

func (c ServiceConfig) GetTokenExpiration() int {
	return c.TokenExpiration
}

func (c ServiceConfig) GetIssuer() string {
	return c.Issuer
}

func (c ServiceConfig) GetAuthScheme() string {
	return c.AuthScheme
}

func (c ServiceConfig) GetContextKey() string {
	return c.ContextKey
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
