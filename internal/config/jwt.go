package config

import (
	"fmt"
	"time"
)

// MinJWTSecretLength is the shortest accepted HS256 signing secret.
const MinJWTSecretLength = 16

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig builds a JWTConfig from the auth settings.
func NewJWTConfig(auth AuthConfig) (*JWTConfig, error) {
	c := &JWTConfig{Secret: auth.JWTSecret, ExpirationHours: auth.ExpirationHours}
	if c.ExpirationHours == 0 {
		c.ExpirationHours = 24
	}
	if err := c.normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// Expiration returns the token lifetime.
func (c *JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return &Error{Message: "auth.jwt_secret is required to issue or verify tokens"}
	}
	if len(c.Secret) < MinJWTSecretLength {
		return &Error{Message: fmt.Sprintf("auth.jwt_secret must be at least %d characters", MinJWTSecretLength)}
	}
	if c.ExpirationHours < 1 {
		return &Error{Message: fmt.Sprintf("auth.expiration_hours must be at least 1 hour, got: %d", c.ExpirationHours)}
	}
	return nil
}
