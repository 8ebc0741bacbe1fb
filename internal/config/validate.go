package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.RefreshTokenTTL <= c.Auth.AccessTokenTTL {
		return fmt.Errorf("auth.refresh_token_ttl must exceed access_token_ttl (got %v)", c.Auth.RefreshTokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be within [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	switch c.Database.Driver {
	case DriverPgx, DriverGorm:
	default:
		return fmt.Errorf("database.driver must be %q or %q (got %q)", DriverPgx, DriverGorm, c.Database.Driver)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be within [1, 65535] (got %d)", c.Server.Port)
	}

	if c.RPC.MaxBodyBytes <= 0 {
		return fmt.Errorf("rpc.max_body_bytes must be > 0 (got %d)", c.RPC.MaxBodyBytes)
	}
	if c.RPC.PingInterval < 0 {
		return fmt.Errorf("rpc.ping_interval must be >= 0 (got %v)", c.RPC.PingInterval)
	}

	// With credentials go-chi/cors echoes any origin in place of "*".
	if c.CORS.AllowCredentials && slices.Contains(c.CORS.Origins(), "*") {
		return errors.New("cors.allow_credentials requires an explicit cors.allowed_origins list")
	}

	return nil
}

// Validate checks the client configuration.
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server_url must be an absolute URL (got %q)", c.ServerURL)
	}
	if c.AutosaveDelay <= 0 {
		return fmt.Errorf("autosave_delay must be > 0 (got %v)", c.AutosaveDelay)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %v)", c.RequestTimeout)
	}
	return nil
}
