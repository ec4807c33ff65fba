// Package config handles configuration for the server and the operator CLI:
// defaults, JSON overlay, process environment (optionally seeded from a
// .env file) and command-line flags, applied in that order.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// DefaultSecretKey is the development signing secret used when nothing else
// is configured. The server warns at startup when it is still in effect.
const DefaultSecretKey = "secretKey"

// Config holds runtime settings for the user service.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the JSON API.
//   - EndpointAddrHealth: bind address for the gRPC health service; empty disables it.
//   - DatabaseDSN: full PostgreSQL DSN; when empty it is assembled from the DB* parts.
//   - DBMaxOpenConns: upper bound of the shared connection pool.
//   - SecretKey: HMAC secret for signing JWTs (HS256).
//   - TokenValidityDuration: lifetime of issued bearer tokens.
//   - ExposeErrors: include internal error detail in 500 responses.
type Config struct {
	EndpointAddrHTTP      string
	EndpointAddrHealth    string
	DatabaseDSN           string
	DBHost                string
	DBPort                int
	DBUser                string
	DBPassword            string
	DBName                string
	DBMaxOpenConns        int
	SecretKey             string
	TokenValidityDuration time.Duration
	LogLevel              string
	LogFormat             string
	ExposeErrors          bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3000"
	c.EndpointAddrHealth = ":50051"
	c.DatabaseDSN = ""
	c.DBHost = "localhost"
	c.DBPort = 5432
	c.DBUser = "postgres"
	c.DBPassword = "postgres"
	c.DBName = "users"
	c.DBMaxOpenConns = 10
	c.SecretKey = DefaultSecretKey
	c.TokenValidityDuration = time.Hour
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.ExposeErrors = false
}

// LoadConfig builds a Config from defaults, then the JSON file, the
// environment and finally the flags found in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns DatabaseDSN or a postgres:// URL built from the parts.
func (c *Config) DSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// UsesDefaultSecret reports whether tokens are signed with the built-in secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.EndpointAddrHTTP == "" {
		return fmt.Errorf("http address must not be empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key must not be empty")
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration)
	}
	return nil
}
