package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/usersvc/internal/flagx"
	"github.com/dmitrijs2005/usersvc/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Absent keys leave the current value untouched, hence the pointers.
type JsonConfig struct {
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	EndpointAddrHealth    *string         `json:"endpoint_addr_health"`
	DatabaseDSN           *string         `json:"database_dsn"`
	DBHost                *string         `json:"db_host"`
	DBPort                *int            `json:"db_port"`
	DBUser                *string         `json:"db_user"`
	DBPassword            *string         `json:"db_password"`
	DBName                *string         `json:"db_name"`
	DBMaxOpenConns        *int            `json:"db_max_open_conns"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	LogLevel              *string         `json:"log_level"`
	LogFormat             *string         `json:"log_format"`
	ExposeErrors          *bool           `json:"expose_errors"`
}

// parseJson overlays the file named by -c/-config, if any.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.EndpointAddrHealth, c.EndpointAddrHealth)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.DBHost, c.DBHost)
	setIf(&config.DBPort, c.DBPort)
	setIf(&config.DBUser, c.DBUser)
	setIf(&config.DBPassword, c.DBPassword)
	setIf(&config.DBName, c.DBName)
	setIf(&config.DBMaxOpenConns, c.DBMaxOpenConns)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.LogFormat, c.LogFormat)
	setIf(&config.ExposeErrors, c.ExposeErrors)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}

	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
