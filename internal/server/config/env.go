package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv applies environment variables. A .env file (or the one named by
// -env) is loaded first; variables already set in the process win over it.
//
// Recognised variables:
//
//	PORT, HEALTH_ADDR, DATABASE_URL, DB_HOST, DB_PORT, DB_USER, DB_PASSWORD,
//	DB_NAME, DB_MAX_OPEN_CONNS, JWT_SECRET, TOKEN_TTL, LOG_LEVEL, LOG_FORMAT,
//	EXPOSE_ERRORS
func parseEnv(config *Config, args []string) error {
	envFile := flagx.EnvFile(args)
	if envFile == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
	} else if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	if v, ok := os.LookupEnv("HEALTH_ADDR"); ok {
		config.EndpointAddrHealth = v
	}

	envString("DATABASE_URL", &config.DatabaseDSN)
	envString("DB_HOST", &config.DBHost)
	envString("DB_USER", &config.DBUser)
	envString("DB_PASSWORD", &config.DBPassword)
	envString("DB_NAME", &config.DBName)
	envString("JWT_SECRET", &config.SecretKey)
	envString("LOG_LEVEL", &config.LogLevel)
	envString("LOG_FORMAT", &config.LogFormat)

	if err := envInt("DB_PORT", &config.DBPort); err != nil {
		return err
	}
	if err := envInt("DB_MAX_OPEN_CONNS", &config.DBMaxOpenConns); err != nil {
		return err
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		config.TokenValidityDuration = d
	}

	if v := os.Getenv("EXPOSE_ERRORS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("EXPOSE_ERRORS: %w", err)
		}
		config.ExposeErrors = b
	}

	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}
