/*
Package config loads server configuration from the environment.

A .env file is honored when present (development convenience); real
environment variables win. The manager password gates the privileged
staff and export endpoints; SESSION_SECRET signs the session tokens
issued after a successful password check.
*/
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBPath          string
	ManagerPassword string
	SessionSecret   string
	SessionTTL      time.Duration
}

// Load reads configuration from .env and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:   getEnv("PORT", "8080"),
		DBPath: getEnv("TIPS_DB_PATH", "./data/tips.db"),

		// Default password is '1234' for testing.
		// In production, set the MANAGER_PASSWORD environment variable.
		ManagerPassword: getEnv("MANAGER_PASSWORD", "1234"),

		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 12*time.Hour),
	}
}

// Validate returns an error when the configuration is unusable.
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q: must be a number", c.Port)
	} else if port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	if c.DBPath == "" {
		return fmt.Errorf("database path is empty")
	}
	if c.ManagerPassword == "" {
		return fmt.Errorf("manager password is empty")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("session secret is empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
