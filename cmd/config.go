package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultLogLevel           = "info"
	defaultDBConnectTimeout   = 30 * time.Second
	defaultBacklogJobSchedule = "*/30 * * * * *"
)

type Config struct {
	HTTPPort           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string
	LogLevel           string
	DBConnectTimeout   time.Duration
	BacklogJobSchedule string
}

// LoadConfig reads the process environment after merging an optional .env file
// from the working directory. Every missing required key is reported.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	var errList []error
	required := func(key string) string {
		v := getenv(key)
		if v == "" {
			errList = append(errList, fmt.Errorf("%s is required", key))
		}
		return v
	}
	optional := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	config := Config{
		HTTPPort:           required("HTTP_PORT"),
		DBHost:             required("DB_HOST"),
		DBPort:             required("DB_PORT"),
		DBUser:             required("DB_USER"),
		DBPassword:         required("DB_PASSWORD"),
		DBName:             required("DB_NAME"),
		DBSslMode:          optional("DB_SSLMODE", "disable"),
		LogLevel:           optional("LOG_LEVEL", defaultLogLevel),
		DBConnectTimeout:   defaultDBConnectTimeout,
		BacklogJobSchedule: optional("BACKLOG_JOB_SCHEDULE", defaultBacklogJobSchedule),
	}

	if raw := getenv("DB_CONNECT_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			errList = append(errList, fmt.Errorf("DB_CONNECT_TIMEOUT %q is not a positive duration", raw))
		} else {
			config.DBConnectTimeout = timeout
		}
	}

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return config, nil
}

// DSN is the PostgreSQL connection string for the gorm driver.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
