package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	Port                     string
	Env                      string
	ActivitiesAPIURL         string
	APITimeoutSeconds        int
	SignupStatusMillis       int
	UnregisterStatusMillis   int
	LogLevel                 string
	LogFormat                string
	DatabaseURL              string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeSeconds int
	RedisAddr                string
	RedisPassword            string
	RedisDB                  int
	StaticDir                string
}

func Default() Config {
	return Config{
		Port:                     "8080",
		Env:                      "dev",
		ActivitiesAPIURL:         "http://localhost:8000",
		APITimeoutSeconds:        10,
		SignupStatusMillis:       5000,
		UnregisterStatusMillis:   4000,
		LogLevel:                 "info",
		LogFormat:                "console",
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           10,
		DBConnMaxLifetimeSeconds: 300,
		StaticDir:                "static",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("PORT"); raw != "" {
		cfg.Port = raw
	}
	if raw := os.Getenv("ENV"); raw != "" {
		cfg.Env = raw
	}
	if raw := os.Getenv("ACTIVITIES_API_URL"); raw != "" {
		cfg.ActivitiesAPIURL = raw
	}
	if raw := os.Getenv("API_TIMEOUT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.APITimeoutSeconds = value
		}
	}
	if raw := os.Getenv("SIGNUP_STATUS_MS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.SignupStatusMillis = value
		}
	}
	if raw := os.Getenv("UNREGISTER_STATUS_MS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.UnregisterStatusMillis = value
		}
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = raw
	}
	if raw := os.Getenv("LOG_FORMAT"); raw != "" {
		cfg.LogFormat = raw
	}
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		cfg.DatabaseURL = raw
	}
	if raw := os.Getenv("DB_MAX_OPEN_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxOpenConns = value
		}
	}
	if raw := os.Getenv("DB_MAX_IDLE_CONNS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBMaxIdleConns = value
		}
	}
	if raw := os.Getenv("DB_CONN_MAX_LIFETIME_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DBConnMaxLifetimeSeconds = value
		}
	}
	if raw := os.Getenv("REDIS_ADDR"); raw != "" {
		cfg.RedisAddr = raw
	}
	if raw := os.Getenv("REDIS_PASSWORD"); raw != "" {
		cfg.RedisPassword = raw
	}
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.RedisDB = value
		}
	}
	if raw := os.Getenv("STATIC_DIR"); raw != "" {
		cfg.StaticDir = raw
	}
	return cfg
}

func (c Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

func (c Config) SignupStatusTTL() time.Duration {
	return time.Duration(c.SignupStatusMillis) * time.Millisecond
}

func (c Config) UnregisterStatusTTL() time.Duration {
	return time.Duration(c.UnregisterStatusMillis) * time.Millisecond
}

func (c Config) Addr() string {
	return ":" + c.Port
}
