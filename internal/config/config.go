package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
	DriverMemory   = "memory"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	BotToken string
	BotDebug bool
	AdminID  int64

	DBDriver   string
	DBDSN      string
	DBUser     string
	DBPassword string
	DBName     string
	DBHost     string
	DBPort     string

	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	MetricsAddr string
	LogLevel    string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("config.Load: no .env file found - using env variables")
	}

	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		DBDriver:       getEnv("DB_DRIVER", DriverPostgres),
		DBDSN:          os.Getenv("DB_DSN"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		SessionBackend: getEnv("SESSION_BACKEND", SessionBackendMemory),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("config.Load: BOT_TOKEN is required")
	}

	adminID := os.Getenv("ADMIN_ID")
	if adminID == "" {
		return nil, fmt.Errorf("config.Load: ADMIN_ID is required")
	}

	cfg.AdminID, err = strconv.ParseInt(adminID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("config.Load: ADMIN_ID must be an integer: %w", err)
	}

	if v := os.Getenv("BOT_DEBUG"); v != "" {
		cfg.BotDebug, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("config.Load: BOT_DEBUG: %w", err)
		}
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBDSN == "" && (cfg.DBUser == "" || cfg.DBPassword == "" || cfg.DBName == "") {
			return nil, fmt.Errorf("config.Load: DB_USER, DB_PASSWORD, DB_NAME are required")
		}
	case DriverSQLite:
		if cfg.DBDSN == "" {
			cfg.DBDSN = "survey.db"
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("config.Load: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
		if err != nil {
			return nil, fmt.Errorf("config.Load: REDIS_DB must be an integer: %w", err)
		}
	default:
		return nil, fmt.Errorf("config.Load: unsupported SESSION_BACKEND %q", cfg.SessionBackend)
	}

	return cfg, nil
}

// PostgresDSN builds the lib/pq connection string unless DB_DSN overrides it.
func (c *Config) PostgresDSN() string {
	if c.DBDSN != "" {
		return c.DBDSN
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
