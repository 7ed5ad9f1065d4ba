package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/pkg/errs"
)

const (
	defaultEventQueueSize   = 64
	defaultSSEHeartbeat     = 15 * time.Second
	defaultBusStatsSchedule = "0 * * * * *"

	maxEventQueueSize = 65536
	maxSSEHeartbeat   = 10 * time.Minute
	maxRedisDB        = 15
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SessionKeyPrefix string

	EventQueueSize   int
	SSEHeartbeat     time.Duration
	BusStatsSchedule string
	LogLevel         slog.Level
}

// ConfigFromEnv builds a Config from getenv, applying defaults for optional
// keys. Numeric values that do not parse are reported, not defaulted.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:         getenv("HTTP_PORT"),
		DBHost:           getenv("DB_HOST"),
		DBPort:           getenv("DB_PORT"),
		DBUser:           getenv("DB_USER"),
		DBPassword:       getenv("DB_PASSWORD"),
		DBName:           getenv("DB_NAME"),
		DBSslMode:        getenv("DB_SSLMODE"),
		RedisAddr:        getenv("REDIS_ADDR"),
		RedisPassword:    getenv("REDIS_PASSWORD"),
		SessionKeyPrefix: getenv("SESSION_KEY_PREFIX"),
		BusStatsSchedule: getenv("BUS_STATS_SCHEDULE"),
		EventQueueSize:   defaultEventQueueSize,
		SSEHeartbeat:     defaultSSEHeartbeat,
		LogLevel:         slog.LevelInfo,
	}
	if cfg.DBSslMode == "" {
		cfg.DBSslMode = "disable"
	}
	if cfg.BusStatsSchedule == "" {
		cfg.BusStatsSchedule = defaultBusStatsSchedule
	}

	var parseErrs []error
	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause("REDIS_DB", err))
		}
		cfg.RedisDB = n
	}
	if v := getenv("EVENT_QUEUE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause("EVENT_QUEUE_SIZE", err))
		}
		cfg.EventQueueSize = n
	}
	if v := getenv("SSE_HEARTBEAT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause("SSE_HEARTBEAT_SECONDS", err))
		}
		cfg.SSEHeartbeat = time.Duration(n) * time.Second
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			parseErrs = append(parseErrs, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
		}
	}

	if err := errors.Join(parseErrs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings needed to serve traffic.
func (c Config) Validate() error {
	var errList []error

	required := []struct {
		name  string
		value string
	}{
		{"HTTP_PORT", c.HTTPPort},
		{"DB_HOST", c.DBHost},
		{"DB_PORT", c.DBPort},
		{"DB_USER", c.DBUser},
		{"DB_NAME", c.DBName},
		{"REDIS_ADDR", c.RedisAddr},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errList = append(errList, errs.NewValueIsRequiredError(r.name))
		}
	}

	if c.RedisDB < 0 || c.RedisDB > maxRedisDB {
		errList = append(errList, errs.NewValueIsOutOfRangeError("REDIS_DB", c.RedisDB, 0, maxRedisDB))
	}
	if c.EventQueueSize < 1 || c.EventQueueSize > maxEventQueueSize {
		errList = append(errList, errs.NewValueIsOutOfRangeError("EVENT_QUEUE_SIZE", c.EventQueueSize, 1, maxEventQueueSize))
	}
	if c.SSEHeartbeat < 0 || c.SSEHeartbeat > maxSSEHeartbeat {
		errList = append(errList, errs.NewValueIsOutOfRangeError("SSE_HEARTBEAT_SECONDS", c.SSEHeartbeat, 0, maxSSEHeartbeat))
	}

	return errors.Join(errList...)
}

// DatabaseDSN is the postgres connection string for gorm.
func (c Config) DatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
