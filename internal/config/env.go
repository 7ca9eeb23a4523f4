package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ApplyEnv overrides cfg with any PORTAL_* variables that are set.
//
//	PORTAL_ADDR, PORTAL_HTTP_READ_TIMEOUT, PORTAL_HTTP_WRITE_TIMEOUT,
//	PORTAL_HTTP_IDLE_TIMEOUT, PORTAL_SHUTDOWN_TIMEOUT
//	PORTAL_LOG_LEVEL, PORTAL_LOG_FORMAT
//	PORTAL_STORAGE_DRIVER, PORTAL_FS_ROOT, PORTAL_SQLITE_PATH, PORTAL_POSTGRES_DSN,
//	PORTAL_S3_BUCKET, PORTAL_S3_PREFIX, PORTAL_S3_REGION, PORTAL_S3_ENDPOINT,
//	PORTAL_S3_PATH_STYLE, PORTAL_MONGO_URI, PORTAL_MONGO_DATABASE, PORTAL_MONGO_COLLECTION
func ApplyEnv(cfg *Config) error {
	var err error
	cfg.Server.Addr = getEnvDefault("PORTAL_ADDR", cfg.Server.Addr)
	durations := []struct {
		key string
		dst *Duration
	}{
		{"PORTAL_HTTP_READ_TIMEOUT", &cfg.Server.ReadTimeout},
		{"PORTAL_HTTP_WRITE_TIMEOUT", &cfg.Server.WriteTimeout},
		{"PORTAL_HTTP_IDLE_TIMEOUT", &cfg.Server.IdleTimeout},
		{"PORTAL_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.dst.Duration, err = getEnvDuration(d.key, d.dst.Duration); err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
	}

	cfg.Log.Level = getEnvDefault("PORTAL_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnvDefault("PORTAL_LOG_FORMAT", cfg.Log.Format)

	s := &cfg.Storage
	s.Driver = getEnvDefault("PORTAL_STORAGE_DRIVER", s.Driver)
	s.FSRoot = getEnvDefault("PORTAL_FS_ROOT", s.FSRoot)
	s.SQLitePath = getEnvDefault("PORTAL_SQLITE_PATH", s.SQLitePath)
	s.PostgresDSN = getEnvDefault("PORTAL_POSTGRES_DSN", s.PostgresDSN)
	s.S3Bucket = getEnvDefault("PORTAL_S3_BUCKET", s.S3Bucket)
	s.S3Prefix = getEnvDefault("PORTAL_S3_PREFIX", s.S3Prefix)
	s.S3Region = getEnvDefault("PORTAL_S3_REGION", s.S3Region)
	s.S3Endpoint = getEnvDefault("PORTAL_S3_ENDPOINT", s.S3Endpoint)
	if s.S3PathStyle, err = getEnvBool("PORTAL_S3_PATH_STYLE", s.S3PathStyle); err != nil {
		return fmt.Errorf("PORTAL_S3_PATH_STYLE: %w", err)
	}
	s.MongoURI = getEnvDefault("PORTAL_MONGO_URI", s.MongoURI)
	s.MongoDatabase = getEnvDefault("PORTAL_MONGO_DATABASE", s.MongoDatabase)
	s.MongoCollection = getEnvDefault("PORTAL_MONGO_COLLECTION", s.MongoCollection)
	return nil
}

func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q (use Go format: 30s, 1h, 15m)", val)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be > 0")
	}
	return d, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q (allowed: true, false, 1, 0)", val)
	}
	return b, nil
}
