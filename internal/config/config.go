// Package config loads the portal configuration from a TOML file with PORTAL_*
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"districtportal/internal/medium"
)

// Config represents the portal configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Storage StorageConfig `toml:"storage"`
}

// ServerConfig holds the dashboard HTTP server settings.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	IdleTimeout     Duration `toml:"idle_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json or text
}

// StorageConfig selects the durable medium.
// Driver determines which other fields are relevant.
type StorageConfig struct {
	Driver string `toml:"driver"` // memory, fs, sqlite, postgres, s3, mongo

	FSRoot string `toml:"fs_root,omitempty"`

	SQLitePath string `toml:"sqlite_path,omitempty"`

	PostgresDSN string `toml:"postgres_dsn,omitempty"`

	S3Bucket    string `toml:"s3_bucket,omitempty"`
	S3Prefix    string `toml:"s3_prefix,omitempty"`
	S3Region    string `toml:"s3_region,omitempty"`
	S3Endpoint  string `toml:"s3_endpoint,omitempty"`
	S3PathStyle bool   `toml:"s3_path_style,omitempty"`

	MongoURI        string `toml:"mongo_uri,omitempty"`
	MongoDatabase   string `toml:"mongo_database,omitempty"`
	MongoCollection string `toml:"mongo_collection,omitempty"`
}

// EffectiveDriver returns the configured driver; an empty driver selects sqlite.
func (s StorageConfig) EffectiveDriver() medium.Driver {
	if s.Driver == "" {
		return medium.DriverSQLite
	}
	return medium.Driver(s.Driver)
}

// IsSQLite reports whether the effective driver is sqlite.
func (s StorageConfig) IsSQLite() bool {
	return s.EffectiveDriver() == medium.DriverSQLite
}

// Duration is a time.Duration written as a Go duration string ("30s").
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file or environment is supplied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration{30 * time.Second},
			WriteTimeout:    Duration{60 * time.Second},
			IdleTimeout:     Duration{120 * time.Second},
			ShutdownTimeout: Duration{5 * time.Second},
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Storage: StorageConfig{
			Driver:     string(medium.DriverSQLite),
			SQLitePath: "portal.db",
		},
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if _, err := parseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("log.format: invalid format %q, allowed: json, text", c.Log.Format)
	}
	switch c.Storage.EffectiveDriver() {
	case medium.DriverMemory, medium.DriverFilesystem, medium.DriverSQLite, medium.DriverPostgres:
	case medium.DriverS3:
		if c.Storage.S3Bucket == "" {
			return errors.New("storage.s3_bucket is required for driver s3")
		}
	case medium.DriverMongo:
		if c.Storage.MongoURI == "" {
			return errors.New("storage.mongo_uri is required for driver mongo")
		}
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from r. Keys absent from the document take their default
// values; storage defaults apply only to the selected driver.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := &Config{}
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	fillDefaults(cfg, md)
	return cfg, nil
}

func fillDefaults(cfg *Config, md toml.MetaData) {
	def := Default()
	fields := []struct {
		key  []string
		fill func()
	}{
		{[]string{"server", "addr"}, func() { cfg.Server.Addr = def.Server.Addr }},
		{[]string{"server", "read_timeout"}, func() { cfg.Server.ReadTimeout = def.Server.ReadTimeout }},
		{[]string{"server", "write_timeout"}, func() { cfg.Server.WriteTimeout = def.Server.WriteTimeout }},
		{[]string{"server", "idle_timeout"}, func() { cfg.Server.IdleTimeout = def.Server.IdleTimeout }},
		{[]string{"server", "shutdown_timeout"}, func() { cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout }},
		{[]string{"log", "level"}, func() { cfg.Log.Level = def.Log.Level }},
		{[]string{"log", "format"}, func() { cfg.Log.Format = def.Log.Format }},
		{[]string{"storage", "driver"}, func() { cfg.Storage.Driver = def.Storage.Driver }},
	}
	for _, f := range fields {
		if !md.IsDefined(f.key...) {
			f.fill()
		}
	}
	if cfg.Storage.IsSQLite() && !md.IsDefined("storage", "sqlite_path") {
		cfg.Storage.SQLitePath = def.Storage.SQLitePath
	}
}

// Write encodes a Config to w.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads path (when non-empty), applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = ReadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to a new file at path. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
