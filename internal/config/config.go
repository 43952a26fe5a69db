// Package config loads the server and generator configuration from a YAML
// file. Command line flags are applied on top with Apply.
package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/generation"
	"github.com/KirkDiggler/rpg-mapgen/internal/redis"
	"github.com/KirkDiggler/rpg-mapgen/internal/repositories/layouts"
	"github.com/KirkDiggler/rpg-mapgen/internal/repositories/templates"
)

// StorageBackend selects where generated maps are kept
type StorageBackend string

// Storage backends
const (
	StorageMemory StorageBackend = "memory"
	StorageRedis  StorageBackend = "redis"
)

// ServerConfig configures the gRPC listener
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxConcurrent   int           `yaml:"max_concurrent"`
}

// TemplatesConfig configures the template set repository
type TemplatesConfig struct {
	Dir          string `yaml:"dir"`
	SkipDefaults bool   `yaml:"skip_defaults"`
	DefaultSet   string `yaml:"default_set"`
}

// RedisConfig configures the redis connection used by the redis backend
type RedisConfig struct {
	Mode       redis.Mode `yaml:"mode"`
	Endpoints  []string   `yaml:"endpoints"`
	MasterName string     `yaml:"master_name"`
	PoolSize   int        `yaml:"pool_size"`
	UseTLS     bool       `yaml:"use_tls"`
}

// Options converts to client options
func (r RedisConfig) Options() *redis.Options {
	return &redis.Options{
		Mode:       r.Mode,
		Endpoints:  append([]string(nil), r.Endpoints...),
		MasterName: r.MasterName,
		PoolSize:   r.PoolSize,
		UseTLS:     r.UseTLS,
	}
}

// StorageConfig configures map persistence
type StorageConfig struct {
	Backend StorageBackend `yaml:"backend"`
	MapTTL  time.Duration  `yaml:"map_ttl"`
	Redis   RedisConfig    `yaml:"redis"`
}

// CatalogConfig configures the loot catalog
type CatalogConfig struct {
	Enabled     bool          `yaml:"enabled"`
	BaseURL     string        `yaml:"base_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

// RenderConfig configures preview images
type RenderConfig struct {
	CellSize     int `yaml:"cell_size"`
	Padding      int `yaml:"padding"`
	MaxDimension int `yaml:"max_dimension"`
}

// Config is the complete configuration
type Config struct {
	LogLevel   string              `yaml:"log_level"`
	Server     ServerConfig        `yaml:"server"`
	Generation generation.Settings `yaml:"generation"`
	Templates  TemplatesConfig     `yaml:"templates"`
	Storage    StorageConfig       `yaml:"storage"`
	Catalog    CatalogConfig       `yaml:"catalog"`
	Render     RenderConfig        `yaml:"render"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:            50051,
			ShutdownTimeout: 30 * time.Second,
			MaxConcurrent:   4,
		},
		Generation: generation.DefaultSettings(),
		Templates: TemplatesConfig{
			DefaultSet: templates.DefaultSetID,
		},
		Storage: StorageConfig{
			Backend: StorageMemory,
			MapTTL:  layouts.DefaultTTL,
			Redis: RedisConfig{
				Mode:      redis.ModeSingle,
				Endpoints: []string{"localhost:6379"},
			},
		},
		Catalog: CatalogConfig{
			Enabled: true,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("config file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config file %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.InvalidArgumentf("failed to parse config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides are flag values; zero values leave the loaded config alone
type Overrides struct {
	Port          int
	LogLevel      string
	TemplatesDir  string
	Storage       string
	RedisEndpoint string
	DisableLoot   bool
}

// Apply copies the set overrides into c and validates the result
func (c *Config) Apply(o *Overrides) error {
	if o == nil {
		return nil
	}

	if o.Port != 0 {
		c.Server.Port = o.Port
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.TemplatesDir != "" {
		c.Templates.Dir = o.TemplatesDir
	}
	if o.Storage != "" {
		c.Storage.Backend = StorageBackend(o.Storage)
	}
	if o.RedisEndpoint != "" {
		c.Storage.Backend = StorageRedis
		c.Storage.Redis.Mode = redis.ModeSingle
		c.Storage.Redis.Endpoints = []string{o.RedisEndpoint}
	}
	if o.DisableLoot {
		c.Catalog.Enabled = false
	}

	return c.Validate()
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if _, err := parseLevel(c.LogLevel); err != nil {
		vb.Fieldf("log_level", "unknown level %q", c.LogLevel)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		vb.Fieldf("server.port", "must be within [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout < 0 {
		vb.Field("server.shutdown_timeout", "must not be negative")
	}
	if c.Server.MaxConcurrent < 0 {
		vb.Field("server.max_concurrent", "must not be negative")
	}
	if c.Templates.SkipDefaults && c.Templates.Dir == "" {
		vb.Field("templates.dir", "is required when skip_defaults is set")
	}
	if c.Storage.MapTTL < 0 {
		vb.Field("storage.map_ttl", "must not be negative")
	}

	switch c.Storage.Backend {
	case StorageMemory:
	case StorageRedis:
		if err := c.Storage.Redis.Options().Validate(); err != nil {
			vb.Fieldf("storage.redis", "%s", errors.GetMessage(err))
		}
	default:
		vb.Fieldf("storage.backend", "must be one of: %s, %s", StorageMemory, StorageRedis)
	}

	if c.Render.CellSize < 0 || c.Render.Padding < 0 || c.Render.MaxDimension < 0 {
		vb.Field("render", "sizes must not be negative")
	}

	if err := c.Generation.Validate(); err != nil {
		vb.Fieldf("generation", "%s", errors.GetMessage(err))
	}

	return vb.Build()
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(s)))
	return level, err
}
