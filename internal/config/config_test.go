package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-mapgen/internal/config"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/generation"
	"github.com/KirkDiggler/rpg-mapgen/internal/redis"
)

const sampleConfig = `
log_level: debug
server:
  port: 6000
  shutdown_timeout: 5s
generation:
  target_rooms: 12
  room_odds: 0.75
  custom_seed: 12345
  strategy: depth_first
templates:
  dir: /etc/mapgen/templates
  default_set: offices
storage:
  backend: redis
  map_ttl: 2h
  redis:
    mode: cluster
    endpoints: ["redis-a:6379", "redis-b:6379"]
catalog:
  enabled: false
render:
  cell_size: 24
`

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := config.Load("")
	s.Require().NoError(err)

	s.Assert().Equal(50051, cfg.Server.Port)
	s.Assert().Equal(config.StorageMemory, cfg.Storage.Backend)
	s.Assert().Equal(generation.DefaultSettings(), cfg.Generation)
	s.Assert().Equal("bunker", cfg.Templates.DefaultSet)
	s.Assert().True(cfg.Catalog.Enabled)
	s.Assert().Equal(slog.LevelInfo, cfg.SlogLevel())
}

func (s *ConfigTestSuite) TestParse() {
	cfg, err := config.Parse([]byte(sampleConfig))
	s.Require().NoError(err)

	s.Assert().Equal(slog.LevelDebug, cfg.SlogLevel())
	s.Assert().Equal(6000, cfg.Server.Port)
	s.Assert().Equal(5*time.Second, cfg.Server.ShutdownTimeout)

	s.Assert().Equal(12, cfg.Generation.TargetRooms)
	s.Assert().Equal(0.75, cfg.Generation.RoomOdds)
	s.Require().NotNil(cfg.Generation.CustomSeed)
	s.Assert().Equal(int64(12345), *cfg.Generation.CustomSeed)
	s.Assert().Equal(generation.StrategyDepthFirst, cfg.Generation.Strategy)
	// untouched keys keep their defaults
	s.Assert().Equal(generation.DefaultSettings().MaxIterations, cfg.Generation.MaxIterations)

	s.Assert().Equal("/etc/mapgen/templates", cfg.Templates.Dir)
	s.Assert().Equal("offices", cfg.Templates.DefaultSet)

	s.Assert().Equal(config.StorageRedis, cfg.Storage.Backend)
	s.Assert().Equal(2*time.Hour, cfg.Storage.MapTTL)
	s.Assert().Equal(redis.ModeCluster, cfg.Storage.Redis.Mode)
	s.Assert().Equal([]string{"redis-a:6379", "redis-b:6379"}, cfg.Storage.Redis.Options().Endpoints)

	s.Assert().False(cfg.Catalog.Enabled)
	s.Assert().Equal(24, cfg.Render.CellSize)
}

func (s *ConfigTestSuite) TestParseEmptyDocument() {
	cfg, err := config.Parse(nil)
	s.Require().NoError(err)
	s.Assert().Equal(config.Default(), cfg)
}

func (s *ConfigTestSuite) TestParseRejects() {
	testCases := []struct {
		name string
		doc  string
	}{
		{name: "unknown key", doc: "server:\n  prot: 6000\n"},
		{name: "bad yaml", doc: "server: [\n"},
		{name: "bad port", doc: "server:\n  port: 70000\n"},
		{name: "bad backend", doc: "storage:\n  backend: etcd\n"},
		{name: "sentinel without master", doc: "storage:\n  backend: redis\n  redis:\n    mode: sentinel\n"},
		{name: "bad generation", doc: "generation:\n  room_odds: 2\n"},
		{name: "bad log level", doc: "log_level: chatty\n"},
		{name: "skip defaults without dir", doc: "templates:\n  skip_defaults: true\n"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := config.Parse([]byte(tc.doc))
			s.Assert().True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *ConfigTestSuite) TestLoadFile() {
	path := filepath.Join(s.T().TempDir(), "mapgen.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := config.Load(path)
	s.Require().NoError(err)
	s.Assert().Equal(6000, cfg.Server.Port)
}

func (s *ConfigTestSuite) TestLoadMissingFile() {
	_, err := config.Load(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Assert().True(errors.IsNotFound(err))
}

func (s *ConfigTestSuite) TestApply() {
	cfg := config.Default()

	err := cfg.Apply(&config.Overrides{
		Port:          7000,
		LogLevel:      "warn",
		TemplatesDir:  "./templates",
		RedisEndpoint: "cache:6379",
		DisableLoot:   true,
	})
	s.Require().NoError(err)

	s.Assert().Equal(7000, cfg.Server.Port)
	s.Assert().Equal(slog.LevelWarn, cfg.SlogLevel())
	s.Assert().Equal("./templates", cfg.Templates.Dir)
	s.Assert().Equal(config.StorageRedis, cfg.Storage.Backend)
	s.Assert().Equal([]string{"cache:6379"}, cfg.Storage.Redis.Endpoints)
	s.Assert().False(cfg.Catalog.Enabled)
}

func (s *ConfigTestSuite) TestApplyKeepsUnsetValues() {
	cfg := config.Default()
	s.Require().NoError(cfg.Apply(&config.Overrides{}))
	s.Assert().Equal(config.Default(), cfg)

	s.Require().NoError(cfg.Apply(nil))
}

func (s *ConfigTestSuite) TestApplyValidates() {
	cfg := config.Default()
	err := cfg.Apply(&config.Overrides{Storage: "sqlite"})
	s.Assert().True(errors.IsInvalidArgument(err))
}
