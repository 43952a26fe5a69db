package maps_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	externalmock "github.com/KirkDiggler/rpg-mapgen/internal/clients/external/mock"
	"github.com/KirkDiggler/rpg-mapgen/internal/entities/layout"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/generation"
	"github.com/KirkDiggler/rpg-mapgen/internal/orchestrators/maps"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-mapgen/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-mapgen/internal/repositories/layouts"
	layoutsmock "github.com/KirkDiggler/rpg-mapgen/internal/repositories/layouts/mock"
	"github.com/KirkDiggler/rpg-mapgen/internal/repositories/templates"
	templatesmock "github.com/KirkDiggler/rpg-mapgen/internal/repositories/templates/mock"
	"github.com/KirkDiggler/rpg-mapgen/internal/testutils"
)

// recordingBus keeps every published event
type recordingBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, e events.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, e)
	return nil
}
func (b *recordingBus) Subscribe(_ string, _ events.Handler) string { return "sub-id" }
func (b *recordingBus) SubscribeFunc(_ string, _ int, _ events.HandlerFunc) string {
	return "sub-id"
}
func (b *recordingBus) Unsubscribe(_ string) error { return nil }
func (b *recordingBus) Clear(_ string)             {}
func (b *recordingBus) ClearAll()                  {}

func (b *recordingBus) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, e := range b.published {
		out = append(out, e.Type())
	}
	return out
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	mockTemplate *templatesmock.MockRepository
	mockCatalog  *externalmock.MockClient
	mapRepo      *layouts.InMemoryRepository
	bus          *recordingBus
	clock        *clock.Fixed
	set          *layout.TemplateSet
	cfg          *maps.Config
	orchestrator maps.Service
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockTemplate = templatesmock.NewMockRepository(s.ctrl)
	s.mockCatalog = externalmock.NewMockClient(s.ctrl)
	s.clock = clock.NewFixed(time.Date(2025, 7, 21, 12, 0, 0, 0, time.UTC))
	s.mapRepo = layouts.NewInMemory(s.clock)
	s.bus = &recordingBus{}
	s.set = testutils.CreateTestTemplateSet()

	settings := generation.DefaultSettings()
	settings.TargetRooms = 3

	s.cfg = &maps.Config{
		TemplateRepo:         s.mockTemplate,
		MapRepo:              s.mapRepo,
		IDGenerator:          idgen.NewSequential("map"),
		LootCatalog:          s.mockCatalog,
		EventBus:             s.bus,
		Clock:                s.clock,
		Settings:             settings,
		DefaultTemplateSetID: "offices",
		MapTTL:               time.Hour,
	}
	s.rebuild()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) rebuild() {
	var err error
	s.orchestrator, err = maps.NewOrchestrator(s.cfg)
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) expectTemplateSet() {
	s.mockTemplate.EXPECT().
		Get(s.ctx, &templates.GetInput{ID: "offices"}).
		Return(&templates.GetOutput{TemplateSet: s.set}, nil)
}

func seed(v int64) *int64 {
	return &v
}

func (s *OrchestratorTestSuite) TestGenerateMap() {
	s.expectTemplateSet()
	s.mockCatalog.EXPECT().
		ListLootNames(s.ctx, []string{"adventuring-gear"}).
		Return(map[string][]string{"adventuring-gear": {"Crowbar"}}, nil)

	out, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{
		OwnerID:   "player_1",
		Overrides: &maps.SettingsOverrides{Seed: seed(12345), SpawnSeed: seed(7)},
	})
	s.Require().NoError(err)

	m := out.Map
	s.Assert().Equal("map_1", m.ID)
	s.Assert().Equal("player_1", m.OwnerID)
	s.Assert().Equal("offices", m.TemplateSetID)
	s.Assert().Equal(int64(7), m.SpawnSeed)
	s.Assert().Equal(s.clock.Now(), m.CreatedAt)
	s.Assert().Equal(s.clock.Now().Add(time.Hour), m.ExpiresAt)
	s.Assert().NotEmpty(m.Rooms)
	s.Assert().Equal(1, out.NavMesh.Regions)
	s.Assert().Equal("map_1", out.NavMesh.MapID)

	for _, sp := range m.Spawns {
		if sp.Kind == layout.SpawnKindLoot {
			s.Assert().Equal("Crowbar", sp.Name)
		}
	}

	stored, err := s.orchestrator.GetMap(s.ctx, &maps.GetMapInput{MapID: "map_1"})
	s.Require().NoError(err)
	s.Assert().Equal(m, stored.Map)

	s.Assert().Equal([]string{maps.EventMapGenerated}, s.bus.types())
}

func (s *OrchestratorTestSuite) TestGenerateMapIsReproducible() {
	s.cfg.LootCatalog = nil
	s.rebuild()

	overrides := &maps.SettingsOverrides{Seed: seed(42), SpawnSeed: seed(42)}
	var runs []*layout.Map
	for i := 0; i < 2; i++ {
		s.expectTemplateSet()
		out, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{Overrides: overrides})
		s.Require().NoError(err)
		runs = append(runs, out.Map)
	}

	s.Assert().NotEqual(runs[0].ID, runs[1].ID)
	s.Assert().Equal(runs[0].Rooms, runs[1].Rooms)
	s.Assert().Equal(runs[0].Doorways, runs[1].Doorways)
	s.Assert().Equal(runs[0].Spawns, runs[1].Spawns)
}

func (s *OrchestratorTestSuite) TestGenerateMapCatalogFailureKeepsTableNames() {
	s.expectTemplateSet()
	s.mockCatalog.EXPECT().
		ListLootNames(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("dnd5e api down"))

	out, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{
		Overrides: &maps.SettingsOverrides{Seed: seed(1), SpawnSeed: seed(1)},
	})
	s.Require().NoError(err)

	for _, sp := range out.Map.Spawns {
		if sp.Kind == layout.SpawnKindLoot {
			s.Assert().Equal("stapler", sp.Name)
		}
	}
}

func (s *OrchestratorTestSuite) TestGenerateMapRequireQuota() {
	s.expectTemplateSet()
	s.mockCatalog.EXPECT().ListLootNames(s.ctx, gomock.Any()).Return(nil, nil)

	_, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{
		OwnerID:      "player_1",
		RequireQuota: true,
		Overrides: &maps.SettingsOverrides{
			TargetRooms:      50,
			MaxIterations:    1,
			MaxRegenerations: 2,
			Seed:             seed(5),
		},
	})
	s.Require().Error(err)
	s.Assert().True(errors.IsResourceExhausted(err))

	list, err := s.orchestrator.ListMaps(s.ctx, &maps.ListMapsInput{OwnerID: "player_1"})
	s.Require().NoError(err)
	s.Assert().Empty(list.Maps)
	s.Assert().Empty(s.bus.types())
}

func (s *OrchestratorTestSuite) TestGenerateMapBestEffortIsKept() {
	s.expectTemplateSet()
	s.mockCatalog.EXPECT().ListLootNames(s.ctx, gomock.Any()).Return(nil, nil)

	out, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{
		OwnerID: "player_1",
		Overrides: &maps.SettingsOverrides{
			TargetRooms:      50,
			MaxIterations:    1,
			MaxRegenerations: 2,
			Seed:             seed(5),
		},
	})
	s.Require().NoError(err)
	s.Assert().False(out.Map.QuotaMet)
	s.Assert().Equal(2, out.Map.Attempts)
	s.Assert().Equal(int64(6), out.Map.Seed)
}

func (s *OrchestratorTestSuite) TestGenerateMapErrors() {
	s.Run("nil input", func() {
		_, err := s.orchestrator.GenerateMap(s.ctx, nil)
		s.Assert().True(errors.IsInvalidArgument(err))
	})

	s.Run("bad override", func() {
		odds := 2.0
		_, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{
			Overrides: &maps.SettingsOverrides{RoomOdds: &odds},
		})
		s.Assert().True(errors.IsInvalidArgument(err))
		s.Assert().Contains(err.Error(), "RoomOdds")
	})

	s.Run("overrides past the limits", func() {
		_, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{
			OwnerID: "player_1",
			Overrides: &maps.SettingsOverrides{
				TargetRooms:      1_000_000_000,
				MaxIterations:    1_000_000_000,
				MaxRegenerations: 1_000_000_000,
			},
		})
		s.Require().True(errors.IsInvalidArgument(err), "got %v", err)
		meta := errors.GetMeta(err)
		s.Assert().Contains(meta, "TargetRooms")
		s.Assert().Contains(meta, "MaxIterations")
		s.Assert().Contains(meta, "MaxRegenerations")
	})

	s.Run("unknown template set", func() {
		s.mockTemplate.EXPECT().
			Get(s.ctx, &templates.GetInput{ID: "castle"}).
			Return(nil, errors.NotFound("template set castle not found"))

		_, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{TemplateSetID: "castle"})
		s.Assert().True(errors.IsNotFound(err))
	})

	s.Run("save failure", func() {
		mockMaps := layoutsmock.NewMockRepository(s.ctrl)
		s.cfg.MapRepo = mockMaps
		s.cfg.LootCatalog = nil
		s.rebuild()

		s.expectTemplateSet()
		mockMaps.EXPECT().Save(s.ctx, gomock.Any()).Return(nil, errors.Internal("disk full"))

		_, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{})
		s.Require().Error(err)
		s.Assert().True(errors.IsInternal(err))
		s.Assert().Contains(err.Error(), "failed to save map")
	})
}

func (s *OrchestratorTestSuite) TestGenerateMapCanceledWhileWaiting() {
	blocking := layoutsmock.NewMockRepository(s.ctrl)
	s.cfg.MaxConcurrent = 1
	s.cfg.LootCatalog = nil
	s.cfg.MapRepo = blocking
	s.rebuild()

	// The first request holds the only slot until release is closed
	entered := make(chan struct{})
	release := make(chan struct{})

	s.mockTemplate.EXPECT().
		Get(gomock.Any(), &templates.GetInput{ID: "offices"}).
		Return(&templates.GetOutput{TemplateSet: s.set}, nil).
		Times(2)
	blocking.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, *layouts.SaveInput) (*layouts.SaveOutput, error) {
			close(entered)
			<-release
			return &layouts.SaveOutput{}, nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{})
		done <- err
	}()
	<-entered

	ctx, cancel := context.WithTimeout(s.ctx, 20*time.Millisecond)
	defer cancel()
	_, err := s.orchestrator.GenerateMap(ctx, &maps.GenerateMapInput{})
	s.Assert().True(errors.IsCanceled(err))

	close(release)
	s.Require().NoError(<-done)
}

func (s *OrchestratorTestSuite) TestListAndDeleteMaps() {
	s.cfg.LootCatalog = nil
	s.rebuild()

	for i := 0; i < 2; i++ {
		s.expectTemplateSet()
		_, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{OwnerID: "player_1"})
		s.Require().NoError(err)
		s.clock.Advance(time.Minute)
	}

	list, err := s.orchestrator.ListMaps(s.ctx, &maps.ListMapsInput{OwnerID: "player_1"})
	s.Require().NoError(err)
	s.Require().Len(list.Maps, 2)
	s.Assert().Equal("map_1", list.Maps[0].ID)

	_, err = s.orchestrator.DeleteMap(s.ctx, &maps.DeleteMapInput{MapID: "map_1", OwnerID: "player_2"})
	s.Assert().True(errors.IsPermissionDenied(err))

	_, err = s.orchestrator.DeleteMap(s.ctx, &maps.DeleteMapInput{MapID: "map_1", OwnerID: "player_1"})
	s.Require().NoError(err)

	_, err = s.orchestrator.GetMap(s.ctx, &maps.GetMapInput{MapID: "map_1"})
	s.Assert().True(errors.IsNotFound(err))

	_, err = s.orchestrator.DeleteMap(s.ctx, &maps.DeleteMapInput{MapID: "map_1"})
	s.Assert().True(errors.IsNotFound(err))

	s.Assert().Equal(
		[]string{maps.EventMapGenerated, maps.EventMapGenerated, maps.EventMapDeleted},
		s.bus.types(),
	)
}

func (s *OrchestratorTestSuite) TestMapsExpire() {
	s.cfg.LootCatalog = nil
	s.rebuild()

	s.expectTemplateSet()
	out, err := s.orchestrator.GenerateMap(s.ctx, &maps.GenerateMapInput{OwnerID: "player_1"})
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)

	_, err = s.orchestrator.GetMap(s.ctx, &maps.GetMapInput{MapID: out.Map.ID})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListTemplateSets() {
	s.mockTemplate.EXPECT().
		List(s.ctx, &templates.ListInput{}).
		Return(&templates.ListOutput{TemplateSets: []*layout.TemplateSet{s.set}}, nil)

	out, err := s.orchestrator.ListTemplateSets(s.ctx, &maps.ListTemplateSetsInput{})
	s.Require().NoError(err)
	s.Assert().Len(out.TemplateSets, 1)
}

func (s *OrchestratorTestSuite) TestInputValidation() {
	_, err := s.orchestrator.GetMap(s.ctx, &maps.GetMapInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.ListMaps(s.ctx, &maps.ListMapsInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.DeleteMap(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestConfigValidation() {
	_, err := maps.NewOrchestrator(&maps.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	for _, field := range []string{"TemplateRepo", "MapRepo", "IDGenerator", "DefaultTemplateSetID"} {
		s.Assert().Contains(err.Error(), field)
	}
}
