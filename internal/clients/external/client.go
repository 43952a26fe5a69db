// Package external is the location for the dnd5e-api loot catalog client
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/rpg-mapgen/internal/clients/external Client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
)

// Client names the loot a spawn table can drop
type Client interface {
	// ListLootByCategory returns every item in an equipment category with its details
	// Categories include: "simple-weapons", "martial-weapons", "adventuring-gear", etc.
	ListLootByCategory(ctx context.Context, category string) ([]*LootItem, error)

	// ListLootNames returns the sorted item names for each requested category
	ListLootNames(ctx context.Context, categories []string) (map[string][]string, error)
}

// LootItem is one piece of equipment a loot spawn can become
type LootItem struct {
	ID       string
	Name     string
	Category string
	Kind     string
	Weight   float32
	Cost     *CostData
}

// CostData is what an item is worth
type CostData struct {
	Quantity int
	Unit     string
}

type client struct {
	dnd5eClient dnd5e.Interface
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create D&D 5e API client: %w", err)
	}

	// Categories are read on every map generation, the cache keeps that off the wire
	cachedClient := dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

	return &client{
		dnd5eClient: cachedClient,
	}, nil
}

func (c *client) ListLootByCategory(_ context.Context, category string) ([]*LootItem, error) {
	equipmentCategory, err := c.dnd5eClient.GetEquipmentCategory(category)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment category %s from D&D 5e API: %w", category, err)
	}

	return c.loadLootDetails(category, equipmentCategory.Equipment)
}

func (c *client) ListLootNames(ctx context.Context, categories []string) (map[string][]string, error) {
	names := make(map[string][]string, len(categories))
	for _, category := range categories {
		if _, done := names[category]; done {
			continue
		}

		items, err := c.ListLootByCategory(ctx, category)
		if err != nil {
			return nil, err
		}

		list := make([]string, 0, len(items))
		for _, item := range items {
			list = append(list, item.Name)
		}
		sort.Strings(list)
		names[category] = list
	}
	return names, nil
}

// loadLootDetails loads full equipment details for a list of reference items concurrently
func (c *client) loadLootDetails(category string, refs []*entities.ReferenceItem) ([]*LootItem, error) {
	slog.Debug("Loading loot details concurrently", "category", category, "count", len(refs))
	items := make([]*LootItem, len(refs))
	errChan := make(chan error, len(refs))
	var wg sync.WaitGroup

	for i, ref := range refs {
		wg.Add(1)
		go func(idx int, key string, name string) {
			defer wg.Done()

			// Cached after the first call
			equipment, err := c.dnd5eClient.GetEquipment(key)
			if err != nil {
				slog.Error("Failed to get equipment details", "equipment", key, "error", err)
				errChan <- fmt.Errorf("failed to get equipment %s: %w", key, err)
				return
			}

			item := convertEquipmentToLootItem(equipment)
			if item == nil {
				item = &LootItem{}
			}
			item.ID = key
			if item.Name == "" {
				item.Name = name
			}
			item.Category = category
			items[idx] = item
		}(i, ref.Key, ref.Name)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return items, nil
}

// convertEquipmentToLootItem converts dnd5e-api equipment to a loot item
func convertEquipmentToLootItem(equipment dnd5e.EquipmentInterface) *LootItem {
	if equipment == nil {
		return nil
	}

	item := &LootItem{
		Kind: equipment.GetType(),
	}

	var cost *entities.Cost
	switch eq := equipment.(type) {
	case *entities.Weapon:
		item.Name = eq.Name
		item.Weight = float32(eq.Weight)
		cost = eq.Cost
	case *entities.Armor:
		item.Name = eq.Name
		item.Weight = float32(eq.Weight)
		cost = eq.Cost
	case *entities.Equipment:
		item.Name = eq.Name
		item.Weight = float32(eq.Weight)
		cost = eq.Cost
	}

	if cost != nil {
		item.Cost = &CostData{
			Quantity: cost.Quantity,
			Unit:     cost.Unit,
		}
	}

	return item
}
