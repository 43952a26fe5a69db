package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-mapgen/internal/config"
	"github.com/KirkDiggler/rpg-mapgen/internal/generation"
	"github.com/KirkDiggler/rpg-mapgen/internal/orchestrators/maps"
	"github.com/KirkDiggler/rpg-mapgen/internal/render"
)

var (
	genOwner        string
	genTemplateSet  string
	genTargetRooms  int
	genSeed         int64
	genSpawnSeed    int64
	genStrategy     string
	genRequireQuota bool
	genOut          string
	genImage        string
	genThumbWidth   int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a map locally",
	Long: `Generate one map in-process and write it as JSON.
No server or redis is needed; the map is not kept after the command exits.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genOwner, "owner", "local", "Owner ID stamped on the map")
	generateCmd.Flags().StringVar(&genTemplateSet, "template-set", "", "Template set ID (default from config)")
	generateCmd.Flags().IntVar(&genTargetRooms, "target-rooms", 0, "Number of rooms to aim for")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Layout seed; 0 draws a fresh one")
	generateCmd.Flags().Int64Var(&genSpawnSeed, "spawn-seed", 0, "Spawn seed; 0 draws a fresh one")
	generateCmd.Flags().StringVar(&genStrategy, "strategy", "", "Growth strategy (breadth_first, depth_first)")
	generateCmd.Flags().BoolVar(&genRequireQuota, "require-quota", false, "Fail instead of keeping a map short of the target")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "-", "JSON output file, - for stdout")
	generateCmd.Flags().StringVar(&genImage, "image", "", "Write a preview image (.png or .webp)")
	generateCmd.Flags().IntVar(&genThumbWidth, "thumb-width", 0, "Scale the preview to this width")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	overrides.Storage = string(config.StorageMemory)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	input := &maps.GenerateMapInput{
		OwnerID:       genOwner,
		TemplateSetID: genTemplateSet,
		RequireQuota:  genRequireQuota,
		Overrides: &maps.SettingsOverrides{
			TargetRooms: genTargetRooms,
			Strategy:    generation.Strategy(genStrategy),
		},
	}
	if cmd.Flags().Changed("seed") {
		input.Overrides.Seed = &genSeed
	}
	if cmd.Flags().Changed("spawn-seed") {
		input.Overrides.SpawnSeed = &genSpawnSeed
	}

	out, err := a.service.GenerateMap(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to generate map: %w", err)
	}
	m := out.Map

	slog.Info("Map generated",
		"map_id", m.ID,
		"rooms", len(m.Rooms),
		"quota_met", m.QuotaMet,
		"attempts", m.Attempts,
		"nav_regions", out.NavMesh.Regions,
	)

	if err := writeJSON(genOut, m); err != nil {
		return err
	}

	if genImage != "" {
		if err := writeImage(cfg, genImage, out); err != nil {
			return err
		}
	}

	return nil
}

func writeJSON(path string, v any) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to write map: %w", err)
	}
	return nil
}

func writeImage(cfg *config.Config, path string, out *maps.GenerateMapOutput) error {
	format, err := render.ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}

	renderer, err := render.New(&render.Config{
		CellSize:     cfg.Render.CellSize,
		Padding:      cfg.Render.Padding,
		MaxDimension: cfg.Render.MaxDimension,
	})
	if err != nil {
		return err
	}

	img, err := renderer.Render(out.Map)
	if err != nil {
		return err
	}
	if genThumbWidth > 0 {
		img = render.Thumbnail(img, genThumbWidth)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := render.Encode(f, img, format); err != nil {
		return err
	}

	slog.Info("Preview written", "path", path, "format", format, "width", img.Bounds().Dx())
	return nil
}
