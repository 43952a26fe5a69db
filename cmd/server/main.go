// Package main is the entry point for the map generation server and CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-mapgen/cmd/server/client"
	"github.com/KirkDiggler/rpg-mapgen/internal/config"
)

var (
	configPath string
	overrides  config.Overrides
)

var rootCmd = &cobra.Command{
	Use:   "rpg-mapgen",
	Short: "Procedural room-graph map generator",
	Long:  `rpg-mapgen grows dungeon maps from room templates and serves them over gRPC.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&overrides.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&overrides.TemplatesDir, "templates", "", "Directory of extra template set YAML files")
	rootCmd.PersistentFlags().BoolVar(&overrides.DisableLoot, "no-loot-catalog", false, "Name loot from the spawn table instead of the D&D 5e API")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
