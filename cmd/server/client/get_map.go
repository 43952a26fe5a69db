package client

import (
	"context"

	"github.com/spf13/cobra"
)

var mapID string

var getMapCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a stored map by ID",
	RunE:  runGetMap,
}

func init() {
	getMapCmd.Flags().StringVar(&mapID, "map-id", "", "Map ID (required)")
	_ = getMapCmd.MarkFlagRequired("map-id") // nolint:errcheck // safe to ignore in init
}

func runGetMap(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createMapClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{"map_id": mapID})
	if err != nil {
		return err
	}

	resp, err := client.GetMap(ctx, req)
	if err != nil {
		return callFailed("failed to get map", err)
	}

	return printStruct(resp)
}
