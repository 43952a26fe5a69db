package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deleteMapID   string
	deleteOwnerID string
)

var deleteMapCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a stored map",
	RunE:  runDeleteMap,
}

func init() {
	deleteMapCmd.Flags().StringVar(&deleteMapID, "map-id", "", "Map ID (required)")
	deleteMapCmd.Flags().StringVar(&deleteOwnerID, "owner", "", "Owner ID; when set it must match the map")
	_ = deleteMapCmd.MarkFlagRequired("map-id") // nolint:errcheck // safe to ignore in init
}

func runDeleteMap(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createMapClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{
		"map_id":   deleteMapID,
		"owner_id": deleteOwnerID,
	})
	if err != nil {
		return err
	}

	if _, err := client.DeleteMap(ctx, req); err != nil {
		return callFailed("failed to delete map", err)
	}

	fmt.Printf("Deleted map %s\n", deleteMapID)
	return nil
}
