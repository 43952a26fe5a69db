package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listOwnerID string

var listMapsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the live maps of an owner",
	RunE:  runListMaps,
}

func init() {
	listMapsCmd.Flags().StringVar(&listOwnerID, "owner", "", "Owner ID (required)")
	_ = listMapsCmd.MarkFlagRequired("owner") // nolint:errcheck // safe to ignore in init
}

func runListMaps(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createMapClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{"owner_id": listOwnerID})
	if err != nil {
		return err
	}

	resp, err := client.ListMaps(ctx, req)
	if err != nil {
		return callFailed("failed to list maps", err)
	}

	items := resp.GetFields()["maps"].GetListValue().GetValues()
	fmt.Printf("Maps for %s: %d\n\n", listOwnerID, len(items))
	for _, item := range items {
		m := item.GetStructValue().GetFields()
		fmt.Printf("  - %s  set=%s rooms=%d quota_met=%v created=%s\n",
			m["id"].GetStringValue(),
			m["template_set_id"].GetStringValue(),
			len(m["rooms"].GetListValue().GetValues()),
			m["quota_met"].GetBoolValue(),
			m["created_at"].GetStringValue(),
		)
	}

	return nil
}
