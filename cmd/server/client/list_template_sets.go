package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var listTemplateSetsCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the template sets the server can generate from",
	RunE:  runListTemplateSets,
}

func runListTemplateSets(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createMapClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := newRequest(map[string]any{})
	if err != nil {
		return err
	}

	resp, err := client.ListTemplateSets(ctx, req)
	if err != nil {
		return callFailed("failed to list template sets", err)
	}

	sets := resp.GetFields()["template_sets"].GetListValue().GetValues()
	fmt.Printf("Template sets: %d\n\n", len(sets))
	for _, item := range sets {
		set := item.GetStructValue().GetFields()
		fmt.Printf("  - %s (%s): %d starting rooms, %d growth templates\n",
			set["id"].GetStringValue(),
			set["name"].GetStringValue(),
			len(set["starting_rooms"].GetListValue().GetValues()),
			len(set["rooms"].GetListValue().GetValues()),
		)
	}

	return nil
}
