package client

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	ownerID      string
	templateSet  string
	targetRooms  int
	seed         int64
	requireQuota bool
)

var generateMapCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a map on the server",
	RunE:  runGenerateMap,
}

func init() {
	generateMapCmd.Flags().StringVar(&ownerID, "owner", "", "Owner ID (required)")
	generateMapCmd.Flags().StringVar(&templateSet, "template-set", "", "Template set ID (server default when empty)")
	generateMapCmd.Flags().IntVar(&targetRooms, "target-rooms", 0, "Number of rooms to aim for")
	generateMapCmd.Flags().Int64Var(&seed, "seed", 0, "Layout seed")
	generateMapCmd.Flags().BoolVar(&requireQuota, "require-quota", false, "Fail when the target is not reached")
	_ = generateMapCmd.MarkFlagRequired("owner") // nolint:errcheck // safe to ignore in init
}

func runGenerateMap(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createMapClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	overrides := map[string]any{}
	if targetRooms > 0 {
		overrides["target_rooms"] = targetRooms
	}
	if cmd.Flags().Changed("seed") {
		overrides["seed"] = strconv.FormatInt(seed, 10)
	}

	req, err := newRequest(map[string]any{
		"owner_id":        ownerID,
		"template_set_id": templateSet,
		"require_quota":   requireQuota,
		"overrides":       overrides,
	})
	if err != nil {
		return err
	}

	resp, err := client.GenerateMap(ctx, req)
	if err != nil {
		return callFailed("failed to generate map", err)
	}

	return printStruct(resp)
}
