// Package client provides commands that call a running map server over gRPC
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/handlers/mapgen/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the map service",
	Long:  `Client commands call a running map server with real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	ClientCmd.AddCommand(generateMapCmd)
	ClientCmd.AddCommand(getMapCmd)
	ClientCmd.AddCommand(listMapsCmd)
	ClientCmd.AddCommand(deleteMapCmd)
	ClientCmd.AddCommand(listTemplateSetsCmd)
}

// createMapClient connects to the server; call cleanup when done
func createMapClient() (v1alpha1.MapServiceClient, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewMapServiceClient(conn), cleanup, nil
}

func newRequest(fields map[string]any) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	return req, nil
}

// callFailed turns a gRPC status back into a coded error for display
func callFailed(what string, err error) error {
	return errors.Wrap(errors.FromGRPCError(err), what)
}

func printStruct(st *structpb.Struct) error {
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
