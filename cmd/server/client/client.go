// Package client provides commands that exercise a running PickupWorld server
package client

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration

	// Shared by the session commands
	sessionID string
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for a PickupWorld server",
	Long:  `Client commands drive a PickupWorld server by making real gRPC requests.`,
}

func init() {
	// Add persistent flags for all client commands
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Session lifecycle
	ClientCmd.AddCommand(createSessionCmd)
	ClientCmd.AddCommand(getSessionCmd)
	ClientCmd.AddCommand(closeSessionCmd)

	// Episodes
	ClientCmd.AddCommand(resetCmd)
	ClientCmd.AddCommand(stepCmd)
	ClientCmd.AddCommand(listEpisodesCmd)

	// Layout
	ClientCmd.AddCommand(getLayoutCmd)
	ClientCmd.AddCommand(getOverviewCmd)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createEnvironmentClient creates an environment service client
func createEnvironmentClient() (v1alpha1.EnvironmentServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	client := v1alpha1.NewEnvironmentServiceClient(conn)
	return client, cleanup, nil
}

// sessionIDFlag registers the required --session-id flag on cmd
func sessionIDFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Session ID (required)")
	_ = cmd.MarkFlagRequired("session-id") // nolint:errcheck // safe to ignore in init
}

func printLayout(layout []v1alpha1.LayoutEntry) {
	for i, entry := range layout {
		name := entry.Kind
		if entry.Color != "" {
			name += "_" + entry.Color
		}
		fmt.Printf("  %2d. %-14s x=%6.2f z=%6.2f dir=%5.2f\n",
			i+1, name, entry.Pose.X, entry.Pose.Z, entry.Pose.Dir)
	}
}

func printObservation(obs *v1alpha1.Observation) {
	if obs == nil {
		return
	}
	fmt.Printf("Agent: x=%.2f z=%.2f dir=%.2f\n", obs.Agent.X, obs.Agent.Z, obs.Agent.Dir)
	if obs.Carrying != "" {
		fmt.Printf("Carrying: %s\n", obs.Carrying)
	}
	fmt.Printf("Visible objects: %d\n", len(obs.Entities))
	for _, ent := range obs.Entities {
		fmt.Printf("  - %-12s x=%6.2f z=%6.2f\n", ent.Mesh, ent.Pose.X, ent.Pose.Z)
	}
}
