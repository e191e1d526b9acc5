package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
)

var (
	size            float64
	numObjs         int32
	seed            int64
	maxEpisodeSteps int32
)

var createSessionCmd = &cobra.Command{
	Use:   "create-session",
	Short: "Create an environment session",
	Long: `Create a session with a fixed room size and object count. The layout is
drawn on the first reset and replayed on every reset after it.`,
	RunE: runCreateSession,
}

func init() {
	createSessionCmd.Flags().Float64Var(&size, "size", 12, "Room side length (minimum 2)")
	createSessionCmd.Flags().Int32Var(&numObjs, "num-objs", 5, "Number of objects to place")
	createSessionCmd.Flags().Int64Var(&seed, "seed", 0, "Seed (0 draws one from the clock)")
	createSessionCmd.Flags().Int32Var(&maxEpisodeSteps, "max-steps", 0, "Episode step limit (0 uses the server default)")
}

func runCreateSession(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createEnvironmentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.CreateSession(ctx, &v1alpha1.CreateSessionRequest{
		Size:            size,
		NumObjs:         numObjs,
		Seed:            seed,
		MaxEpisodeSteps: maxEpisodeSteps,
	})
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	info := resp.Session
	fmt.Printf("Session created\n\n")
	fmt.Printf("Session ID: %s\n", info.SessionID)
	fmt.Printf("Room size: %.1f\n", info.Size)
	fmt.Printf("Objects: %d\n", info.NumObjs)
	fmt.Printf("Seed: %d\n", info.Seed)

	fmt.Printf("\nNext steps:\n")
	fmt.Printf("1. Start an episode: pickupworld client reset --session-id %s\n", info.SessionID)
	fmt.Printf("2. Act: pickupworld client step --session-id %s --action move_forward\n", info.SessionID)

	return nil
}
