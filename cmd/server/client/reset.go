package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a new episode",
	Long:  `Reset starts a new episode. The first reset of a session generates the layout; later resets replay it.`,
	RunE:  runReset,
}

func init() {
	sessionIDFlag(resetCmd)
}

func runReset(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createEnvironmentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Reset(ctx, &v1alpha1.ResetRequest{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}

	source := "replayed"
	if resp.Generated {
		source = "generated"
	}
	fmt.Printf("Episode %d started (layout %s)\n\n", resp.Episode, source)
	printLayout(resp.Layout)
	fmt.Println()
	printObservation(resp.Observation)

	return nil
}
