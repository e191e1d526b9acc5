package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
)

var getLayoutCmd = &cobra.Command{
	Use:   "get-layout",
	Short: "Show the recorded layout",
	RunE:  runGetLayout,
}

func init() {
	sessionIDFlag(getLayoutCmd)
}

func runGetLayout(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createEnvironmentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetLayout(ctx, &v1alpha1.GetLayoutRequest{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to get layout: %w", err)
	}

	fmt.Printf("Layout for %s (size %.1f, %d objects, seed %d)\n", resp.SessionID, resp.Size, resp.NumObjs, resp.Seed)
	fmt.Printf("Recorded: %s\n\n", resp.RecordedAt.Format("2006-01-02 15:04:05 MST"))
	printLayout(resp.Layout)

	return nil
}
