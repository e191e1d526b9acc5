package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
)

var getOverviewCmd = &cobra.Command{
	Use:   "get-overview",
	Short: "Show the layout on a coarse hex grid",
	RunE:  runGetOverview,
}

func init() {
	sessionIDFlag(getOverviewCmd)
}

func runGetOverview(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createEnvironmentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetOverview(ctx, &v1alpha1.GetOverviewRequest{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to get overview: %w", err)
	}

	fmt.Printf("Overview for %s (%dx%d %s grid)\n\n", resp.SessionID, resp.Width, resp.Height, resp.GridType)
	for _, cell := range resp.Cells {
		fmt.Printf("  (%d,%d) %s %s\n", cell.Col, cell.Row, cell.Kind, cell.Color)
	}
	if resp.Skipped > 0 {
		fmt.Printf("\n%d entries shared a cell and are not shown\n", resp.Skipped)
	}

	return nil
}
