package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
)

var closeSessionCmd = &cobra.Command{
	Use:   "close-session",
	Short: "Close a session and forget its layout",
	RunE:  runCloseSession,
}

func init() {
	sessionIDFlag(closeSessionCmd)
}

func runCloseSession(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createEnvironmentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.CloseSession(ctx, &v1alpha1.CloseSessionRequest{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}

	fmt.Printf("Session %s closed after %d episodes\n", sessionID, resp.EpisodesPlayed)
	return nil
}
