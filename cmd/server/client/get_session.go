package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
)

var getSessionCmd = &cobra.Command{
	Use:   "get-session",
	Short: "Describe a session",
	RunE:  runGetSession,
}

func init() {
	sessionIDFlag(getSessionCmd)
}

func runGetSession(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createEnvironmentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.GetSession(ctx, &v1alpha1.GetSessionRequest{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	info := resp.Session
	fmt.Printf("Session ID: %s\n", info.SessionID)
	fmt.Printf("State: %s\n", info.State)
	fmt.Printf("Episode: %d (%d steps)\n", info.Episode, info.Steps)
	fmt.Printf("Room size: %.1f, objects: %d, seed: %d\n", info.Size, info.NumObjs, info.Seed)
	fmt.Printf("Created: %s\n", info.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	return nil
}
