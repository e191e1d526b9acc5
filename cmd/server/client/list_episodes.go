package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
)

var limit int32

var listEpisodesCmd = &cobra.Command{
	Use:   "list-episodes",
	Short: "List a session's finished episodes",
	RunE:  runListEpisodes,
}

func init() {
	sessionIDFlag(listEpisodesCmd)
	listEpisodesCmd.Flags().Int32Var(&limit, "limit", 0, "Maximum episodes to list (0 for all)")
}

func runListEpisodes(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createEnvironmentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ListEpisodes(ctx, &v1alpha1.ListEpisodesRequest{SessionID: sessionID, Limit: limit})
	if err != nil {
		return fmt.Errorf("failed to list episodes: %w", err)
	}

	if len(resp.Episodes) == 0 {
		fmt.Printf("No finished episodes for %s\n", sessionID)
		return nil
	}

	for _, ep := range resp.Episodes {
		outcome := "abandoned"
		switch {
		case ep.Terminated:
			outcome = "picked up " + ep.Event
		case ep.Truncated:
			outcome = "truncated"
		}
		fmt.Printf("  #%d  %4d steps  %-20s %s\n",
			ep.Episode, ep.Steps, outcome, ep.EndedAt.Sub(ep.StartedAt))
	}

	return nil
}
