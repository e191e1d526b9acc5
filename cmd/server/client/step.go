package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/internal/handlers/pickup/v1alpha1"
)

var (
	action string
	repeat int
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Apply an action",
	Long: `Apply one of turn_left, turn_right, move_forward, move_back or pickup.
The episode ends on the first successful pickup.

  step --session-id sess_x --action move_forward --repeat 4
  step --session-id sess_x --action pickup`,
	RunE: runStep,
}

func init() {
	sessionIDFlag(stepCmd)
	stepCmd.Flags().StringVar(&action, "action", "", "Action name (required)")
	stepCmd.Flags().IntVar(&repeat, "repeat", 1, "Apply the action this many times, stopping when the episode ends")
	_ = stepCmd.MarkFlagRequired("action") // nolint:errcheck // safe to ignore in init
}

func runStep(_ *cobra.Command, _ []string) error {
	client, cleanup, err := createEnvironmentClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var resp *v1alpha1.StepResponse
	for i := 0; i < max(repeat, 1); i++ {
		resp, err = client.Step(ctx, &v1alpha1.StepRequest{SessionID: sessionID, Action: action})
		if err != nil {
			return fmt.Errorf("failed to step: %w", err)
		}
		if resp.Terminated || resp.Truncated {
			break
		}
	}

	fmt.Printf("Episode %d, step %d, reward %.2f\n", resp.Episode, resp.Steps, resp.Reward)
	printObservation(resp.Observation)

	switch {
	case resp.Terminated && resp.Event != "":
		fmt.Printf("\nPicked up %s, episode over\n", resp.Event)
	case resp.Terminated:
		fmt.Printf("\nEpisode terminated\n")
	case resp.Truncated:
		fmt.Printf("\nStep limit reached, episode over\n")
	}

	return nil
}
