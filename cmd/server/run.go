package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/internal/entities"
	"github.com/KirkDiggler/pickupworld/internal/orchestrators/session"
	"github.com/KirkDiggler/pickupworld/internal/persistence/layoutfile"
	"github.com/KirkDiggler/pickupworld/internal/pkg/clock"
	"github.com/KirkDiggler/pickupworld/internal/pkg/idgen"
	"github.com/KirkDiggler/pickupworld/internal/pkg/roller"
	"github.com/KirkDiggler/pickupworld/internal/repositories/episodes"
	"github.com/KirkDiggler/pickupworld/internal/repositories/layouts"
)

var (
	runEpisodes int
	runExport   string
	runSize     float64
	runNumObjs  int
	runSeed     int64
	runMaxSteps int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Roll out random episodes locally",
	Long: `Run plays episodes against an in-process environment with a random policy.
Every episode replays the layout recorded on the first reset.

  run --episodes 5 --seed 42
  run --size 8 --num-objs 3 --export layout.pwl`,
	RunE: runRollout,
}

func init() {
	runCmd.Flags().IntVar(&runEpisodes, "episodes", 3, "number of episodes to play")
	runCmd.Flags().StringVar(&runExport, "export", "", "write the recorded layout to this file")
	runCmd.Flags().Float64Var(&runSize, "size", 0, "room side length (overrides environment.size)")
	runCmd.Flags().IntVar(&runNumObjs, "num-objs", 0, "object count (overrides environment.num_objs)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "session seed (overrides environment.seed)")
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", 0, "episode step limit (overrides environment.max_episode_steps)")
}

func applyRunFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("size") {
		cfg.Environment.Size = runSize
	}
	if cmd.Flags().Changed("num-objs") {
		cfg.Environment.NumObjs = runNumObjs
	}
	if cmd.Flags().Changed("seed") {
		cfg.Environment.Seed = runSeed
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.Environment.MaxEpisodeSteps = runMaxSteps
	}
}

func runRollout(cmd *cobra.Command, args []string) error {
	applyRunFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if runEpisodes < 1 {
		return fmt.Errorf("--episodes must be at least 1, got %d", runEpisodes)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	clk := clock.New()
	episodeRepo := episodes.NewInMemory()

	svc, err := session.NewOrchestrator(&session.Config{
		IDGenerator: idgen.NewSequential("local"),
		Clock:       clk,
		LayoutRepo:  layouts.NewInMemory(clk),
		EpisodeRepo: episodeRepo,
	})
	if err != nil {
		return err
	}

	created, err := svc.CreateSession(ctx, &session.CreateSessionInput{
		Size:            cfg.Environment.Size,
		NumObjs:         cfg.Environment.NumObjs,
		Seed:            cfg.Environment.Seed,
		MaxEpisodeSteps: cfg.Environment.MaxEpisodeSteps,
	})
	if err != nil {
		return err
	}
	sessionID := created.Session.SessionID

	fmt.Printf("Session %s (size %.1f, %d objects, seed %d)\n",
		sessionID, created.Session.Size, created.Session.NumObjs, created.Session.Seed)

	policy := roller.NewSeeded(created.Session.Seed)
	for i := 0; i < runEpisodes; i++ {
		if err := playEpisode(ctx, svc, sessionID, policy); err != nil {
			return err
		}
	}

	listed, err := svc.ListEpisodes(ctx, &session.ListEpisodesInput{SessionID: sessionID})
	if err != nil {
		return err
	}

	fmt.Printf("\nEpisodes:\n")
	fmt.Printf("=========\n")
	for _, summary := range listed.Episodes {
		outcome := "truncated"
		if summary.Terminated {
			outcome = "picked up " + summary.Event
		}
		fmt.Printf("  #%d  %4d steps  %s\n", summary.Episode, summary.Steps, outcome)
	}

	if runExport != "" {
		if err := exportLayout(ctx, svc, sessionID, runExport); err != nil {
			return err
		}
		fmt.Printf("\nLayout written to %s\n", runExport)
	}

	_, err = svc.CloseSession(ctx, &session.CloseSessionInput{SessionID: sessionID})
	return err
}

func playEpisode(ctx context.Context, svc session.Service, sessionID string, policy *roller.Seeded) error {
	reset, err := svc.Reset(ctx, &session.ResetInput{SessionID: sessionID})
	if err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	if reset.Generated {
		fmt.Printf("Layout generated with %d entries\n", reset.Layout.Len())
	}

	for {
		roll, err := policy.Roll(entities.NumActions)
		if err != nil {
			return err
		}

		out, err := svc.Step(ctx, &session.StepInput{
			SessionID: sessionID,
			Action:    entities.Action(roll - 1),
		})
		if err != nil {
			return fmt.Errorf("step failed: %w", err)
		}
		if out.Result.Terminated || out.Result.Truncated {
			return nil
		}
	}
}

func exportLayout(ctx context.Context, svc session.Service, sessionID, path string) error {
	recorded, err := svc.GetLayout(ctx, &session.GetLayoutInput{SessionID: sessionID})
	if err != nil {
		return err
	}

	return layoutfile.Write(path, &layoutfile.Snapshot{
		Version:    layoutfile.Version,
		SessionID:  recorded.SessionID,
		Size:       recorded.Size,
		NumObjs:    recorded.NumObjs,
		Seed:       recorded.Seed,
		RecordedAt: recorded.RecordedAt,
		Entries:    recorded.Layout.Entries,
	}, time.Now())
}
