// Package main is the entry point for the pickupworld server and tools
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/cmd/server/client"
	"github.com/KirkDiggler/pickupworld/internal/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pickupworld",
	Short: "PickupWorld environment server",
	Long: `PickupWorld serves pickup environments over gRPC: a square room with randomly
placed balls, boxes and keys whose layout is recorded on the first reset and
replayed on every reset after it. An episode ends on the first pickup.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		handler, err := loaded.Logging.NewHandler(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to configure logging: %w", err)
		}
		slog.SetDefault(slog.New(handler))

		cfg = loaded
		return nil
	},
}

func main() {
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
