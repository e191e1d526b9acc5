package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pickupworld/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/pickupworld/internal/persistence/layoutfile"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print a layout snapshot",
	Long:  `Inspect validates a layout snapshot written by run --export and prints its entries and overview grid.`,
	Args:  cobra.ExactArgs(1),
	RunE:  inspectLayout,
}

func inspectLayout(cmd *cobra.Command, args []string) error {
	header, snap, err := layoutfile.Read(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Format:      %s v%d\n", header.Format, header.Version)
	fmt.Printf("Written:     %s\n", header.WrittenAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("Session:     %s\n", snap.SessionID)
	fmt.Printf("Room size:   %.1f\n", snap.Size)
	fmt.Printf("Objects:     %d\n", snap.NumObjs)
	fmt.Printf("Seed:        %d\n", snap.Seed)

	fmt.Printf("\nEntries:\n")
	for i, entry := range snap.Entries {
		name := entry.Kind.String()
		if entry.Color != "" {
			name += "_" + string(entry.Color)
		}
		fmt.Printf("  %2d. %-14s x=%6.2f z=%6.2f dir=%5.2f\n",
			i+1, name, entry.Pose.Pos.X, entry.Pose.Pos.Z, entry.Pose.Dir)
	}

	overview, err := rpgtoolkit.NewProjector().Project(&rpgtoolkit.ProjectInput{
		SessionID: snap.SessionID,
		Size:      snap.Size,
		Layout:    snap.Layout(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nOverview (%dx%d %s grid):\n", rpgtoolkit.GridWidth, rpgtoolkit.GridHeight, overview.Room.GridType)
	fmt.Print(renderGrid(overview))
	if overview.Skipped > 0 {
		fmt.Printf("%d entries shared a cell and are not shown\n", overview.Skipped)
	}

	return nil
}

func renderGrid(overview *rpgtoolkit.ProjectOutput) string {
	grid := make([][]byte, rpgtoolkit.GridHeight)
	for row := range grid {
		grid[row] = []byte(strings.Repeat(".", rpgtoolkit.GridWidth))
	}
	for _, cell := range overview.Cells {
		grid[cell.Row][cell.Col] = cell.Kind.String()[0] - 'a' + 'A'
	}

	var b strings.Builder
	for _, line := range grid {
		b.WriteString("  ")
		b.WriteString(string(line))
		b.WriteByte('\n')
	}
	return b.String()
}
