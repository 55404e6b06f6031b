package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/examwhispers/internal/storage"
	"github.com/nfrund/examwhispers/internal/study"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the logged study history",
	}
	cmd.AddCommand(newHistoryClearCmd())
	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	dataDir := defaultDataDir()

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every logged study session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracker := study.NewTracker(storage.NewDirStore(dataDir), nil)

			count := len(tracker.All(cmd.Context()))
			if err := tracker.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clearing history: %w", err)
			}

			if count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No history to clear.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Cleared %d sessions from %s\n", count, study.HistoryFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", dataDir, "Directory holding "+study.HistoryFile)
	return cmd
}
