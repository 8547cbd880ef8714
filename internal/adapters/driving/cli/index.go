package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Run an ingestion batch now",
	Long: `Lists the PDF files in the configured Drive folder, extracts their text
and writes them to the local search index. Runs to completion before
returning.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := ensureServices(ctx); err != nil {
		return err
	}

	batch, err := indexerService.Run(ctx)
	if err != nil {
		return fmt.Errorf("index failed: %w", err)
	}

	cmd.Printf("Batch %s %s: %d files attempted, %d indexed\n",
		batch.ID, batch.State, batch.Attempted, batch.Succeeded)
	return nil
}
