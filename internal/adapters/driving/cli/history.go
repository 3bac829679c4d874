package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs",
	Long:  `View and manage the record of previous split runs.`,
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show every page of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [run-id]",
	Short: "Delete a run from history",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs")
	historyShowCmd.Flags().BoolVar(&historyJSON, "json", false, "output the run as JSON")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func requireHistory() error {
	if historyService == nil {
		return fmt.Errorf("%w: enable it with 'pagesplit config set history.enabled true'",
			domain.ErrHistoryUnavailable)
	}
	return nil
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if err := requireHistory(); err != nil {
		return err
	}

	runs, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	p := newPrinter(cmd.OutOrStdout())
	for i := range runs {
		run := &runs[i]
		status := p.ok("ok")
		if !run.Succeeded() {
			status = p.fail("failed")
		}
		cmd.Printf("%s  %s  %s\n", run.ID, run.StartedAt.Local().Format(time.DateTime), status)
		cmd.Printf("    %s -> %s\n", run.Source, run.Destination)
		cmd.Printf("    %d written, %d unresolved\n", run.WrittenCount, run.FailedCount)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if err := requireHistory(); err != nil {
		return err
	}

	run, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Run: %s\n", run.ID)
	cmd.Printf("Source: %s\n", run.Source)
	cmd.Printf("Destination: %s\n", run.Destination)
	cmd.Printf("Prefix: %s  Suffix: %s\n", run.Prefix, run.Suffix)
	cmd.Printf("Started: %s\n", run.StartedAt.Local().Format(time.DateTime))
	cmd.Printf("Duration: %s\n", run.Duration().Round(time.Millisecond))
	cmd.Printf("Written: %d  Unresolved: %d\n", run.WrittenCount, run.FailedCount)
	if run.Error != "" {
		cmd.Printf("Error: %s\n", run.Error)
	}
	cmd.Println()

	for _, out := range run.Outputs {
		id := out.Identifier
		if !out.Resolved {
			id = "-"
		}
		cmd.Printf("  %4d  %-40s %s\n", out.Index+1, out.Filename, id)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if err := requireHistory(); err != nil {
		return err
	}

	if err := historyService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	cmd.Printf("Deleted run %s\n", args[0])
	return nil
}
