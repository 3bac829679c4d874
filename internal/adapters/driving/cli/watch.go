package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
)

var (
	watchDest   string
	watchPrefix string
	watchSuffix string
	watchRules  string
)

var watchCmd = &cobra.Command{
	Use:   "watch [inbox]",
	Short: "Split PDFs as they arrive in a folder",
	Long: `Watches an inbox directory and splits every PDF dropped into it.

A file is picked up once it has stopped changing. Files present when the
watch starts are left alone. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDest, "dest", "d", "", "destination directory")
	watchCmd.Flags().StringVarP(&watchPrefix, "prefix", "p", "", "output name prefix")
	watchCmd.Flags().StringVar(&watchSuffix, "suffix", "", "output file extension")
	watchCmd.Flags().StringVarP(&watchRules, "rules", "r", "", "TOML rule file")
	_ = watchCmd.MarkFlagRequired("dest")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := requireService("watch service", watchService); err != nil {
		return err
	}

	template, err := buildRequest("", watchDest, watchPrefix, watchSuffix, watchRules)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := newPrinter(cmd.OutOrStdout())
	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])

	err = watchService.Watch(ctx, args[0], template, func(ev driving.WatchEvent) {
		if ev.Err != nil {
			cmd.Printf("%s %s: %v\n", p.fail("FAIL"), ev.Source, ev.Err)
			return
		}
		cmd.Printf("%s %s: %d written, %d unresolved\n",
			p.ok("ok  "), ev.Source, ev.Result.WrittenCount, ev.Result.FailedCount)
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
