// Package cli provides the cobra command tree for pagesplit.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
	"github.com/custodia-labs/pagesplit/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose  bool
	logLevel string
)

// Services set by main. Tests replace them directly.
var (
	splitService    driving.SplitService
	ruleService     driving.RuleService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	watchService    driving.WatchService
)

var errNotConfigured = errors.New("service not configured")

// Services groups the driving ports the commands use.
type Services struct {
	Split    driving.SplitService
	Rules    driving.RuleService
	History  driving.HistoryService
	Settings driving.SettingsService
	Watch    driving.WatchService
}

// SetServices installs the services used by every command.
// History may be nil when run history is disabled.
func SetServices(s Services) {
	splitService = s.Split
	ruleService = s.Rules
	historyService = s.History
	settingsService = s.Settings
	watchService = s.Watch
}

var rootCmd = &cobra.Command{
	Use:   "pagesplit",
	Short: "Split multi-page PDFs into named single-page files",
	Long: `pagesplit splits a multi-page PDF into one file per page and names each
file from an identifier found in the page text.

Identifiers are found by an ordered list of regular expression rules. Pages
no rule matches are written as AAA_FAILED_TO_READ_<n>.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if logLevel != "" {
			level, err := logger.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
		}
		if verbose {
			logger.SetVerbose(true)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func requireService(name string, svc any) error {
	if svc == nil {
		return fmt.Errorf("%s %w", name, errNotConfigured)
	}
	return nil
}
