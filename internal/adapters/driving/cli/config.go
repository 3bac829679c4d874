package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage default settings",
	Long: `View and change the defaults applied to every run.

Settings are stored in config.toml under the pagesplit home directory
($PAGESPLIT_HOME, default ~/.pagesplit). Collision policy, separator and
text mode take effect on the next start.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  split.prefix      output name prefix
  split.suffix      output file extension
  split.separator   character joining prefix and identifiers
  split.collision   overwrite, error or increment
  rules.file        TOML rule file (empty for the built-in rules)
  engine.text       pdftotext or native
  history.enabled   true or false`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireService("settings service", settingsService); err != nil {
			return err
		}
		cmd.Println(strings.Join(settingsService.Keys(), "\n"))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := requireService("settings service", settingsService); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	rulesFile := settings.RulesFile
	if rulesFile == "" {
		rulesFile = "(built-in)"
	}
	history := "disabled"
	if settings.History {
		history = "enabled"
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Split]")
	cmd.Printf("  Prefix: %s\n", settings.Prefix)
	cmd.Printf("  Suffix: %s\n", settings.Suffix)
	cmd.Printf("  Separator: %s\n", settings.Separator)
	cmd.Printf("  Collision: %s\n", settings.Collision)
	cmd.Println()
	cmd.Println("[Rules]")
	cmd.Printf("  File: %s\n", rulesFile)
	cmd.Println()
	cmd.Println("[Engine]")
	cmd.Printf("  Text: %s\n", settings.TextMode)
	cmd.Println()
	cmd.Println("[History]")
	cmd.Printf("  Status: %s\n", history)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireService("settings service", settingsService); err != nil {
		return err
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}
