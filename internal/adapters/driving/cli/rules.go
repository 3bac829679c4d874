package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage identifier rules",
	Long: `View and check the ordered rule list used to find page identifiers.

Rule files are TOML:

  [[rules]]
  label   = "Admission Number"
  pattern = '([0-9]{5,6}).*(Admission Number)'
  group   = 1
  kind    = "numeric"`,
}

var rulesListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List rules in resolution order",
	Long:  `Lists the rules from a file, the configured rule file, or the built-in set.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRulesList,
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check rules for unusable capture groups",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRulesCheck,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
	rootCmd.AddCommand(rulesCmd)
}

func loadRulesArg(args []string) (string, []domain.Rule, error) {
	if err := requireService("rule service", ruleService); err != nil {
		return "", nil, err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return "", nil, fmt.Errorf("failed to get settings: %w", err)
		}
		path = settings.RulesFile
	}

	rules, err := ruleService.Load(path)
	if err != nil {
		return "", nil, err
	}
	return path, rules, nil
}

func runRulesList(cmd *cobra.Command, args []string) error {
	path, rules, err := loadRulesArg(args)
	if err != nil {
		return err
	}

	if path == "" {
		cmd.Println("Built-in rules:")
	} else {
		cmd.Printf("Rules from %s:\n", path)
	}
	cmd.Println()

	for i, r := range rules {
		kind := string(r.Kind)
		if kind == "" {
			kind = "-"
		}
		cmd.Printf("  %d. %s\n", i+1, r.Label)
		cmd.Printf("     Pattern: %s\n", r.Pattern)
		cmd.Printf("     Group: %d  Kind: %s\n", r.Group, kind)
	}
	return nil
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	_, rules, err := loadRulesArg(args)
	if err != nil {
		return err
	}

	problems := ruleService.Validate(rules)
	if len(problems) == 0 {
		cmd.Printf("%d rules OK\n", len(rules))
		return nil
	}

	for _, pr := range problems {
		cmd.Printf("  rule %d (%s): %s\n", pr.Position, pr.Label, pr.Reason)
	}
	return fmt.Errorf("%w: %d of %d rules cannot work", domain.ErrInvalidRule, len(problems), len(rules))
}
