package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

var (
	inspectPage  int
	inspectRules string
	inspectText  bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [source]",
	Short: "Show how the rules read one page",
	Long: `Extracts a single page and reports what every rule captures from it.

Pages are numbered from 1. Without --page a random page is chosen, which
is a quick way to check a rule set against a new batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectPage, "page", 0, "page number to inspect (0 = random)")
	inspectCmd.Flags().StringVarP(&inspectRules, "rules", "r", "", "TOML rule file")
	inspectCmd.Flags().BoolVar(&inspectText, "text", false, "print the extracted page text")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if err := requireService("split service", splitService); err != nil {
		return err
	}
	if err := requireService("rule service", ruleService); err != nil {
		return err
	}
	if inspectPage < 0 {
		return fmt.Errorf("%w: page must be positive", domain.ErrConfiguration)
	}

	rulesPath := inspectRules
	if rulesPath == "" && settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		rulesPath = settings.RulesFile
	}
	rules, err := ruleService.Load(rulesPath)
	if err != nil {
		return err
	}

	// Zero selects a random page in the service.
	index := inspectPage - 1
	inspection, err := splitService.Inspect(cmd.Context(), args[0], index, rules)
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	outputInspection(cmd, inspection)
	return nil
}

func outputInspection(cmd *cobra.Command, in *domain.PageInspection) {
	p := newPrinter(cmd.OutOrStdout())

	cmd.Println(p.title(fmt.Sprintf("Page %d of %d", in.Index+1, in.PageCount)))
	cmd.Println()

	for i, r := range in.Rules {
		switch {
		case r.Err != "":
			cmd.Printf("  %d. %-20s %s\n", i+1, r.Label, p.fail("error: "+r.Err))
		case r.Matched:
			cmd.Printf("  %d. %-20s %s %q\n", i+1, r.Label, p.ok("match"), r.Value)
		default:
			cmd.Printf("  %d. %-20s %s\n", i+1, r.Label, p.dim("no match"))
		}
	}
	cmd.Println()

	switch {
	case in.ResolveErr != "":
		cmd.Printf("Resolved: %s\n", p.fail("error, a split would stop here: "+in.ResolveErr))
	case in.Page.Resolved:
		ids := append([]string{in.Page.Primary}, in.Page.Additional...)
		cmd.Printf("Resolved: %s\n", strings.Join(ids, ", "))
	default:
		cmd.Println("Resolved: no (page would be written as a failed page)")
	}

	if inspectText {
		cmd.Println()
		cmd.Println(p.title("Text"))
		cmd.Println(in.Text)
	}
}
