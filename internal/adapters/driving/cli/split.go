package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

var (
	splitDest   string
	splitPrefix string
	splitSuffix string
	splitRules  string
	splitDryRun bool
	splitJSON   bool
)

var splitCmd = &cobra.Command{
	Use:   "split [source]",
	Short: "Split a PDF into named single-page files",
	Long: `Splits a multi-page PDF into one file per page.

Each page is named <prefix>_<identifier>.<suffix>, where the identifier is
taken from the page text by the first matching rule. Later matching rules
append further identifiers. Pages no rule matches are named
AAA_FAILED_TO_READ_<n>.<suffix> and still written.

Flags override the values from 'pagesplit config'.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().StringVarP(&splitDest, "dest", "d", "", "destination directory (required unless --dry-run)")
	splitCmd.Flags().StringVarP(&splitPrefix, "prefix", "p", "", "output name prefix")
	splitCmd.Flags().StringVar(&splitSuffix, "suffix", "", "output file extension")
	splitCmd.Flags().StringVarP(&splitRules, "rules", "r", "", "TOML rule file")
	splitCmd.Flags().BoolVarP(&splitDryRun, "dry-run", "n", false, "show the names without writing files")
	splitCmd.Flags().BoolVar(&splitJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	if err := requireService("split service", splitService); err != nil {
		return err
	}

	req, err := buildRequest(args[0], splitDest, splitPrefix, splitSuffix, splitRules)
	if err != nil {
		return err
	}

	var result *domain.BatchResult
	if splitDryRun {
		result, err = splitService.Plan(cmd.Context(), req)
	} else {
		result, err = splitService.Split(cmd.Context(), req)
	}

	if result != nil {
		if splitJSON {
			if jerr := outputResultJSON(cmd, result); jerr != nil {
				return jerr
			}
		} else {
			outputResult(cmd, req, result, splitDryRun)
		}
	}
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}
	return nil
}

// buildRequest fills unset values from the stored settings.
func buildRequest(source, dest, prefix, suffix, rulesPath string) (domain.SplitRequest, error) {
	defaults := domain.DefaultSettings()
	settings := &defaults
	if settingsService != nil {
		stored, err := settingsService.Get()
		if err != nil {
			return domain.SplitRequest{}, fmt.Errorf("failed to get settings: %w", err)
		}
		settings = stored
	}

	if prefix == "" {
		prefix = settings.Prefix
	}
	if suffix == "" {
		suffix = settings.Suffix
	}
	if rulesPath == "" {
		rulesPath = settings.RulesFile
	}

	var rules []domain.Rule
	if ruleService != nil {
		loaded, err := ruleService.Load(rulesPath)
		if err != nil {
			return domain.SplitRequest{}, err
		}
		rules = loaded
	}

	return domain.SplitRequest{
		Source:      source,
		Destination: dest,
		Prefix:      prefix,
		Suffix:      suffix,
		Rules:       rules,
	}, nil
}

func outputResultJSON(cmd *cobra.Command, result *domain.BatchResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResult(cmd *cobra.Command, req domain.SplitRequest, result *domain.BatchResult, dryRun bool) {
	p := newPrinter(cmd.OutOrStdout())

	if dryRun {
		cmd.Println(p.title(fmt.Sprintf("Plan for %s", req.Source)))
	} else {
		cmd.Println(p.title(fmt.Sprintf("Split %s into %s", req.Source, req.Destination)))
	}
	cmd.Println()

	for _, out := range result.Outputs {
		mark := p.ok("ok  ")
		if !out.Resolved {
			mark = p.fail("FAIL")
		}
		cmd.Printf("  %s page %-4d %s\n", mark, out.Index+1, out.Filename)
	}
	cmd.Println()

	if dryRun {
		cmd.Printf("%d pages, %d unresolved\n", len(result.Outputs), result.FailedCount)
		return
	}
	cmd.Printf("%d pages written, %d unresolved %s\n",
		result.WrittenCount, result.FailedCount, p.dim("(run "+result.RunID+")"))
}
