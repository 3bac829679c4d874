package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagesplit/internal/adapters/driven/config/file"
	enginemem "github.com/custodia-labs/pagesplit/internal/adapters/driven/engine/memory"
	"github.com/custodia-labs/pagesplit/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pagesplit/internal/core/services"
)

// testEnv is an in-memory service stack behind the package-level services.
type testEnv struct {
	engine *enginemem.Engine
	runs   *memory.RunStore
	source string
	dest   string
}

const (
	testPageAdmission = "Report for pupil\n12345 Admission Number"
	testPageBlank     = "nothing to see here"
)

func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	source := filepath.Join(dir, "batch.pdf")
	require.NoError(t, os.WriteFile(source, []byte("%PDF-1.4"), 0o600))
	dest := filepath.Join(dir, "out")
	require.NoError(t, os.Mkdir(dest, 0o755))

	engine := enginemem.NewEngine()
	engine.AddDocument(source, testPageAdmission, testPageBlank)
	runs := memory.NewRunStore()

	split := services.NewSplitService(engine, runs, services.SplitConfig{})
	SetServices(Services{
		Split:    split,
		Rules:    services.NewRuleService(file.NewRuleFile()),
		History:  services.NewHistoryService(runs),
		Settings: services.NewSettingsService(memory.NewConfigStore()),
		Watch:    services.NewWatchService(nil, split),
	})
	t.Cleanup(func() { SetServices(Services{}) })

	return &testEnv{engine: engine, runs: runs, source: source, dest: dest}
}

// restart rebuilds the split service from the stored settings, the way
// startup does, keeping the engine, history and settings.
func (e *testEnv) restart(t *testing.T) {
	t.Helper()

	settings, err := settingsService.Get()
	require.NoError(t, err)

	split := services.NewSplitService(e.engine, e.runs, services.SplitConfig{
		Separator: settings.SeparatorRune(),
		Collision: settings.Collision,
	})
	SetServices(Services{
		Split:    split,
		Rules:    ruleService,
		History:  historyService,
		Settings: settingsService,
		Watch:    services.NewWatchService(nil, split),
	})
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default between executions.
func resetFlags() {
	var walk func(cmd *cobra.Command)
	walk = func(cmd *cobra.Command) {
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		cmd.Flags().VisitAll(reset)
		cmd.PersistentFlags().VisitAll(reset)
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}
