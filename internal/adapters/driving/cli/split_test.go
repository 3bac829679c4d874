package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

func TestSplitCmd_Use(t *testing.T) {
	assert.Equal(t, "split [source]", splitCmd.Use)
}

func TestSplitCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "split")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSplitCmd_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"dest", "d", ""},
		{"prefix", "p", ""},
		{"suffix", "", ""},
		{"rules", "r", ""},
		{"dry-run", "n", "false"},
		{"json", "", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := splitCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestSplitCmd_WritesPages(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "split", env.source, "--dest", env.dest)

	require.NoError(t, err)
	assert.Contains(t, out, "ExamTimetable_12345.pdf")
	assert.Contains(t, out, "AAA_FAILED_TO_READ_1.pdf")
	assert.Contains(t, out, "2 pages written, 1 unresolved")
	assert.NotContains(t, out, "\x1b[", "output to a buffer is never styled")

	assert.FileExists(t, filepath.Join(env.dest, "ExamTimetable_12345.pdf"))
	assert.FileExists(t, filepath.Join(env.dest, "AAA_FAILED_TO_READ_1.pdf"))
}

func TestSplitCmd_PrefixAndSuffixFlags(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "split", env.source, "-d", env.dest, "-p", "Results", "--suffix", ".txt")

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(env.dest, "Results_12345.txt"))
	assert.FileExists(t, filepath.Join(env.dest, "AAA_FAILED_TO_READ_1.txt"))
}

func TestSplitCmd_UsesStoredPrefix(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, settingsService.Set("split.prefix", "Stored"))

	_, err := execute(t, "split", env.source, "-d", env.dest)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(env.dest, "Stored_12345.pdf"))
}

func TestSplitCmd_DryRunWritesNothing(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "split", env.source, "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "Plan for")
	assert.Contains(t, out, "ExamTimetable_12345.pdf")
	assert.Contains(t, out, "2 pages, 1 unresolved")
	assert.Empty(t, env.engine.Saved())

	entries, err := os.ReadDir(env.dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSplitCmd_JSON(t *testing.T) {
	env := setupTestServices(t)

	out, err := execute(t, "split", env.source, "-d", env.dest, "--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"WrittenCount": 2`)
	assert.Contains(t, out, `"filename": "ExamTimetable_12345.pdf"`)
}

func TestSplitCmd_RulesFile(t *testing.T) {
	env := setupTestServices(t)

	rules := filepath.Join(t.TempDir(), "rules.toml")
	require.NoError(t, os.WriteFile(rules, []byte(`
[[rules]]
label = "Pupil"
pattern = 'Report for (\w+)'
`), 0o600))

	_, err := execute(t, "split", env.source, "-d", env.dest, "--rules", rules)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(env.dest, "ExamTimetable_pupil.pdf"))
}

func TestSplitCmd_MissingDestination(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "split", env.source)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Equal(t, 0, env.engine.Opened())
}

func TestSplitCmd_RecordsHistory(t *testing.T) {
	env := setupTestServices(t)

	_, err := execute(t, "split", env.source, "-d", env.dest)
	require.NoError(t, err)

	runs, err := env.runs.List(t.Context(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, env.source, runs[0].Source)
	assert.Equal(t, 2, runs[0].WrittenCount)
}

func TestSplitCmd_NoService(t *testing.T) {
	SetServices(Services{})

	_, err := execute(t, "split", "x.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, errNotConfigured)
}
