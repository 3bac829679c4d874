package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitDoesNotUsePrintableKeys(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Equal(t, []string{"ctrl+c"}, keys)
}

func TestDefaultKeyMap_FieldNavigation(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Next.Keys(), "tab")
	assert.Contains(t, km.Next.Keys(), "down")
	assert.Contains(t, km.Prev.Keys(), "shift+tab")
	assert.Contains(t, km.Prev.Keys(), "up")
	assert.Contains(t, km.Submit.Keys(), "enter")
}

func TestFormHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FormHelp()

	assert.Len(t, bindings, 3)
	assert.Equal(t, km.Quit, bindings[2])
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.FullHelp()

	assert.Len(t, bindings, 3)    // 3 groups
	assert.Len(t, bindings[0], 3) // Next, Prev, Submit
	assert.Len(t, bindings[1], 3) // Up, Down, Again
	assert.Len(t, bindings[2], 3) // Back, Help, Quit
}

func TestMatches_True(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("?", km.Help))
	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("n", km.Again))
}

func TestMatches_False(t *testing.T) {
	km := DefaultKeyMap()

	assert.False(t, Matches("q", km.Quit))
	assert.False(t, Matches("a", km.Help))
	assert.False(t, Matches("down", km.Up))
}

func TestBindings_HaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	testCases := []struct {
		name    string
		binding key.Binding
	}{
		{"Quit", km.Quit},
		{"Help", km.Help},
		{"Back", km.Back},
		{"Next", km.Next},
		{"Prev", km.Prev},
		{"Submit", km.Submit},
		{"Up", km.Up},
		{"Down", km.Down},
		{"Again", km.Again},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			help := tc.binding.Help()
			assert.NotEmpty(t, help.Key, "binding should have help key")
		})
	}
}
