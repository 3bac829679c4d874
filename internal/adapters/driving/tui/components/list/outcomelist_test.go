package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

func testOutcomes(n int) []domain.PageOutcome {
	out := make([]domain.PageOutcome, n)
	for i := range out {
		out[i] = domain.PageOutcome{Index: i, Filename: "ExamTimetable_" + string(rune('A'+i)) + ".pdf", Resolved: i%2 == 0}
	}
	return out
}

func TestNewOutcomeList(t *testing.T) {
	l := NewOutcomeList(nil)

	require.NotNil(t, l)
	assert.Equal(t, 0, l.Count())
	assert.Contains(t, l.View(), "No pages")
}

func TestOutcomeList_RendersPages(t *testing.T) {
	l := NewOutcomeList(nil)
	l.SetOutcomes(testOutcomes(2))

	view := l.View()

	assert.Contains(t, view, "ExamTimetable_A.pdf")
	assert.Contains(t, view, "ExamTimetable_B.pdf")
	assert.Contains(t, view, "FAIL")
	assert.Contains(t, view, "p1")
}

func TestOutcomeList_Navigation(t *testing.T) {
	l := NewOutcomeList(nil)
	l.SetOutcomes(testOutcomes(3))

	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	assert.Equal(t, 2, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 1, l.Selected())
}

func TestOutcomeList_ScrollsToSelection(t *testing.T) {
	l := NewOutcomeList(nil)
	l.SetOutcomes(testOutcomes(10))
	l.SetDimensions(80, 3)

	view := l.View()
	assert.Contains(t, view, "ExamTimetable_A.pdf")
	assert.NotContains(t, view, "ExamTimetable_E.pdf")
	assert.Contains(t, view, "7 more")

	for i := 0; i < 4; i++ {
		l.MoveDown()
	}
	view = l.View()
	assert.Contains(t, view, "ExamTimetable_E.pdf")
	assert.NotContains(t, view, "ExamTimetable_A.pdf")
}

func TestOutcomeList_SetOutcomesResetsSelection(t *testing.T) {
	l := NewOutcomeList(nil)
	l.SetOutcomes(testOutcomes(3))
	l.MoveDown()

	l.SetOutcomes(testOutcomes(2))

	assert.Equal(t, 0, l.Selected())
	assert.Len(t, l.Outcomes(), 2)
}
