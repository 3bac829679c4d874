package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

func resolvedPage(primary string, additional ...string) domain.Page {
	return domain.Page{Primary: primary, Additional: additional, Resolved: true}
}

func TestFilenameAssigner_Assign_Resolved(t *testing.T) {
	a := NewFilenameAssigner("ExamTimetable", "pdf", '_')

	name, failures := a.Assign(resolvedPage("123456"), 0)

	assert.Equal(t, "ExamTimetable_123456.pdf", name)
	assert.Equal(t, 0, failures)
}

func TestFilenameAssigner_Assign_Composite(t *testing.T) {
	a := NewFilenameAssigner("Timetable", "pdf", '-')

	name, _ := a.Assign(resolvedPage("42", "A B9"), 0)

	assert.Equal(t, "Timetable-42-AB9.pdf", name)
}

func TestFilenameAssigner_Assign_FailuresCount(t *testing.T) {
	a := NewFilenameAssigner("ExamTimetable", "pdf", '_')
	unresolved := domain.NewPage(0, "nothing")

	name, failures := a.Assign(unresolved, 0)
	assert.Equal(t, "AAA_FAILED_TO_READ_1.pdf", name)
	assert.Equal(t, 1, failures)

	// Resolved pages leave the counter alone.
	_, failures = a.Assign(resolvedPage("1"), failures)
	assert.Equal(t, 1, failures)

	name, failures = a.Assign(unresolved, failures)
	assert.Equal(t, "AAA_FAILED_TO_READ_2.pdf", name)
	assert.Equal(t, 2, failures)
}

func TestFilenameAssigner_Suffix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pdf", "pdf"},
		{".pdf", "pdf"},
		{"", "pdf"},
		{" txt ", "txt"},
	}
	for _, tt := range tests {
		a := NewFilenameAssigner("P", tt.in, '_')
		assert.Equal(t, tt.want, a.Suffix(), "suffix %q", tt.in)
	}

	name, _ := NewFilenameAssigner("P", ".txt", '_').Assign(domain.NewPage(0, ""), 0)
	assert.Equal(t, "AAA_FAILED_TO_READ_1.txt", name)
}

func TestFilenameAssigner_Assign_Sanitises(t *testing.T) {
	a := NewFilenameAssigner("P", "pdf", '_')

	name, _ := a.Assign(resolvedPage("Smith/Jones: A*?"), 0)

	assert.Equal(t, "P_SmithJones A.pdf", name)
}

func TestCollisionGuard_Overwrite(t *testing.T) {
	g := newCollisionGuard(domain.CollisionOverwrite, '_')

	for i := 0; i < 3; i++ {
		name, err := g.claim("P_1.pdf")
		require.NoError(t, err)
		assert.Equal(t, "P_1.pdf", name)
	}
}

func TestCollisionGuard_Error(t *testing.T) {
	g := newCollisionGuard(domain.CollisionError, '_')

	_, err := g.claim("P_1.pdf")
	require.NoError(t, err)

	_, err = g.claim("P_1.pdf")
	assert.ErrorIs(t, err, domain.ErrFilenameCollision)
}

func TestCollisionGuard_Increment(t *testing.T) {
	g := newCollisionGuard(domain.CollisionIncrement, '_')

	names := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		name, err := g.claim("P_1.pdf")
		require.NoError(t, err)
		names = append(names, name)
	}

	assert.Equal(t, []string{"P_1.pdf", "P_1_2.pdf", "P_1_3.pdf"}, names)
}

func TestCollisionGuard_Increment_SkipsTakenNames(t *testing.T) {
	g := newCollisionGuard(domain.CollisionIncrement, '_')

	_, _ = g.claim("P_1_2.pdf")
	_, _ = g.claim("P_1.pdf")
	name, err := g.claim("P_1.pdf")

	require.NoError(t, err)
	assert.Equal(t, "P_1_3.pdf", name)
}

func TestCollisionGuard_InvalidPolicyOverwrites(t *testing.T) {
	g := newCollisionGuard("bogus", '_')
	assert.Equal(t, domain.CollisionOverwrite, g.policy)
}

func TestSplitExt(t *testing.T) {
	stem, ext := splitExt("P_1.pdf")
	assert.Equal(t, "P_1", stem)
	assert.Equal(t, ".pdf", ext)

	stem, ext = splitExt("noext")
	assert.Equal(t, "noext", stem)
	assert.Equal(t, "", ext)
}
