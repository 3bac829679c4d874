package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewForm, "form"},
		{ViewRunning, "running"},
		{ViewResult, "result"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.view.String())
	}
}

func TestSplitCompleted_CarriesPartialResult(t *testing.T) {
	res := &domain.BatchResult{WrittenCount: 3}
	msg := SplitCompleted{Result: res, Err: errors.New("disk full")}

	assert.Equal(t, 3, msg.Result.WrittenCount)
	assert.EqualError(t, msg.Err, "disk full")
}
