package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("split.prefix", "Original"))
	require.NoError(t, store.Set("split.prefix", "Updated"))

	val, ok := store.Get("split.prefix")
	assert.True(t, ok)
	assert.Equal(t, "Updated", val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("split.suffix", "pdf")
	_ = store.Set("history.enabled", true)

	assert.Equal(t, "pdf", store.GetString("split.suffix"))
	assert.Equal(t, "", store.GetString("history.enabled"), "non-string returns empty")
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("history.enabled", false)
	_ = store.Set("split.prefix", "true")

	val, ok := store.GetBool("history.enabled")
	assert.True(t, ok)
	assert.False(t, val)

	_, ok = store.GetBool("split.prefix")
	assert.False(t, ok, "string value is not a bool")

	_, ok = store.GetBool("missing")
	assert.False(t, ok)
}

func TestConfigStore_Path(t *testing.T) {
	store := NewConfigStore()
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency_UpdateSameKey(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	wg.Add(50)
	for i := 0; i < 50; i++ {
		go func(id int) {
			defer wg.Done()
			_ = store.Set("split.prefix", "updated-"+string(rune('A'+id)))
			_ = store.GetString("split.prefix")
		}(i)
	}
	wg.Wait()

	val, ok := store.Get("split.prefix")
	assert.True(t, ok)
	assert.NotEmpty(t, val)
}
