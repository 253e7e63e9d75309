package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Seeded(t *testing.T) {
	store := NewConfigStore(map[string]any{"catalog.source": "p.csv"}, map[string]any{"watch.enabled": true})

	assert.Equal(t, "p.csv", store.GetString("catalog.source"))
	assert.True(t, store.GetBool("watch.enabled"))
	assert.Equal(t, []string{"catalog.source", "watch.enabled"}, store.Keys())
}

func TestConfigStore_GetInt_Conversions(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"int":     42,
		"int64":   int64(43),
		"float64": float64(44),
		"string":  "45",
	})

	assert.Equal(t, 42, store.GetInt("int"))
	assert.Equal(t, 43, store.GetInt("int64"))
	assert.Equal(t, 44, store.GetInt("float64"))
	assert.Equal(t, 0, store.GetInt("string"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_WrongTypesYieldZeroValues(t *testing.T) {
	store := NewConfigStore(map[string]any{"n": 1, "s": "x"})

	assert.Equal(t, "", store.GetString("n"))
	assert.False(t, store.GetBool("s"))
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SetOverwrites(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("display.layout", "card"))
	require.NoError(t, store.Set("display.layout", "compact"))

	assert.Equal(t, "compact", store.GetString("display.layout"))
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("k%d", n), n)
		}(i)
		go func(n int) {
			defer wg.Done()
			_ = store.GetInt(fmt.Sprintf("k%d", n))
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 50)
}
