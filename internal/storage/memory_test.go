package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/godeals/internal/storage"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	t.Run("get missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "deals/none.json")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "deals/catalog.json", []byte(`{"a":1}`), "application/json"))

		data, err := store.Get(ctx, "deals/catalog.json")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), data)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "deals/catalog.json", []byte(`{"a":2}`), "application/json"))

		data, err := store.Get(ctx, "deals/catalog.json")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":2}`), data)
	})

	t.Run("exists", func(t *testing.T) {
		exists, err := store.Exists(ctx, "deals/catalog.json")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.Exists(ctx, "deals/none.json")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("stored data is isolated from caller mutation", func(t *testing.T) {
		payload := []byte(`{"a":3}`)
		require.NoError(t, store.Put(ctx, "deals/iso.json", payload, "application/json"))
		payload[2] = 'x'

		data, err := store.Get(ctx, "deals/iso.json")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":3}`), data)

		data[2] = 'y'
		again, err := store.Get(ctx, "deals/iso.json")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":3}`), again)
	})
}
