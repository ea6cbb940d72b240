package dashboard

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	d := &Dashboard{Name: "Home Lab", Description: "racks"}
	require.NoError(t, store.Create(ctx, d))
	assert.Equal(t, int64(1), d.ID)
	assert.False(t, d.CreatedAt.IsZero())

	got, err := store.Get(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Home Lab", got.Name)
	assert.Equal(t, "racks", got.Description)
}

func TestMemoryStore_GetNotFound(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_CreateRequiresName(t *testing.T) {
	store := NewMemoryStore()
	err := store.Create(context.Background(), &Dashboard{Name: "  "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestMemoryStore_Seed(t *testing.T) {
	store := NewMemoryStore(Dashboard{ID: 42, Name: "Media"}, Dashboard{Name: "Network"})
	ctx := context.Background()

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(42), list[0].ID)
	assert.Equal(t, int64(43), list[1].ID)

	d := &Dashboard{Name: "Next"}
	require.NoError(t, store.Create(ctx, d))
	assert.Equal(t, int64(44), d.ID)
}

func TestMemoryStore_ListOrdered(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, store.Create(ctx, &Dashboard{Name: name}))
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, d := range list {
		assert.Equal(t, int64(i+1), d.ID)
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(Dashboard{ID: 7, Name: "Garage"})
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, 7))
	got, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, store.Delete(ctx, 7), ErrNotFound)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore(Dashboard{ID: 1, Name: "Original"})
	ctx := context.Background()

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	got.Name = "Mutated"

	again, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Create(ctx, &Dashboard{Name: "d"})
		}()
	}
	wg.Wait()

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}
