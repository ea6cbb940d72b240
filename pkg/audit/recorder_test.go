package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/txn2/homedash/pkg/editlock"
)

// blockingStore holds every Log call until release is closed.
type blockingStore struct {
	*MemoryStore
	release chan struct{}
	once    sync.Once
}

func (s *blockingStore) Log(ctx context.Context, e Event) error {
	<-s.release
	return s.MemoryStore.Log(ctx, e)
}

func (s *blockingStore) unblock() {
	s.once.Do(func() { close(s.release) })
}

type failingStore struct {
	*MemoryStore
}

func (failingStore) Log(context.Context, Event) error {
	return errors.New("disk full")
}

func TestRecorder_RecordsLockChanges(t *testing.T) {
	clock := editlock.NewManualClock(testTime)
	reg := editlock.NewRegistry(editlock.RegistryConfig{Clock: clock})
	store := NewMemoryStore(0)
	rec := NewRecorder(RecorderConfig{Store: store, Notifier: reg.Notifier(), Clock: clock})
	rec.Start()

	require.True(t, reg.TryAcquire(42, "U1", "Alice", "c1"))
	reg.ForceAcquire(42, "U2", "Bob", "c2")
	require.True(t, reg.Release(42, "U2"))

	require.NoError(t, rec.Close())

	got, err := store.Query(context.Background(), QueryFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	kinds := map[Kind]Event{}
	for _, e := range got {
		kinds[e.Kind] = e
	}
	assert.Equal(t, "U1", kinds[KindAcquired].OwnerID)
	assert.Equal(t, "U2", kinds[KindTakenOver].OwnerID)
	assert.Equal(t, "U1", kinds[KindTakenOver].PreviousOwnerID)
	assert.Equal(t, "U2", kinds[KindReleased].OwnerID)
	assert.Equal(t, testTime, kinds[KindReleased].Timestamp)
	assert.Equal(t, 0, reg.Notifier().Len())
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	reg := editlock.NewRegistry(editlock.RegistryConfig{})
	store := &blockingStore{MemoryStore: NewMemoryStore(0), release: make(chan struct{})}
	t.Cleanup(store.unblock)
	rec := NewRecorder(RecorderConfig{Store: store, Notifier: reg.Notifier(), BufferSize: 1})
	rec.Start()

	// The writer takes one event and blocks; one more fits in the queue.
	for i := range 10 {
		reg.ForceAcquire(int64(i), "U1", "Alice", "c1")
	}
	assert.Eventually(t, func() bool { return rec.Dropped() >= 8 }, time.Second, 5*time.Millisecond)

	store.unblock()
	require.NoError(t, rec.Close())
	assert.Equal(t, uint64(10), uint64(store.Len())+rec.Dropped())
}

func TestRecorder_StoreErrorsDoNotStopWriter(t *testing.T) {
	reg := editlock.NewRegistry(editlock.RegistryConfig{})
	rec := NewRecorder(RecorderConfig{Store: failingStore{NewMemoryStore(0)}, Notifier: reg.Notifier()})
	rec.Start()

	reg.ForceAcquire(1, "U1", "Alice", "c1")
	reg.ForceAcquire(2, "U1", "Alice", "c1")
	require.NoError(t, rec.Close())
	assert.Equal(t, uint64(0), rec.Dropped())
}

func TestRecorder_CloseIdempotent(t *testing.T) {
	reg := editlock.NewRegistry(editlock.RegistryConfig{})
	rec := NewRecorder(RecorderConfig{Store: NewMemoryStore(0), Notifier: reg.Notifier()})

	require.NoError(t, rec.Close(), "close before start")
	require.NoError(t, rec.Close())

	rec.Start()
	assert.Equal(t, 0, reg.Notifier().Len(), "start after close is ignored")
}

func TestRecorder_IgnoresEventsAfterClose(t *testing.T) {
	reg := editlock.NewRegistry(editlock.RegistryConfig{})
	store := NewMemoryStore(0)
	rec := NewRecorder(RecorderConfig{Store: store, Notifier: reg.Notifier()})
	rec.Start()
	require.NoError(t, rec.Close())

	rec.handle(editlock.Change{DashboardID: 1, Reason: editlock.ReasonReleased})
	assert.Equal(t, 0, store.Len())
}
