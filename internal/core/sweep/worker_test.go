package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"pagecore/internal/cursorstore"
)

func TestWorkerPurgesExpiredCursors(t *testing.T) {
	ctx := context.Background()
	clk := clocktesting.NewFakePassiveClock(time.Now())
	store := cursorstore.NewMemory(time.Hour, clk)

	require.NoError(t, store.Put(ctx, "stale", []byte("x")))
	clk.SetTime(clk.Now().Add(2 * time.Hour))
	require.NoError(t, store.Put(ctx, "fresh", []byte("y")))

	w := NewWorker(store)
	w.tick(ctx)

	assert.Equal(t, 1, store.Len())
}

func TestWorkerStopsOnCancel(t *testing.T) {
	w := NewWorker(cursorstore.NewMemory(time.Hour, nil))
	w.pollEvery = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
