package searcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiter(t *testing.T) {
	t.Run("continuing within every budget", func(t *testing.T) {
		l := NewLimiter(10, 0, 0)

		require.Equal(t, StopNone, l.Check(context.Background(), 9))
	})

	t.Run("stopping on the episode budget", func(t *testing.T) {
		l := NewLimiter(10, 0, 0)

		require.Equal(t, StopEpisodes, l.Check(context.Background(), 10))
	})

	t.Run("stopping on an interrupt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.Equal(t, StopInterrupt, NewLimiter(0, 0, 0).Check(ctx, 0))
	})

	t.Run("stopping on the deadline", func(t *testing.T) {
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		require.Equal(t, StopMovetime, NewLimiter(0, 0, 0).Check(ctx, 0))
	})

	t.Run("stopping above the high-water mark", func(t *testing.T) {
		l := NewLimiter(0, 1000, 0.9)
		l.usage = func() uint64 { return 901 }

		require.Equal(t, StopMemory, l.Check(context.Background(), 0))
	})

	t.Run("continuing below the high-water mark", func(t *testing.T) {
		l := NewLimiter(0, 1000, 0.9)
		l.usage = func() uint64 { return 899 }

		require.Equal(t, StopNone, l.Check(context.Background(), 0))
	})

	t.Run("reading heap usage", func(t *testing.T) {
		require.Greater(t, heapInUse(), uint64(0))
	})
}
