package searcher

import (
	"context"
	"errors"
	"runtime/debug"
	"runtime/metrics"
)

type StopReason int

const (
	StopNone      StopReason = iota
	StopInterrupt            // context canceled by the caller
	StopMovetime             // time budget spent
	StopMemory               // heap above the high-water mark
	StopEpisodes             // episode budget spent
)

func (sr StopReason) String() string {
	switch sr {
	case StopInterrupt:
		return "Interrupt"
	case StopMovetime:
		return "Movetime"
	case StopMemory:
		return "Memory"
	case StopEpisodes:
		return "Episodes"
	}
	return "None"
}

const heapMetric = "/memory/classes/heap/objects:bytes"

// Limiter is polled between search iterations. It never interrupts an
// iteration in flight.
type Limiter struct {
	episodes  int
	threshold uint64 // bytes, 0 disables the memory check
	usage     func() uint64
}

// NewLimiter stops after episodes iterations (0 for no cap) or once heap
// usage exceeds highWater of ceiling bytes. The ceiling is further capped
// by the runtime's soft memory limit when one is set.
func NewLimiter(episodes int, ceiling uint64, highWater float64) *Limiter {
	l := &Limiter{episodes: episodes, usage: heapInUse}
	if limit := debug.SetMemoryLimit(-1); limit > 0 && (ceiling == 0 || uint64(limit) < ceiling) {
		ceiling = uint64(limit)
	}
	if ceiling > 0 && highWater > 0 {
		l.threshold = uint64(float64(ceiling) * highWater)
	}
	return l
}

// Check returns why the search should stop, or StopNone to keep going.
func (l *Limiter) Check(ctx context.Context, episodes int) StopReason {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return StopMovetime
		}
		return StopInterrupt
	}
	if l.episodes > 0 && episodes >= l.episodes {
		return StopEpisodes
	}
	if l.threshold > 0 && l.usage() > l.threshold {
		return StopMemory
	}
	return StopNone
}

func heapInUse() uint64 {
	sample := []metrics.Sample{{Name: heapMetric}}
	metrics.Read(sample)
	if sample[0].Value.Kind() != metrics.KindUint64 {
		return 0
	}
	return sample[0].Value.Uint64()
}
