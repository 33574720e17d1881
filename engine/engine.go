package engine

import (
	"context"
	"detective/experiments/metrics"
)

type Engine interface {
	// Run plays a game till it ends, a max number of moves is reached or ctx is done
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
