package agent

import (
	"context"
	"detective/experiments/metrics"
	"detective/game"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

var ErrNoLegalActions = errors.New("no legal actions")

type Agent interface {
	// FindMove returns the action to play in state and metrics from the decision
	FindMove(ctx context.Context, state game.Determinizable) (game.Action, metrics.SearchMetric)
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal actions.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(ctx context.Context, state game.Determinizable) (game.Action, metrics.SearchMetric) {
	action, _ := randomAction(state, a.rng)
	return action, metrics.SearchMetric{}
}

func randomAction(state game.State, rng *rand.Rand) (game.Action, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil, ErrNoLegalActions
	}
	return actions[rng.Intn(len(actions))], nil
}
