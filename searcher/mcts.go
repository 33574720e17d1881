package searcher

import (
	"context"
	"detective/experiments/metrics"
	"detective/game"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	duration    time.Duration
	episodes    int
	cutoff      int
	exploration float64
	chance      ChancePolicy
	reward      Rewarder
	ceiling     uint64
	highWater   float64
	metrics     metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff caps rollouts at depth actions; a negative depth plays every
// rollout to the end of the game.
func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth != 0 {
			m.cutoff = depth
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithChancePolicy(policy ChancePolicy) Option {
	return func(m *MCTS) {
		m.chance = policy
	}
}

func WithRewarder(reward Rewarder) Option {
	return func(m *MCTS) {
		if reward != nil {
			m.reward = reward
		}
	}
}

// WithMemoryLimit stops the search once heap usage passes highWater of
// ceiling bytes.
func WithMemoryLimit(ceiling uint64, highWater float64) Option {
	return func(m *MCTS) {
		m.ceiling = ceiling
		m.highWater = highWater
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		cutoff:      MaxCutoff,
		exploration: C,
		chance:      FullBranching,
		reward:      ScoreReward{},
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MCTS) ChancePolicy() ChancePolicy {
	return m.chance
}

// Search builds a fresh tree over state for player and returns the root
// action with the best win rate. It runs until ctx is done, the duration or
// episode budget is spent, or memory passes the high-water mark.
func (m *MCTS) Search(ctx context.Context, state game.State, player game.PlayerID, rng *rand.Rand) (game.Action, metrics.SearchMetric, error) {
	if m.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.duration)
		defer cancel()
	}
	if _, ok := ctx.Deadline(); !ok && m.episodes <= 0 {
		return nil, metrics.SearchMetric{}, errors.New("must bound the search by episodes, duration or a context deadline")
	}

	logger := zerolog.Ctx(ctx)
	tree := NewTree(state, player, m.chance, m.exploration, rng)
	limiter := NewLimiter(m.episodes, m.ceiling, m.highWater)

	m.metrics.Start(m.cutoff)
	episodes := 0
	reason := limiter.Check(ctx, episodes)
	for reason == StopNone {
		m.iterate(ctx, tree)
		m.metrics.AddEpisode()
		episodes++
		reason = limiter.Check(ctx, episodes)
	}
	metric := m.metrics.Complete(tree.Size(), reason.String())
	metric.RootPlayouts = tree.Playouts(tree.Root())

	action, child, err := tree.BestAction()
	if err != nil {
		return nil, metric, errors.Wrapf(err, "search stopped by %v after %d episodes", reason, episodes)
	}
	metric.BestQ = tree.Q(tree.Root(), action)

	logger.Info().
		Int("playouts", metric.RootPlayouts).
		Float64("wins", tree.Wins(child)).
		Int("child_playouts", tree.Playouts(child)).
		Float64("q", metric.BestQ).
		Stringer("stop", reason).
		Msgf("chose %v", action)
	return action, metric, nil
}

// iterate runs one selection, expansion, simulation and backpropagation.
func (m *MCTS) iterate(ctx context.Context, tree *Tree) {
	parent, action := tree.Select()
	child := tree.Expand(parent, action)
	reward, full := tree.Simulate(ctx, child, m.cutoff, m.reward)
	if full {
		m.metrics.AddFullPlayout()
	}
	tree.Backpropagate(child, reward)
}

// Simulate plays uniformly random actions from a clone of the node's state
// until the game ends, the cutoff is reached or ctx is done, and scores the
// result. full reports whether the rollout reached a terminal state.
func (t *Tree) Simulate(ctx context.Context, id NodeID, cutoff int, reward Rewarder) (float64, bool) {
	state := t.clone(t.nodes[id].state)
	depth := 0
	for !state.IsTerminal() && (cutoff < 0 || depth < cutoff) && ctx.Err() == nil {
		actions := state.LegalActions()
		if len(actions) == 0 {
			break
		}
		state.Apply(actions[t.rng.Intn(len(actions))]) // Random rollout policy
		depth++
	}
	return reward.Reward(state, t.player), state.IsTerminal()
}
