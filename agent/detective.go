package agent

import (
	"context"
	"detective/config"
	"detective/determinizer"
	"detective/experiments/metrics"
	"detective/game"
	"detective/searcher"
	"detective/tracker"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Detective decides for one seat in one game. Its trackers live for the
// whole game and are advanced with the public log on every decision; the
// search tree is rebuilt every decision.
type Detective struct {
	cfg       config.Agent
	rules     game.Rules
	mcts      *searcher.MCTS
	history   *tracker.History
	suspicion *tracker.Suspicion
	decisions uint64
}

// NewDetective creates a controller searching with mcts. Trackers are sized
// on the first decision, once the number of seats is known.
func NewDetective(cfg config.Agent, rules game.Rules, mcts *searcher.MCTS) *Detective {
	return &Detective{cfg: cfg, rules: rules, mcts: mcts}
}

// NewDetectiveFromConfig builds the search driver from cfg.Search. Searches
// are bounded by the caller's context deadline and the configured episodes.
func NewDetectiveFromConfig(cfg config.Config, rules game.Rules) (*Detective, error) {
	chance, err := searcher.ChancePolicyFor(cfg.Search.Chance)
	if err != nil {
		return nil, err
	}
	reward, err := searcher.RewarderFor(cfg.Search.Reward)
	if err != nil {
		return nil, err
	}
	mcts := searcher.NewMCTS(
		searcher.WithEpisodes(cfg.Search.Episodes),
		searcher.WithCutoff(cfg.Search.Cutoff),
		searcher.WithExploration(cfg.Search.Exploration),
		searcher.WithChancePolicy(chance),
		searcher.WithRewarder(reward),
		searcher.WithMemoryLimit(uint64(cfg.Search.MemoryCeilingMB)<<20, cfg.Search.HighWater),
		searcher.WithMetrics(),
	)
	return NewDetective(cfg.Agent, rules, mcts), nil
}

// FindMove never fails: panics and errors anywhere in the pipeline are
// logged and answered with a random legal action.
func (d *Detective) FindMove(ctx context.Context, state game.Determinizable) (action game.Action, metric metrics.SearchMetric) {
	start := time.Now()
	rng := rand.New(rand.NewSource(d.seed()))
	logger := log.With().Int("player", int(state.CurrentPlayer())).Logger()
	ctx = logger.WithContext(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Str("panic", fmt.Sprint(r)).Msg("decision failed, playing a random action")
			action, metric = d.fallback(state, rng, start)
		}
	}()

	action, metric, err := d.decide(ctx, state, rng)
	if err != nil {
		logger.Error().Err(err).Msg("decision failed, playing a random action")
		return d.fallback(state, rng, start)
	}
	metric.Duration = time.Since(start)
	return action, metric
}

func (d *Detective) decide(ctx context.Context, state game.Determinizable, rng *rand.Rand) (game.Action, metrics.SearchMetric, error) {
	logger := zerolog.Ctx(ctx)
	actions := state.LegalActions()
	switch len(actions) {
	case 0:
		return nil, metrics.SearchMetric{}, ErrNoLegalActions
	case 1:
		return actions[0], metrics.SearchMetric{}, nil
	}

	self := state.CurrentPlayer()
	d.sync(state)
	logger.Debug().Int("cursor", d.history.Cursor()).Int("rolls", d.history.Rolls()).Msg("trackers advanced")

	if d.history.Rolls() < d.cfg.BootstrapRolls {
		return actions[rng.Intn(len(actions))], metrics.SearchMetric{Bootstrap: true}, nil
	}

	d.suspicion.Recompute()
	determinized, ok := state.Clone().(game.Determinizable)
	if !ok {
		return nil, metrics.SearchMetric{}, errors.Errorf("clone of %T is not determinizable", state)
	}
	hypothesis := determinizer.New(self, d.suspicion, d.history.Cards(), rng).Determinize(determinized)
	logger.Debug().Interface("identities", hypothesis.Identities).Msg("determinized")
	if d.mcts.ChancePolicy() == searcher.FullBranching {
		determinized.AllowChanceOutcomes(true)
	}

	action, metric, err := d.mcts.Search(ctx, determinized, self, rng)
	if err != nil {
		return nil, metric, errors.WithMessage(err, "search failed")
	}
	if !state.IsValid(action) {
		return nil, metric, errors.Errorf("search returned illegal action %v", action)
	}
	return action, metric, nil
}

// sync advances the trackers with the public log and rebuilds them when the
// replayed board disagrees with the positions the game reports.
func (d *Detective) sync(state game.Determinizable) {
	if d.history == nil || d.history.Players() != state.NumPlayers() {
		d.history = tracker.NewHistory(state.NumPlayers(), d.rules, d.cfg.HistoryLength)
		d.suspicion = nil
	}
	records := state.Records()
	d.history.Advance(records)

	if reporter, ok := state.(game.PositionReporter); ok && d.cfg.ResyncOnDrift {
		if !d.history.InSync(reporter.Positions()) {
			log.Warn().Int("cursor", d.history.Cursor()).Msg("tracker drifted from the game, replaying the full log")
			d.history.Resync(records)
			d.suspicion = nil
		}
	}
	if d.suspicion == nil {
		d.suspicion = tracker.NewSuspicion(d.history.Ledger(), tracker.SuspicionParams{
			Window:    d.cfg.BurstWindow,
			Threshold: d.cfg.BurstThreshold,
			Weight:    d.cfg.BurstWeight,
		})
	}
}

func (d *Detective) fallback(state game.State, rng *rand.Rand, start time.Time) (game.Action, metrics.SearchMetric) {
	metric := metrics.SearchMetric{Fallback: true}
	action, err := randomAction(state, rng)
	if err != nil {
		log.Error().Err(err).Msg("no action to fall back to")
	}
	metric.Duration = time.Since(start)
	return action, metric
}

// seed returns the configured seed offset by the decision count, or a fresh
// random seed.
func (d *Detective) seed() uint64 {
	d.decisions++
	if d.cfg.Seed != 0 {
		return d.cfg.Seed + d.decisions
	}
	return frand.Uint64n(1<<63) + 1
}

func (d *Detective) History() *tracker.History {
	return d.history
}
