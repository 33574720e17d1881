package experiments

import (
	"context"
	"detective/agent"
	"detective/config"
	"detective/engine"
	"detective/experiments/metrics"
	"detective/game/heimlich"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

// Result holds the records of one batch of games. Games are in the order
// they were scheduled.
type Result struct {
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// Run plays cfg.Experiment.Games games with a Detective in seat 0, up to
// cfg.Experiment.Parallel at a time.
func Run(ctx context.Context, cfg config.Config) (Result, error) {
	exp := cfg.Experiment
	log.Info().Msgf("starting %d games of %d players against %s opponents...", exp.Games, exp.Players, exp.Opponents)

	games := make([]metrics.GameRecord, exp.Games)
	moves := make([][]metrics.MoveRecord, exp.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(exp.Parallel, 1))
	for i := 0; i < exp.Games; i++ {
		i := i
		g.Go(func() error {
			gameMetric, moveMetrics, err := runGame(ctx, cfg)
			if err != nil {
				return errors.WithMessagef(err, "game %d", i+1)
			}
			games[i] = metrics.GameRecord{Opponents: exp.Opponents, GameMetric: gameMetric}
			for _, mm := range moveMetrics {
				moves[i] = append(moves[i], metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm})
			}
			log.Info().Msgf("completed game %d of %d with winner: %d", i+1, exp.Games, gameMetric.Winner)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Games: games}
	for _, m := range moves {
		result.Moves = append(result.Moves, m...)
	}
	log.Info().Msgf("completed %d games", exp.Games)
	return result, nil
}

// Store writes the result as CSV under dir and returns the folder used.
func Store(dir string, result Result) (string, error) {
	writer, err := metrics.NewWriter(dir)
	if err != nil {
		return "", errors.WithMessage(err, "failed to create experiment writer")
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return "", err
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

func runGame(ctx context.Context, cfg config.Config) (metrics.GameMetric, []metrics.MoveMetric, error) {
	exp := cfg.Experiment
	rules := heimlich.Rules{}
	agents := make([]agent.Agent, exp.Players)
	for p := range agents {
		if p > 0 && exp.Opponents == "random" {
			agents[p] = agent.NewRandomAgent(frand.Uint64n(1 << 63))
			continue
		}
		detective, err := agent.NewDetectiveFromConfig(cfg, rules)
		if err != nil {
			return metrics.GameMetric{}, nil, err
		}
		agents[p] = detective
	}

	state := heimlich.NewGame(exp.Players, exp.WithCards, frand.Uint64n(1<<63))
	e := engine.NewLocalEngine(state, agents, exp.TurnBudget, exp.MaxMoves, frand.Uint64n(1<<63))
	gameMetric, moveMetrics := e.Run(ctx)
	return gameMetric, moveMetrics, nil
}
