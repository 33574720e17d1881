package engine

import (
	"context"
	"detective/agent"
	"detective/experiments/metrics"
	"detective/game"
	"detective/game/heimlich"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// LocalEngine hosts a game in process. Each agent only ever sees its own
// view of the state and must answer within the turn budget.
type LocalEngine struct {
	State      *heimlich.State
	Agents     []agent.Agent
	TurnBudget time.Duration
	MaxMoves   int
	rng        *rand.Rand
}

func NewLocalEngine(state *heimlich.State, agents []agent.Agent, turnBudget time.Duration, maxMoves int, seed uint64) *LocalEngine {
	if len(agents) != state.NumPlayers() {
		panic("number of agents does not match number of players")
	}
	return &LocalEngine{
		State:      state,
		Agents:     agents,
		TurnBudget: turnBudget,
		MaxMoves:   maxMoves,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Run executes the entire game loop until the game ends.
func (e *LocalEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		ID:        uuid.NewString(),
		Players:   e.State.NumPlayers(),
		Winner:    -1,
		StartTime: time.Now(),
	}
	logger := log.With().Str("game", gameMetric.ID).Logger()
	logger.Info().Msgf("starting game with %d players", gameMetric.Players)

	var moveMetrics []metrics.MoveMetric
	step := 0
	for !e.State.IsTerminal() && (e.MaxMoves <= 0 || step < e.MaxMoves) && ctx.Err() == nil {
		player := e.State.CurrentPlayer()
		action, searchMetric := e.findMove(ctx, player)

		if !e.State.IsValid(action) {
			logger.Warn().Int("player", int(player)).Msgf("agent returned invalid action %v, playing a random one", action)
			actions := e.State.LegalActions()
			if len(actions) == 0 {
				logger.Error().Int("player", int(player)).Msg("no legal actions, stopping game")
				break
			}
			action = actions[e.rng.Intn(len(actions))]
			searchMetric.Fallback = true
		}

		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       int(player),
			Action:       action.String(),
			SearchMetric: searchMetric,
		})
		e.State.Apply(action)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	gameMetric.Scores = make([]int, e.State.NumPlayers())
	for p := range gameMetric.Scores {
		gameMetric.Scores[p] = e.State.Score(game.PlayerID(p))
	}
	if e.State.IsTerminal() {
		gameMetric.Winner = Winner(gameMetric.Scores)
		logger.Info().Ints("scores", gameMetric.Scores).Msgf("game over after %d moves, winner: %d", step, gameMetric.Winner)
	} else {
		logger.Info().Ints("scores", gameMetric.Scores).Msgf("stopped after %d moves without a winner", step)
	}
	return gameMetric, moveMetrics
}

func (e *LocalEngine) findMove(ctx context.Context, player game.PlayerID) (game.Action, metrics.SearchMetric) {
	if e.TurnBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.TurnBudget)
		defer cancel()
	}
	return e.Agents[player].FindMove(ctx, e.State.ViewFor(player))
}

// Winner returns the first seat holding the highest score.
func Winner(scores []int) int {
	winner := -1
	for p, score := range scores {
		if winner < 0 || score > scores[winner] {
			winner = p
		}
	}
	return winner
}
