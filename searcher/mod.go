package searcher

import (
	"detective/game"
	"math"

	"github.com/pkg/errors"
)

// Hyperparameters for MCTS

var C = math.Sqrt2 // Exploration constant

const MaxCutoff = 64 // Rollout depth cap, negative means play to the end

// Use rewards in [LOSS, WIN] to estimate the chance of winning
const WIN = 1.0
const LOSS = 0.0

// Rewarder scores a finished (or cut off) rollout for the optimized player.
type Rewarder interface {
	Reward(state game.State, player game.PlayerID) float64
}

// ScoreReward normalizes the player's score by the winning score, clamped
// to [LOSS, WIN]. Scores can overshoot the threshold before a round
// completes and can dip below zero on some boards.
type ScoreReward struct{}

func (ScoreReward) Reward(state game.State, player game.PlayerID) float64 {
	threshold := state.WinningScore()
	if threshold <= 0 {
		return LOSS
	}
	reward := float64(state.Score(player)) / float64(threshold)
	return math.Max(LOSS, math.Min(WIN, reward))
}

// WinReward is WIN when the player's score ties for the maximum, else LOSS.
type WinReward struct{}

func (WinReward) Reward(state game.State, player game.PlayerID) float64 {
	mine := state.Score(player)
	for p := 0; p < state.NumPlayers(); p++ {
		if state.Score(game.PlayerID(p)) > mine {
			return LOSS
		}
	}
	return WIN
}

// RewarderFor maps a configuration name to a reward shape.
func RewarderFor(name string) (Rewarder, error) {
	switch name {
	case "", "score":
		return ScoreReward{}, nil
	case "win":
		return WinReward{}, nil
	}
	return nil, errors.Errorf("unknown reward shape %q", name)
}
