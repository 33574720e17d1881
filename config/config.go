package config

import (
	"detective/meta"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Search     Search     `yaml:"search"`
	Agent      Agent      `yaml:"agent"`
	Experiment Experiment `yaml:"experiment"`
}

type Search struct {
	Exploration     float64 `yaml:"exploration"`
	Cutoff          int     `yaml:"cutoff"`
	Episodes        int     `yaml:"episodes"`
	Chance          string  `yaml:"chance"` // full | single
	Reward          string  `yaml:"reward"` // score | win
	MemoryCeilingMB int     `yaml:"memory_ceiling_mb"`
	HighWater       float64 `yaml:"high_water"`
}

type Agent struct {
	BootstrapRolls int     `yaml:"bootstrap_rolls"`
	HistoryLength  int     `yaml:"history_length"`
	BurstWindow    int     `yaml:"burst_window"`
	BurstThreshold int     `yaml:"burst_threshold"`
	BurstWeight    float64 `yaml:"burst_weight"`
	ResyncOnDrift  bool    `yaml:"resync_on_drift"`
	Seed           uint64  `yaml:"seed"` // 0 draws a fresh seed
}

type Experiment struct {
	Games      int           `yaml:"games"`
	Players    int           `yaml:"players"`
	Parallel   int           `yaml:"parallel"`
	WithCards  bool          `yaml:"with_cards"`
	TurnBudget time.Duration `yaml:"turn_budget"`
	Opponents  string        `yaml:"opponents"` // random | detective
	MaxMoves   int           `yaml:"max_moves"`
	Out        string        `yaml:"out"`
}

func Default() Config {
	return Config{
		Search: Search{
			Exploration:     meta.EXPLORATION,
			Cutoff:          meta.TERMINATION_DEPTH,
			Chance:          "full",
			Reward:          "score",
			MemoryCeilingMB: meta.MEMORY_CEILING_MB,
			HighWater:       meta.MEMORY_HIGH_WATER,
		},
		Agent: Agent{
			BootstrapRolls: meta.BOOTSTRAP_ROLLS,
			HistoryLength:  meta.HISTORY_LENGTH,
			BurstWindow:    meta.BURST_WINDOW,
			BurstThreshold: meta.BURST_THRESHOLD,
			BurstWeight:    meta.BURST_WEIGHT,
			ResyncOnDrift:  true,
		},
		Experiment: Experiment{
			Games:      10,
			Players:    4,
			Parallel:   2,
			WithCards:  true,
			TurnBudget: meta.TURN_BUDGET,
			Opponents:  "random",
			MaxMoves:   meta.MAX_MOVES,
			Out:        "experiments",
		},
	}
}

// Load overlays the YAML file at path on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.WithMessagef(err, "config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Search.Exploration <= 0:
		return errors.Wrap(ErrInvalid, "search.exploration must be positive")
	case c.Search.HighWater <= 0 || c.Search.HighWater > 1:
		return errors.Wrap(ErrInvalid, "search.high_water must be in (0, 1]")
	case c.Search.Chance != "full" && c.Search.Chance != "single":
		return errors.Wrapf(ErrInvalid, "search.chance %q must be full or single", c.Search.Chance)
	case c.Search.Reward != "score" && c.Search.Reward != "win":
		return errors.Wrapf(ErrInvalid, "search.reward %q must be score or win", c.Search.Reward)
	case c.Search.Episodes < 0 || c.Search.MemoryCeilingMB < 0:
		return errors.Wrap(ErrInvalid, "search.episodes and search.memory_ceiling_mb must not be negative")
	case c.Search.Episodes == 0 && c.Experiment.TurnBudget <= 0:
		return errors.Wrap(ErrInvalid, "search.episodes or experiment.turn_budget must bound the search")
	case c.Agent.HistoryLength <= 0 || c.Agent.BurstWindow <= 0:
		return errors.Wrap(ErrInvalid, "agent.history_length and agent.burst_window must be positive")
	case c.Agent.BootstrapRolls < 0:
		return errors.Wrap(ErrInvalid, "agent.bootstrap_rolls must not be negative")
	case c.Experiment.Players < 2 || c.Experiment.Players > 7:
		return errors.Wrap(ErrInvalid, "experiment.players must be between 2 and 7")
	case c.Experiment.Opponents != "random" && c.Experiment.Opponents != "detective":
		return errors.Wrapf(ErrInvalid, "experiment.opponents %q must be random or detective", c.Experiment.Opponents)
	}
	return nil
}
