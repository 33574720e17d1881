package searcher

import (
	"detective/game"

	"github.com/pkg/errors"
)

// ChancePolicy decides how die-roll nodes branch. It is fixed per tree.
type ChancePolicy int

const (
	// FullBranching drops the random shortcut and lets UCT choose among
	// every concrete outcome, so all outcomes get explored over time.
	FullBranching ChancePolicy = iota
	// SingleSample commits a chance node to one uniformly drawn outcome on
	// its first visit for the rest of the tree's life.
	SingleSample
)

func (p ChancePolicy) String() string {
	if p == SingleSample {
		return "single"
	}
	return "full"
}

func ChancePolicyFor(name string) (ChancePolicy, error) {
	switch name {
	case "", "full":
		return FullBranching, nil
	case "single":
		return SingleSample, nil
	}
	return FullBranching, errors.Errorf("unknown chance policy %q", name)
}

// candidates narrows the legal actions of a chance node to the ones the
// tree may select.
func (p ChancePolicy) candidates(t *Tree, id NodeID, actions []game.Action) []game.Action {
	outcomes := concreteOutcomes(actions)

	if p == FullBranching {
		if len(outcomes) == 0 {
			return actions
		}
		return outcomes
	}

	n := &t.nodes[id]
	if n.outcome == nil {
		if len(outcomes) == 0 {
			outcomes = actions
		}
		n.outcome = outcomes[t.rng.Intn(len(outcomes))]
	}
	return []game.Action{n.outcome}
}

func concreteOutcomes(actions []game.Action) []game.Action {
	outcomes := make([]game.Action, 0, len(actions))
	for _, a := range actions {
		if a.Kind() == game.ChanceKind {
			outcomes = append(outcomes, a)
		}
	}
	return outcomes
}
