package searcher

import (
	"detective/game"
	"detective/utils"
	"math"

	"github.com/pkg/errors"
)

var ErrNoChildren = errors.New("root has no expanded children")

// Select walks the tree policy from the root. It stops at the first node
// whose chosen action has no child yet and returns that node and action,
// or returns a terminal node with a nil action.
func (t *Tree) Select() (NodeID, game.Action) {
	id := t.Root()
	for {
		n := &t.nodes[id]
		actions := n.state.LegalActions()
		if len(actions) == 0 || n.state.IsTerminal() {
			return id, nil
		}

		action := t.pick(id, actions)
		child, ok := n.children[action]
		if !ok {
			return id, action
		}
		id = child
	}
}

func (t *Tree) pick(id NodeID, actions []game.Action) game.Action {
	if t.nodes[id].state.Phase() == game.ChancePhase {
		actions = t.chance.candidates(t, id, actions)
		if len(actions) == 1 {
			return actions[0]
		}
	}

	var policy *uct
	if t.nodes[id].playouts > 0 {
		policy = newUCT(t.c, float64(t.nodes[id].playouts))
	}
	best := MaximumValuedActions(actions, func(a game.Action) float64 {
		return t.uct(id, a, policy)
	})
	return best[t.rng.Intn(len(best))]
}

// uct scores action at node id. Actions never tried score +Inf so every
// action is tried once before any is tried twice.
func (t *Tree) uct(id NodeID, action game.Action, policy *uct) float64 {
	n := &t.nodes[id]
	childID, ok := n.children[action]
	if !ok || t.nodes[childID].playouts == 0 || policy == nil {
		return math.Inf(1)
	}
	child := &t.nodes[childID]

	q := child.wins / float64(child.playouts)
	if n.state.CurrentPlayer() != t.player {
		// Opponents pick what is worst for the optimized player.
		q = (float64(child.playouts) - child.wins) / float64(child.playouts)
	}
	return policy.evaluate(q, float64(child.playouts))
}

// BestAction returns the root action with the highest win rate, ties broken
// at random. Exploration plays no part.
func (t *Tree) BestAction() (game.Action, NodeID, error) {
	root := &t.nodes[t.Root()]
	if len(root.order) == 0 {
		return nil, noParent, ErrNoChildren
	}
	best := MaximumValuedActions(root.order, func(a game.Action) float64 {
		child := &t.nodes[root.children[a]]
		if child.playouts == 0 {
			return math.Inf(-1)
		}
		return child.wins / float64(child.playouts)
	})
	action := best[t.rng.Intn(len(best))]
	return action, root.children[action], nil
}

// MaximumValuedActions returns every action tying for the maximum value, in
// input order, in one pass.
func MaximumValuedActions(actions []game.Action, value func(game.Action) float64) []game.Action {
	indices := utils.MaxIndices(actions, value)
	out := make([]game.Action, len(indices))
	for i, idx := range indices {
		out[i] = actions[idx]
	}
	return out
}
