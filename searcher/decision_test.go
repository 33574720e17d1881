package searcher

import (
	"detective/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	t.Run("selecting every action once before any action twice", func(t *testing.T) {
		tree := newTestTree(newMockState(2, 5, actionA, actionB, actionC))

		seen := map[game.Action]int{}
		for i := 0; i < 3; i++ {
			parent, action := tree.Select()
			require.Equal(t, tree.Root(), parent, "Root should be the node to expand while it has untried actions")
			seen[action]++
			tree.Backpropagate(tree.Expand(parent, action), 0.5)
		}

		require.Equal(t, map[game.Action]int{actionA: 1, actionB: 1, actionC: 1}, seen, "Each action should be selected exactly once")
		for _, action := range []game.Action{actionA, actionB, actionC} {
			child, _ := tree.Child(tree.Root(), action)
			require.Equal(t, 1, tree.Playouts(child))
		}
	})

	t.Run("descending through a fully expanded node", func(t *testing.T) {
		tree := newTestTree(newMockState(2, 5, actionA, actionB))
		a := tree.Expand(tree.Root(), actionA)
		b := tree.Expand(tree.Root(), actionB)
		tree.Backpropagate(a, 1)
		tree.Backpropagate(b, 0)

		parent, action := tree.Select()

		require.Equal(t, a, parent, "Selection should descend into the child with the higher UCT value")
		require.NotNil(t, action)
	})

	t.Run("opponents minimize the optimized player's win rate", func(t *testing.T) {
		state := newMockState(2, 5, actionA, actionB)
		state.current = 1
		tree := newTestTree(state)
		a := tree.Expand(tree.Root(), actionA)
		b := tree.Expand(tree.Root(), actionB)
		tree.Backpropagate(a, 1)
		tree.Backpropagate(b, 0)

		parent, _ := tree.Select()

		require.Equal(t, b, parent, "Opponent should descend into the child worst for the optimized player")
	})

	t.Run("stopping at a terminal node", func(t *testing.T) {
		tree := newTestTree(newMockState(2, 0, actionA))

		parent, action := tree.Select()

		require.Equal(t, tree.Root(), parent)
		require.Nil(t, action, "Terminal node should have nothing to expand")
	})
}

func TestBestAction(t *testing.T) {
	t.Run("choosing the child with the best win rate", func(t *testing.T) {
		tree := newTestTree(newMockState(2, 5, actionA, actionB))
		a := tree.Expand(tree.Root(), actionA)
		b := tree.Expand(tree.Root(), actionB)
		for _, reward := range []float64{1, 1, 1, 0, 0} {
			tree.Backpropagate(a, reward)
		}
		for _, reward := range []float64{1, 0, 0, 0, 0} {
			tree.Backpropagate(b, reward)
		}

		action, child, err := tree.BestAction()

		require.NoError(t, err)
		require.Equal(t, actionA, action, "3/5 should beat 1/5")
		require.Equal(t, a, child)
	})

	t.Run("ignoring exploration", func(t *testing.T) {
		tree := newTestTree(newMockState(2, 5, actionA, actionB))
		a := tree.Expand(tree.Root(), actionA)
		b := tree.Expand(tree.Root(), actionB)
		for i := 0; i < 100; i++ {
			tree.Backpropagate(a, 0.6)
		}
		tree.Backpropagate(b, 0.5)

		action, _, err := tree.BestAction()

		require.NoError(t, err)
		require.Equal(t, actionA, action, "A barely visited child should not win on its exploration bonus")
	})

	t.Run("breaking ties among the best children", func(t *testing.T) {
		tree := newTestTree(newMockState(2, 5, actionA, actionB))
		tree.Backpropagate(tree.Expand(tree.Root(), actionA), 1)
		tree.Backpropagate(tree.Expand(tree.Root(), actionB), 1)

		action, _, err := tree.BestAction()

		require.NoError(t, err)
		require.Contains(t, []game.Action{actionA, actionB}, action)
	})

	t.Run("failing without children", func(t *testing.T) {
		tree := newTestTree(newMockState(2, 5, actionA))

		_, _, err := tree.BestAction()

		require.ErrorIs(t, err, ErrNoChildren)
	})
}

func TestMaximumValuedActions(t *testing.T) {
	values := map[game.Action]float64{actionA: 2, actionB: 5, actionC: 5}
	value := func(a game.Action) float64 { return values[a] }

	t.Run("returning every tie in input order", func(t *testing.T) {
		got := MaximumValuedActions([]game.Action{actionA, actionB, actionC}, value)

		require.Equal(t, []game.Action{actionB, actionC}, got)
	})

	t.Run("returning nothing for no actions", func(t *testing.T) {
		require.Empty(t, MaximumValuedActions(nil, value))
	})
}
