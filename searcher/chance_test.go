package searcher

import (
	"detective/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var (
	roll      = mockAction{id: 0, kind: game.RandomChanceKind}
	outcome1  = mockAction{id: 1, kind: game.ChanceKind}
	outcome2  = mockAction{id: 2, kind: game.ChanceKind}
	outcome3  = mockAction{id: 3, kind: game.ChanceKind}
	rollState = func(actions ...game.Action) *mockState {
		s := newMockState(1, 3, actions...)
		s.phase = game.ChancePhase
		return s
	}
)

func TestChancePolicy(t *testing.T) {
	t.Run("full branching drops the random shortcut", func(t *testing.T) {
		tree := NewTree(rollState(roll, outcome1, outcome2), 0, FullBranching, C, rand.New(rand.NewSource(1)))

		got := FullBranching.candidates(tree, tree.Root(), []game.Action{roll, outcome1, outcome2})

		require.Equal(t, []game.Action{outcome1, outcome2}, got)
	})

	t.Run("full branching keeps the shortcut when no outcome is exposed", func(t *testing.T) {
		tree := NewTree(rollState(roll), 0, FullBranching, C, rand.New(rand.NewSource(1)))

		got := FullBranching.candidates(tree, tree.Root(), []game.Action{roll})

		require.Equal(t, []game.Action{roll}, got)
	})

	t.Run("full branching explores every outcome", func(t *testing.T) {
		tree := NewTree(rollState(roll, outcome1, outcome2, outcome3), 0, FullBranching, C, rand.New(rand.NewSource(1)))

		for i := 0; i < 3; i++ {
			parent, action := tree.Select()
			tree.Backpropagate(tree.Expand(parent, action), 0.5)
		}

		require.ElementsMatch(t, []game.Action{outcome1, outcome2, outcome3}, tree.Children(tree.Root()))
	})

	t.Run("single sample commits to one outcome", func(t *testing.T) {
		tree := NewTree(rollState(roll, outcome1, outcome2, outcome3), 0, SingleSample, C, rand.New(rand.NewSource(1)))
		actions := []game.Action{roll, outcome1, outcome2, outcome3}

		first := SingleSample.candidates(tree, tree.Root(), actions)
		require.Len(t, first, 1)
		require.Equal(t, game.ChanceKind, first[0].Kind(), "Sample should be a concrete outcome")
		for i := 0; i < 20; i++ {
			require.Equal(t, first, SingleSample.candidates(tree, tree.Root(), actions), "Node should keep its committed outcome")
		}
	})

	t.Run("single sample grows one child per chance node", func(t *testing.T) {
		tree := NewTree(rollState(roll, outcome1, outcome2, outcome3), 0, SingleSample, C, rand.New(rand.NewSource(1)))

		parent, action := tree.Select()
		tree.Backpropagate(tree.Expand(parent, action), 0.5)
		for i := 0; i < 10; i++ {
			parent, action = tree.Select()
			require.NotEqual(t, tree.Root(), parent, "Root should not be expanded again")
			tree.Backpropagate(tree.Expand(parent, action), 0.5)
		}

		require.Len(t, tree.Children(tree.Root()), 1)
	})

	t.Run("single sample falls back to the shortcut", func(t *testing.T) {
		tree := NewTree(rollState(roll), 0, SingleSample, C, rand.New(rand.NewSource(1)))

		got := SingleSample.candidates(tree, tree.Root(), []game.Action{roll})

		require.Equal(t, []game.Action{roll}, got)
	})
}

func TestChancePolicyFor(t *testing.T) {
	for name, want := range map[string]ChancePolicy{"": FullBranching, "full": FullBranching, "single": SingleSample} {
		got, err := ChancePolicyFor(name)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ChancePolicyFor("sometimes")
	require.Error(t, err)
}
