package agent

import (
	"context"
	"detective/config"
	"detective/game"
	"detective/game/heimlich"
	"testing"

	"github.com/stretchr/testify/require"
)

type panickyState struct {
	*heimlich.State
}

func (p panickyState) Clone() game.State {
	panic("clone failed")
}

type stuckState struct {
	*heimlich.State
}

func (s stuckState) LegalActions() []game.Action {
	return nil
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Search.Episodes = 50
	cfg.Agent.BootstrapRolls = 0
	cfg.Agent.Seed = 7
	return cfg
}

func newTestDetective(t *testing.T, cfg config.Config) *Detective {
	t.Helper()
	d, err := NewDetectiveFromConfig(cfg, heimlich.Rules{})
	require.NoError(t, err)
	return d
}

// afterRoll returns seat 0's view of a game waiting for seat 0 to move.
func afterRoll(die int) *heimlich.State {
	s := heimlich.NewGame(3, true, 1)
	s.Apply(heimlich.Roll{Value: die})
	return s.ViewFor(0)
}

func TestFindMove(t *testing.T) {
	t.Run("returning the only legal action without search", func(t *testing.T) {
		d := newTestDetective(t, testConfig())

		action, metric := d.FindMove(context.Background(), heimlich.NewGame(3, true, 1).ViewFor(0))

		require.Equal(t, heimlich.Roll{}, action)
		require.Zero(t, metric.Episodes)
		require.Nil(t, d.History(), "Trackers should not be touched")
	})

	t.Run("playing randomly during the opening", func(t *testing.T) {
		cfg := testConfig()
		cfg.Agent.BootstrapRolls = 10
		d := newTestDetective(t, cfg)
		view := afterRoll(3)

		action, metric := d.FindMove(context.Background(), view)

		require.True(t, view.IsValid(action))
		require.True(t, metric.Bootstrap)
		require.Zero(t, metric.Episodes)
		require.Equal(t, 1, d.History().Rolls())
	})

	t.Run("searching once enough history exists", func(t *testing.T) {
		d := newTestDetective(t, testConfig())
		view := afterRoll(5)

		action, metric := d.FindMove(context.Background(), view)

		require.True(t, view.IsValid(action))
		require.False(t, metric.Fallback)
		require.False(t, metric.Bootstrap)
		require.Equal(t, 50, metric.Episodes)
		require.Equal(t, "Episodes", metric.StopReason)
		require.Empty(t, view.Hand(1), "Search should not leak the hypothesis into the caller's state")
	})

	t.Run("falling back when the pipeline panics", func(t *testing.T) {
		d := newTestDetective(t, testConfig())
		view := afterRoll(4)

		action, metric := d.FindMove(context.Background(), panickyState{view})

		require.True(t, view.IsValid(action))
		require.True(t, metric.Fallback)
	})

	t.Run("falling back when the search fails", func(t *testing.T) {
		d := newTestDetective(t, testConfig())
		view := afterRoll(4)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		action, metric := d.FindMove(ctx, view)

		require.True(t, view.IsValid(action))
		require.True(t, metric.Fallback)
	})

	t.Run("returning nothing without legal actions", func(t *testing.T) {
		d := newTestDetective(t, testConfig())

		action, metric := d.FindMove(context.Background(), stuckState{afterRoll(4)})

		require.Nil(t, action)
		require.True(t, metric.Fallback)
	})

	t.Run("rebuilding trackers that drifted", func(t *testing.T) {
		d := newTestDetective(t, testConfig())
		view := afterRoll(2)
		d.FindMove(context.Background(), view)
		d.History().Board().Apply(heimlich.Play{Card: game.Card{Type: heimlich.Push}, Target: 4})
		require.False(t, d.History().InSync(view.Positions()))

		d.FindMove(context.Background(), view)

		require.True(t, d.History().InSync(view.Positions()))
		require.Equal(t, len(view.Records()), d.History().Cursor())
	})

	t.Run("recreating trackers for a different table", func(t *testing.T) {
		d := newTestDetective(t, testConfig())
		d.FindMove(context.Background(), afterRoll(2))

		s := heimlich.NewGame(5, true, 1)
		s.Apply(heimlich.Roll{Value: 3})
		d.FindMove(context.Background(), s.ViewFor(0))

		require.Equal(t, 5, d.History().Players())
	})
}

func TestNewDetectiveFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Search.Reward = "elo"

	_, err := NewDetectiveFromConfig(cfg, heimlich.Rules{})

	require.Error(t, err)
}

func TestRandomAgent(t *testing.T) {
	a := NewRandomAgent(3)
	view := afterRoll(6)

	for i := 0; i < 20; i++ {
		action, _ := a.FindMove(context.Background(), view)
		require.True(t, view.IsValid(action))
	}
}
