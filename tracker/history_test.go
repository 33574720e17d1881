package tracker

import (
	"detective/game"
	"detective/game/heimlich"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// playRandom plays n random actions and returns the game.
func playRandom(t *testing.T, players, n int, seed uint64) *heimlich.State {
	t.Helper()
	s := heimlich.NewGame(players, true, seed)
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n && !s.IsTerminal(); i++ {
		actions := s.LegalActions()
		s.Apply(actions[rng.Intn(len(actions))])
	}
	return s
}

func TestHistory(t *testing.T) {
	t.Run("replaying the public log", func(t *testing.T) {
		s := playRandom(t, 3, 90, 4)
		h := NewHistory(3, heimlich.Rules{}, 100)

		processed := h.Advance(s.Records())

		require.Equal(t, len(s.Records()), processed)
		require.True(t, h.InSync(s.Positions()), "Shadow board should match the game")

		rolls := 0
		invested := make([][]int, 3)
		for p := range invested {
			invested[p] = make([]int, heimlich.NumFigurines)
		}
		for _, r := range s.Records() {
			switch a := r.Action.(type) {
			case heimlich.Roll:
				rolls++
			case heimlich.Move:
				for f, points := range a.Points {
					invested[r.Player][f] += int(points)
				}
			}
		}
		require.Equal(t, rolls, h.Rolls())
		for p := 0; p < 3; p++ {
			for f := 0; f < heimlich.NumFigurines; f++ {
				require.Equal(t, invested[p][f], h.Ledger().TotalInvested(game.PlayerID(p), game.Identity(f)))
			}
			require.Equal(t, len(s.Hand(game.PlayerID(p))), h.Cards().Count(game.PlayerID(p)), "Hand size of seat %d", p)
		}
	})

	t.Run("drawing from an exhausted deck", func(t *testing.T) {
		// Seven seats can hold more cards than the deck has, so the last
		// seats of the second round find it empty.
		const players = 7
		s := heimlich.NewGame(players, true, 9)
		for round := 0; round < 3; round++ {
			for p := 0; p < players; p++ {
				s.Apply(heimlich.Roll{Value: 1})
				s.Apply(heimlich.Move{})
				s.Apply(heimlich.Play{Skip: true})
			}
		}
		require.Empty(t, s.Deck())

		h := NewHistory(players, heimlich.Rules{}, 100)
		h.Advance(s.Records())

		require.Zero(t, h.Cards().Undrawn())
		for p := 0; p < players; p++ {
			require.Equal(t, len(s.Hand(game.PlayerID(p))), h.Cards().Count(game.PlayerID(p)), "Hand size of seat %d", p)
		}
		require.Equal(t, 4, h.Cards().Count(0))
		require.Equal(t, 3, h.Cards().Count(players-1))
	})

	t.Run("identifying played cards", func(t *testing.T) {
		s := playRandom(t, 3, 90, 4)
		h := NewHistory(3, heimlich.Rules{}, 100)
		h.Advance(s.Records())

		var played []game.Card
		for _, r := range s.Records() {
			if p, ok := r.Action.(heimlich.Play); ok && !p.Skip {
				played = append(played, p.Card)
			}
		}
		require.ElementsMatch(t, played, h.Cards().Graveyard())
	})

	t.Run("processing each record once", func(t *testing.T) {
		s := playRandom(t, 2, 30, 1)
		h := NewHistory(2, heimlich.Rules{}, 100)
		records := s.Records()

		h.Advance(records[:10])
		require.Equal(t, 10, h.Cursor())
		require.Equal(t, len(records)-10, h.Advance(records))
		require.Equal(t, 0, h.Advance(records), "Nothing new should be processed")

		full := NewHistory(2, heimlich.Rules{}, 100)
		full.Advance(records)
		require.Equal(t, full.Rolls(), h.Rolls())
		require.Equal(t, full.Ledger().Total(0), h.Ledger().Total(0))
	})

	t.Run("ignoring a shorter log", func(t *testing.T) {
		s := playRandom(t, 2, 30, 1)
		h := NewHistory(2, heimlich.Rules{}, 100)
		h.Advance(s.Records())

		require.Equal(t, 0, h.Advance(s.Records()[:5]))
		require.Equal(t, len(s.Records()), h.Cursor())
	})

	t.Run("resyncing after drift", func(t *testing.T) {
		s := playRandom(t, 2, 40, 2)
		h := NewHistory(2, heimlich.Rules{}, 100)
		h.Advance(s.Records())
		h.Board().Apply(heimlich.Play{Card: game.Card{ID: 0, Type: heimlich.Nudge}, Target: 0})
		require.False(t, h.InSync(s.Positions()))

		h.Resync(s.Records())

		require.True(t, h.InSync(s.Positions()))
		require.Equal(t, len(s.Records()), h.Cursor())
	})

	t.Run("ignoring records of unknown seats", func(t *testing.T) {
		h := NewHistory(2, heimlich.Rules{}, 100)
		var m heimlich.Move
		m.Points[0] = 3

		h.Advance([]game.ActionRecord{{Player: 7, Action: m}, {Player: 0, Action: nil}})

		require.Equal(t, []int{3, 0, 0, 0, 0, 0, 0}, h.Board().Positions(), "Public effects should still be replayed")
		require.Equal(t, 0, h.Ledger().Total(0))
	})
}

func TestDeltas(t *testing.T) {
	require.Equal(t, []int{2, 0, 11}, deltas([]int{10, 3, 1}, []int{0, 3, 0}, 12))
	require.Equal(t, []int{0, 0}, deltas([]int{1, 2}, []int{1}, 12), "Mismatched snapshots count as no movement")
}
