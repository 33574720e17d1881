package heimlich

import (
	"detective/game"
)

const (
	NumFigurines = 7
	NumFields    = 12
	RuinsField   = 11
	SafeStart    = 7
	WinningScore = 42
	DieFaces     = 6
)

// Score each field is worth when the safe is cracked.
var fieldScores = [NumFields]int{-3, -2, -1, 0, 1, 2, 3, 4, 5, 6, 7, 0}

// Board is the public part of the game: figurine positions, scores, the
// safe and the pending die value.
type Board struct {
	positions [NumFigurines]int
	scores    [NumFigurines]int
	safe      int
	die       int // 0 when no roll is pending
}

func NewBoard() *Board {
	return &Board{safe: SafeStart}
}

func (b *Board) Copy() *Board {
	c := *b
	return &c
}

func (b *Board) Fields() int {
	return NumFields
}

func (b *Board) Positions() []int {
	out := make([]int, NumFigurines)
	copy(out, b.positions[:])
	return out
}

func (b *Board) Scores() []int {
	out := make([]int, NumFigurines)
	copy(out, b.scores[:])
	return out
}

func (b *Board) Safe() int {
	return b.safe
}

func (b *Board) Die() int {
	return b.die
}

// Finished reports whether any figurine reached the winning score.
func (b *Board) Finished() bool {
	for _, s := range b.scores {
		if s >= WinningScore {
			return true
		}
	}
	return false
}

// Apply replays the board effects of a public action. A random roll
// shortcut carries no outcome and leaves the board unchanged.
func (b *Board) Apply(action game.Action) {
	switch a := action.(type) {
	case Roll:
		if a.Value > 0 {
			b.die = a.Value
		}
	case Move:
		for f, points := range a.Points {
			b.advance(f, int(points))
		}
		b.die = 0
		b.crackSafe()
	case Play:
		if a.Skip {
			return
		}
		b.advance(int(a.Target), shift(a.Card.Type))
		b.crackSafe()
	}
}

func (b *Board) advance(figurine, steps int) {
	if figurine < 0 || figurine >= NumFigurines {
		return
	}
	b.positions[figurine] = ((b.positions[figurine]+steps)%NumFields + NumFields) % NumFields
}

// crackSafe scores every figurine when one of them stands on the safe,
// then moves the safe three fields on within fields 4..10.
func (b *Board) crackSafe() {
	cracked := false
	for _, p := range b.positions {
		if p == b.safe {
			cracked = true
			break
		}
	}
	if !cracked {
		return
	}
	for f, p := range b.positions {
		b.scores[f] += fieldScores[p]
	}
	b.safe = 4 + (b.safe-4+3)%7
}
