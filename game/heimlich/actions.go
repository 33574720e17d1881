package heimlich

import (
	"detective/game"
	"fmt"
)

// Roll resolves the die. Value 0 is the shortcut that rolls randomly.
type Roll struct {
	Value int
}

func (r Roll) Kind() game.ActionKind {
	if r.Value == 0 {
		return game.RandomChanceKind
	}
	return game.ChanceKind
}

func (r Roll) String() string {
	if r.Value == 0 {
		return "roll(random)"
	}
	return fmt.Sprintf("roll(%d)", r.Value)
}

// Move spends the die on at most two figurines. The zero value is the
// no-move action.
type Move struct {
	Points [NumFigurines]int8
}

func (m Move) Kind() game.ActionKind {
	return game.MoveKind
}

func (m Move) String() string {
	return fmt.Sprintf("move%v", m.Points)
}

func (m Move) IsNoMove() bool {
	return m == Move{}
}

func (m Move) Total() int {
	total := 0
	for _, p := range m.Points {
		total += int(p)
	}
	return total
}

// GainsCard is true for the no-move action and for moves that put a
// figurine onto the ruins.
func (m Move) GainsCard(board game.Board) bool {
	if m.IsNoMove() {
		return true
	}
	positions := board.Positions()
	fields := board.Fields()
	for f, points := range m.Points {
		if points > 0 && f < len(positions) && (positions[f]+int(points))%fields == RuinsField {
			return true
		}
	}
	return false
}

// Play plays Card on the Target figurine, or skips the card phase.
type Play struct {
	Card   game.Card
	Target game.Identity
	Skip   bool
}

func (p Play) Kind() game.ActionKind {
	return game.CardKind
}

func (p Play) String() string {
	if p.Skip {
		return "play(skip)"
	}
	return fmt.Sprintf("play(%v -> %d)", p.Card, p.Target)
}

func (p Play) IsSkip() bool {
	return p.Skip
}

func (p Play) RemovePlayedCard(cards []game.Card) []game.Card {
	if p.Skip {
		return cards
	}
	out, _ := game.RemoveCard(cards, p.Card)
	return out
}

// Card types.
const (
	Nudge game.CardType = iota
	Push
	Sprint
	Backstep
	numCardTypes
)

const NumCards = 25

func shift(t game.CardType) int {
	switch t {
	case Nudge:
		return 1
	case Push:
		return 2
	case Sprint:
		return 3
	case Backstep:
		return -1
	}
	return 0
}
