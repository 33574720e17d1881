package heimlich

import "detective/game"

const (
	InitialHand = 2
	MaxHand     = 4
)

// Rules is the standard ruleset.
type Rules struct{}

func (Rules) NewBoard() game.Board {
	return NewBoard()
}

func (Rules) CardUniverse() []game.Card {
	return NewCardUniverse()
}

func (Rules) Figurines() int {
	return NumFigurines
}

func NewCardUniverse() []game.Card {
	cards := make([]game.Card, NumCards)
	for i := range cards {
		cards[i] = game.Card{ID: i, Type: game.CardType(i) % numCardTypes}
	}
	return cards
}
