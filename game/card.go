package game

import (
	"detective/utils"
	"fmt"
)

type CardType int

// Card is one physical card instance. Two cards of the same Type are
// interchangeable for play, but ID tells the instances apart.
type Card struct {
	ID   int
	Type CardType
}

func (c Card) String() string {
	return fmt.Sprintf("card#%d(type %d)", c.ID, c.Type)
}

// RemoveCard returns a copy of cards without card, preferring the exact
// instance and falling back to the first card of the same type. It reports
// whether a card was removed.
func RemoveCard(cards []Card, card Card) ([]Card, bool) {
	idx := utils.FindIndex(cards, card)
	if idx < 0 {
		idx = utils.IndexFunc(cards, func(c Card) bool { return c.Type == card.Type })
	}
	if idx < 0 {
		return cards, false
	}
	out := make([]Card, 0, len(cards)-1)
	out = append(out, cards[:idx]...)
	return append(out, cards[idx+1:]...), true
}

// SubtractCards returns the multiset difference cards - remove using
// RemoveCard semantics.
func SubtractCards(cards, remove []Card) []Card {
	out := append([]Card(nil), cards...)
	for _, c := range remove {
		out, _ = RemoveCard(out, c)
	}
	return out
}
