package tracker

import (
	"detective/game"
	"detective/utils"

	"github.com/rs/zerolog/log"
)

const (
	InitialHand = 2
	MaxHand     = 4
)

// Cards tracks how many cards each seat holds and which card instances
// have left the game.
type Cards struct {
	universe  []game.Card
	graveyard []game.Card
	counts    []int
}

func NewCards(players int, universe []game.Card) *Cards {
	counts := make([]int, players)
	for p := range counts {
		counts[p] = InitialHand
	}
	return &Cards{
		universe:  append([]game.Card(nil), universe...),
		graveyard: []game.Card{},
		counts:    counts,
	}
}

func (c *Cards) valid(p game.PlayerID) bool {
	return int(p) >= 0 && int(p) < len(c.counts)
}

// Gain records that p drew a card. Hands never exceed MaxHand, and nothing
// is drawn once every card is either held or played.
func (c *Cards) Gain(p game.PlayerID) {
	if !c.valid(p) {
		return
	}
	if c.counts[p] < MaxHand && c.Undrawn() > 0 {
		c.counts[p]++
	}
}

// Undrawn returns how many cards are left in the deck.
func (c *Cards) Undrawn() int {
	return max(len(c.universe)-len(c.graveyard)-utils.Sum(c.counts), 0)
}

// Spend records that p played a card that could not be identified.
func (c *Cards) Spend(p game.PlayerID) {
	if !c.valid(p) {
		return
	}
	if c.counts[p] > 0 {
		c.counts[p]--
	}
}

// Play records that p played card. The card joins the graveyard only if it
// belongs to the universe and is not there already.
func (c *Cards) Play(p game.PlayerID, card game.Card) {
	if !c.valid(p) {
		return
	}
	c.Spend(p)
	for _, dead := range c.graveyard {
		if dead == card {
			log.Warn().Stringer("card", card).Msg("card already in graveyard")
			return
		}
	}
	for _, known := range c.universe {
		if known == card {
			c.graveyard = append(c.graveyard, card)
			return
		}
	}
	log.Warn().Stringer("card", card).Msg("played card is not part of the game")
}

func (c *Cards) Count(p game.PlayerID) int {
	if !c.valid(p) {
		return 0
	}
	return c.counts[p]
}

func (c *Cards) Universe() []game.Card {
	return append([]game.Card(nil), c.universe...)
}

func (c *Cards) Graveyard() []game.Card {
	return append([]game.Card(nil), c.graveyard...)
}

// Tracked returns every card instance that has not been played yet.
func (c *Cards) Tracked() []game.Card {
	return game.SubtractCards(c.universe, c.graveyard)
}

// HiddenPool returns the cards that may sit in an opponent's hand or the
// deck: the universe minus the graveyard minus own.
func (c *Cards) HiddenPool(own []game.Card) []game.Card {
	return game.SubtractCards(c.Tracked(), own)
}
