// Package determinizer turns tracker evidence into one concrete hypothesis
// of the hidden state so that a perfect-information search can run on it.
package determinizer

import (
	"detective/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Scorer returns how strongly a seat is suspected of controlling a figurine.
type Scorer interface {
	Get(game.PlayerID, game.Identity) float64
}

// HandSource supplies hand sizes and the cards that may be hidden.
type HandSource interface {
	Count(game.PlayerID) int
	HiddenPool(own []game.Card) []game.Card
}

// Hypothesis is the hidden state injected into a determinized game.
type Hypothesis struct {
	Identities map[game.PlayerID]game.Identity
	Hands      map[game.PlayerID][]game.Card
}

type Determinizer struct {
	self  game.PlayerID
	score Scorer
	hands HandSource
	rng   *rand.Rand
}

func New(self game.PlayerID, score Scorer, hands HandSource, rng *rand.Rand) *Determinizer {
	return &Determinizer{self: self, score: score, hands: hands, rng: rng}
}

// Determinize fills in the opponents' identities and hands of state and
// returns what it injected.
func (d *Determinizer) Determinize(state game.Determinizable) Hypothesis {
	h := Hypothesis{
		Identities: d.assignIdentities(state),
		Hands:      map[game.PlayerID][]game.Card{},
	}
	state.SetIdentities(h.Identities)

	if state.WithCards() {
		h.Hands = d.assignHands(state)
		for p, hand := range h.Hands {
			state.SetHand(p, hand)
		}
	}
	return h
}

func (d *Determinizer) opponents(state game.Determinizable) []game.PlayerID {
	n := state.NumPlayers()
	opponents := make([]game.PlayerID, 0, n-1)
	for i := 1; i < n; i++ {
		opponents = append(opponents, game.PlayerID((int(d.self)+i)%n))
	}
	return opponents
}

// assignIdentities greedily matches the globally most suspicious
// (opponent, figurine) pair until opponents or figurines run out. Own
// figurine is never handed out. Ties go to the first pair enumerated.
func (d *Determinizer) assignIdentities(state game.Determinizable) map[game.PlayerID]game.Identity {
	own, hasOwn := state.Identity(d.self)
	available := make([]game.Identity, 0, len(state.Identities()))
	for _, id := range state.Identities() {
		if hasOwn && id == own {
			continue
		}
		available = append(available, id)
	}
	opponents := d.opponents(state)

	assignment := make(map[game.PlayerID]game.Identity, len(opponents))
	for len(opponents) > 0 && len(available) > 0 {
		bestOpp, bestID := -1, -1
		maxScore := -1.0
		for i, p := range opponents {
			for j, id := range available {
				if score := d.score.Get(p, id); score > maxScore {
					maxScore = score
					bestOpp, bestID = i, j
				}
			}
		}

		assignment[opponents[bestOpp]] = available[bestID]
		opponents = append(opponents[:bestOpp], opponents[bestOpp+1:]...)
		available = append(available[:bestID], available[bestID+1:]...)
	}
	return assignment
}

// assignHands deals each opponent, in turn order after self, as many cards
// from the shuffled hidden pool as it is believed to hold. A pool that runs
// dry leaves later opponents short.
func (d *Determinizer) assignHands(state game.Determinizable) map[game.PlayerID][]game.Card {
	pool := d.hands.HiddenPool(state.Hand(d.self))
	d.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	hands := make(map[game.PlayerID][]game.Card)
	for _, p := range d.opponents(state) {
		size := min(d.hands.Count(p), len(pool))
		if size < d.hands.Count(p) {
			log.Warn().Int("player", int(p)).Int("expected", d.hands.Count(p)).Int("dealt", size).Msg("hidden pool exhausted")
		}
		hands[p] = append([]game.Card{}, pool[:size]...)
		pool = pool[size:]
	}
	return hands
}
