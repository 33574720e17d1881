package heimlich

import (
	"detective/game"

	"golang.org/x/exp/rand"
)

const (
	MovePhase game.Phase = game.ChancePhase + 1 + iota
	CardPhase
)

// State is a full game of Heimlich & Co. It implements game.Determinizable.
// Hidden information (identities, hands, deck order) is complete in the
// master state and stripped by ViewFor.
type State struct {
	board      *Board
	numPlayers int
	current    game.PlayerID
	phase      game.Phase
	identities map[game.PlayerID]game.Identity
	hands      [][]game.Card
	deck       []game.Card
	played     []game.Card
	withCards  bool
	outcomes   bool
	records    []game.ActionRecord
	src        *rand.PCGSource
	rng        *rand.Rand
}

// NewGame deals identities and hands at random. Seat 0 starts.
func NewGame(numPlayers int, withCards bool, seed uint64) *State {
	if numPlayers < 2 || numPlayers > NumFigurines {
		panic("heimlich: need between 2 and 7 players")
	}
	s := &State{
		board:      NewBoard(),
		numPlayers: numPlayers,
		phase:      game.ChancePhase,
		identities: make(map[game.PlayerID]game.Identity, numPlayers),
		hands:      make([][]game.Card, numPlayers),
		withCards:  withCards,
	}
	s.Reseed(seed)
	rng := s.rng

	figurines := rng.Perm(NumFigurines)
	for p := 0; p < numPlayers; p++ {
		s.identities[game.PlayerID(p)] = game.Identity(figurines[p])
	}

	if withCards {
		s.deck = NewCardUniverse()
		rng.Shuffle(len(s.deck), func(i, j int) { s.deck[i], s.deck[j] = s.deck[j], s.deck[i] })
		for p := range s.hands {
			s.hands[p] = append([]game.Card(nil), s.deck[:InitialHand]...)
			s.deck = s.deck[InitialHand:]
		}
	}
	return s
}

func (s *State) Clone() game.State {
	return s.clone()
}

func (s *State) clone() *State {
	c := *s
	c.board = s.board.Copy()
	c.identities = make(map[game.PlayerID]game.Identity, len(s.identities))
	for p, id := range s.identities {
		c.identities[p] = id
	}
	c.hands = make([][]game.Card, len(s.hands))
	for p, hand := range s.hands {
		c.hands[p] = append([]game.Card(nil), hand...)
	}
	c.deck = append([]game.Card(nil), s.deck...)
	c.played = append([]game.Card(nil), s.played...)
	// Appending to a capped slice reallocates, so clones never write into
	// each other's history.
	c.records = s.records[:len(s.records):len(s.records)]
	// The clone continues the same die sequence on its own copy of the source.
	src := *s.src
	c.src = &src
	c.rng = rand.New(c.src)
	return &c
}

// ViewFor returns the state as seat p sees it: other seats' identities and
// hands are unknown, and the deck holds every card p cannot account for.
func (s *State) ViewFor(p game.PlayerID) *State {
	v := s.clone()
	for other := range v.identities {
		if other != p {
			delete(v.identities, other)
		}
	}
	for other := range v.hands {
		if game.PlayerID(other) != p {
			v.hands[other] = nil
		}
	}
	if v.withCards {
		v.deck = game.SubtractCards(game.SubtractCards(NewCardUniverse(), v.played), v.hands[p])
	}
	v.Reseed(s.rng.Uint64())
	return v
}

func (s *State) LegalActions() []game.Action {
	if s.board.Finished() {
		return nil
	}
	switch s.phase {
	case game.ChancePhase:
		return s.rollActions()
	case MovePhase:
		return s.moveActions()
	case CardPhase:
		return s.cardActions()
	}
	return nil
}

func (s *State) rollActions() []game.Action {
	actions := []game.Action{Roll{}}
	if s.outcomes {
		for v := 1; v <= DieFaces; v++ {
			actions = append(actions, Roll{Value: v})
		}
	}
	return actions
}

func (s *State) moveActions() []game.Action {
	die := s.board.die
	actions := make([]game.Action, 0, NumFigurines+21*max(die-1, 0)+1)
	for f := 0; f < NumFigurines; f++ {
		var m Move
		m.Points[f] = int8(die)
		actions = append(actions, m)
	}
	for i := 0; i < NumFigurines; i++ {
		for j := i + 1; j < NumFigurines; j++ {
			for a := 1; a < die; a++ {
				var m Move
				m.Points[i] = int8(a)
				m.Points[j] = int8(die - a)
				actions = append(actions, m)
			}
		}
	}
	if die <= 3 {
		actions = append(actions, Move{})
	}
	return actions
}

func (s *State) cardActions() []game.Action {
	actions := []game.Action{Play{Skip: true}}
	seen := make(map[game.CardType]bool, numCardTypes)
	for _, card := range s.hands[s.current] {
		// Instances of a type have the same effect; offer one per type.
		if seen[card.Type] {
			continue
		}
		seen[card.Type] = true
		for f := 0; f < NumFigurines; f++ {
			actions = append(actions, Play{Card: card, Target: game.Identity(f)})
		}
	}
	return actions
}

func (s *State) IsValid(action game.Action) bool {
	if action == nil {
		return false
	}
	for _, a := range s.LegalActions() {
		if a == action {
			return true
		}
	}
	return false
}

// Apply assumes the action is legal.
func (s *State) Apply(action game.Action) {
	actor := s.current
	switch a := action.(type) {
	case Roll:
		if a.Value == 0 {
			a.Value = s.rng.Intn(DieFaces) + 1
		}
		s.board.Apply(a)
		s.record(actor, a)
		s.phase = MovePhase
	case Move:
		gains := a.GainsCard(s.board)
		s.board.Apply(a)
		s.record(actor, a)
		if gains {
			s.draw(actor)
		}
		if s.withCards {
			s.phase = CardPhase
		} else {
			s.endTurn()
		}
	case Play:
		if !a.Skip {
			s.hands[actor], _ = game.RemoveCard(s.hands[actor], a.Card)
			s.played = append(s.played, a.Card)
			s.board.Apply(a)
		}
		s.record(actor, a)
		s.endTurn()
	}
}

func (s *State) record(actor game.PlayerID, action game.Action) {
	s.records = append(s.records, game.ActionRecord{Player: actor, Action: action})
}

func (s *State) draw(p game.PlayerID) {
	if !s.withCards || len(s.deck) == 0 || len(s.hands[p]) >= MaxHand {
		return
	}
	s.hands[p] = append(s.hands[p], s.deck[0])
	s.deck = s.deck[1:]
}

func (s *State) endTurn() {
	s.current = game.PlayerID((int(s.current) + 1) % s.numPlayers)
	s.phase = game.ChancePhase
}

func (s *State) IsTerminal() bool {
	return s.board.Finished()
}

func (s *State) CurrentPlayer() game.PlayerID {
	return s.current
}

func (s *State) Phase() game.Phase {
	return s.phase
}

func (s *State) NumPlayers() int {
	return s.numPlayers
}

func (s *State) Score(p game.PlayerID) int {
	id, ok := s.identities[p]
	if !ok {
		return 0
	}
	return s.board.scores[id]
}

func (s *State) WinningScore() int {
	return WinningScore
}

func (s *State) Board() *Board {
	return s.board
}

func (s *State) Positions() []int {
	return s.board.Positions()
}

func (s *State) Identity(p game.PlayerID) (game.Identity, bool) {
	id, ok := s.identities[p]
	return id, ok
}

func (s *State) Identities() []game.Identity {
	ids := make([]game.Identity, NumFigurines)
	for i := range ids {
		ids[i] = game.Identity(i)
	}
	return ids
}

func (s *State) SetIdentities(assignment map[game.PlayerID]game.Identity) {
	for p, id := range assignment {
		s.identities[p] = id
	}
}

func (s *State) WithCards() bool {
	return s.withCards
}

func (s *State) Hand(p game.PlayerID) []game.Card {
	if int(p) < 0 || int(p) >= len(s.hands) {
		return nil
	}
	return append([]game.Card(nil), s.hands[p]...)
}

// SetHand replaces p's hand and takes the given cards out of the deck.
func (s *State) SetHand(p game.PlayerID, cards []game.Card) {
	if int(p) < 0 || int(p) >= len(s.hands) {
		return
	}
	s.hands[p] = append([]game.Card(nil), cards...)
	s.deck = game.SubtractCards(s.deck, cards)
}

func (s *State) Deck() []game.Card {
	return append([]game.Card(nil), s.deck...)
}

func (s *State) Records() []game.ActionRecord {
	return s.records[:len(s.records):len(s.records)]
}

// Reseed restarts the die sequence used by random rolls.
func (s *State) Reseed(seed uint64) {
	s.src = &rand.PCGSource{}
	s.src.Seed(seed)
	s.rng = rand.New(s.src)
}

func (s *State) AllowChanceOutcomes(allow bool) {
	s.outcomes = allow
}
