package tracker

import (
	"detective/game"

	"github.com/rs/zerolog/log"
)

// History replays the public action log onto a shadow board and infers what
// the game hides: how seats spend movement points and how many cards they
// hold. Every record is processed exactly once, in log order.
type History struct {
	players int
	rules   game.Rules
	history int
	board   game.Board
	ledger  *Ledger
	cards   *Cards
	cursor  int
	rolls   int
}

// NewHistory creates a tracker for players seats. historyLength bounds the
// number of turns the movement ledger keeps per seat.
func NewHistory(players int, rules game.Rules, historyLength int) *History {
	h := &History{
		players: players,
		rules:   rules,
		history: historyLength,
	}
	h.reset()
	return h
}

func (h *History) reset() {
	h.board = h.rules.NewBoard()
	h.ledger = NewLedger(h.players, h.rules.Figurines(), h.history)
	h.cards = NewCards(h.players, h.rules.CardUniverse())
	h.cursor = 0
	h.rolls = 0
}

// Advance processes the records past the cursor and returns how many were new.
func (h *History) Advance(records []game.ActionRecord) int {
	if len(records) < h.cursor {
		log.Warn().Int("cursor", h.cursor).Int("records", len(records)).Msg("action log is shorter than the processed prefix")
		return 0
	}
	start := h.cursor
	for i := start; i < len(records); i++ {
		h.process(records[i])
		h.cursor = i + 1
	}
	return h.cursor - start
}

// Resync drops everything inferred so far and replays the full log.
func (h *History) Resync(records []game.ActionRecord) {
	h.reset()
	h.Advance(records)
}

func (h *History) valid(p game.PlayerID) bool {
	return int(p) >= 0 && int(p) < h.players
}

func (h *History) process(record game.ActionRecord) {
	player := record.Player
	action := record.Action
	if action == nil {
		return
	}
	valid := h.valid(player)

	switch action.Kind() {
	case game.MoveKind:
		before := h.board.Positions()
		if move, ok := action.(game.MoveAction); ok && valid && move.GainsCard(h.board) {
			h.cards.Gain(player)
		}
		h.board.Apply(action)
		if valid {
			h.ledger.Record(player, deltas(before, h.board.Positions(), h.board.Fields()))
		}

	case game.CardKind:
		if play, ok := action.(game.CardAction); ok && valid && !play.IsSkip() {
			h.identify(player, play)
		}
		h.board.Apply(action)

	default:
		if action.Kind().IsChance() {
			h.rolls++
		}
		h.board.Apply(action)
	}
}

// identify finds the card instance a play removed by letting the action
// remove it from every card still in the game and diffing the result.
func (h *History) identify(player game.PlayerID, play game.CardAction) {
	tracked := h.cards.Tracked()
	remaining := play.RemovePlayedCard(append([]game.Card(nil), tracked...))
	if len(remaining) >= len(tracked) {
		log.Debug().Int("player", int(player)).Stringer("action", play).Msg("could not identify played card")
		h.cards.Spend(player)
		return
	}
	missing := game.SubtractCards(tracked, remaining)
	h.cards.Play(player, missing[0])
}

// deltas returns how far each figurine moved forward on a ring of fields.
// Mismatched snapshots count as no movement.
func deltas(before, after []int, fields int) []int {
	moved := make([]int, len(before))
	if len(before) != len(after) || fields <= 0 {
		return moved
	}
	for f := range before {
		moved[f] = ((after[f]-before[f])%fields + fields) % fields
	}
	return moved
}

// InSync reports whether the shadow board agrees with the given public positions.
func (h *History) InSync(positions []int) bool {
	shadow := h.board.Positions()
	if len(shadow) != len(positions) {
		return false
	}
	for i := range shadow {
		if shadow[i] != positions[i] {
			return false
		}
	}
	return true
}

func (h *History) Ledger() *Ledger {
	return h.ledger
}

func (h *History) Cards() *Cards {
	return h.cards
}

func (h *History) Board() game.Board {
	return h.board
}

// Rolls returns the number of chance events observed so far.
func (h *History) Rolls() int {
	return h.rolls
}

func (h *History) Cursor() int {
	return h.cursor
}

func (h *History) Players() int {
	return h.players
}
