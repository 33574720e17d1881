package tracker

import (
	"detective/game"
	"detective/utils"
)

// Ledger records, per seat, how many movement points were spent on each
// figurine every turn. Only the most recent capacity turns are kept; an
// evicted turn is also taken out of the running totals so that a total is
// always the sum of the turns still on record.
type Ledger struct {
	players   int
	figurines int
	capacity  int
	turns     [][][]int // [player][turn][figurine], oldest first
	totals    [][]int   // [player][figurine]
}

func NewLedger(players, figurines, capacity int) *Ledger {
	if capacity <= 0 {
		capacity = 1
	}
	l := &Ledger{
		players:   players,
		figurines: figurines,
		capacity:  capacity,
		turns:     make([][][]int, players),
		totals:    make([][]int, players),
	}
	for p := range l.totals {
		l.totals[p] = make([]int, figurines)
	}
	return l
}

func (l *Ledger) valid(p game.PlayerID) bool {
	return int(p) >= 0 && int(p) < l.players
}

// Record stores one turn of allocations for p, indexed by figurine.
// Negative allocations count as zero; an out-of-range seat is ignored.
func (l *Ledger) Record(p game.PlayerID, allocation []int) {
	if !l.valid(p) {
		return
	}

	turn := make([]int, l.figurines)
	for f := 0; f < l.figurines && f < len(allocation); f++ {
		turn[f] = max(allocation[f], 0)
	}

	if len(l.turns[p]) == l.capacity {
		evicted := l.turns[p][0]
		for f, points := range evicted {
			l.totals[p][f] -= points
		}
		l.turns[p] = l.turns[p][1:]
	}

	l.turns[p] = append(l.turns[p], turn)
	for f, points := range turn {
		l.totals[p][f] += points
	}
}

// TotalInvested returns the points p spent on figurine f over the turns on record.
func (l *Ledger) TotalInvested(p game.PlayerID, f game.Identity) int {
	if !l.valid(p) || int(f) < 0 || int(f) >= l.figurines {
		return 0
	}
	return l.totals[p][f]
}

// Total returns the points p spent on all figurines.
func (l *Ledger) Total(p game.PlayerID) int {
	if !l.valid(p) {
		return 0
	}
	return utils.Sum(l.totals[p])
}

func (l *Ledger) Turns(p game.PlayerID) int {
	if !l.valid(p) {
		return 0
	}
	return len(l.turns[p])
}

func (l *Ledger) AverageMovement(p game.PlayerID, f game.Identity) float64 {
	turns := l.Turns(p)
	if turns == 0 {
		return 0
	}
	return float64(l.TotalInvested(p, f)) / float64(turns)
}

// History returns the per-turn allocations of p on f, oldest first.
func (l *Ledger) History(p game.PlayerID, f game.Identity) []int {
	return l.Recent(p, f, l.capacity)
}

// Recent returns at most the last window allocations of p on f, oldest first.
func (l *Ledger) Recent(p game.PlayerID, f game.Identity, window int) []int {
	if !l.valid(p) || int(f) < 0 || int(f) >= l.figurines || window <= 0 {
		return []int{}
	}
	turns := l.turns[p]
	if len(turns) > window {
		turns = turns[len(turns)-window:]
	}
	out := make([]int, len(turns))
	for i, turn := range turns {
		out[i] = turn[f]
	}
	return out
}

func (l *Ledger) Players() int {
	return l.players
}

func (l *Ledger) Figurines() int {
	return l.figurines
}
