package tracker

import "detective/game"

// SuspicionParams tune the burst multiplier.
type SuspicionParams struct {
	Window    int     // recent turns inspected per seat
	Threshold int     // allocation a single turn must exceed to count as a burst
	Weight    float64 // added to the multiplier per burst turn
}

// Suspicion scores how likely each seat controls each figurine, from the
// movement points recorded in a Ledger.
type Suspicion struct {
	ledger *Ledger
	params SuspicionParams
	matrix [][]float64
}

func NewSuspicion(ledger *Ledger, params SuspicionParams) *Suspicion {
	matrix := make([][]float64, ledger.Players())
	for p := range matrix {
		matrix[p] = make([]float64, ledger.Figurines())
	}
	return &Suspicion{ledger: ledger, params: params, matrix: matrix}
}

// Recompute rebuilds the matrix. A seat's score for a figurine is its share
// of the seat's invested points times the burst multiplier; each row is
// normalized to sum to 1. Seats with no investment keep an all-zero row.
func (s *Suspicion) Recompute() {
	for p, row := range s.matrix {
		player := game.PlayerID(p)
		total := s.ledger.Total(player)
		if total == 0 {
			clear(row)
			continue
		}

		sum := 0.0
		for f := range row {
			figurine := game.Identity(f)
			share := float64(s.ledger.TotalInvested(player, figurine)) / float64(total)
			row[f] = share * s.burst(player, figurine)
			sum += row[f]
		}
		if sum > 0 {
			for f := range row {
				row[f] /= sum
			}
		}
	}
}

func (s *Suspicion) burst(p game.PlayerID, f game.Identity) float64 {
	factor := 1.0
	for _, points := range s.ledger.Recent(p, f, s.params.Window) {
		if points > s.params.Threshold {
			factor += s.params.Weight
		}
	}
	return factor
}

// Get returns the last computed score of seat p for figurine id.
func (s *Suspicion) Get(p game.PlayerID, id game.Identity) float64 {
	if int(p) < 0 || int(p) >= len(s.matrix) || int(id) < 0 || int(id) >= len(s.matrix[p]) {
		return 0
	}
	return s.matrix[p][id]
}

func (s *Suspicion) Row(p game.PlayerID) []float64 {
	if int(p) < 0 || int(p) >= len(s.matrix) {
		return nil
	}
	return append([]float64(nil), s.matrix[p]...)
}
