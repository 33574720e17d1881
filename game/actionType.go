package game

// ActionKind classifies an action for history replay and chance handling.
type ActionKind int

const (
	MoveKind ActionKind = iota
	ChanceKind
	// RandomChanceKind is the "roll randomly" shortcut offered next to (or
	// instead of) the concrete chance outcomes.
	RandomChanceKind
	CardKind
	OtherKind
)

func (k ActionKind) String() string {
	switch k {
	case MoveKind:
		return "move"
	case ChanceKind:
		return "chance"
	case RandomChanceKind:
		return "random-chance"
	case CardKind:
		return "card"
	default:
		return "other"
	}
}

// IsChance reports whether the kind is decided by randomness.
func (k ActionKind) IsChance() bool {
	return k == ChanceKind || k == RandomChanceKind
}
