package game

// Action must be a comparable value: actions key the edges of the search tree.
type Action interface {
	Kind() ActionKind
	String() string
}

// MoveAction spends movement points on figurines.
type MoveAction interface {
	Action
	// GainsCard evaluates the card-gain triggers against the board as it is
	// before the move is applied.
	GainsCard(Board) bool
}

// CardAction plays a card from the acting seat's hand or skips playing.
type CardAction interface {
	Action
	IsSkip() bool
	// RemovePlayedCard removes the played card instance from cards and
	// returns the shortened slice. Cards is left untouched when nothing
	// matches.
	RemovePlayedCard(cards []Card) []Card
}
