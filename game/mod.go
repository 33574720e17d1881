package game

// Capability surface any rules engine must satisfy to be searched by the
// detective agent. The searcher and trackers never depend on a concrete game.

type PlayerID int

// Identity is the index of a figurine a seat may secretly control.
type Identity int

type Phase int

// ChancePhase marks decision points whose action is decided by a die roll.
// Rules engines define their remaining phases after it.
const ChancePhase Phase = 0

// State is a mutable, clonable game state. Apply mutates in place; callers
// that need the previous state clone first.
type State interface {
	Clone() State
	LegalActions() []Action
	Apply(Action)
	IsValid(Action) bool
	IsTerminal() bool
	CurrentPlayer() PlayerID
	Phase() Phase
	NumPlayers() int
	// Score is the score of the figurine the seat controls, 0 if unknown.
	Score(PlayerID) int
	WinningScore() int
}

// Determinizable exposes the hidden-information injection points and the
// public history of a state seen from one seat.
type Determinizable interface {
	State
	Identity(PlayerID) (Identity, bool)
	Identities() []Identity
	SetIdentities(map[PlayerID]Identity)
	WithCards() bool
	Hand(PlayerID) []Card
	SetHand(PlayerID, []Card)
	Records() []ActionRecord
	// AllowChanceOutcomes exposes every concrete chance outcome as a legal
	// action in addition to the random shortcut.
	AllowChanceOutcomes(bool)
}

// PositionReporter is implemented by states that expose public figurine
// positions, used to detect drift of a replayed board.
type PositionReporter interface {
	Positions() []int
}

// Reseeder is implemented by states that resolve random chance shortcuts
// internally. Searchers reseed every state they create so that those
// outcomes come from the search's own generator.
type Reseeder interface {
	Reseed(seed uint64)
}

// Board is a replica of the public part of a game that can replay public
// actions. Positions are indexed by Identity.
type Board interface {
	Apply(Action)
	Positions() []int
	Fields() int
}

// Rules produces the fixed components shared by every game of a ruleset.
type Rules interface {
	NewBoard() Board
	CardUniverse() []Card
	Figurines() int
}

type ActionRecord struct {
	Player PlayerID
	Action Action
}
