// meta/meta.go
package meta

import "time"

// TERMINATION_DEPTH caps random playouts, -1 plays every rollout to the end.
const TERMINATION_DEPTH = 64

// EXPLORATION is the UCT exploration constant, sqrt(2).
const EXPLORATION = 1.4142135623730951

// BOOTSTRAP_ROLLS is the number of observed die rolls below which the agent
// plays a random action instead of searching.
const BOOTSTRAP_ROLLS = 10

// HISTORY_LENGTH bounds the turns of movement history kept per seat.
const HISTORY_LENGTH = 100

// BURST_WINDOW, BURST_THRESHOLD and BURST_WEIGHT shape the suspicion burst multiplier.
const BURST_WINDOW = 5
const BURST_THRESHOLD = 3
const BURST_WEIGHT = 0.2

// MEMORY_CEILING_MB caps the heap the search may grow into.
const MEMORY_CEILING_MB = 1024

// MEMORY_HIGH_WATER is the fraction of the ceiling that stops the search.
const MEMORY_HIGH_WATER = 0.90

// TURN_BUDGET is the default time the harness grants per decision.
const TURN_BUDGET = 200 * time.Millisecond

// MAX_MOVES stops a local game that never finishes.
const MAX_MOVES = 5000
