package searcher

import (
	"detective/game"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

type NodeID int32

const noParent NodeID = -1

// node owns one concrete state. Children are addressed by arena index so
// the tree has no pointer cycles; parent is a back-index.
type node struct {
	state    game.State
	depth    int
	parent   NodeID
	children map[game.Action]NodeID
	order    []game.Action // expanded actions in expansion order
	outcome  game.Action   // committed chance outcome under SingleSample
	playouts int
	wins     float64
}

// Tree is an arena of search nodes built for one decision and thrown away
// afterwards. It is not safe for concurrent use.
type Tree struct {
	nodes  []node
	player game.PlayerID
	chance ChancePolicy
	c      float64
	rng    *rand.Rand
}

// NewTree roots a tree at a clone of state. player is the seat whose win
// rate is maximized.
func NewTree(state game.State, player game.PlayerID, chance ChancePolicy, c float64, rng *rand.Rand) *Tree {
	t := &Tree{
		player: player,
		chance: chance,
		c:      c,
		rng:    rng,
	}
	t.nodes = append(t.nodes, newNode(state.Clone(), 0, noParent))
	return t
}

func newNode(state game.State, depth int, parent NodeID) node {
	return node{
		state:    state,
		depth:    depth,
		parent:   parent,
		children: make(map[game.Action]NodeID),
	}
}

func (t *Tree) Root() NodeID {
	return 0
}

func (t *Tree) Size() int {
	return len(t.nodes)
}

func (t *Tree) Player() game.PlayerID {
	return t.player
}

func (t *Tree) Parent(id NodeID) NodeID {
	return t.nodes[id].parent
}

func (t *Tree) Depth(id NodeID) int {
	return t.nodes[id].depth
}

func (t *Tree) Playouts(id NodeID) int {
	return t.nodes[id].playouts
}

func (t *Tree) Wins(id NodeID) float64 {
	return t.nodes[id].wins
}

// State returns a clone of the node's state.
func (t *Tree) State(id NodeID) game.State {
	return t.nodes[id].state.Clone()
}

func (t *Tree) Child(id NodeID, action game.Action) (NodeID, bool) {
	child, ok := t.nodes[id].children[action]
	return child, ok
}

// Children returns the expanded actions of a node in expansion order.
func (t *Tree) Children(id NodeID) []game.Action {
	return append([]game.Action(nil), t.nodes[id].order...)
}

func (t *Tree) isTerminal(id NodeID) bool {
	return t.nodes[id].state.IsTerminal()
}

// Expand materializes the child reached by action. A nil action on a
// terminal node returns the node itself.
func (t *Tree) Expand(id NodeID, action game.Action) NodeID {
	n := &t.nodes[id]
	if action == nil {
		if n.state.IsTerminal() || len(n.state.LegalActions()) == 0 {
			return id
		}
		panic("cannot expand a non-terminal node without an action")
	}
	if _, ok := n.children[action]; ok {
		panic(fmt.Sprintf("node already expanded with %v", action))
	}
	if !n.state.IsValid(action) {
		panic(fmt.Sprintf("cannot expand with %v: invalid in the node's state", action))
	}

	state := t.clone(n.state)
	state.Apply(action)
	child := NodeID(len(t.nodes))
	depth := n.depth + 1
	n.children[action] = child
	n.order = append(n.order, action)
	// n may dangle after the append below.
	t.nodes = append(t.nodes, newNode(state, depth, id))
	return child
}

// clone copies state and, when the game resolves random rolls itself,
// reseeds the copy from the tree's generator.
func (t *Tree) clone(state game.State) game.State {
	c := state.Clone()
	if r, ok := c.(game.Reseeder); ok {
		r.Reseed(t.rng.Uint64())
	}
	return c
}

// Backpropagate adds one playout and the reward to id and every ancestor.
func (t *Tree) Backpropagate(id NodeID, reward float64) {
	if math.IsNaN(reward) || reward < LOSS || reward > WIN {
		panic(fmt.Sprintf("reward %v outside [%v, %v]", reward, LOSS, WIN))
	}
	for id != noParent {
		n := &t.nodes[id]
		n.playouts++
		n.wins += reward
		id = n.parent
	}
}

// Q returns the win rate of the child reached by action, from the optimized
// player's point of view.
func (t *Tree) Q(id NodeID, action game.Action) float64 {
	child, ok := t.nodes[id].children[action]
	if !ok {
		panic(fmt.Sprintf("action %v is not an expanded child", action))
	}
	c := &t.nodes[child]
	if c.playouts == 0 {
		return 0
	}
	return c.wins / float64(c.playouts)
}
