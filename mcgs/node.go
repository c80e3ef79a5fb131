package mcgs

import (
	"sync"

	"github.com/pkg/errors"
)

// Node is the per-state search node (spec §4.3): a visit count N, a value
// estimate Q from the perspective of the player who moved into this state
// (the opponent of state.PlayerToMove), per-edge visit counts
// keyed by child board, and outcome tallies. One Node exists per interned
// State, created on demand by the owning Engine. Mutation happens only
// through short, scoped acquisitions of the per-node mutex — the same
// discipline mcts.Node uses in the teacher this engine is grounded on,
// carried forward even though the engine itself runs single-threaded
// (spec §5).
type Node[B comparable] struct {
	mu sync.Mutex

	state      *State[B]
	isExpanded bool

	n uint64
	q float32

	edgeOrder  []B
	edgeVisits map[B]uint32
	results    map[int8]uint64
}

func newNode[B comparable](s *State[B]) *Node[B] {
	return &Node[B]{
		state:      s,
		edgeVisits: make(map[B]uint32),
		results:    map[int8]uint64{-1: 0, 0: 0, 1: 0},
	}
}

// State returns the node's underlying interned state. States are immutable,
// so this is safe to call without locking.
func (n *Node[B]) State() *State[B] { return n.state }

// N returns the node's visit count.
func (n *Node[B]) N() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.n
}

// Q returns the node's value estimate, from the perspective of the player
// who moved into this state (the opponent of state.PlayerToMove), bounded
// in [-1, +1] once visited.
func (n *Node[B]) Q() float32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.q
}

// IsExpanded reports whether the node's children have been materialised.
func (n *Node[B]) IsExpanded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.isExpanded
}

// IsTerminal mirrors state.Terminal. The underlying state never changes, so
// this needs no lock.
func (n *Node[B]) IsTerminal() bool { return n.state.Terminal }

// Results returns a snapshot of the reward -> tally map.
func (n *Node[B]) Results() map[int8]uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[int8]uint64, len(n.results))
	for k, v := range n.results {
		out[k] = v
	}
	return out
}

// EdgeVisits returns a snapshot of the edge-visit table, keyed by child
// board.
func (n *Node[B]) EdgeVisits() map[B]uint32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[B]uint32, len(n.edgeVisits))
	for k, v := range n.edgeVisits {
		out[k] = v
	}
	return out
}

// setEdge sets edge_visits[child] = 1 unconditionally, per the spec §9
// resolution of the set-vs-insert-if-absent ambiguity: when expanding
// produces a child that transposes into an already-known sibling, the
// fresh edge still starts at 1, overwriting whatever visit count that edge
// held from a previous expansion through a different action.
func (n *Node[B]) setEdge(child B) {
	n.mu.Lock()
	if _, ok := n.edgeVisits[child]; !ok {
		n.edgeOrder = append(n.edgeOrder, child)
	}
	n.edgeVisits[child] = 1
	n.mu.Unlock()
}

// incrementEdge increments edge_visits[child] by one during selection.
// child must already be a key — anything else is the "missing edge-visit
// entry during selection" fatal case from spec §7.
func (n *Node[B]) incrementEdge(child B) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.edgeVisits[child]; !ok {
		panic(errors.New("mcgs: incrementEdge on an unknown child edge"))
	}
	n.edgeVisits[child]++
}

func (n *Node[B]) setExpanded() {
	n.mu.Lock()
	n.isExpanded = true
	n.mu.Unlock()
}
