package mcgs

import (
	"sync"

	"github.com/pkg/errors"
	distrand "golang.org/x/exp/rand"
)

// Config holds the engine's tunables: the PUCT exploration constant, an
// optional PRNG seed for reproducible rollouts, and an optional prior
// source. The zero value is not valid — use DefaultConfig as a base.
type Config struct {
	// PUCT is c_puct in the selection formula (spec §4.4.4). Must be > 0.
	PUCT float32
	// Seed seeds the rollout PRNG. Zero means "unseeded": the engine picks
	// a fixed default seed of 1 so runs stay reproducible unless the
	// caller asks otherwise.
	Seed uint64
	// Prior optionally supplies P(s,a) for selection. Nil means the base
	// formula's implicit constant prior of 1.0.
	Prior PriorSource
}

// DefaultConfig returns the engine's baseline configuration: c_puct = 1.0,
// unseeded (deterministic default seed), uniform prior.
func DefaultConfig() Config {
	return Config{PUCT: 1.0}
}

// IsValid reports whether c is usable to construct an Engine.
func (c Config) IsValid() bool {
	return c.PUCT > 0
}

// Engine is a transposition-aware Monte-Carlo Graph Search engine over
// board type B. It interns one Node per distinct game state reachable from
// Root and runs single-threaded select/expand/rollout/backprop passes
// (spec §4.4, §5).
type Engine[B comparable] struct {
	mu sync.Mutex

	game  Game[B]
	nodes map[B]*Node[B]
	rng   *distrand.Rand
	conf  Config

	Root *Node[B]
}

// New constructs an Engine rooted at rootState. It panics if conf is
// invalid — an invalid Config is a precondition violation (spec §7), not a
// recoverable error.
func New[B comparable](game Game[B], rootState *State[B], conf Config) *Engine[B] {
	if !conf.IsValid() {
		panic(errors.Errorf("mcgs: invalid config: %+v", conf))
	}
	seed := conf.Seed
	if seed == 0 {
		seed = 1
	}
	e := &Engine[B]{
		game:  game,
		nodes: make(map[B]*Node[B]),
		rng:   distrand.New(distrand.NewSource(seed)),
		conf:  conf,
	}
	e.Root = e.GetNode(rootState)
	return e
}

// GetNode returns the interned Node for s.Board, creating it on first
// reference (spec §4.3: "the engine owns node interning").
func (e *Engine[B]) GetNode(s *State[B]) *Node[B] {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n, ok := e.nodes[s.Board]; ok {
		return n
	}
	n := newNode(s)
	e.nodes[s.Board] = n
	return n
}

// getNodeByBoard panics if b has never been interned: a selection or
// backprop step reaching an unknown board is a broken invariant (spec §7).
func (e *Engine[B]) getNodeByBoard(b B) *Node[B] {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.nodes[b]
	if !ok {
		panic(errors.New("mcgs: selection reached a board with no interned node"))
	}
	return n
}

// Run executes one select/expand/rollout/backprop pass from Root (spec
// §4.4.1-§4.4.6).
func (e *Engine[B]) Run() {
	path := e.selectPath()
	frontier := path[len(path)-1]
	if frontier.IsTerminal() {
		e.backprop(path, frontier.state.Result)
		return
	}
	e.expand(path, frontier)
}

// Search runs Run n times.
func (e *Engine[B]) Search(n uint) {
	for i := uint(0); i < n; i++ {
		e.Run()
	}
}

// selectPath walks from Root by PUCT selection, incrementing the traversed
// edge's visit count at each step, until it reaches a node that is either
// unexpanded or terminal (spec §4.4.2).
func (e *Engine[B]) selectPath() []*Node[B] {
	path := []*Node[B]{e.Root}
	cur := e.Root
	for cur.IsExpanded() && !cur.IsTerminal() {
		childBoard := e.bestChild(cur)
		cur.incrementEdge(childBoard)
		child := e.getNodeByBoard(childBoard)
		path = append(path, child)
		cur = child
	}
	return path
}

// expand materialises u's children: every legal action's resulting state is
// interned, its edge visit count set to 1 (spec §9's set-vs-insert-if-absent
// resolution), and every newly-discovered (never-before-visited) child is
// immediately rolled out and backpropagated along path+[child] (spec
// §4.4.2-§4.4.3, and SPEC_FULL.md §4.4's OQ-1 resolution).
func (e *Engine[B]) expand(path []*Node[B], u *Node[B]) {
	state := u.state
	var fresh []*Node[B]
	for _, a := range state.LegalActions {
		childState := e.game.Transition(state, a)
		child := e.GetNode(childState)
		u.setEdge(childState.Board)
		if child.N() == 0 {
			fresh = append(fresh, child)
		}
	}
	u.setExpanded()

	for _, child := range fresh {
		childPath := append(append([]*Node[B]{}, path...), child)
		result := e.rollout(child)
		e.backprop(childPath, result)
	}
}

// rollout plays uniformly random legal actions from n's state until the
// game ends, returning the terminal result (spec §4.4.3, C7).
func (e *Engine[B]) rollout(n *Node[B]) map[int8]int8 {
	state := n.state
	for !state.Terminal {
		a := state.LegalActions[e.rng.Intn(len(state.LegalActions))]
		state = e.game.Transition(state, a)
	}
	return state.Result
}

// backprop applies the negamax update along path using result (spec
// §4.4.4). reward starts as result[path's last node's player_to_move] and
// flips sign at every step moving back toward the root. At each node n, N
// and Q are recomputed in full from n's current edge_visits table (S = Σ
// child.Q * edge_visits, N = 1 + Σ edge_visits, Q = -(reward+S)/N) rather
// than incrementally averaged — children's edges already reflect this
// pass's selection increments or this expansion's fresh edges by the time
// backprop runs over them.
//
// Every child's Q is read through Node.Q(), which takes and releases that
// child's own lock, before n's lock is acquired to write N/Q/results — no
// two node locks are ever held at once (spec §5).
func (e *Engine[B]) backprop(path []*Node[B], result map[int8]int8) {
	reward := result[path[len(path)-1].state.PlayerToMove]

	for i := len(path) - 1; i >= 0; i-- {
		n := path[i]
		edgeVisits := n.EdgeVisits()

		var s float32
		var edgeSum uint64
		for childBoard, visits := range edgeVisits {
			child := e.getNodeByBoard(childBoard)
			s += child.Q() * float32(visits)
			edgeSum += uint64(visits)
		}

		n.mu.Lock()
		n.n = 1 + edgeSum
		n.q = -(float32(reward) + s) / float32(n.n)
		n.results[reward]++
		n.mu.Unlock()

		reward = -reward
	}
}

// bestChild returns the child board maximising puctScore over u's edges,
// breaking ties in favour of the first-encountered edge (spec §4.4.4). It
// panics if u has no edges — selecting through an unexpanded node is a
// caller error.
func (e *Engine[B]) bestChild(u *Node[B]) B {
	u.mu.Lock()
	order := append([]B{}, u.edgeOrder...)
	edgeVisits := make(map[B]uint32, len(u.edgeVisits))
	for k, v := range u.edgeVisits {
		edgeVisits[k] = v
	}
	parentN := u.n
	u.mu.Unlock()

	if len(order) == 0 {
		panic(errors.New("mcgs: bestChild called on a node with no edges"))
	}

	var (
		best      B
		bestScore float32
		haveBest  bool
	)
	for i, childBoard := range order {
		child := e.getNodeByBoard(childBoard)
		childQ := child.Q()
		var prior float32 = 1
		if e.conf.Prior != nil {
			prior = e.conf.Prior.Prior(i, len(order))
		}
		score := puctScore(parentN, childQ, edgeVisits[childBoard], e.conf.PUCT, prior)
		if !haveBest || score > bestScore {
			best = childBoard
			bestScore = score
			haveBest = true
		}
	}
	return best
}
