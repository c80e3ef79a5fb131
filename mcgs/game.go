// Package mcgs implements a transposition-aware Monte-Carlo Graph Search
// engine: nodes are interned by game state rather than by path, so distinct
// action sequences reaching the same board share one node, and visit
// counts are attributed to the parent->child edge that was traversed rather
// than to the child node alone.
package mcgs

// Action is a move that places the mover's piece at (Row, Col). Both
// Tic-Tac-Toe and Connect-4 express their legal actions this way — for
// Connect-4, Row is the gravity-resolved landing row for the chosen column.
type Action struct {
	Row, Col int
}

// State is an immutable, interned value object: a board, whose turn it is,
// whether the game has ended here, the per-player outcome if it has, and
// the legal continuations otherwise (spec §3). B is the concrete,
// comparable board type a Game implementation interns states by.
type State[B comparable] struct {
	Board        B
	PlayerToMove int8
	Terminal     bool
	// Result maps each player (+1, -1) to their outcome (-1, 0, +1) and is
	// nil unless Terminal.
	Result map[int8]int8
	// LegalActions is empty iff Terminal.
	LegalActions []Action
}

// Game is the contract the search engine is parameterised over: it interns
// boards into States (idempotently) and advances a State by an Action into
// the resulting, possibly newly-interned, State. Transition does not
// validate that a is legal; callers must only ever pass actions drawn from
// state.LegalActions (spec §4.1).
type Game[B comparable] interface {
	GetState(b B) *State[B]
	Transition(s *State[B], a Action) *State[B]
}
