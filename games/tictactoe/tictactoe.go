// Package tictactoe implements the C4 Tic-Tac-Toe 3x3 game for the mcgs
// engine: standard rules, a win is any full row, column, or diagonal
// belonging to one player, a draw is a full board with no winner.
package tictactoe

import (
	"sync"

	"github.com/boardsearch/mcgs/board"
	"github.com/boardsearch/mcgs/mcgs"
)

// Board is a 3x3 grid of cells, directly usable as a map key so states can
// be interned by value (spec §4.1).
type Board [3][3]board.Cell

// Rows implements board.Grid.
func (b Board) Rows() int { return 3 }

// Cols implements board.Grid.
func (b Board) Cols() int { return 3 }

// At implements board.Grid.
func (b Board) At(row, col int) board.Cell { return b[row][col] }

func (b Board) place(row, col int, v board.Cell) Board {
	next := b
	next[row][col] = v
	return next
}

// Game interns Tic-Tac-Toe states by board (spec §4.1: "the game owns state
// interning").
type Game struct {
	mu     sync.Mutex
	states map[Board]*mcgs.State[Board]
}

// New constructs an empty-interning-table Tic-Tac-Toe game.
func New() *Game {
	return &Game{states: make(map[Board]*mcgs.State[Board])}
}

// GetState returns the interned State for b, computing it on first
// reference.
func (g *Game) GetState(b Board) *mcgs.State[Board] {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.states[b]; ok {
		return s
	}
	s := newState(b)
	g.states[b] = s
	return s
}

// Transition applies a to s and returns the (possibly newly interned)
// resulting State. Transition does not validate that a is legal; callers
// must only pass actions drawn from s.LegalActions (spec §4.1).
func (g *Game) Transition(s *mcgs.State[Board], a mcgs.Action) *mcgs.State[Board] {
	next := s.Board.place(a.Row, a.Col, board.Cell(s.PlayerToMove))
	return g.GetState(next)
}

func newState(b Board) *mcgs.State[Board] {
	result, terminal := gameResult(b)
	s := &mcgs.State[Board]{
		Board:        b,
		PlayerToMove: board.PlayerToMove(b),
		Terminal:     terminal,
		Result:       result,
	}
	if !terminal {
		s.LegalActions = legalActions(b)
	}
	return s
}

// gameResult checks every row, column, and both diagonals for a sum of +3
// or -3 (spec §4.2), and reports a draw when the board is full with no
// winner.
func gameResult(b Board) (map[int8]int8, bool) {
	rows, cols, diag, anti := board.LineSums(b, 0, 0, 3)
	for _, s := range rows {
		if s == 3 || s == -3 {
			return win(int8(sign(s))), true
		}
	}
	for _, s := range cols {
		if s == 3 || s == -3 {
			return win(int8(sign(s))), true
		}
	}
	if diag == 3 || diag == -3 {
		return win(int8(sign(diag))), true
	}
	if anti == 3 || anti == -3 {
		return win(int8(sign(anti))), true
	}
	if !board.HasEmpty(b, 0, 0, 3) {
		return map[int8]int8{-1: 0, 1: 0}, true
	}
	return nil, false
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	return -1
}

func win(winner int8) map[int8]int8 {
	return map[int8]int8{winner: 1, -winner: -1}
}

func legalActions(b Board) []mcgs.Action {
	var actions []mcgs.Action
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if b[r][c] == board.Empty {
				actions = append(actions, mcgs.Action{Row: r, Col: c})
			}
		}
	}
	return actions
}
