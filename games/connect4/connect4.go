// Package connect4 implements the C4 Connect-4 6x7 game for the mcgs
// engine: gravity-based legal actions, four-in-a-row win detection over
// every 4x4 sliding window (spec §4.2).
package connect4

import (
	"sync"

	"github.com/boardsearch/mcgs/board"
	"github.com/boardsearch/mcgs/mcgs"
)

const (
	rows = 6
	cols = 7
	win  = 4
)

// Board is a 6x7 grid of cells.
type Board [rows][cols]board.Cell

// Rows implements board.Grid.
func (b Board) Rows() int { return rows }

// Cols implements board.Grid.
func (b Board) Cols() int { return cols }

// At implements board.Grid.
func (b Board) At(row, col int) board.Cell { return b[row][col] }

func (b Board) place(row, col int, v board.Cell) Board {
	next := b
	next[row][col] = v
	return next
}

// Game interns Connect-4 states by board.
type Game struct {
	mu     sync.Mutex
	states map[Board]*mcgs.State[Board]
}

// New constructs an empty-interning-table Connect-4 game.
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

// Transition applies a to s. a.Row is expected to already be the
// gravity-resolved landing row, as produced by legalActions; Transition
// does not itself resolve gravity or validate legality (spec §4.1).
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

// gameResult scans every 4x4 window of b for a four-in-a-row, and declares
// a draw when every window is full with no winner (spec §4.2).
func gameResult(b Board) (map[int8]int8, bool) {
	anyEmpty := false
	for i := 0; i <= rows-win; i++ {
		for j := 0; j <= cols-win; j++ {
			wRows, wCols, diag, anti := board.LineSums(b, i, j, win)
			for _, s := range wRows {
				if s == win || s == -win {
					return winResult(int8(sign(s))), true
				}
			}
			for _, s := range wCols {
				if s == win || s == -win {
					return winResult(int8(sign(s))), true
				}
			}
			if diag == win || diag == -win {
				return winResult(int8(sign(diag))), true
			}
			if anti == win || anti == -win {
				return winResult(int8(sign(anti))), true
			}
			if board.HasEmpty(b, i, j, win) {
				anyEmpty = true
			}
		}
	}
	if !anyEmpty {
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

func winResult(winner int8) map[int8]int8 {
	return map[int8]int8{winner: 1, -winner: -1}
}

// legalActions returns, for each non-full column in ascending order, the
// action landing on that column's lowest empty row (spec §4.2).
func legalActions(b Board) []mcgs.Action {
	var actions []mcgs.Action
	for c := 0; c < cols; c++ {
		for r := rows - 1; r >= 0; r-- {
			if b[r][c] == board.Empty {
				actions = append(actions, mcgs.Action{Row: r, Col: c})
				break
			}
		}
	}
	return actions
}
