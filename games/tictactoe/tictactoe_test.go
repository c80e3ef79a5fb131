package tictactoe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boardsearch/mcgs/board"
	"github.com/boardsearch/mcgs/games/tictactoe"
	"github.com/boardsearch/mcgs/mcgs"
)

// TestStateEnumerationCount is S1: starting from an empty board, the set of
// distinct states reachable by playing all legal continuations has size
// 5478.
func TestStateEnumerationCount(t *testing.T) {
	g := tictactoe.New()
	root := g.GetState(tictactoe.Board{})

	seen := map[tictactoe.Board]bool{root.Board: true}
	queue := []*mcgs.State[tictactoe.Board]{root}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, a := range s.LegalActions {
			child := g.Transition(s, a)
			if !seen[child.Board] {
				seen[child.Board] = true
				queue = append(queue, child)
			}
		}
	}
	require.Equal(t, 5478, len(seen))
}

// TestWinningMoveHasHighestQ is S3: from a position with an immediate
// winning move for +1, after search(10), the root child reached by playing
// it has the highest Q among root's children.
func TestWinningMoveHasHighestQ(t *testing.T) {
	g := tictactoe.New()
	b := tictactoe.Board{
		{board.PlayerPos, board.PlayerNeg, board.Empty},
		{board.PlayerPos, board.PlayerPos, board.PlayerNeg},
		{board.PlayerNeg, board.Empty, board.Empty},
	}
	root := g.GetState(b)

	e := mcgs.New[tictactoe.Board](g, root, mcgs.Config{PUCT: 1.0, Seed: 42})
	e.Search(10)

	winningChild := g.Transition(root, mcgs.Action{Row: 2, Col: 2})
	winningQ := e.GetNode(winningChild).Q()

	for _, a := range root.LegalActions {
		child := g.Transition(root, a)
		q := e.GetNode(child).Q()
		require.LessOrEqual(t, q, winningQ, "action %+v scored higher than the winning move", a)
	}
}

// TestBlockingMoveHasHighestQ is S4: +1 must block -1's diagonal threat by
// playing (2,2); after search(50) it is the highest-Q root child.
func TestBlockingMoveHasHighestQ(t *testing.T) {
	g := tictactoe.New()
	b := tictactoe.Board{
		{board.PlayerNeg, board.PlayerPos, board.Empty},
		{board.PlayerPos, board.PlayerNeg, board.Empty},
		{board.Empty, board.Empty, board.Empty},
	}
	root := g.GetState(b)

	e := mcgs.New[tictactoe.Board](g, root, mcgs.Config{PUCT: 1.0, Seed: 42})
	e.Search(50)

	blockingChild := g.Transition(root, mcgs.Action{Row: 2, Col: 2})
	blockingQ := e.GetNode(blockingChild).Q()

	for _, a := range root.LegalActions {
		child := g.Transition(root, a)
		q := e.GetNode(child).Q()
		require.LessOrEqual(t, q, blockingQ, "action %+v scored higher than the blocking move", a)
	}
}

// TestNoLossesForSideToMoveInForcedWin is S5: from an immediate winning
// position, after sufficient search, the root never tallies a loss.
func TestNoLossesForSideToMoveInForcedWin(t *testing.T) {
	g := tictactoe.New()
	b := tictactoe.Board{
		{board.PlayerPos, board.PlayerPos, board.Empty},
		{board.PlayerNeg, board.PlayerNeg, board.Empty},
		{board.Empty, board.Empty, board.Empty},
	}
	root := g.GetState(b)

	e := mcgs.New[tictactoe.Board](g, root, mcgs.Config{PUCT: 1.0, Seed: 7})
	e.Search(200)

	require.EqualValues(t, 0, e.Root.Results()[-1])
}

// TestRootVisitCountsAfterRun is S6: one run() on an empty board expands
// the root and rolls out all 9 children (N = 10); a second run() adds one
// more selection path to root (N = 11).
func TestRootVisitCountsAfterRun(t *testing.T) {
	g := tictactoe.New()
	root := g.GetState(tictactoe.Board{})
	e := mcgs.New[tictactoe.Board](g, root, mcgs.Config{PUCT: 1.0, Seed: 1})

	e.Run()
	require.EqualValues(t, 10, e.Root.N())

	e.Run()
	require.EqualValues(t, 11, e.Root.N())
}
