package mcgs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boardsearch/mcgs/games/tictactoe"
	"github.com/boardsearch/mcgs/mcgs"
)

func TestNewPanicsOnInvalidConfig(t *testing.T) {
	g := tictactoe.New()
	root := g.GetState(tictactoe.Board{})
	require.Panics(t, func() {
		mcgs.New[tictactoe.Board](g, root, mcgs.Config{PUCT: 0})
	})
}

func TestGetNodeIsIdempotent(t *testing.T) {
	g := tictactoe.New()
	root := g.GetState(tictactoe.Board{})
	e := mcgs.New[tictactoe.Board](g, root, mcgs.DefaultConfig())

	require.Same(t, e.Root, e.GetNode(root))
}

func TestRootInvariantsHoldAfterSearch(t *testing.T) {
	g := tictactoe.New()
	root := g.GetState(tictactoe.Board{})
	e := mcgs.New[tictactoe.Board](g, root, mcgs.Config{PUCT: 1.0, Seed: 3})

	e.Search(30)

	require.NoError(t, mcgs.Diagnose(e))
	q := e.Root.Q()
	require.GreaterOrEqual(t, q, float32(-1))
	require.LessOrEqual(t, q, float32(1))
}

func TestResultOutcomesAreZeroSum(t *testing.T) {
	g := tictactoe.New()
	root := g.GetState(tictactoe.Board{})
	e := mcgs.New[tictactoe.Board](g, root, mcgs.Config{PUCT: 1.0, Seed: 5})
	e.Search(20)

	for board, result := range walkResults(g, root) {
		_ = board
		require.EqualValues(t, 0, result[1]+result[-1])
	}
}

func walkResults(g *tictactoe.Game, root *mcgs.State[tictactoe.Board]) map[tictactoe.Board]map[int8]int8 {
	out := map[tictactoe.Board]map[int8]int8{}
	seen := map[tictactoe.Board]bool{}
	queue := []*mcgs.State[tictactoe.Board]{root}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if seen[s.Board] {
			continue
		}
		seen[s.Board] = true
		if s.Terminal {
			out[s.Board] = s.Result
			continue
		}
		for _, a := range s.LegalActions {
			queue = append(queue, g.Transition(s, a))
		}
	}
	return out
}
