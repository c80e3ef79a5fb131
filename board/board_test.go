package board_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/boardsearch/mcgs/board"
)

type fakeGrid [][]board.Cell

func (g fakeGrid) Rows() int                  { return len(g) }
func (g fakeGrid) Cols() int                  { return len(g[0]) }
func (g fakeGrid) At(row, col int) board.Cell { return g[row][col] }

func TestLineSumsWinningRow(t *testing.T) {
	g := fakeGrid{
		{board.PlayerPos, board.PlayerPos, board.PlayerPos},
		{board.Empty, board.PlayerNeg, board.Empty},
		{board.PlayerNeg, board.Empty, board.Empty},
	}
	rows, cols, diag, anti := board.LineSums(g, 0, 0, 3)
	require.Equal(t, []int{3, -1, -1}, rows)
	require.Equal(t, []int{0, 0, 1}, cols)
	require.Equal(t, 0, diag)
	require.Equal(t, -1, anti)
}

func TestHasEmpty(t *testing.T) {
	full := fakeGrid{
		{board.PlayerPos, board.PlayerNeg},
		{board.PlayerNeg, board.PlayerPos},
	}
	require.False(t, board.HasEmpty(full, 0, 0, 2))

	withGap := fakeGrid{
		{board.PlayerPos, board.Empty},
		{board.PlayerNeg, board.PlayerPos},
	}
	require.True(t, board.HasEmpty(withGap, 0, 0, 2))
}

func TestPlayerToMove(t *testing.T) {
	empty := fakeGrid{{board.Empty, board.Empty}, {board.Empty, board.Empty}}
	require.Equal(t, int8(board.PlayerPos), board.PlayerToMove(empty))

	onePlaced := fakeGrid{{board.PlayerPos, board.Empty}, {board.Empty, board.Empty}}
	require.Equal(t, int8(board.PlayerNeg), board.PlayerToMove(onePlaced))

	balanced := fakeGrid{{board.PlayerPos, board.PlayerNeg}, {board.Empty, board.Empty}}
	require.Equal(t, int8(board.PlayerPos), board.PlayerToMove(balanced))
}
