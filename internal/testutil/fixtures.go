package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/game/core"
)

// CreateTestBoard creates a board with an explicit mine layout
func CreateTestBoard(t *testing.T, width, height int, mines ...core.Cell) *game.Board {
	t.Helper()
	board, err := game.NewBoardWithMines(width, height, core.NewCellSet(mines...))
	require.NoError(t, err)
	return board
}

// CornerMineBoard creates a 3x3 board with a single mine at (0,0).
// Every cell away from the corner is deducible without guessing.
func CornerMineBoard(t *testing.T) *game.Board {
	t.Helper()
	return CreateTestBoard(t, 3, 3, core.NewCell(0, 0))
}

// MinelessBoard creates a board with no mines at all
func MinelessBoard(t *testing.T, width, height int) *game.Board {
	t.Helper()
	return CreateTestBoard(t, width, height)
}
