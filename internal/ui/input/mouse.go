package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

func IsLeftClickJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func IsRightClickJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
}

func IsSpaceJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

func GetCursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

// CellAt converts screen coordinates to board row/col for the given tile
// size. The second return value is false when the position falls outside
// the board.
func CellAt(x, y, tileSize, width, height int) (int, int, bool) {
	if tileSize <= 0 {
		return 0, 0, false
	}
	col := x / tileSize
	row := y / tileSize
	if row < 0 || row >= height || col < 0 || col >= width {
		return 0, 0, false
	}
	return row, col, true
}
