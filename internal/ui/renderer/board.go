package renderer

import (
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"

	"github.com/gridmind/minesweeper-agent/internal/common"
	"github.com/gridmind/minesweeper-agent/internal/game"
	"github.com/gridmind/minesweeper-agent/internal/game/core"
	"github.com/gridmind/minesweeper-agent/internal/solver"
)

// -----------------------------------------------------------------------------
// Renderer
// -----------------------------------------------------------------------------

type BoardRenderer struct {
	tileSize    int
	defaultFont font.Face
}

// NewBoardRenderer returns a renderer ready to use.
func NewBoardRenderer(tileSize int, f font.Face) *BoardRenderer {
	return &BoardRenderer{tileSize: tileSize, defaultFont: f}
}

// Draw renders the board on the supplied Ebiten screen. When an agent is
// given, its deductions tint covered cells (green for proven safe, red for
// proven mines).
func (br *BoardRenderer) Draw(screen *ebiten.Image, board *game.Board, agent *solver.Agent) {
	if board == nil {
		return
	}

	for row := 0; row < board.Height(); row++ {
		for col := 0; col < board.Width(); col++ {
			c := core.NewCell(row, col)

			screenX := float64(col * br.tileSize)
			screenY := float64(row * br.tileSize)

			cell := ebiten.NewImage(br.tileSize, br.tileSize)

			// -----------------------------------------------------------------
			// Background pass
			// -----------------------------------------------------------------
			switch {
			case board.Revealed(c) && board.IsMine(c):
				cell.Fill(common.MineTileColor)

			case board.Revealed(c):
				cell.Fill(common.RevealedTileColor)

			case board.Flagged(c):
				cell.Fill(common.FlaggedTileColor)

			default: // covered
				cell.Fill(common.CoveredTileColor)

				// agent knowledge overlay (shaded inner square)
				if agent != nil && (agent.KnownSafe(c) || agent.KnownMine(c)) {
					tint := common.KnownSafeTintColor
					if agent.KnownMine(c) {
						tint = common.KnownMineTintColor
					}
					m := br.tileSize / 3
					sq := ebiten.NewImage(m, m)
					sq.Fill(tint)
					op := &ebiten.DrawImageOptions{}
					op.GeoM.Translate(float64(br.tileSize-m)/2, float64(br.tileSize-m)/2)
					cell.DrawImage(sq, op)
				}
			}

			// -----------------------------------------------------------------
			// Blit cell to screen
			// -----------------------------------------------------------------
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(screenX, screenY)
			screen.DrawImage(cell, op)

			// -----------------------------------------------------------------
			// Adjacency count (revealed, non-mine, nonzero only)
			// -----------------------------------------------------------------
			if board.Revealed(c) && !board.IsMine(c) && br.defaultFont != nil {
				count, err := board.AdjacentMines(c)
				if err != nil || count == 0 {
					continue
				}
				countStr := strconv.Itoa(count)

				// text bounds in pixels
				b := text.BoundString(br.defaultFont, countStr)
				textW := b.Max.X - b.Min.X
				textH := b.Max.Y - b.Min.Y

				x := int(screenX) + (br.tileSize-textW)/2
				y := int(screenY) + (br.tileSize+textH)/2

				text.Draw(screen, countStr, br.defaultFont, x, y, common.CountColor(count))
			}
		}
	}
}
