package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/gridmind/minesweeper-agent/internal/config"
	"github.com/gridmind/minesweeper-agent/internal/game/core"
	"github.com/gridmind/minesweeper-agent/internal/runner"
	"github.com/gridmind/minesweeper-agent/internal/ui/input"
	"github.com/gridmind/minesweeper-agent/internal/ui/renderer"
)

// UI configuration functions
func ScreenWidth() int {
	return config.Get().UI.Window.Width
}

func ScreenHeight() int {
	return config.Get().UI.Window.Height
}

func TileSize() int {
	return config.Get().UI.Game.TileSize
}

func MoveInterval() int {
	return config.Get().UI.Game.MoveInterval
}

// UIGame animates the agent playing a game, one move every MoveInterval
// ticks. Space pauses and resumes the playback.
type UIGame struct {
	runner        *runner.Runner
	boardRenderer *renderer.BoardRenderer
	defaultFont   font.Face

	moveTimer int
	paused    bool
}

// NewUIGame creates a new Ebitengine game instance.
func NewUIGame(r *runner.Runner) (*UIGame, error) {
	if err := r.Start(); err != nil {
		return nil, err
	}
	g := &UIGame{
		runner:      r,
		defaultFont: basicfont.Face7x13,
	}

	g.boardRenderer = renderer.NewBoardRenderer(TileSize(), g.defaultFont)

	return g, nil
}

// Update proceeds the game state.
func (g *UIGame) Update() error {
	if input.IsSpaceJustPressed() {
		g.paused = !g.paused
	}
	if g.runner.Phase().IsTerminal() {
		return nil
	}

	if err := g.handleMouse(); err != nil {
		return err
	}
	if g.paused {
		return nil
	}

	g.moveTimer++
	if g.moveTimer < MoveInterval() {
		return nil
	}
	g.moveTimer = 0

	if _, err := g.runner.Step(); err != nil {
		return err
	}
	return nil
}

// handleMouse lets the user play alongside the agent: left click reveals a
// covered cell, right click toggles a flag. Most useful while paused.
func (g *UIGame) handleMouse() error {
	board := g.runner.Board()
	x, y := input.GetCursorPosition()
	row, col, ok := input.CellAt(x, y, TileSize(), board.Width(), board.Height())
	if !ok {
		return nil
	}
	cell := core.NewCell(row, col)

	if input.IsLeftClickJustPressed() && !board.Revealed(cell) && !board.Flagged(cell) {
		if _, err := g.runner.PlayCell(cell); err != nil {
			return err
		}
	}
	if input.IsRightClickJustPressed() && !board.Revealed(cell) {
		if board.Flagged(cell) {
			board.Unflag(cell)
		} else if err := board.Flag(cell); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the game screen.
func (g *UIGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 50, G: 50, B: 50, A: 255}) // Dark gray background

	if g.boardRenderer != nil {
		g.boardRenderer.Draw(screen, g.runner.Board(), g.runner.Agent())
	}

	statusY := g.runner.Board().Height()*TileSize() + 5
	phaseStr := fmt.Sprintf("Phase: %s  Moves: %d", g.runner.Phase(), g.runner.Moves())
	ebitenutil.DebugPrintAt(screen, phaseStr, 5, statusY)

	agent := g.runner.Agent()
	knowledgeStr := fmt.Sprintf("Safes: %d  Mines: %d  Sentences: %d",
		agent.Safes().Len(), agent.Mines().Len(), agent.KnowledgeSize())
	ebitenutil.DebugPrintAt(screen, knowledgeStr, 5, statusY+20)

	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED (space to resume)", 5, statusY+40)
	} else if g.runner.Phase().IsTerminal() {
		res := g.runner.Result()
		resultStr := fmt.Sprintf("Game %s in %d moves", res.Outcome, res.Moves)
		ebitenutil.DebugPrintAt(screen, resultStr, 5, statusY+40)
	}
}

// Layout defines the Ebitengine screen size.
func (g *UIGame) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth(), ScreenHeight()
}
