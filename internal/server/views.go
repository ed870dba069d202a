package server

import (
	"github.com/gridmind/minesweeper-agent/internal/game/core"
	"github.com/gridmind/minesweeper-agent/internal/runner"
)

// CellView is the per-cell slice of a game view: what the board shows plus
// what the agent has deduced about the cell.
type CellView struct {
	Revealed  bool `json:"revealed"`
	Count     int  `json:"count"`
	Flagged   bool `json:"flagged,omitempty"`
	KnownSafe bool `json:"known_safe,omitempty"`
	KnownMine bool `json:"known_mine,omitempty"`
}

// GameView is the JSON representation of a game returned by the API.
type GameView struct {
	ID            string         `json:"id"`
	Phase         string         `json:"phase"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	Mines         int            `json:"mines"`
	Moves         int            `json:"moves"`
	KnowledgeSize int            `json:"knowledge_size"`
	Grid          [][]CellView   `json:"grid"`
	Result        *runner.Result `json:"result,omitempty"`
}

// newGameView snapshots a game. The caller holds the instance lock.
func newGameView(g *gameInstance) GameView {
	board := g.runner.Board()
	agent := g.runner.Agent()

	grid := make([][]CellView, board.Height())
	for row := 0; row < board.Height(); row++ {
		grid[row] = make([]CellView, board.Width())
		for col := 0; col < board.Width(); col++ {
			cell := core.NewCell(row, col)
			cv := CellView{
				Revealed:  board.Revealed(cell),
				Flagged:   board.Flagged(cell),
				KnownSafe: agent.KnownSafe(cell),
				KnownMine: agent.KnownMine(cell),
			}
			if cv.Revealed && !board.IsMine(cell) {
				count, _ := board.AdjacentMines(cell)
				cv.Count = count
			}
			grid[row][col] = cv
		}
	}

	view := GameView{
		ID:            g.id,
		Phase:         g.runner.Phase().String(),
		Width:         board.Width(),
		Height:        board.Height(),
		Mines:         board.MineCount(),
		Moves:         g.runner.Moves(),
		KnowledgeSize: agent.KnowledgeSize(),
		Grid:          grid,
	}
	if g.runner.Phase().IsTerminal() {
		res := g.runner.Result()
		view.Result = &res
	}
	return view
}
