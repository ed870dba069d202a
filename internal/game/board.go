package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gridmind/minesweeper-agent/internal/game/core"
)

// Config holds board construction parameters.
type Config struct {
	Width  int
	Height int
	Mines  int
}

// DefaultConfig returns the classic beginner board.
func DefaultConfig() Config {
	return Config{Width: 8, Height: 8, Mines: 8}
}

// Board is the game oracle: it knows where the mines are and answers
// adjacency queries. Players and agents never see the mine set directly.
type Board struct {
	width  int
	height int

	mines    core.CellSet
	flagged  core.CellSet
	revealed core.CellSet
}

// NewBoard creates a board with cfg.Mines mines placed uniformly at random
// using the supplied RNG. A nil rng falls back to a time-seeded source.
func NewBoard(cfg Config, rng *rand.Rand) (*Board, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	mines := core.NewCellSet()
	for mines.Len() < cfg.Mines {
		idx := rng.Intn(cfg.Width * cfg.Height)
		mines.Add(core.FromIndex(idx, cfg.Width))
	}

	return &Board{
		width:    cfg.Width,
		height:   cfg.Height,
		mines:    mines,
		flagged:  core.NewCellSet(),
		revealed: core.NewCellSet(),
	}, nil
}

// NewBoardWithMines creates a board with an explicit mine layout. Used by
// tests and by replays where the layout is already known.
func NewBoardWithMines(width, height int, mines core.CellSet) (*Board, error) {
	if err := validateConfig(Config{Width: width, Height: height, Mines: mines.Len()}); err != nil {
		return nil, err
	}
	for _, c := range mines.Cells() {
		if !c.IsValid(width, height) {
			return nil, fmt.Errorf("mine at %s: %w", c, core.ErrInvalidCell)
		}
	}
	return &Board{
		width:    width,
		height:   height,
		mines:    mines.Clone(),
		flagged:  core.NewCellSet(),
		revealed: core.NewCellSet(),
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("board %dx%d: %w", cfg.Width, cfg.Height, core.ErrInvalidDimension)
	}
	if cfg.Mines < 0 || cfg.Mines >= cfg.Width*cfg.Height {
		return fmt.Errorf("%d mines on %dx%d board: %w", cfg.Mines, cfg.Width, cfg.Height, core.ErrTooManyMines)
	}
	return nil
}

func (b *Board) Width() int     { return b.width }
func (b *Board) Height() int    { return b.height }
func (b *Board) MineCount() int { return b.mines.Len() }

// IsMine reports whether the cell contains a mine.
func (b *Board) IsMine(c core.Cell) bool { return b.mines.Contains(c) }

// Mines returns a copy of the mine set.
func (b *Board) Mines() core.CellSet { return b.mines.Clone() }

// AdjacentMines counts mines in the up-to-eight cells surrounding c. The
// cell itself is never counted, even if it is a mine.
func (b *Board) AdjacentMines(c core.Cell) (int, error) {
	if !c.IsValid(b.width, b.height) {
		return 0, fmt.Errorf("cell %s: %w", c, core.ErrInvalidCell)
	}
	count := 0
	for _, n := range c.ValidNeighbors(b.width, b.height) {
		if b.mines.Contains(n) {
			count++
		}
	}
	return count, nil
}

// Flag marks a cell as a suspected mine.
func (b *Board) Flag(c core.Cell) error {
	if !c.IsValid(b.width, b.height) {
		return fmt.Errorf("cell %s: %w", c, core.ErrInvalidCell)
	}
	b.flagged.Add(c)
	return nil
}

// Unflag removes a flag. Unflagging an unflagged cell is a no-op.
func (b *Board) Unflag(c core.Cell) {
	b.flagged.Remove(c)
}

// Flagged reports whether the cell carries a flag.
func (b *Board) Flagged(c core.Cell) bool { return b.flagged.Contains(c) }

// Flags returns a copy of the flagged set.
func (b *Board) Flags() core.CellSet { return b.flagged.Clone() }

// Reveal records that a cell has been uncovered. It is pure bookkeeping for
// rendering and views; hitting a mine is judged by the caller via IsMine.
func (b *Board) Reveal(c core.Cell) error {
	if !c.IsValid(b.width, b.height) {
		return fmt.Errorf("cell %s: %w", c, core.ErrInvalidCell)
	}
	b.revealed.Add(c)
	return nil
}

// FloodReveal uncovers c and, when c touches no mines, spreads to its
// neighbors transitively. The expansion stops at cells with a nonzero
// adjacency count, which are revealed but not expanded.
func (b *Board) FloodReveal(c core.Cell) error {
	if !c.IsValid(b.width, b.height) {
		return fmt.Errorf("cell %s: %w", c, core.ErrInvalidCell)
	}
	queue := []core.Cell{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if b.revealed.Contains(cur) || b.mines.Contains(cur) {
			continue
		}
		b.revealed.Add(cur)
		count, _ := b.AdjacentMines(cur)
		if count != 0 {
			continue
		}
		queue = append(queue, cur.ValidNeighbors(b.width, b.height)...)
	}
	return nil
}

// Revealed reports whether the cell has been uncovered.
func (b *Board) Revealed(c core.Cell) bool { return b.revealed.Contains(c) }

// RevealedCells returns a copy of the revealed set.
func (b *Board) RevealedCells() core.CellSet { return b.revealed.Clone() }

// Won reports whether every mine, and nothing else, is flagged.
func (b *Board) Won() bool {
	return b.flagged.Equal(b.mines)
}

// AllSafeRevealed reports whether every non-mine cell has been uncovered.
func (b *Board) AllSafeRevealed() bool {
	return b.revealed.Len() == b.width*b.height-b.mines.Len()
}
