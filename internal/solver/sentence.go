// Package solver implements a knowledge-based Minesweeper agent. The agent
// accumulates logical sentences of the form "exactly count of these cells are
// mines" and derives certain facts from them by subset inference.
package solver

import (
	"fmt"

	"github.com/gridmind/minesweeper-agent/internal/game/core"
)

// Sentence is a logical statement about the board: exactly Count of the cells
// in Cells are mines. Invariant: 0 <= Count <= Cells.Len().
type Sentence struct {
	Cells core.CellSet
	Count int
}

// NewSentence creates a sentence over a copy of the given cells
func NewSentence(cells core.CellSet, count int) *Sentence {
	return &Sentence{Cells: cells.Clone(), Count: count}
}

// KnownMines returns all cells of the sentence if every one of them must be a
// mine, otherwise an empty set. An empty zero-count sentence carries no
// information and yields no mines.
func (s *Sentence) KnownMines() core.CellSet {
	if s.Count != 0 && s.Count == s.Cells.Len() {
		return s.Cells.Clone()
	}
	return core.NewCellSet()
}

// KnownSafes returns all cells of the sentence if none of them can be a mine,
// otherwise an empty set.
func (s *Sentence) KnownSafes() core.CellSet {
	if s.Count == 0 {
		return s.Cells.Clone()
	}
	return core.NewCellSet()
}

// MarkMine records that cell is a mine: if the cell is part of the sentence it
// is removed and the count drops by one. No-op if the cell is not a member.
func (s *Sentence) MarkMine(cell core.Cell) {
	if s.Cells.Contains(cell) {
		s.Cells.Remove(cell)
		s.Count--
	}
}

// MarkSafe records that cell is safe: if the cell is part of the sentence it
// is removed, count unchanged. No-op if the cell is not a member.
func (s *Sentence) MarkSafe(cell core.Cell) {
	s.Cells.Remove(cell)
}

// Equal reports whether both sentences constrain the same cells to the same count
func (s *Sentence) Equal(other *Sentence) bool {
	return s.Count == other.Count && s.Cells.Equal(other.Cells)
}

// IsInert reports whether the sentence carries no information
func (s *Sentence) IsInert() bool {
	return s.Cells.IsEmpty() && s.Count == 0
}

// Valid reports whether the count invariant holds
func (s *Sentence) Valid() bool {
	return s.Count >= 0 && s.Count <= s.Cells.Len()
}

// Key returns a canonical representation used for deduplication
func (s *Sentence) Key() string {
	return s.String()
}

// String renders the sentence as "{(r,c) ...} = count"
func (s *Sentence) String() string {
	return fmt.Sprintf("%s = %d", s.Cells, s.Count)
}
