package core

import "fmt"

// Cell represents a position on the game board
type Cell struct {
	Row, Col int
}

// NewCell creates a new cell with the given row and column values
func NewCell(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// FromIndex creates a cell from a board array index using row-major ordering
func FromIndex(idx, width int) Cell {
	return Cell{
		Row: idx / width,
		Col: idx % width,
	}
}

// IsValid checks if the cell is within the given bounds
func (c Cell) IsValid(width, height int) bool {
	return c.Row >= 0 && c.Row < height && c.Col >= 0 && c.Col < width
}

// ToIndex converts the cell to a board array index using row-major ordering
func (c Cell) ToIndex(width int) int {
	return c.Row*width + c.Col
}

// IsNeighborOf checks if this cell touches another cell, diagonals included
func (c Cell) IsNeighborOf(other Cell) bool {
	if c == other {
		return false
	}
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	return dr >= -1 && dr <= 1 && dc >= -1 && dc <= 1
}

// Neighbors returns the eight surrounding cells of this cell
func (c Cell) Neighbors() []Cell {
	neighbors := make([]Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			neighbors = append(neighbors, Cell{Row: c.Row + dr, Col: c.Col + dc})
		}
	}
	return neighbors
}

// ValidNeighbors returns only the neighbors that are within the given bounds
func (c Cell) ValidNeighbors(width, height int) []Cell {
	neighbors := c.Neighbors()
	valid := make([]Cell, 0, 8)

	for _, n := range neighbors {
		if n.IsValid(width, height) {
			valid = append(valid, n)
		}
	}

	return valid
}

// Less orders cells row-major, for deterministic iteration
func (c Cell) Less(other Cell) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// String returns a string representation of the cell
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
