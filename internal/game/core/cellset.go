package core

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// CellSet is an unordered set of cells with structural equality semantics.
type CellSet map[Cell]struct{}

// NewCellSet creates a set containing the given cells
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts a cell into the set
func (s CellSet) Add(c Cell) {
	s[c] = struct{}{}
}

// Remove deletes a cell from the set; removing an absent cell is a no-op
func (s CellSet) Remove(c Cell) {
	delete(s, c)
}

// Contains reports whether the cell is a member of the set
func (s CellSet) Contains(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of cells in the set
func (s CellSet) Len() int {
	return len(s)
}

// IsEmpty reports whether the set has no cells
func (s CellSet) IsEmpty() bool {
	return len(s) == 0
}

// Clone returns an independent copy of the set
func (s CellSet) Clone() CellSet {
	return maps.Clone(s)
}

// Equal reports whether both sets contain exactly the same cells
func (s CellSet) Equal(other CellSet) bool {
	if len(s) != len(other) {
		return false
	}
	for c := range s {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every cell of s is also in other
func (s CellSet) SubsetOf(other CellSet) bool {
	if len(s) > len(other) {
		return false
	}
	for c := range s {
		if !other.Contains(c) {
			return false
		}
	}
	return true
}

// Difference returns the cells of s that are not in other
func (s CellSet) Difference(other CellSet) CellSet {
	diff := make(CellSet)
	for c := range s {
		if !other.Contains(c) {
			diff.Add(c)
		}
	}
	return diff
}

// Cells returns the members in unspecified order
func (s CellSet) Cells() []Cell {
	return maps.Keys(s)
}

// Sorted returns the members in row-major order
func (s CellSet) Sorted() []Cell {
	cells := s.Cells()
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
	return cells
}

// String returns a stable string representation, e.g. "{(0,0) (0,1)}"
func (s CellSet) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, c := range s.Sorted() {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteString("}")
	return sb.String()
}
