package game

import (
	"fmt"
	"strings"

	"github.com/gridmind/minesweeper-agent/internal/game/core"
)

// This file contains the ANSI text rendering for the board.

// ANSI color codes for terminal board rendering
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

// Classic minesweeper digit palette, indexed by adjacency count 1..8.
var countColors = []string{
	"", ColorBlue, ColorGreen, ColorRed, ColorPurple,
	ColorYellow, ColorCyan, ColorWhite, ColorGray,
}

// String renders the board as seen from outside: flags, revealed counts and
// covered cells. Mines are only drawn once revealed (i.e. after a loss).
func (b *Board) String() string {
	const (
		CoveredSymbol = "·"
		FlagSymbol    = "⚑"
		MineSymbol    = "✸"
	)

	// Each cell takes ~2 chars plus ANSI codes; headers and legend on top.
	estimatedSize := (b.width*14+8)*(b.height+3) + 80

	var sb strings.Builder
	sb.Grow(estimatedSize)

	// Header row
	sb.WriteString("   ")
	for col := 0; col < b.width; col++ {
		fmt.Fprintf(&sb, "%2d", col)
	}
	sb.WriteString("\n")

	for row := 0; row < b.height; row++ {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := 0; col < b.width; col++ {
			c := core.NewCell(row, col)
			sb.WriteString(" ")
			switch {
			case b.flagged.Contains(c):
				sb.WriteString(ColorRed)
				sb.WriteString(FlagSymbol)
			case !b.revealed.Contains(c):
				sb.WriteString(ColorGray)
				sb.WriteString(CoveredSymbol)
			case b.mines.Contains(c):
				sb.WriteString(ColorRed)
				sb.WriteString(MineSymbol)
			default:
				count, _ := b.AdjacentMines(c)
				if count == 0 {
					sb.WriteString(ColorGray)
					sb.WriteString(" ")
				} else {
					sb.WriteString(countColors[count])
					fmt.Fprintf(&sb, "%d", count)
				}
			}
			sb.WriteString(ColorReset)
		}
		sb.WriteString("\n")
	}

	// Legend
	sb.WriteString("\n")
	sb.WriteString(CoveredSymbol)
	sb.WriteString("=covered ")
	sb.WriteString(FlagSymbol)
	sb.WriteString("=flag ")
	sb.WriteString(MineSymbol)
	sb.WriteString("=mine 1-8=adjacent mines\n")

	return sb.String()
}
