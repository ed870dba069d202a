package common

import (
	"image/color"
)

// CountColors defines the classic digit color for each adjacency count
var CountColors = map[int]color.Color{
	1: color.RGBA{60, 100, 220, 255},  // Blue
	2: color.RGBA{50, 160, 50, 255},   // Green
	3: color.RGBA{210, 50, 50, 255},   // Red
	4: color.RGBA{110, 50, 160, 255},  // Purple
	5: color.RGBA{150, 70, 40, 255},   // Maroon
	6: color.RGBA{50, 160, 160, 255},  // Teal
	7: color.RGBA{30, 30, 30, 255},    // Near-black
	8: color.RGBA{120, 120, 120, 255}, // Gray
}

// Tile colors
var (
	CoveredTileColor   = color.RGBA{170, 170, 170, 255}
	RevealedTileColor  = color.RGBA{220, 220, 220, 255}
	MineTileColor      = color.RGBA{200, 60, 60, 255}
	FlaggedTileColor   = color.RGBA{230, 150, 60, 255}
	KnownSafeTintColor = color.RGBA{120, 200, 120, 255}
	KnownMineTintColor = color.RGBA{220, 120, 120, 255}
	CountFallbackColor = color.Black
)

// UI colors
var (
	BackgroundColor = color.Black
	GridLineColor   = color.RGBA{50, 50, 50, 255}
)

// CountColor returns the digit color for an adjacency count, falling back
// for counts outside 1..8.
func CountColor(count int) color.Color {
	if c, ok := CountColors[count]; ok {
		return c
	}
	return CountFallbackColor
}
