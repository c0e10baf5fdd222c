package core

// Color represents a foreground color for a screen glyph.
// The platform maps these to ANSI 256-color codes.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorBrightGreen
	ColorBrightWhite
	ColorGray
)
