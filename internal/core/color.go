package core

// Color is a palette index for a screen cell. The platform maps it to an
// ANSI 256-color code when rendering.
type Color uint8

// Palette shared by the game renderer and the terminal layer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorTileLight
	ColorTileDark
)

// Cell is a single screen position: a rune with foreground and background colors.
// ColorDefault means "terminal default" for either layer.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
}

// blank is the cell used by Clear.
var blank = Cell{Rune: ' '}
