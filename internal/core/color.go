package core

// Color is a hex color string ("#rrggbb") used for sprites and screen cells.
// The empty color means transparent.
type Color string

// Predefined colors for game elements.
const (
	ColorNone   Color = ""
	ColorWhite  Color = "#ffffff"
	ColorBlack  Color = "#000000"
	ColorRed    Color = "#ff0000"
	ColorGray   Color = "#808080"
	ColorPurple Color = "#800080"
)

// IsTransparent reports whether the color draws nothing.
func (c Color) IsTransparent() bool {
	return c == ColorNone
}
