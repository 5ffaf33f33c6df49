package core

// Color represents a foreground color for a screen cell.
// Hosts translate it: the terminal host to ANSI codes, the window host to RGBA.
type Color uint8

// Colors used by the scene and HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorWhite
	ColorGray
	ColorBrightGreen
	ColorBrightYellow
)

// String returns the color name, used in config and debug output.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorBlue:
		return "blue"
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	case ColorBrightGreen:
		return "bright-green"
	case ColorBrightYellow:
		return "bright-yellow"
	default:
		return "default"
	}
}
