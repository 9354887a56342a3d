package draw

import "strconv"

// Color is an xterm 256-color palette index. ColorNone marks an empty pixel.
type Color uint8

const (
	ColorNone    Color = 0
	ColorWhite   Color = 15
	ColorGray    Color = 244
	ColorRed     Color = 196
	ColorOrange  Color = 208
	ColorYellow  Color = 226
	ColorGold    Color = 220
	ColorGreen   Color = 46
	ColorCyan    Color = 51
	ColorBlue    Color = 39
	ColorMagenta Color = 201
	ColorPink    Color = 204
	ColorDarkRed Color = 88
)

// ColorReset restores the default terminal colors.
const ColorReset = "\033[0m"

// Fg returns the escape sequence selecting c as foreground color.
func Fg(c Color) string {
	if c == ColorNone {
		return ColorReset
	}
	return "\033[38;5;" + strconv.Itoa(int(c)) + "m"
}

// Colored wraps s in a foreground color and a reset.
func Colored(c Color, s string) string {
	return Fg(c) + s + ColorReset
}
