package terminal

import (
	"os"
	"strings"
)

// ColorMode indicates terminal color capability
// The zero value emits colors exactly as stored
type ColorMode uint8

const (
	ColorModeTrueColor ColorMode = iota // 24-bit RGB
	ColorMode256                        // xterm-256 palette, RGB24 is downsampled
)

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// ColorKind tags which payload of a Color is meaningful
type ColorKind uint8

const (
	KindIndexed ColorKind = iota
	KindRGB
)

// Palette indices for the 16 standard colors
// Add HighIntensity for the bright variants (SGR 90-97 / 100-107)
const (
	Black uint8 = iota
	Red
	Green
	Yellow
	Blue
	Purple
	Cyan
	White

	HighIntensity uint8 = 0x08
)

// Color is one foreground or background slot
// Indexed 0-15 use the basic SGR codes, 16-255 the xterm-256 palette
type Color struct {
	Kind  ColorKind
	Index uint8
	RGB   RGB
}

// Indexed returns a palette color
func Indexed(index uint8) Color {
	return Color{Kind: KindIndexed, Index: index}
}

// TrueColor returns a 24-bit color
func TrueColor(r, g, b uint8) Color {
	return Color{Kind: KindRGB, RGB: RGB{r, g, b}}
}

// Equal compares tag and the payload selected by the tag only
func (c Color) Equal(other Color) bool {
	if c.Kind != other.Kind {
		return false
	}
	if c.Kind == KindRGB {
		return c.RGB == other.RGB
	}
	return c.Index == other.Index
}

// Downsample maps RGB24 to the nearest palette entry when mode lacks true color
func (c Color) Downsample(mode ColorMode) Color {
	if mode != ColorMode256 || c.Kind != KindRGB {
		return c
	}
	return Indexed(RGBTo256(c.RGB))
}

// Style holds text attributes, applied to the foreground only
type Style uint8

const (
	StyleNone      Style = 0
	StyleBold      Style = 1 << 0
	StyleUnderline Style = 1 << 1
)

// PixelFormat is the color and style of one cell
type PixelFormat struct {
	Fg    Color
	Bg    Color
	Style Style
}

// DefaultFormat is the format of cleared cells and the assumed terminal state at frame start
var DefaultFormat = PixelFormat{Fg: Indexed(White), Bg: Indexed(Black)}

// Format builds a PixelFormat
func Format(fg, bg Color, style Style) PixelFormat {
	return PixelFormat{Fg: fg, Bg: bg, Style: style}
}

// Equal reports whether two formats encode to the same terminal state
func (f PixelFormat) Equal(other PixelFormat) bool {
	return f.Style == other.Style && f.Fg.Equal(other.Fg) && f.Bg.Equal(other.Bg)
}

// Downsample applies Color.Downsample to both slots
func (f PixelFormat) Downsample(mode ColorMode) PixelFormat {
	if mode != ColorMode256 {
		return f
	}
	f.Fg = f.Fg.Downsample(mode)
	f.Bg = f.Bg.Downsample(mode)
	return f
}

// Cell represents a single terminal cell
type Cell struct {
	Glyph  rune
	Format PixelFormat
}

// BlankCell is the content of a cleared cell
var BlankCell = Cell{Glyph: ' ', Format: DefaultFormat}

// Color cube values for 6x6x6 palette (indices 16-231)
// Levels: 0, 95, 135, 175, 215, 255
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps 0-255 to nearest cube index 0-5
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := abs(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			d := abs(i - int(cubeValues[j]))
			if d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RGBTo256 finds the nearest 256-color palette index for an RGB value
func RGBTo256(c RGB) uint8 {
	r, g, b := int(c.R), int(c.G), int(c.B)

	// Grayscale ramp 232-255 maps to luminance 8, 18, ..., 238
	gray := (r + g + b) / 3
	maxDiff := max(abs(r-gray), abs(g-gray), abs(b-gray))

	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := 232 + (gray-8)/10
		if grayIdx > 255 {
			grayIdx = 255
		}

		grayLevel := 8 + (grayIdx-232)*10
		grayDist := abs(r-grayLevel) + abs(g-grayLevel) + abs(b-grayLevel)

		cubeDist := abs(r-int(cubeValues[cubeIndex[r]])) +
			abs(g-int(cubeValues[cubeIndex[g]])) +
			abs(b-int(cubeValues[cubeIndex[b]]))

		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}

	return 16 + 36*cubeIndex[r] + 6*cubeIndex[g] + cubeIndex[b]
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
