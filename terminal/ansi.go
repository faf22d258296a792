// @focus: #terminal { ansi }
package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi      = []byte("\x1b[")
	csiReset = []byte("\x1b[0m")

	// Frame prefixes
	csiClearScreen = []byte("\x1b[1;1H\x1b[2J")
	csiHome        = []byte("\x1b[;H")

	// DECDWL: double-width line, emitted at the start of each row
	escDoubleWidth = []byte("\x1b#6")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")

	// Color parameter prefixes (no CSI, no terminator)
	paramFgRGB = []byte("38;2")
	paramBgRGB = []byte("48;2")
	paramFg256 = []byte("38;5;")
	paramBg256 = []byte("48;5;")
)

// appendInt appends an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func appendInt(dst []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(dst, byte(n)+'0')
	}
	if n < 100 {
		return append(dst, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(dst, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(dst, buf[i:]...)
}
