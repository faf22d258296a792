// @lixen: #focus{sys[term,output]}
package terminal

// maxSGRBytes is the longest transition AppendSGR can produce:
// \x1b[22;24;38;2;255;255;255;48;2;255;255;255m
const maxSGRBytes = 42

// AppendSGR appends the shortest SGR sequence that moves the terminal from prev to cur
// Style toggles and colors are separate parameters in one sequence, so a color change never resets style
// Returns dst unchanged when the formats are equal
func AppendSGR(dst []byte, prev, cur PixelFormat) []byte {
	if prev.Equal(cur) {
		return dst
	}

	enable := cur.Style &^ prev.Style
	disable := prev.Style &^ cur.Style

	dst = append(dst, csi...)
	first := true

	if disable&StyleBold != 0 {
		dst = appendParam(dst, &first, '2', '2')
	} else if enable&StyleBold != 0 {
		dst = appendParam(dst, &first, '1')
	}

	if disable&StyleUnderline != 0 {
		dst = appendParam(dst, &first, '2', '4')
	} else if enable&StyleUnderline != 0 {
		dst = appendParam(dst, &first, '4')
	}

	if !cur.Fg.Equal(prev.Fg) {
		if !first {
			dst = append(dst, ';')
		}
		first = false
		dst = appendFg(dst, cur.Fg)
	}

	if !cur.Bg.Equal(prev.Bg) {
		if !first {
			dst = append(dst, ';')
		}
		dst = appendBg(dst, cur.Bg)
	}

	return append(dst, 'm')
}

// appendParam writes a ';' delimiter when needed followed by the parameter bytes
func appendParam(dst []byte, first *bool, p ...byte) []byte {
	if !*first {
		dst = append(dst, ';')
	}
	*first = false
	return append(dst, p...)
}

// appendFg writes fg color parameters (no CSI prefix, no 'm' suffix)
func appendFg(dst []byte, c Color) []byte {
	if c.Kind == KindRGB {
		dst = append(dst, paramFgRGB...)
		return appendRGB(dst, c.RGB)
	}
	switch {
	case c.Index < 8:
		return append(dst, '3', '0'+c.Index)
	case c.Index < 16:
		return append(dst, '9', '0'+c.Index&0x07)
	default:
		dst = append(dst, paramFg256...)
		return appendInt(dst, int(c.Index))
	}
}

// appendBg writes bg color parameters (no CSI prefix, no 'm' suffix)
func appendBg(dst []byte, c Color) []byte {
	if c.Kind == KindRGB {
		dst = append(dst, paramBgRGB...)
		return appendRGB(dst, c.RGB)
	}
	switch {
	case c.Index < 8:
		return append(dst, '4', '0'+c.Index)
	case c.Index < 16:
		return append(dst, '1', '0', '0'+c.Index&0x07)
	default:
		dst = append(dst, paramBg256...)
		return appendInt(dst, int(c.Index))
	}
}

// appendRGB writes ;R;G;B
func appendRGB(dst []byte, c RGB) []byte {
	dst = append(dst, ';')
	dst = appendInt(dst, int(c.R))
	dst = append(dst, ';')
	dst = appendInt(dst, int(c.G))
	dst = append(dst, ';')
	return appendInt(dst, int(c.B))
}
