// FILE: render/mask.go
package render

// Buffer selects grid arrays for Clear
// Masks are bitfields allowing combination via OR
type Buffer uint8

const (
	FrameBuffer  Buffer = 1 << 0 // Glyph and format cells
	DepthBuffer  Buffer = 1 << 1 // Per-cell depth, reset to "nothing drawn"
	OutputBuffer Buffer = 1 << 2 // Pre-rendered frame text
	AllBuffers   Buffer = FrameBuffer | DepthBuffer | OutputBuffer
)

// Setting toggles optional Context behavior via Enable/Disable
type Setting uint8

const (
	SettingDepthBuffer  Setting = 1 << 0 // Depth-test every shaded pixel
	SettingDoubleWidth  Setting = 1 << 1 // DECDWL double-width rows
	SettingDoubleChars  Setting = 1 << 2 // Print each glyph twice
	SettingProgressive  Setting = 1 << 3 // Overwrite in place (cursor home) instead of clearing the screen
	SettingOutputBuffer Setting = 1 << 4 // Encode the frame into one buffer and write once
	SettingCullFace     Setting = 1 << 5 // 3D backface culling
)

// Face selects which triangle face CullFace discards
type Face uint8

const (
	CullBack  Face = 0
	CullFront Face = 1
)

// Winding selects which vertex order is front-facing
type Winding uint8

const (
	WindingCW  Winding = 0
	WindingCCW Winding = 1
)
