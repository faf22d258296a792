package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termgl/render"
	"github.com/lixenwraith/termgl/terminal"
	"github.com/lixenwraith/termgl/vmath"
)

// scene draws one animated frame per tick
type scene interface {
	// setup enables the settings the scene relies on
	setup(ctx *render.Context) error
	// draw renders the frame at t seconds since start
	draw(ctx *render.Context, t float64)
}

// sceneEnv is what a scene is built from; scenes are rebuilt on resize
type sceneEnv struct {
	width, height int
	cfg           Config
	grad          render.Gradient
}

type sceneFactory func(env sceneEnv) (scene, error)

var scenes = map[string]sceneFactory{
	"cube":       newCubeScene,
	"mandelbrot": newMandelbrotScene,
	"color":      newColorScene,
	"rgb":        newRGBScene,
	"texture":    newTextureScene,
}

var black = terminal.Indexed(terminal.Black)

// --- cube ---

// cubeTriangles covers corners at 0 and 1, two triangles per face
var cubeTriangles = [12]render.Triangle{
	{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}},
	{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}},
	{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}},
	{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1}},
	{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}},
	{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 0}},
	{{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}},
	{{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 0, Z: 1}},
	{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}},
	{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}},
	{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}},
	{{X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 0}},
}

var cubeUV = [2]render.UV{
	{{0, 0}, {0, 255}, {255, 255}},
	{{0, 0}, {255, 255}, {255, 0}},
}

var faceColors = [6]uint8{
	terminal.Red | terminal.HighIntensity,
	terminal.Green | terminal.HighIntensity,
	terminal.Blue | terminal.HighIntensity,
	terminal.Yellow | terminal.HighIntensity,
	terminal.Cyan | terminal.HighIntensity,
	terminal.Purple | terminal.HighIntensity,
}

type cubeScene struct {
	cfg     CubeConfig
	proj    vmath.Mat4
	shaders [6]render.PixelShader
}

func newCubeScene(env sceneEnv) (scene, error) {
	s := &cubeScene{
		cfg:  env.cfg.Cube,
		proj: vmath.Camera(env.width, env.height, env.cfg.Cube.FOV*math.Pi/180, 0.1, 100),
	}
	for i, c := range faceColors {
		s.shaders[i] = render.SimpleShader(terminal.Format(terminal.Indexed(c), black, terminal.StyleBold), env.grad)
	}
	return s, nil
}

func (s *cubeScene) setup(ctx *render.Context) error {
	settings := render.SettingDepthBuffer
	if s.cfg.Cull {
		settings |= render.SettingCullFace
	}
	ctx.CullFace(render.CullBack, render.WindingCCW)
	return ctx.Enable(settings)
}

func (s *cubeScene) draw(ctx *render.Context, t float64) {
	ctx.Clear(render.FrameBuffer | render.DepthBuffer)

	a := float32(t) * s.cfg.Speed
	model := vmath.Mul(vmath.Translate(0, 0, s.cfg.Distance),
		vmath.Mul(vmath.Rotate(a, a*0.7, a*0.3), vmath.Translate(-0.5, -0.5, -0.5)))
	vs := render.MatrixVertexShader(vmath.Mul(s.proj, model))

	for i, tri := range cubeTriangles {
		ctx.Triangle3D(tri, cubeUV[i%2], s.cfg.Fill, vs, s.shaders[i/2])
	}
}

// --- mandelbrot ---

type mandelbrotScene struct {
	cfg     FractalConfig
	width   int
	height  int
	grad    render.Gradient
	formats []render.PixelFormat
}

func newMandelbrotScene(env sceneEnv) (scene, error) {
	s := &mandelbrotScene{
		cfg:    env.cfg.Fractal,
		width:  env.width,
		height: env.height,
		grad:   env.grad,
	}
	// Cycle through the 6x6x6 cube for escape bands
	for i := 0; i < 16; i++ {
		s.formats = append(s.formats, terminal.Format(terminal.Indexed(uint8(16+i*13)), black, terminal.StyleNone))
	}
	return s, nil
}

func (s *mandelbrotScene) setup(*render.Context) error { return nil }

func (s *mandelbrotScene) draw(ctx *render.Context, t float64) {
	g := ctx.Grid()
	zoom := s.cfg.Zoom * math.Pow(1.1, t)
	// Cells are roughly twice as tall as wide
	sx := 3.5 / (float64(s.width) * zoom)
	sy := 2.0 / (float64(s.height) * zoom)

	for y := 0; y < s.height; y++ {
		ci := s.cfg.CenterY + float64(y-s.height/2)*sy
		for x := 0; x < s.width; x++ {
			cr := s.cfg.CenterX + float64(x-s.width/2)*sx
			n := escapeTime(cr, ci, s.cfg.MaxIter)
			if n == s.cfg.MaxIter {
				g.SetRaw(x, y, ' ', terminal.DefaultFormat)
				continue
			}
			g.SetRaw(x, y, s.grad.Char(uint8(n*255/s.cfg.MaxIter)), s.formats[n%len(s.formats)])
		}
	}
}

// escapeTime returns the iteration at which |z| exceeds 2, or limit
func escapeTime(cr, ci float64, limit int) int {
	var zr, zi float64
	for n := 0; n < limit; n++ {
		zr2, zi2 := zr*zr, zi*zi
		if zr2+zi2 > 4 {
			return n
		}
		zi = 2*zr*zi + ci
		zr = zr2 - zi2 + cr
	}
	return limit
}

// --- color ---

type colorScene struct {
	width, height int
}

func newColorScene(env sceneEnv) (scene, error) {
	return &colorScene{width: env.width, height: env.height}, nil
}

func (s *colorScene) setup(*render.Context) error { return nil }

func (s *colorScene) draw(ctx *render.Context, t float64) {
	ctx.Clear(render.FrameBuffer)

	styles := []terminal.Style{terminal.StyleNone, terminal.StyleBold, terminal.StyleUnderline, terminal.StyleBold | terminal.StyleUnderline}
	y := 0
	for bg := uint8(0); bg < 8; bg++ {
		x := 0
		for fg := uint8(0); fg < 16; fg++ {
			f := terminal.Format(terminal.Indexed(fg), terminal.Indexed(bg), styles[int(fg/4)%len(styles)])
			ctx.PutString(x, y, "Aa", f)
			x += 3
		}
		y++
	}

	// 256-color strip, scrolling with time
	offset := int(t * 8)
	for x := 0; x < s.width; x++ {
		idx := uint8(16 + (x+offset)%240)
		ctx.Grid().SetRaw(x, y+1, ' ', terminal.Format(terminal.Indexed(terminal.White), terminal.Indexed(idx), terminal.StyleNone))
	}

	ctx.PutString(0, y+3, fmt.Sprintf("t=%.1fs  %dx%d", t, s.width, s.height), terminal.DefaultFormat)
}

// --- rgb ---

type rgbScene struct {
	width, height int
	from, to      colorful.Color
	grad          render.Gradient
}

func newRGBScene(env sceneEnv) (scene, error) {
	from, err := colorful.Hex(env.cfg.Blend.From)
	if err != nil {
		return nil, fmt.Errorf("rgb from color: %w", err)
	}
	to, err := colorful.Hex(env.cfg.Blend.To)
	if err != nil {
		return nil, fmt.Errorf("rgb to color: %w", err)
	}
	return &rgbScene{width: env.width, height: env.height, from: from, to: to, grad: env.grad}, nil
}

func (s *rgbScene) setup(*render.Context) error { return nil }

func (s *rgbScene) draw(ctx *render.Context, t float64) {
	// Rotate both endpoints around the hue circle
	shift := math.Mod(t*30, 360)
	h1, c1, l1 := s.from.Hcl()
	h2, c2, l2 := s.to.Hcl()
	from := colorful.Hcl(math.Mod(h1+shift, 360), c1, l1).Clamped()
	to := colorful.Hcl(math.Mod(h2+shift, 360), c2, l2).Clamped()
	shader := render.BlendShader(from, to, s.grad)

	r, b := s.width-1, s.height-1
	tl := render.Vertex{X: 0, Y: 0, U: 0, V: 0}
	tr := render.Vertex{X: r, Y: 0, U: 255, V: 0}
	bl := render.Vertex{X: 0, Y: b, U: 0, V: 255}
	br := render.Vertex{X: r, Y: b, U: 255, V: 255}
	ctx.TriangleFill(tl, tr, br, shader)
	ctx.TriangleFill(tl, br, bl, shader)
}

// --- texture ---

type textureScene struct {
	proj   vmath.Mat4
	shader render.PixelShader
}

func newTextureScene(env sceneEnv) (scene, error) {
	img, err := loadImage(env.cfg.Image.Path)
	if err != nil {
		return nil, err
	}
	tex, err := render.TextureFromImage(img, env.cfg.Image.Width, env.cfg.Image.Height, env.grad)
	if err != nil {
		return nil, err
	}
	return &textureScene{
		proj:   vmath.Camera(env.width, env.height, math.Pi/2, 0.1, 100),
		shader: render.TextureShader(tex),
	}, nil
}

func (s *textureScene) setup(ctx *render.Context) error {
	return ctx.Enable(render.SettingDepthBuffer)
}

func (s *textureScene) draw(ctx *render.Context, t float64) {
	ctx.Clear(render.FrameBuffer | render.DepthBuffer)

	a := float32(t)
	model := vmath.Mul(vmath.Translate(0, 0, 2), vmath.Rotate(0, a, 0))
	vs := render.MatrixVertexShader(vmath.Mul(s.proj, model))

	quad := [2]render.Triangle{
		{{X: -1, Y: -1, Z: 0}, {X: 1, Y: -1, Z: 0}, {X: 1, Y: 1, Z: 0}},
		{{X: -1, Y: -1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: -1, Y: 1, Z: 0}},
	}
	uv := [2]render.UV{
		{{0, 0}, {255, 0}, {255, 255}},
		{{0, 0}, {255, 255}, {0, 255}},
	}
	for i := range quad {
		ctx.Triangle3D(quad[i], uv[i], true, vs, s.shader)
	}
}

// loadImage decodes path or returns a generated checkerboard when path is empty
func loadImage(path string) (image.Image, error) {
	if path == "" {
		return checkerboard(64, 8), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return img, nil
}

func checkerboard(size, cell int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 240, G: 200, B: 80, A: 255}
	dark := color.RGBA{R: 30, G: 40, B: 120, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
