package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/termgl/render"
	"github.com/lixenwraith/termgl/terminal"
)

// Config holds every demo setting; flags override values loaded from the config file
type Config struct {
	Scene    string        `toml:"scene"`
	Backend  string        `toml:"backend"`
	FPS      int           `toml:"fps"`
	Duration time.Duration `toml:"duration"`
	Color    string        `toml:"color"`
	Gradient string        `toml:"gradient"`
	Debug    bool          `toml:"debug"`

	Output  OutputConfig  `toml:"output"`
	Cube    CubeConfig    `toml:"cube"`
	Fractal FractalConfig `toml:"mandelbrot"`
	Blend   BlendConfig   `toml:"rgb"`
	Image   ImageConfig   `toml:"texture"`
}

// OutputConfig maps to the render settings that shape the emitted frame
type OutputConfig struct {
	Progressive bool `toml:"progressive"`
	Buffered    bool `toml:"buffered"`
	DoubleWidth bool `toml:"double_width"`
	DoubleChars bool `toml:"double_chars"`
}

// CubeConfig configures the spinning cube scene
type CubeConfig struct {
	FOV      float32 `toml:"fov"` // degrees
	Distance float32 `toml:"distance"`
	Speed    float32 `toml:"speed"` // radians per second
	Fill     bool    `toml:"fill"`
	Cull     bool    `toml:"cull"`
}

// FractalConfig configures the mandelbrot scene
type FractalConfig struct {
	MaxIter int     `toml:"max_iter"`
	CenterX float64 `toml:"center_x"`
	CenterY float64 `toml:"center_y"`
	Zoom    float64 `toml:"zoom"`
}

// BlendConfig configures the rgb scene gradient endpoints as hex colors
type BlendConfig struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// ImageConfig configures the texture scene; an empty path uses a generated checkerboard
type ImageConfig struct {
	Path   string `toml:"path"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

var errInvalidConfig = errors.New("invalid config")

// DefaultConfig returns the built-in settings
func DefaultConfig() Config {
	return Config{
		Scene:    "cube",
		Backend:  "ansi",
		FPS:      30,
		Color:    "auto",
		Gradient: "full",
		Output: OutputConfig{
			Progressive: true,
			Buffered:    true,
		},
		Cube: CubeConfig{
			FOV:      90,
			Distance: 2.5,
			Speed:    1,
			Fill:     true,
			Cull:     true,
		},
		Fractal: FractalConfig{
			MaxIter: 64,
			CenterX: -0.5,
			Zoom:    1,
		},
		Blend: BlendConfig{
			From: "#ff3366",
			To:   "#33ccff",
		},
		Image: ImageConfig{
			Width:  32,
			Height: 32,
		},
	}
}

// LoadConfig decodes path over the defaults; a missing path is not an error when optional
func LoadConfig(path string, optional bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("%w: unknown key %s in %s", errInvalidConfig, undecoded[0], path)
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the demo cannot run with
func (c Config) Validate() error {
	if _, ok := scenes[c.Scene]; !ok {
		return fmt.Errorf("%w: unknown scene %q", errInvalidConfig, c.Scene)
	}
	switch c.Backend {
	case "ansi", "tcell":
	default:
		return fmt.Errorf("%w: unknown backend %q", errInvalidConfig, c.Backend)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("%w: fps %d out of range", errInvalidConfig, c.FPS)
	}
	if c.Duration < 0 {
		return fmt.Errorf("%w: negative duration", errInvalidConfig)
	}
	if _, err := c.colorMode(); err != nil {
		return err
	}
	if _, err := c.gradient(); err != nil {
		return err
	}
	if c.Cube.FOV <= 0 || c.Cube.FOV >= 180 {
		return fmt.Errorf("%w: cube fov %.1f out of range", errInvalidConfig, c.Cube.FOV)
	}
	if c.Fractal.MaxIter <= 0 || c.Fractal.Zoom <= 0 {
		return fmt.Errorf("%w: mandelbrot max_iter and zoom must be positive", errInvalidConfig)
	}
	if c.Image.Width <= 0 || c.Image.Height <= 0 {
		return fmt.Errorf("%w: texture size %dx%d", errInvalidConfig, c.Image.Width, c.Image.Height)
	}
	return nil
}

func (c Config) colorMode() (terminal.ColorMode, error) {
	switch c.Color {
	case "auto", "":
		return terminal.DetectColorMode(), nil
	case "truecolor", "true", "24bit":
		return terminal.ColorModeTrueColor, nil
	case "256":
		return terminal.ColorMode256, nil
	default:
		return 0, fmt.Errorf("%w: unknown color mode %q", errInvalidConfig, c.Color)
	}
}

func (c Config) gradient() (render.Gradient, error) {
	switch c.Gradient {
	case "full", "":
		return render.GradientFull, nil
	case "min":
		return render.GradientMin, nil
	default:
		return render.Gradient{}, fmt.Errorf("%w: unknown gradient %q", errInvalidConfig, c.Gradient)
	}
}

// settings translates output options into render settings
func (c Config) settings() render.Setting {
	var s render.Setting
	if c.Output.Progressive {
		s |= render.SettingProgressive
	}
	if c.Output.Buffered {
		s |= render.SettingOutputBuffer
	}
	if c.Output.DoubleWidth {
		s |= render.SettingDoubleWidth
	}
	if c.Output.DoubleChars {
		s |= render.SettingDoubleChars
	}
	return s
}
