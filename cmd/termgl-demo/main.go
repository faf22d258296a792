package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termgl/render"
	"github.com/lixenwraith/termgl/terminal"
)

var (
	configFlag   = flag.String("config", "termgl.toml", "Config file (TOML); ignored when the default is missing")
	sceneFlag    = flag.String("scene", "", "Scene: cube, mandelbrot, color, rgb, texture")
	backendFlag  = flag.String("backend", "", "Output backend: ansi, tcell")
	fpsFlag      = flag.Int("fps", 0, "Target frames per second")
	durationFlag = flag.Duration("duration", 0, "Stop after this long (0 runs until interrupted)")
	colorFlag    = flag.String("color", "", "Color mode: auto, truecolor, 256")
	gradientFlag = flag.String("gradient", "", "Glyph gradient: full, min")
	imageFlag    = flag.String("image", "", "Texture scene image (png, jpeg, gif)")
	debugFlag    = flag.Bool("debug", false, "Write logs to logs/termgl-demo.log")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mTERMGL-DEMO CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := loadFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "termgl-demo: %v\n", err)
		os.Exit(2)
	}

	if f := setupLogging(cfg.Debug); f != nil {
		defer f.Close()
	}
	log.Printf("starting scene=%s backend=%s fps=%d", cfg.Scene, cfg.Backend, cfg.FPS)

	if cfg.Backend == "tcell" {
		err = runTcell(cfg)
	} else {
		err = runANSI(cfg)
	}
	if err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "termgl-demo: %v\n", err)
		os.Exit(1)
	}
}

// loadFlags reads the config file then applies explicitly set flags on top
func loadFlags() (Config, error) {
	optional := true
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			optional = false
		}
	})

	cfg, err := LoadConfig(*configFlag, optional)
	if err != nil {
		return cfg, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = *sceneFlag
		case "backend":
			cfg.Backend = *backendFlag
		case "fps":
			cfg.FPS = *fpsFlag
		case "duration":
			cfg.Duration = *durationFlag
		case "color":
			cfg.Color = *colorFlag
		case "gradient":
			cfg.Gradient = *gradientFlag
		case "image":
			cfg.Image.Path = *imageFlag
		case "debug":
			cfg.Debug = *debugFlag
		}
	})

	return cfg, cfg.Validate()
}

// newRenderer builds a context and the configured scene for a width x height terminal
func newRenderer(cfg Config, width, height int, out io.Writer) (*render.Context, scene, error) {
	// Keep the last row free so the trailing newline never scrolls
	height = max(height-1, 1)
	if cfg.Output.DoubleChars {
		width = max(width/2, 1)
	}

	mode, err := cfg.colorMode()
	if err != nil {
		return nil, nil, err
	}
	grad, err := cfg.gradient()
	if err != nil {
		return nil, nil, err
	}

	ctx, err := render.New(width, height,
		render.WithOutput(out),
		render.WithColorMode(mode),
		render.WithSettings(cfg.settings()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create context: %w", err)
	}

	sc, err := scenes[cfg.Scene](sceneEnv{width: width, height: height, cfg: cfg, grad: grad})
	if err != nil {
		ctx.Close()
		return nil, nil, fmt.Errorf("scene %s: %w", cfg.Scene, err)
	}
	if err := sc.setup(ctx); err != nil {
		ctx.Close()
		return nil, nil, fmt.Errorf("scene %s setup: %w", cfg.Scene, err)
	}

	log.Printf("renderer %dx%d", width, height)
	return ctx, sc, nil
}

// runANSI drives the scene through the ANSI encoder on the process terminal
func runANSI(cfg Config) error {
	term := terminal.New()
	if err := term.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer term.Fini()

	w, h := term.Size()
	ctx, sc, err := newRenderer(cfg, w, h, term.Writer())
	if err != nil {
		return err
	}
	defer func() { ctx.Close() }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-sig:
			return nil

		case ev := <-term.ResizeChan():
			next, nextScene, err := newRenderer(cfg, ev.Width, ev.Height, term.Writer())
			if err != nil {
				return err
			}
			ctx.Close()
			ctx, sc = next, nextScene

		case now := <-ticker.C:
			elapsed := now.Sub(start)
			if cfg.Duration > 0 && elapsed >= cfg.Duration {
				return nil
			}
			sc.draw(ctx, elapsed.Seconds())
			if err := ctx.Flush(); err != nil {
				return err
			}
		}
	}
}

// runTcell drives the scene through a tcell screen; q, Escape or Ctrl-C quit
func runTcell(cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("tcell screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	w, h := screen.Size()
	ctx, sc, err := newRenderer(cfg, w, h+1, io.Discard)
	if err != nil {
		return err
	}
	defer func() { ctx.Close() }()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
			case *tcell.EventResize:
				w, h := ev.Size()
				next, nextScene, err := newRenderer(cfg, w, h+1, io.Discard)
				if err != nil {
					return err
				}
				ctx.Close()
				ctx, sc = next, nextScene
				screen.Clear()
				screen.Sync()
			}

		case now := <-ticker.C:
			elapsed := now.Sub(start)
			if cfg.Duration > 0 && elapsed >= cfg.Duration {
				return nil
			}
			sc.draw(ctx, elapsed.Seconds())
			render.Blit(ctx.Grid(), screen)
			screen.Show()
		}
	}
}
