//go:build !unix

package terminal

import (
	"os"

	"golang.org/x/term"
)

// stdBackend writes to stdout on platforms without termios/SIGWINCH
type stdBackend struct {
	out *os.File
}

func newBackend() Backend {
	return &stdBackend{out: os.Stdout}
}

func (b *stdBackend) Init() error { return nil }

func (b *stdBackend) Fini() {}

func (b *stdBackend) Size() (int, int) {
	w, h, err := term.GetSize(int(b.out.Fd()))
	if err != nil {
		return 80, 24
	}
	return w, h
}

func (b *stdBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// SetResizeHandler is a no-op: resize is picked up by polling Size
func (b *stdBackend) SetResizeHandler(func(width, height int)) {}
