package terminal

import (
	"errors"
	"io"
	"os"
	"sync"
)

var (
	// ErrShortFrame is returned when a cell slice is smaller than width*height
	ErrShortFrame = errors.New("cell slice shorter than frame")
	// ErrNotTerminal is returned by Init when output is not attached to a terminal
	ErrNotTerminal = errors.New("not a terminal")
)

// ResizeEvent represents a terminal resize
type ResizeEvent struct {
	Width  int
	Height int
}

// Terminal owns process-wide terminal state for a render loop
// It is the caller side of the encoder: the encoder never touches terminal modes
type Terminal struct {
	backend  Backend
	resizeCh chan ResizeEvent

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a Terminal on the platform backend (stdin/stdout)
func New() *Terminal {
	return NewWithBackend(newBackend())
}

// NewWithBackend creates a Terminal on an explicit backend
func NewWithBackend(b Backend) *Terminal {
	return &Terminal{
		backend:  b,
		resizeCh: make(chan ResizeEvent, 1),
	}
}

// Init snapshots the terminal mode, enters the alternate screen and hides the cursor
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	t.backend.SetResizeHandler(func(w, h int) {
		// Non-blocking send, keep only the latest size
		select {
		case t.resizeCh <- ResizeEvent{Width: w, Height: h}:
		default:
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- ResizeEvent{Width: w, Height: h}:
			default:
			}
		}
	})

	t.backend.Write(csiAltScreenEnter)
	t.backend.Write(csiCursorHide)

	t.initialized = true
	return nil
}

// Fini restores terminal state. Safe to call multiple times
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.backend.Write(csiReset)
	t.backend.Write(csiCursorShow)
	t.backend.Write(csiAltScreenExit)
	t.backend.Fini()

	t.finalized = true
}

// Size returns current terminal dimensions
func (t *Terminal) Size() (int, int) {
	return t.backend.Size()
}

// ResizeChan returns the resize event channel
func (t *Terminal) ResizeChan() <-chan ResizeEvent {
	return t.resizeCh
}

// Writer returns the output stream frames should be flushed to
func (t *Terminal) Writer() io.Writer {
	return backendWriter{t.backend}
}

// backendWriter adapts Backend.Write to io.Writer
type backendWriter struct {
	b Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiReset)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
