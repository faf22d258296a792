package terminal

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records writes and lets tests fire resize events
type fakeBackend struct {
	mu       sync.Mutex
	out      bytes.Buffer
	width    int
	height   int
	initErr  error
	writeErr error
	inits    int
	finis    int
	onResize func(width, height int)
}

func (b *fakeBackend) Init() error { b.inits++; return b.initErr }
func (b *fakeBackend) Fini()       { b.finis++ }

func (b *fakeBackend) Size() (int, int) { return b.width, b.height }

func (b *fakeBackend) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.writeErr != nil {
		return b.writeErr
	}
	b.out.Write(p)
	return nil
}

func (b *fakeBackend) SetResizeHandler(handler func(width, height int)) { b.onResize = handler }

func (b *fakeBackend) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.out.String()
}

func TestTerminalLifecycle(t *testing.T) {
	b := &fakeBackend{width: 80, height: 24}
	term := NewWithBackend(b)

	require.NoError(t, term.Init())
	require.NoError(t, term.Init())
	assert.Equal(t, 1, b.inits)
	assert.Equal(t, "\x1b[?1049h\x1b[?25l", b.String())

	w, h := term.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)

	term.Fini()
	term.Fini()
	assert.Equal(t, 1, b.finis)
	assert.Equal(t, "\x1b[?1049h\x1b[?25l\x1b[0m\x1b[?25h\x1b[?1049l", b.String())
}

func TestTerminalInitError(t *testing.T) {
	b := &fakeBackend{initErr: ErrNotTerminal}
	term := NewWithBackend(b)

	assert.ErrorIs(t, term.Init(), ErrNotTerminal)
	assert.Empty(t, b.String())

	// Fini without a successful Init leaves the terminal alone
	term.Fini()
	assert.Zero(t, b.finis)
}

func TestTerminalResizeKeepsLatest(t *testing.T) {
	b := &fakeBackend{width: 80, height: 24}
	term := NewWithBackend(b)
	require.NoError(t, term.Init())
	defer term.Fini()

	require.NotNil(t, b.onResize)
	b.onResize(100, 30)
	b.onResize(120, 40)

	select {
	case ev := <-term.ResizeChan():
		assert.Equal(t, ResizeEvent{Width: 120, Height: 40}, ev)
	default:
		t.Fatal("expected a resize event")
	}

	select {
	case ev := <-term.ResizeChan():
		t.Fatalf("unexpected extra event %+v", ev)
	default:
	}
}

func TestTerminalWriter(t *testing.T) {
	b := &fakeBackend{}
	term := NewWithBackend(b)

	n, err := term.Writer().Write([]byte("frame"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "frame", b.String())

	b.writeErr = errors.New("broken pipe")
	n, err = term.Writer().Write([]byte("x"))
	assert.Zero(t, n)
	assert.EqualError(t, err, "broken pipe")
}

func TestEmergencyReset(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)
	assert.Equal(t, "\x1b[0m\x1b[?25h\x1b[?1049l", buf.String())
}
