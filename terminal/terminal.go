package terminal

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Cell represents a single terminal cell
type Cell struct {
	Rune rune
}

// Terminal provides low-level terminal access
type Terminal interface {
	// Init enters raw mode and the alternate screen, hides the cursor and stops it blinking
	Init() error

	// Fini restores terminal state. Safe to call multiple times
	Fini()

	// Size returns current terminal dimensions
	Size() (width, height int)

	// Flush writes cell buffer to terminal at the top-left corner, clipped to the terminal size
	// Cells are row-major: cells[y*width + x]
	Flush(cells []Cell, width, height int)

	// Clear blanks the screen and forces the next Flush to redraw every cell
	Clear()

	// SetCursorVisible shows/hides cursor
	SetCursorVisible(visible bool)

	// SetCursorBlink enables/disables cursor blinking
	SetCursorBlink(blink bool)

	// MoveCursor positions cursor (0-indexed)
	MoveCursor(x, y int)

	// Done is closed when the terminal asks to stop, or after Fini
	Done() <-chan struct{}
}

// termImpl implements Terminal with direct ANSI sequences over a Backend
type termImpl struct {
	backend Backend
	output  *outputBuffer

	cursorVisible atomic.Bool
	cursorBlink   atomic.Bool

	// Set by the resize watcher, consumed by the next Flush
	needsRedraw atomic.Bool

	done     chan struct{}
	doneOnce sync.Once

	mu          sync.Mutex
	initialized bool
	finalized   bool
}

// New creates a new ANSI Terminal on stdin/stdout
func New() Terminal {
	return newTerm(newBackend())
}

func newTerm(b Backend) *termImpl {
	t := &termImpl{
		backend: b,
		output:  newOutputBuffer(b),
		done:    make(chan struct{}),
	}
	t.cursorVisible.Store(true)
	t.cursorBlink.Store(true)
	return t
}

// Init enters raw mode and sets up terminal
func (t *termImpl) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	// Initialize backend (raw mode)
	if err := t.backend.Init(); err != nil {
		return err
	}

	// Any resize may leave stale glyphs around, repaint everything on the next flush
	// Must not take t.mu: Fini holds it while the backend waits for this goroutine
	t.backend.SetResizeHandler(func(w, h int) {
		t.needsRedraw.Store(true)
	})

	w := t.output.writer
	w.Write(csiAltScreenEnter)
	w.Write(csiCursorHide)
	w.Write(csiCursorBlinkOff)

	// DISABLE AUTO-WRAP
	// Prevents terminal scroll/wrap on bottom-right corner write
	w.Write(csiAutoWrapOff)

	t.cursorVisible.Store(false)
	t.cursorBlink.Store(false)

	// Clear screen (flushes)
	t.output.clear()

	t.initialized = true
	return nil
}

// Fini restores terminal state
func (t *termImpl) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	w := t.output.writer
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiCursorBlinkOn)

	// Exit alternate screen
	w.Write(csiAltScreenExit)

	// Re-enable Auto-Wrap AFTER exiting alt screen to ensure the main buffer has wrap enabled
	w.Write(csiAutoWrapOn)
	w.Flush()

	// Backend cleanup
	t.backend.Fini()

	t.finalized = true
	t.doneOnce.Do(func() { close(t.done) })
}

// Size returns current terminal dimensions
func (t *termImpl) Size() (int, int) {
	return t.backend.Size()
}

// Flush writes cell buffer to terminal
// Holds lock for entire operation to prevent race with Clear/MoveCursor/resize
func (t *termImpl) Flush(cells []Cell, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	if t.needsRedraw.Swap(false) {
		t.output.clear()
	}

	tw, th := t.backend.Size()
	t.output.flush(cells, width, height, min(width, tw), min(height, th))
}

// Clear blanks the screen
func (t *termImpl) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.output.clear()
}

// SetCursorVisible shows/hides cursor
func (t *termImpl) SetCursorVisible(visible bool) {
	if t.cursorVisible.Swap(visible) == visible {
		return
	}
	if visible {
		t.writeSeq(csiCursorShow)
	} else {
		t.writeSeq(csiCursorHide)
	}
}

// SetCursorBlink enables/disables cursor blinking
func (t *termImpl) SetCursorBlink(blink bool) {
	if t.cursorBlink.Swap(blink) == blink {
		return
	}
	if blink {
		t.writeSeq(csiCursorBlinkOn)
	} else {
		t.writeSeq(csiCursorBlinkOff)
	}
}

// writeSeq emits a control sequence through the buffered writer to keep stream order
func (t *termImpl) writeSeq(seq []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	w := t.output.writer
	w.Write(seq)
	w.Flush()
}

// MoveCursor positions cursor (0-indexed)
func (t *termImpl) MoveCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	w, h := t.backend.Size()
	x = max(0, min(x, w-1))
	y = max(0, min(y, h-1))

	t.output.moveCursor(x, y)
	t.output.writer.Flush()
}

// Done is closed after Fini; the ANSI backend leaves Ctrl-C to the process signal handler
func (t *termImpl) Done() <-chan struct{} {
	return t.done
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiCursorBlinkOn)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Attempt raw mode reset - escape sequences alone don't restore termios
	// This is best-effort; ignore errors in crash context
	resetTerminalMode()
}
