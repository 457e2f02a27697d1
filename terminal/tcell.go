package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ScreenFactory creates the tcell screen used by the tcell backend
type ScreenFactory func() (tcell.Screen, error)

// tcellTerm implements Terminal over a tcell.Screen
type tcellTerm struct {
	newScreen ScreenFactory
	screen    tcell.Screen

	mu            sync.Mutex
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorBlink   bool

	done     chan struct{}
	doneOnce sync.Once

	initialized bool
	finalized   bool
}

// NewTcell creates a Terminal backed by tcell
// A nil factory uses tcell.NewScreen
func NewTcell(factory ScreenFactory) Terminal {
	if factory == nil {
		factory = tcell.NewScreen
	}
	return &tcellTerm{
		newScreen: factory,
		done:      make(chan struct{}),
	}
}

func (t *tcellTerm) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	s, err := t.newScreen()
	if err != nil {
		return fmt.Errorf("tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	t.screen = s

	s.HideCursor()
	s.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	s.Clear()
	s.Show()

	go t.poll()

	t.initialized = true
	return nil
}

// poll consumes input events until the screen is finalized
func (t *tcellTerm) poll() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if isQuitKey(ev) {
				t.doneOnce.Do(func() { close(t.done) })
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// isQuitKey reports whether a key event asks the animation to stop
func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

func (t *tcellTerm) Fini() {
	t.mu.Lock()
	if !t.initialized || t.finalized {
		t.mu.Unlock()
		return
	}
	t.finalized = true
	s := t.screen
	t.mu.Unlock()

	s.SetCursorStyle(tcell.CursorStyleDefault)
	s.Fini()
	t.doneOnce.Do(func() { close(t.done) })
}

func (t *tcellTerm) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.screen == nil {
		return 0, 0
	}
	return t.screen.Size()
}

func (t *tcellTerm) Flush(cells []Cell, width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized || len(cells) < width*height {
		return
	}

	tw, th := t.screen.Size()
	visibleW := min(width, tw)
	visibleH := min(height, th)

	for y := 0; y < visibleH; y++ {
		row := cells[y*width : y*width+width]
		for x := 0; x < visibleW; x++ {
			r := row[x].Rune
			if r == 0 {
				r = ' '
			}
			t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
	}
	if t.cursorVisible {
		t.screen.ShowCursor(t.cursorX, t.cursorY)
	}
	t.screen.Show()
}

func (t *tcellTerm) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized || t.finalized {
		return
	}
	t.screen.Clear()
	t.screen.Show()
}

func (t *tcellTerm) SetCursorVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorVisible = visible
	if !t.initialized || t.finalized {
		return
	}
	if visible {
		t.screen.ShowCursor(t.cursorX, t.cursorY)
	} else {
		t.screen.HideCursor()
	}
}

func (t *tcellTerm) SetCursorBlink(blink bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorBlink = blink
	if !t.initialized || t.finalized {
		return
	}
	if blink {
		t.screen.SetCursorStyle(tcell.CursorStyleBlinkingBlock)
	} else {
		t.screen.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	}
}

func (t *tcellTerm) MoveCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursorX = max(x, 0)
	t.cursorY = max(y, 0)
	if t.initialized && !t.finalized && t.cursorVisible {
		t.screen.ShowCursor(t.cursorX, t.cursorY)
	}
}

func (t *tcellTerm) Done() <-chan struct{} {
	return t.done
}
