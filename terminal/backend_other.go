//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package terminal

import (
	"errors"
	"os"
	"runtime"
)

// stubBackend refuses to start; use the tcell backend on these platforms
type stubBackend struct{}

func newBackend() Backend {
	return stubBackend{}
}

func (stubBackend) Init() error {
	return errors.New("ansi backend unsupported on " + runtime.GOOS + ", use the tcell backend")
}

func (stubBackend) Fini() {}

func (stubBackend) Size() (int, int) {
	return 80, 24
}

func (stubBackend) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stubBackend) SetResizeHandler(func(width, height int)) {}

func resetTerminalMode() {}
