// Package logging sets up file logging. Stdout belongs to the animation, so
// nothing is ever logged to the terminal.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 3
)

// Options controls where and how much is logged
type Options struct {
	Enabled    bool
	File       string
	Debug      bool // log re-steers and other per-frame events
	MaxSizeMB  int  // rotate once the file would grow past this
	MaxBackups int
}

// Setup builds the process logger and redirects the standard library logger to it
// When disabled it returns a no-op logger and discards standard library output
// The returned close function flushes, closes the file and restores the standard logger
func Setup(opts Options) (*zap.SugaredLogger, func() error, error) {
	prevOut := log.Writer()

	if !opts.Enabled {
		log.SetOutput(io.Discard)
		return zap.NewNop().Sugar(), func() error {
			log.SetOutput(prevOut)
			return nil
		}, nil
	}

	if opts.File == "" {
		return nil, nil, errors.New("logging enabled without a file")
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "create log directory")
	}

	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = defaultMaxSizeMB
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = defaultMaxBackups
	}
	sink := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(sink), level)
	logger := zap.New(core, zap.AddCaller())

	restoreStd := zap.RedirectStdLog(logger)

	closeFn := func() error {
		restoreStd()
		log.SetOutput(prevOut)
		return multierr.Combine(logger.Sync(), sink.Close())
	}
	return logger.Sugar(), closeFn, nil
}
