// Package config loads animation settings from defaults and an optional TOML file.
// Environment variables and flags are layered on top by the command.
package config

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/lixenwraith/ascii-donut/constants"
)

// Terminal backends
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

// DefaultLogFile is used when debug logging is enabled without a path
const DefaultLogFile = "logs/donut.log"

// Config holds every user-tunable setting
type Config struct {
	MajorRadius   float64       `toml:"major_radius"`
	MinorRadius   float64       `toml:"minor_radius"`
	FrameInterval time.Duration `toml:"frame_interval"`
	SteerPeriod   int           `toml:"steer_period"`
	SteerRange    float64       `toml:"steer_range"`

	Backend string `toml:"backend"`
	Seed    uint64 `toml:"seed"`
	Chime   bool   `toml:"chime"`

	Debug   bool   `toml:"debug"`
	LogFile string `toml:"log_file"`
}

// Default returns the stock animation settings
func Default() Config {
	return Config{
		MajorRadius:   constants.MajorRadius,
		MinorRadius:   constants.MinorRadius,
		FrameInterval: constants.FrameInterval,
		SteerPeriod:   constants.SteerPeriod,
		SteerRange:    constants.SteerRange,
		Backend:       BackendANSI,
		LogFile:       DefaultLogFile,
	}
}

// Load reads path over the defaults
// Keys the file sets override defaults, unknown keys are an error
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, errors.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// Validate reports the first setting the renderer cannot work with
func (c Config) Validate() error {
	switch {
	case !(c.MajorRadius > 0) || math.IsInf(c.MajorRadius, 0):
		return errors.Errorf("major_radius must be positive and finite, got %g", c.MajorRadius)
	case !(c.MinorRadius > 0) || math.IsInf(c.MinorRadius, 0):
		return errors.Errorf("minor_radius must be positive and finite, got %g", c.MinorRadius)
	case c.FrameInterval <= 0:
		return errors.Errorf("frame_interval must be positive, got %s", c.FrameInterval)
	case c.SteerPeriod < 1:
		return errors.Errorf("steer_period must be at least 1, got %d", c.SteerPeriod)
	case !(c.SteerRange > 0) || c.SteerRange > math.Pi:
		return errors.Errorf("steer_range must be in (0, pi], got %g", c.SteerRange)
	}

	switch c.Backend {
	case BackendANSI, BackendTcell:
	default:
		return errors.Errorf("backend must be %q or %q, got %q", BackendANSI, BackendTcell, c.Backend)
	}

	if c.Debug && c.LogFile == "" {
		return errors.New("log_file must be set when debug is on")
	}
	return nil
}
