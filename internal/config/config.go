package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/keyplay/internal/logging"
)

// Backend names.
const (
	BackendLog    = "log"
	BackendScreen = "screen"
)

// Config holds every keyplay setting.
type Config struct {
	// Macro is the macro file played when none is given on the command line.
	Macro string `toml:"macro" yaml:"macro"`

	// Backend selects the injector: "log" or "screen".
	Backend string `toml:"backend" yaml:"backend"`

	// Report is a path to write a JSON playback report to. Empty disables it.
	Report string `toml:"report" yaml:"report"`

	Playback Playback `toml:"playback" yaml:"playback"`
	Logging  Logging  `toml:"logging" yaml:"logging"`
}

// Playback holds timing and script handling settings.
type Playback struct {
	// StartDelay is the pause in seconds before the first instruction.
	StartDelay float64 `toml:"start_delay" yaml:"start_delay"`
	// LineDelay is the pause in seconds after every top-level instruction.
	LineDelay float64 `toml:"line_delay" yaml:"line_delay"`
	// RestartDelay re-applies StartDelay whenever RESTART is executed.
	RestartDelay bool `toml:"restart_delay" yaml:"restart_delay"`
	// Normalize rewrites the macro file in canonical form before playback.
	Normalize bool `toml:"normalize" yaml:"normalize"`
}

// Logging holds logger settings.
type Logging struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Macro:   "m/test.pym",
		Backend: BackendLog,
		Playback: Playback{
			StartDelay: 1.0,
			LineDelay:  0.0,
		},
		Logging: Logging{Level: "info"},
	}
}

// StartDelay returns Playback.StartDelay as a duration.
func (c Config) StartDelay() time.Duration {
	return seconds(c.Playback.StartDelay)
}

// LineDelay returns Playback.LineDelay as a duration.
func (c Config) LineDelay() time.Duration {
	return seconds(c.Playback.LineDelay)
}

// LogLevel returns the parsed logging level.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// maxDelay keeps delays within what a time.Duration can hold.
const maxDelay = float64(math.MaxInt64) / float64(time.Second)

// Validate checks every setting and returns all problems joined.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Macro) == "" {
		errs = append(errs, &ValidationError{Setting: "macro", Message: "must not be empty", Value: c.Macro})
	}

	switch c.Backend {
	case BackendLog, BackendScreen:
	default:
		errs = append(errs, &ValidationError{
			Setting: "backend",
			Message: fmt.Sprintf("must be %q or %q", BackendLog, BackendScreen),
			Value:   c.Backend,
		})
	}

	delays := []struct {
		name  string
		value float64
	}{
		{"playback.start_delay", c.Playback.StartDelay},
		{"playback.line_delay", c.Playback.LineDelay},
	}
	for _, d := range delays {
		if math.IsNaN(d.value) || d.value < 0 || d.value >= maxDelay {
			errs = append(errs, &ValidationError{Setting: d.name, Message: "must be a non-negative number of seconds", Value: d.value})
		}
	}

	if _, ok := logging.ParseLevel(c.Logging.Level); !ok {
		errs = append(errs, &ValidationError{
			Setting: "logging.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Logging.Level,
		})
	}

	return errors.Join(errs...)
}

// DefaultPath returns $XDG_CONFIG_HOME/keyplay/config.toml, or the
// platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keyplay", "config.toml")
}

// Load reads the config file at path on top of the defaults.
//
// If path is empty, DefaultPath is used and a missing file is not an
// error. An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return cfg, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := decode(path, data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// decode parses data into cfg by file extension. Unknown keys are errors.
func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			perr := &ParseError{Path: path, Message: err.Error(), Err: err}
			var derr *toml.DecodeError
			if errors.As(err, &derr) {
				perr.Line, perr.Column = derr.Position()
			}
			return perr
		}
		return nil

	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return &ParseError{Path: path, Message: err.Error(), Err: err}
		}
		return nil

	default:
		return fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, path)
	}
}
