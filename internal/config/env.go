package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of every environment variable keyplay reads.
const EnvPrefix = "KEYPLAY_"

// LookupFunc looks up an environment variable.
type LookupFunc func(name string) (string, bool)

// envSetting applies one environment variable to a Config.
type envSetting struct {
	setting string
	apply   func(c *Config, value string) error
}

var envMapping = map[string]envSetting{
	"KEYPLAY_MACRO":         {"macro", setString(func(c *Config) *string { return &c.Macro })},
	"KEYPLAY_BACKEND":       {"backend", setString(func(c *Config) *string { return &c.Backend })},
	"KEYPLAY_REPORT":        {"report", setString(func(c *Config) *string { return &c.Report })},
	"KEYPLAY_LOG_LEVEL":     {"logging.level", setString(func(c *Config) *string { return &c.Logging.Level })},
	"KEYPLAY_START_DELAY":   {"playback.start_delay", setFloat(func(c *Config) *float64 { return &c.Playback.StartDelay })},
	"KEYPLAY_LINE_DELAY":    {"playback.line_delay", setFloat(func(c *Config) *float64 { return &c.Playback.LineDelay })},
	"KEYPLAY_RESTART_DELAY": {"playback.restart_delay", setBool(func(c *Config) *bool { return &c.Playback.RestartDelay })},
	"KEYPLAY_NORMALIZE":     {"playback.normalize", setBool(func(c *Config) *bool { return &c.Playback.Normalize })},
}

// ApplyEnv overrides settings from KEYPLAY_* environment variables.
// A nil lookup reads the process environment. Empty values are applied
// like any other value.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for name, s := range envMapping {
		value, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.apply(c, strings.TrimSpace(value)); err != nil {
			return &ValidationError{Setting: s.setting, Message: "invalid value in " + name, Value: value}
		}
	}
	return nil
}

func setString(field func(*Config) *string) func(*Config, string) error {
	return func(c *Config, v string) error {
		*field(c) = v
		return nil
	}
}

func setFloat(field func(*Config) *float64) func(*Config, string) error {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*field(c) = f
		return nil
	}
}

func setBool(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}
