// Package config loads keyplay settings.
//
// Settings are layered, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A config file, TOML or YAML by extension (Load)
//  3. KEYPLAY_* environment variables (ApplyEnv)
//  4. Command-line flags, applied by the caller
//
// Validate must be called after the last layer is applied.
//
// # Configuration Files
//
// The default file is config.toml under the user config directory:
//
//	# ~/.config/keyplay/config.toml
//	macro = "m/farm.pym"
//	backend = "screen"
//	report = "last-run.json"
//
//	[playback]
//	start_delay = 3.0
//	line_delay = 0.05
//	restart_delay = true
//	normalize = false
//
//	[logging]
//	level = "debug"
//
// Unknown keys are rejected so that typos surface as errors.
//
// # Environment
//
// KEYPLAY_MACRO, KEYPLAY_BACKEND, KEYPLAY_REPORT, KEYPLAY_LOG_LEVEL,
// KEYPLAY_START_DELAY, KEYPLAY_LINE_DELAY, KEYPLAY_RESTART_DELAY and
// KEYPLAY_NORMALIZE override the matching file settings.
//
// # Error Handling
//
//   - ErrFileNotFound: an explicitly named file does not exist
//   - ErrUnsupportedFormat: the file extension is not .toml, .yaml or .yml
//   - ErrValidationFailed: wrapped by every ValidationError
//   - ParseError: the file could not be decoded; carries line and column
package config
