// Package config provides the effective configuration for a hook
// invocation. It is loaded once at process start and read-only thereafter;
// handlers receive it by injection rather than through a global.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// LogDir is the directory holding the per-hook-type journal files.
	LogDir string `json:"log_dir" mapstructure:"log_dir"`

	// LogLevel is the transient (stderr) log level: debug, info, warn, error.
	LogLevel string `json:"log_level" mapstructure:"log_level"`

	Security   SecurityConfig   `json:"security" mapstructure:"security"`
	Limits     LimitsConfig     `json:"limits" mapstructure:"limits"`
	Timeouts   TimeoutsConfig   `json:"timeouts" mapstructure:"timeouts"`
	Commands   CommandsConfig   `json:"commands" mapstructure:"commands"`
	Completion CompletionConfig `json:"completion" mapstructure:"completion"`
	Speech     SpeechConfig     `json:"speech" mapstructure:"speech"`
}

// SecurityConfig selects the validator policy behavior.
type SecurityConfig struct {
	// Mode is "block" (default) or "log-only".
	Mode string `json:"mode" mapstructure:"mode"`
}

// LimitsConfig bounds input, output, and log sizes.
type LimitsConfig struct {
	MaxInputBytes    int64 `json:"max_input_bytes" mapstructure:"max_input_bytes"`
	MaxOutputBytes   int64 `json:"max_output_bytes" mapstructure:"max_output_bytes"`
	MaxLogEntries    int   `json:"max_log_entries" mapstructure:"max_log_entries"`
	MaxLogEntryBytes int   `json:"max_log_entry_bytes" mapstructure:"max_log_entry_bytes"`
}

// TimeoutsConfig bounds external command execution.
type TimeoutsConfig struct {
	// Command bounds the lint and test commands run by the stop hook.
	Command time.Duration `json:"command" mapstructure:"command"`
	// Completion bounds each AI-completion provider attempt.
	Completion time.Duration `json:"completion" mapstructure:"completion"`
	// Speech bounds each TTS provider attempt.
	Speech time.Duration `json:"speech" mapstructure:"speech"`
}

// CommandsConfig names the project lint and test commands run by the stop
// hook. Both are shell command strings.
type CommandsConfig struct {
	Lint string `json:"lint" mapstructure:"lint"`
	Test string `json:"test" mapstructure:"test"`
}

// CompletionConfig lists AI-completion provider commands in priority order.
// Each accepts a prompt on stdin and returns free text on stdout.
type CompletionConfig struct {
	Providers []string `json:"providers" mapstructure:"providers"`
}

// SpeechConfig lists TTS provider commands in priority order. Each accepts
// a message on stdin and signals success via exit code 0.
type SpeechConfig struct {
	Providers []string `json:"providers" mapstructure:"providers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogDir:   "logs",
		LogLevel: "info",
		Security: SecurityConfig{
			Mode: "block",
		},
		Limits: LimitsConfig{
			MaxInputBytes:    1 << 20,
			MaxOutputBytes:   1 << 20,
			MaxLogEntries:    1000,
			MaxLogEntryBytes: 64 * 1024,
		},
		Timeouts: TimeoutsConfig{
			Command:    120 * time.Second,
			Completion: 15 * time.Second,
			Speech:     10 * time.Second,
		},
		Commands: CommandsConfig{
			Lint: "nix develop -c lint",
			Test: "nix develop -c test",
		},
		Completion: CompletionConfig{
			Providers: nil,
		},
		Speech: SpeechConfig{
			Providers: []string{"tts_elevenlabs", "tts_openai", "tts_pyttsx3"},
		},
	}
}
