package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for configuration environment variables, e.g.
// CLAUDE_HOOKS_SECURITY_MODE=log-only or CLAUDE_HOOKS_LOG_DIR=/tmp/logs.
const EnvPrefix = "CLAUDE_HOOKS"

// LoadOptions customize Load.
type LoadOptions struct {
	// ConfigFile forces a specific config file instead of the search path.
	ConfigFile string
}

// Load builds the effective configuration from defaults, an optional
// claude-hooks.yaml, and CLAUDE_HOOKS_* environment variables, in
// increasing precedence.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("claude-hooks")
		v.SetConfigType("yaml")
		v.AddConfigPath(".claude")
		v.AddConfigPath("$HOME/.config/claude-hooks")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the handlers cannot honor.
func Validate(cfg *Config) error {
	switch cfg.Security.Mode {
	case "block", "log-only":
	default:
		return fmt.Errorf("invalid security.mode %q (want block or log-only)", cfg.Security.Mode)
	}
	if cfg.LogDir == "" {
		return fmt.Errorf("log_dir cannot be empty")
	}
	if cfg.Limits.MaxInputBytes <= 0 || cfg.Limits.MaxOutputBytes <= 0 {
		return fmt.Errorf("size limits must be positive")
	}
	if cfg.Limits.MaxLogEntries <= 0 || cfg.Limits.MaxLogEntryBytes <= 0 {
		return fmt.Errorf("log limits must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log_dir", cfg.LogDir)
	v.SetDefault("log_level", cfg.LogLevel)

	v.SetDefault("security.mode", cfg.Security.Mode)

	v.SetDefault("limits.max_input_bytes", cfg.Limits.MaxInputBytes)
	v.SetDefault("limits.max_output_bytes", cfg.Limits.MaxOutputBytes)
	v.SetDefault("limits.max_log_entries", cfg.Limits.MaxLogEntries)
	v.SetDefault("limits.max_log_entry_bytes", cfg.Limits.MaxLogEntryBytes)

	v.SetDefault("timeouts.command", cfg.Timeouts.Command)
	v.SetDefault("timeouts.completion", cfg.Timeouts.Completion)
	v.SetDefault("timeouts.speech", cfg.Timeouts.Speech)

	v.SetDefault("commands.lint", cfg.Commands.Lint)
	v.SetDefault("commands.test", cfg.Commands.Test)

	v.SetDefault("completion.providers", cfg.Completion.Providers)
	v.SetDefault("speech.providers", cfg.Speech.Providers)
}
