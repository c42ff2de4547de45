package announce

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/conneroisu/claude-hooks/internal/config"
	"github.com/conneroisu/claude-hooks/internal/execx"
)

// ConsoleProvider is the name reported when no TTS provider succeeded and
// the message was printed instead.
const ConsoleProvider = "console"

// Speak announces message through the configured TTS provider chain: each
// provider command receives the message on stdin, success is exit code 0,
// and the first success wins. If every provider fails or none is installed,
// the message is printed to out. Returns the name of the provider used.
func Speak(ctx context.Context, cfg *config.Config, out io.Writer, message string) string {
	strategies := make([]Strategy[struct{}], 0, len(cfg.Speech.Providers))
	for _, command := range cfg.Speech.Providers {
		command := command
		if !execx.IsCommandAvailable(command) {
			log.Debug().Str("provider", command).Msg("TTS provider not installed, skipping")
			continue
		}
		strategies = append(strategies, Strategy[struct{}]{
			Name: command,
			Run: func(ctx context.Context) (struct{}, error) {
				return struct{}{}, runSpeechProvider(ctx, cfg, command, message)
			},
		})
	}

	_, name, err := First(ctx, strategies)
	if err != nil {
		fmt.Fprintln(out, message)
		return ConsoleProvider
	}

	log.Debug().Str("provider", name).Msg("Announced via TTS provider")
	return name
}

func runSpeechProvider(ctx context.Context, cfg *config.Config, command, message string) error {
	result, err := execx.RunArgs(ctx, []string{command}, execx.Options{
		Timeout:        cfg.Timeouts.Speech,
		MaxOutputBytes: cfg.Limits.MaxOutputBytes,
		Stdin:          strings.NewReader(message),
	})
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("tts provider %s exited with code %d", command, result.ExitCode)
	}
	return nil
}
