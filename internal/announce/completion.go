package announce

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/conneroisu/claude-hooks/internal/config"
	"github.com/conneroisu/claude-hooks/internal/execx"
)

// completionPrompt is fed to each AI-completion provider on stdin.
const completionPrompt = "Write one short, friendly sentence announcing that a coding task just finished. Output only the sentence."

// fallbackMessages are used when no AI-completion provider is configured or
// all of them fail.
var fallbackMessages = []string{
	"Work complete!",
	"All done!",
	"Task finished!",
	"Ready for the next task!",
}

// CompletionMessage composes a human-readable completion message by trying
// the configured AI-completion CLI commands in priority order, falling back
// to a fixed internal message when the chain is exhausted.
func CompletionMessage(ctx context.Context, cfg *config.Config) string {
	strategies := make([]Strategy[string], 0, len(cfg.Completion.Providers))
	for _, command := range cfg.Completion.Providers {
		command := command
		strategies = append(strategies, Strategy[string]{
			Name: command,
			Run: func(ctx context.Context) (string, error) {
				return runCompletionProvider(ctx, cfg, command)
			},
		})
	}

	message, _, err := First(ctx, strategies)
	if err != nil {
		return fallbackMessages[rand.Intn(len(fallbackMessages))]
	}
	return message
}

func runCompletionProvider(ctx context.Context, cfg *config.Config, command string) (string, error) {
	result, err := execx.Run(ctx, command, execx.Options{
		Timeout:        cfg.Timeouts.Completion,
		MaxOutputBytes: cfg.Limits.MaxOutputBytes,
		Stdin:          strings.NewReader(completionPrompt),
	})
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("completion provider exited with code %d", result.ExitCode)
	}

	message := strings.TrimSpace(result.Stdout)
	if message == "" {
		return "", fmt.Errorf("completion provider produced no output")
	}
	return message, nil
}
