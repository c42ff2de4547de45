// Command claude-hooks routes Claude Code hook events to their handlers.
// It is registered in Claude Code's settings as the command for each hook
// and receives the event payload as JSON on stdin.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/conneroisu/claude-hooks/internal/config"
	"github.com/conneroisu/claude-hooks/internal/journal"
	"github.com/conneroisu/claude-hooks/internal/runner"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	// Setup logger. Hooks are normally invoked by the host with stderr
	// redirected, and that path must emit single-line JSON records; the
	// pretty console format is reserved for a human running the binary.
	log.Logger = newLogger(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))

	defaultHelpPrinter := cli.HelpPrinter
	cli.HelpPrinter = func(w io.Writer, templ string, data any) {
		defaultHelpPrinter(w, templ, data)
		if cfg, err := config.Load(config.LoadOptions{}); err == nil {
			fmt.Fprint(w, effectiveConfigHelp(cfg))
		}
	}

	app := &cli.Command{
		Name:  "claude-hooks",
		Usage: "Claude Code hook dispatcher - validate, log, and act on hook events",
		Description: `claude-hooks reads a JSON hook event from stdin and dispatches it to the
handler for the given hook type.

Available hook types:
   notification         log the notification event
   pre_tool_use         run security checks against the requested tool call
   post_tool_use        log the tool result (analytics sink)
   user_prompt_submit   log the submitted prompt
   stop                 log, optionally copy the transcript, run lint/tests, announce
   subagent_stop        log, optionally copy the transcript, announce

Exit codes: 0 success, 1 failure, 2 blocked by policy.
Use --config for the effective configuration as plain JSON.`,
		Version:   fmt.Sprintf("%s (rev: %s)", version, revision),
		ArgsUsage: "<hook-type>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "chat",
				Usage: "Copy the chat transcript into the chat log (stop/subagent_stop)",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List available hook types",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print aggregated per-hook performance metrics as JSON",
			},
			&cli.BoolFlag{
				Name:  "config",
				Usage: "Print the effective configuration as JSON",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable verbose logging",
			},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		var coder cli.ExitCoder
		if errors.As(err, &coder) {
			if msg := err.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("configuration error: %v", err), 1)
	}
	setLogLevel(cfg.LogLevel, c.Bool("verbose"))

	j := journal.New(cfg.LogDir, cfg.Limits.MaxLogEntries, cfg.Limits.MaxLogEntryBytes)
	rt := &runner.Runtime{
		Config:       cfg,
		Journal:      j,
		Stdin:        os.Stdin,
		Out:          os.Stdout,
		CopyChat:     c.Bool("chat"),
		InvocationID: uuid.NewString(),
	}
	router := runner.NewRouter(rt)

	switch {
	case c.Bool("list"):
		fmt.Println("Available hook types:")
		for _, name := range router.HookTypes() {
			fmt.Printf("  - %s\n", name)
		}
		return nil

	case c.Bool("stats"):
		report, err := runner.Stats(j)
		if err != nil {
			return cli.Exit(fmt.Sprintf("failed to aggregate metrics: %v", err), 1)
		}
		return printJSON(report)

	case c.Bool("config"):
		return printJSON(cfg)
	}

	hookType := c.Args().First()
	if hookType == "" {
		return cli.Exit("no hook type specified (use --list to see available hooks)", 1)
	}

	result := router.Dispatch(ctx, hookType)

	switch {
	case result.Blocked:
		fmt.Fprintf(os.Stderr, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint("BLOCKED:"), result.Message)
	case !result.Success && result.Message != "":
		fmt.Fprintln(os.Stderr, result.Message)
	}

	if result.ExitCode != 0 {
		return cli.Exit("", result.ExitCode)
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to marshal output: %v", err), 1)
	}
	fmt.Println(string(data))
	return nil
}

// newLogger writes pretty console output when stderr is a terminal and
// single-line JSON records otherwise.
func newLogger(w io.Writer, terminal bool) zerolog.Logger {
	if terminal {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// effectiveConfigHelp renders the configuration section appended to --help.
func effectiveConfigHelp(cfg *config.Config) string {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\nEFFECTIVE CONFIGURATION:\n%s\n", data)
}

func setLogLevel(configured string, verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	level, err := zerolog.ParseLevel(configured)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
