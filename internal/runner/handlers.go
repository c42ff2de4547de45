package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/conneroisu/claude-hooks/internal/announce"
	"github.com/conneroisu/claude-hooks/internal/config"
	"github.com/conneroisu/claude-hooks/internal/execx"
	"github.com/conneroisu/claude-hooks/internal/hook"
	"github.com/conneroisu/claude-hooks/internal/journal"
	"github.com/conneroisu/claude-hooks/internal/security"
)

// Runtime carries everything a handler needs for one invocation. It is
// constructed once at process start and read-only thereafter.
type Runtime struct {
	Config       *config.Config
	Journal      *journal.Journal
	Stdin        io.Reader
	Out          io.Writer
	CopyChat     bool
	InvocationID string
}

// HandlerFunc is a single-shot, stateless hook handler. Handlers never
// return errors: every failure is folded into the Result.
type HandlerFunc func(ctx context.Context, rt *Runtime) Result

// subagentDonePhrase is announced when a subagent finishes.
const subagentDonePhrase = "Subagent complete"

func handleNotification(ctx context.Context, rt *Runtime) Result {
	ev, err := hook.Decode[hook.NotificationEvent](rt.Stdin, rt.Config.Limits.MaxInputBytes)
	if err != nil {
		return NewResult(false, fmt.Sprintf("notification: %v", err), false)
	}
	if err := rt.Journal.Append("notification", ev); err != nil {
		return NewResult(false, fmt.Sprintf("notification: %v", err), false)
	}
	return NewResult(true, "", false)
}

func handlePreToolUse(ctx context.Context, rt *Runtime) Result {
	ev, err := hook.Decode[hook.PreToolUseEvent](rt.Stdin, rt.Config.Limits.MaxInputBytes)
	if err != nil {
		return NewResult(false, fmt.Sprintf("pre_tool_use: %v", err), false)
	}
	if err := rt.Journal.Append("pre_tool_use", ev); err != nil {
		return NewResult(false, fmt.Sprintf("pre_tool_use: %v", err), false)
	}

	call := hook.ClassifyTool(ev.ToolName, ev.ToolInput)
	decision := security.Check(call)
	if decision.Allowed {
		return NewResult(true, "", false)
	}

	if security.Mode(rt.Config.Security.Mode) == security.ModeLogOnly {
		log.Warn().
			Str("tool", ev.ToolName).
			Str("reason", decision.Reason).
			Str("policy_version", security.PolicyVersion).
			Msg("Security finding (log-only mode, allowing)")
		return NewResult(true, "", false)
	}
	return NewResult(false, decision.Reason, true)
}

func handlePostToolUse(ctx context.Context, rt *Runtime) Result {
	ev, err := hook.Decode[hook.PostToolUseEvent](rt.Stdin, rt.Config.Limits.MaxInputBytes)
	if err != nil {
		return NewResult(false, fmt.Sprintf("post_tool_use: %v", err), false)
	}
	if err := rt.Journal.Append("post_tool_use", ev); err != nil {
		return NewResult(false, fmt.Sprintf("post_tool_use: %v", err), false)
	}
	return NewResult(true, "", false)
}

func handleUserPromptSubmit(ctx context.Context, rt *Runtime) Result {
	ev, err := hook.Decode[hook.UserPromptSubmitEvent](rt.Stdin, rt.Config.Limits.MaxInputBytes)
	if err != nil {
		return NewResult(false, fmt.Sprintf("user_prompt_submit: %v", err), false)
	}
	if err := rt.Journal.Append("user_prompt_submit", ev); err != nil {
		return NewResult(false, fmt.Sprintf("user_prompt_submit: %v", err), false)
	}
	return NewResult(true, "", false)
}

// handleStop logs the event, optionally copies the transcript, runs the
// project lint and test commands concurrently, and announces a completion
// message. Either check failing marks the result blocked so the calling
// system knows lint or tests failed.
func handleStop(ctx context.Context, rt *Runtime) Result {
	ev, err := hook.Decode[hook.StopEvent](rt.Stdin, rt.Config.Limits.MaxInputBytes)
	if err != nil {
		return NewResult(false, fmt.Sprintf("stop: %v", err), false)
	}
	if err := rt.Journal.Append("stop", ev); err != nil {
		return NewResult(false, fmt.Sprintf("stop: %v", err), false)
	}

	if rt.CopyChat {
		copyTranscript(rt, "chat", &ev.Event, "stop")
	}

	var lintFailure, testFailure string
	g := new(errgroup.Group)
	g.Go(func() error {
		lintFailure = runCheck(ctx, rt.Config, "lint", rt.Config.Commands.Lint)
		return nil
	})
	g.Go(func() error {
		testFailure = runCheck(ctx, rt.Config, "test", rt.Config.Commands.Test)
		return nil
	})
	_ = g.Wait()

	message := announce.CompletionMessage(ctx, rt.Config)
	announce.Speak(ctx, rt.Config, rt.Out, message)

	var failures []string
	if lintFailure != "" {
		failures = append(failures, lintFailure)
	}
	if testFailure != "" {
		failures = append(failures, testFailure)
	}
	if len(failures) > 0 {
		return NewResult(false, strings.Join(failures, "; "), true)
	}
	return NewResult(true, message, false)
}

// handleSubagentStop mirrors handleStop's transcript copy but runs no
// checks and announces a fixed phrase.
func handleSubagentStop(ctx context.Context, rt *Runtime) Result {
	ev, err := hook.Decode[hook.SubagentStopEvent](rt.Stdin, rt.Config.Limits.MaxInputBytes)
	if err != nil {
		return NewResult(false, fmt.Sprintf("subagent_stop: %v", err), false)
	}
	if err := rt.Journal.Append("subagent_stop", ev); err != nil {
		return NewResult(false, fmt.Sprintf("subagent_stop: %v", err), false)
	}

	if rt.CopyChat {
		copyTranscript(rt, "subagent_chat", &ev.Event, "subagent_stop")
	}

	announce.Speak(ctx, rt.Config, rt.Out, subagentDonePhrase)
	return NewResult(true, "", false)
}

// runCheck runs one project command and returns a non-empty failure
// description when it did not pass.
func runCheck(ctx context.Context, cfg *config.Config, name, command string) string {
	if command == "" {
		return ""
	}
	result, err := execx.Run(ctx, command, execx.Options{
		Timeout:        cfg.Timeouts.Command,
		MaxOutputBytes: cfg.Limits.MaxOutputBytes,
	})
	if err != nil {
		return fmt.Sprintf("%s failed: %v", name, err)
	}
	if result.ExitCode != 0 {
		log.Warn().Str("check", name).Int("exit_code", result.ExitCode).Str("stderr", result.Stderr).Msg("Project check failed")
		return fmt.Sprintf("%s failed with exit code %d", name, result.ExitCode)
	}
	log.Debug().Str("check", name).Msg("Project check passed")
	return ""
}

// transcriptContentLimit keeps a copied transcript well under the journal's
// per-entry ceiling.
const transcriptContentLimit = 32 * 1024

// copyTranscript appends the event's transcript content plus source
// metadata to a dedicated chat log. A missing or unreadable transcript logs
// a warning and never fails the hook.
func copyTranscript(rt *Runtime, logName string, ev *hook.Event, source string) {
	if ev.TranscriptPath == "" {
		log.Warn().Msg("No transcript path in event, skipping transcript copy")
		return
	}

	data, err := os.ReadFile(ev.TranscriptPath)
	if err != nil {
		log.Warn().Err(err).Str("path", ev.TranscriptPath).Msg("Failed to read transcript, skipping copy")
		return
	}

	content := string(data)
	if len(content) > transcriptContentLimit {
		content = content[:transcriptContentLimit] + execx.TruncationMarker
	}

	entry := map[string]any{
		"session_id":      ev.SessionID,
		"transcript_path": ev.TranscriptPath,
		"source":          source,
		"content":         content,
	}
	if err := rt.Journal.Append(logName, entry); err != nil {
		log.Warn().Err(err).Str("log", logName).Msg("Failed to append transcript copy")
	}
}
