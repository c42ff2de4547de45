// Package execx runs external commands with a bounded timeout, bounded
// captured output, and guaranteed child cleanup.
package execx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultTimeout bounds a command that specifies none.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxOutputBytes caps each captured stream.
	DefaultMaxOutputBytes = 1 << 20 // 1 MiB per stream
	// MaxCommandLength bounds the command string itself.
	MaxCommandLength = 100 * 1024

	// TruncationMarker is appended to a stream cut at its byte ceiling.
	TruncationMarker = "\n... [output truncated]"

	// killGracePeriod is how long Wait may linger after the context fires
	// before the child's pipes are force-closed.
	killGracePeriod = 5 * time.Second
)

var (
	// ErrTimeout is returned when the child did not exit within the timeout.
	ErrTimeout = errors.New("command timed out")
	// ErrCommandTooLong is returned for command strings over MaxCommandLength.
	ErrCommandTooLong = errors.New("command too long")
	// ErrSuspiciousCommand is returned for command strings that cannot be a
	// legitimate shell command, such as ones embedding NUL bytes.
	ErrSuspiciousCommand = errors.New("suspicious command pattern")
)

// Result holds the captured output of a finished command. A non-zero
// ExitCode is a normal outcome, not an error.
type Result struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`
}

// Options bound a single command execution.
type Options struct {
	Timeout        time.Duration
	MaxOutputBytes int64
	Dir            string
	Stdin          io.Reader
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.MaxOutputBytes <= 0 {
		o.MaxOutputBytes = DefaultMaxOutputBytes
	}
	return o
}

// Run executes a command string through the shell. Use RunArgs instead
// whenever the command has no dynamic untrusted components and needs no
// shell features.
func Run(ctx context.Context, command string, opts Options) (*Result, error) {
	if len(command) > MaxCommandLength {
		return nil, fmt.Errorf("%w (%d bytes)", ErrCommandTooLong, len(command))
	}
	if strings.ContainsRune(command, 0) {
		return nil, fmt.Errorf("%w: embedded NUL byte", ErrSuspiciousCommand)
	}
	return RunArgs(ctx, []string{"sh", "-c", command}, opts)
}

// RunArgs executes a pre-split argument vector with no shell interpretation.
// The child process is killed when the timeout expires or ctx is canceled;
// it is never left running past the call.
func RunArgs(ctx context.Context, argv []string, opts Options) (*Result, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argument vector")
	}
	opts = opts.withDefaults()

	runCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	stdout := &capWriter{limit: opts.MaxOutputBytes}
	stderr := &capWriter{limit: opts.MaxOutputBytes}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = killGracePeriod

	log.Debug().Str("cmd", argv[0]).Dur("timeout", opts.Timeout).Msg("Running command")

	err := cmd.Run()
	result := &Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if runCtx.Err() == context.DeadlineExceeded {
		return result, fmt.Errorf("%w after %s: %s", ErrTimeout, opts.Timeout, argv[0])
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("failed to run %s: %w", argv[0], err)
	}
	return result, nil
}

// Quote wraps s in single quotes for safe interpolation into a shell
// command line, escaping embedded single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// IsCommandAvailable checks if a command is available on PATH.
func IsCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// capWriter buffers up to limit bytes and silently drops the rest, marking
// the stream as truncated. Write never returns an error so the child keeps
// running even after its output is capped.
type capWriter struct {
	buf       strings.Builder
	limit     int64
	truncated bool
}

func (w *capWriter) Write(p []byte) (int, error) {
	if w.truncated {
		return len(p), nil
	}
	remain := w.limit - int64(w.buf.Len())
	if int64(len(p)) > remain {
		w.buf.Write(p[:remain])
		w.truncated = true
		return len(p), nil
	}
	w.buf.Write(p)
	return len(p), nil
}

func (w *capWriter) String() string {
	if w.truncated {
		return w.buf.String() + TruncationMarker
	}
	return w.buf.String()
}
