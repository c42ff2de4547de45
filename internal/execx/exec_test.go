package execx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CapturesOutput(t *testing.T) {
	result, err := Run(context.Background(), "printf out; printf err >&2", Options{})
	require.NoError(t, err)
	assert.Equal(t, "out", result.Stdout)
	assert.Equal(t, "err", result.Stderr)
	assert.Equal(t, 0, result.ExitCode)
}

func TestRun_NonZeroExitIsNotAnError(t *testing.T) {
	result, err := Run(context.Background(), "exit 3", Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.ExitCode)
}

func TestRun_StdinIsForwarded(t *testing.T) {
	result, err := Run(context.Background(), "cat", Options{Stdin: strings.NewReader("hello")})
	require.NoError(t, err)
	assert.Equal(t, "hello", result.Stdout)
}

func TestRun_TruncatesOutput(t *testing.T) {
	result, err := Run(context.Background(), "printf 0123456789", Options{MaxOutputBytes: 4})
	require.NoError(t, err)
	assert.Equal(t, "0123"+TruncationMarker, result.Stdout)
}

func TestRun_Timeout(t *testing.T) {
	start := time.Now()
	_, err := Run(context.Background(), "sleep 2", Options{Timeout: 500 * time.Millisecond})
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, elapsed, 1500*time.Millisecond, "timed-out command must not run to completion")
}

func TestRun_CommandTooLong(t *testing.T) {
	_, err := Run(context.Background(), strings.Repeat("a", MaxCommandLength+1), Options{})
	require.ErrorIs(t, err, ErrCommandTooLong)
}

func TestRun_RejectsNULByte(t *testing.T) {
	_, err := Run(context.Background(), "echo hi\x00; rm x", Options{})
	require.ErrorIs(t, err, ErrSuspiciousCommand)
}

func TestRunArgs_NoShellInterpretation(t *testing.T) {
	result, err := RunArgs(context.Background(), []string{"echo", "$HOME", "&&", "ls"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "$HOME && ls\n", result.Stdout)
}

func TestRunArgs_EmptyVector(t *testing.T) {
	_, err := RunArgs(context.Background(), nil, Options{})
	require.Error(t, err)
}

func TestRunArgs_SpawnErrorIsReported(t *testing.T) {
	_, err := RunArgs(context.Background(), []string{"definitely-not-a-real-binary-xyz"}, Options{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"with space", "'with space'"},
		{"it's", `'it'\''s'`},
		{"", "''"},
		{"$HOME; rm -rf /", `'$HOME; rm -rf /'`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Quote(tt.in))
	}
}

func TestCapWriter_ExactLimit(t *testing.T) {
	w := &capWriter{limit: 5}
	n, err := w.Write([]byte("12345"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "12345", w.String(), "output at exactly the limit is not truncated")

	_, _ = w.Write([]byte("6"))
	assert.Equal(t, "12345"+TruncationMarker, w.String())
}
