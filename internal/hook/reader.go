package hook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DefaultMaxInputBytes is the ceiling on how much event data a single
// invocation will read from stdin.
const DefaultMaxInputBytes = 1 << 20 // 1 MiB

var (
	// ErrInputTooLarge is returned when stdin exceeds the configured byte ceiling.
	ErrInputTooLarge = errors.New("input exceeds maximum size")
	// ErrEmptyInput is returned when stdin contains nothing but whitespace.
	ErrEmptyInput = errors.New("empty input")
	// ErrMalformedJSON is returned when stdin is not well-formed JSON.
	ErrMalformedJSON = errors.New("malformed JSON input")
)

// ReadPayload reads r to end-of-stream, enforcing maxBytes. It never buffers
// more than maxBytes+1 bytes. A non-positive maxBytes falls back to
// DefaultMaxInputBytes.
func ReadPayload(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxInputBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w (limit %d bytes)", ErrInputTooLarge, maxBytes)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	return data, nil
}

// Decode reads a bounded JSON payload from r and unmarshals it into T.
// Absent fields are left at their zero values; callers treat them
// defensively. No schema validation happens beyond JSON well-formedness.
func Decode[T any](r io.Reader, maxBytes int64) (*T, error) {
	data, err := ReadPayload(r, maxBytes)
	if err != nil {
		return nil, err
	}

	var event T
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return &event, nil
}
