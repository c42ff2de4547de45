// Package announce produces the spoken completion message for the stop
// hooks: an AI-completion provider chain composes the message and a TTS
// provider chain speaks it, each tried in priority order with short
// timeouts. Provider failures are never fatal.
package announce

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
)

// ErrAllStrategiesFailed is returned when every strategy in a chain failed.
var ErrAllStrategiesFailed = errors.New("all strategies failed")

// Strategy is one attempt in an ordered fallback chain.
type Strategy[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// First tries each strategy in order and returns the first successful value
// together with the name of the strategy that produced it. Individual
// failures are logged and swallowed.
func First[T any](ctx context.Context, strategies []Strategy[T]) (T, string, error) {
	var zero T
	for _, s := range strategies {
		value, err := s.Run(ctx)
		if err != nil {
			log.Debug().Err(err).Str("strategy", s.Name).Msg("Strategy failed, trying next")
			continue
		}
		return value, s.Name, nil
	}
	return zero, "", ErrAllStrategiesFailed
}
