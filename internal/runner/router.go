package runner

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
)

// Router maps hook-type names to their handlers and normalizes uncaught
// failures into the same Result shape. It never panics outward.
type Router struct {
	rt       *Runtime
	handlers map[string]HandlerFunc
}

// NewRouter builds the fixed hook-type mapping around one invocation's
// runtime.
func NewRouter(rt *Runtime) *Router {
	return &Router{
		rt: rt,
		handlers: map[string]HandlerFunc{
			"notification":       handleNotification,
			"pre_tool_use":       handlePreToolUse,
			"post_tool_use":      handlePostToolUse,
			"user_prompt_submit": handleUserPromptSubmit,
			"stop":               handleStop,
			"subagent_stop":      handleSubagentStop,
		},
	}
}

// HookTypes returns the known hook-type names, sorted.
func (r *Router) HookTypes() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch routes a hook-type name to its handler, timing the execution and
// recording a metrics record. A panicking handler yields a failure Result.
func (r *Router) Dispatch(ctx context.Context, hookType string) (res Result) {
	handler, ok := r.handlers[hookType]
	if !ok {
		return NewResult(false, fmt.Sprintf("unknown hook type: %q (use --list to see available hooks)", hookType), false)
	}

	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			log.Error().Any("panic", p).Str("hook", hookType).Msg("Handler panicked")
			res = NewResult(false, fmt.Sprintf("%s: internal error: %v", hookType, p), false)
		}

		var after runtime.MemStats
		runtime.ReadMemStats(&after)
		r.record(metricRecord{
			InvocationID: r.rt.InvocationID,
			HookType:     hookType,
			DurationMS:   float64(time.Since(start).Microseconds()) / 1000.0,
			AllocBytes:   after.TotalAlloc - before.TotalAlloc,
			Success:      res.Success,
			Blocked:      res.Blocked,
		})
	}()

	res = handler(ctx, r.rt)
	return res
}

// record persists one metrics record. Metrics are best-effort: a failed
// append only logs a warning.
func (r *Router) record(m metricRecord) {
	if err := r.rt.Journal.Append(metricsLog, m); err != nil {
		log.Warn().Err(err).Msg("Failed to record hook metrics")
	}
}
