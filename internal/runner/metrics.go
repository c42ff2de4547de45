package runner

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/conneroisu/claude-hooks/internal/journal"
)

// metricsLog is the journal file holding one record per dispatched hook.
// Each invocation is a short-lived process, so metrics must be persisted
// for --stats to see anything.
const metricsLog = "metrics"

type metricRecord struct {
	InvocationID string  `json:"invocation_id"`
	HookType     string  `json:"hook_type"`
	DurationMS   float64 `json:"duration_ms"`
	AllocBytes   uint64  `json:"alloc_bytes"`
	Success      bool    `json:"success"`
	Blocked      bool    `json:"blocked"`
}

// HookStats aggregates the metrics records of one hook type.
type HookStats struct {
	Count         int     `json:"count"`
	Failures      int     `json:"failures"`
	Blocked       int     `json:"blocked"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
	MaxDurationMS float64 `json:"max_duration_ms"`
}

// StatsReport is the --stats output shape.
type StatsReport struct {
	Total   HookStats            `json:"total"`
	PerHook map[string]HookStats `json:"per_hook"`
}

// Stats aggregates the persisted metrics journal. Records that no longer
// parse are skipped with a warning rather than failing the report.
func Stats(j *journal.Journal) (*StatsReport, error) {
	entries, err := j.Read(metricsLog)
	if err != nil {
		return nil, err
	}

	report := &StatsReport{PerHook: make(map[string]HookStats)}
	totalDuration := 0.0
	perHookDuration := make(map[string]float64)

	for _, entry := range entries {
		var m metricRecord
		if err := json.Unmarshal(entry.Data, &m); err != nil {
			log.Warn().Err(err).Msg("Skipping unparseable metrics record")
			continue
		}

		hs := report.PerHook[m.HookType]
		hs.Count++
		if !m.Success {
			hs.Failures++
		}
		if m.Blocked {
			hs.Blocked++
		}
		if m.DurationMS > hs.MaxDurationMS {
			hs.MaxDurationMS = m.DurationMS
		}
		perHookDuration[m.HookType] += m.DurationMS
		report.PerHook[m.HookType] = hs

		report.Total.Count++
		if !m.Success {
			report.Total.Failures++
		}
		if m.Blocked {
			report.Total.Blocked++
		}
		if m.DurationMS > report.Total.MaxDurationMS {
			report.Total.MaxDurationMS = m.DurationMS
		}
		totalDuration += m.DurationMS
	}

	for name, hs := range report.PerHook {
		hs.AvgDurationMS = perHookDuration[name] / float64(hs.Count)
		report.PerHook[name] = hs
	}
	if report.Total.Count > 0 {
		report.Total.AvgDurationMS = totalDuration / float64(report.Total.Count)
	}
	return report, nil
}
