package stats

import (
	"fmt"
	"sort"
	"time"

	"tomatoclock/internal/types"
)

// unspecifiedReason is the bucket for interruptions recorded without a reason.
const unspecifiedReason = "Not specified"

// InterruptionStats summarizes abandoned work phases over a date window.
type InterruptionStats struct {
	Total             uint32        `json:"total"`
	DailyAverage      float64       `json:"dailyAverage"`
	WeeklyAverage     float64       `json:"weeklyAverage"`
	HourlyCounts      []uint32      `json:"hourlyCounts"`
	ReasonCounts      []ReasonCount `json:"reasonCounts"`
	InterruptionRate  float64       `json:"interruptionRate"`  // interruptions / (completed + interruptions)
	AvgFocusedSeconds float64       `json:"avgFocusedSeconds"` // seconds focused before giving up
}

// ReasonCount is one slice of the reason distribution.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  uint32 `json:"count"`
}

// ComputeInterruptionStats aggregates interruptions inside the inclusive
// [from, to] window. Completed work counts from history feed the rate.
func ComputeInterruptionStats(data *types.AppData, from, to string) InterruptionStats {
	hourly := make([]uint32, 24)
	reasons := make(map[string]uint32)
	days := make(map[string]struct{})
	weeks := make(map[string]struct{})

	var total uint32
	var focusedSum uint64

	for _, day := range data.Interruptions {
		if day.Date < from || day.Date > to {
			continue
		}
		if len(day.Records) == 0 {
			continue
		}
		days[day.Date] = struct{}{}
		if wk, ok := isoWeekKey(day.Date); ok {
			weeks[wk] = struct{}{}
		}

		for _, r := range day.Records {
			total++
			focusedSum += r.FocusedSeconds
			hourly[timestampHour(r.Timestamp)]++

			reason := r.Reason
			if reason == "" {
				reason = unspecifiedReason
			}
			reasons[reason]++
		}
	}

	var completed uint32
	for _, day := range data.History {
		if day.Date < from || day.Date > to {
			continue
		}
		for _, r := range day.Records {
			if r.Phase == types.PhaseWork {
				completed++
			}
		}
	}

	reasonCounts := make([]ReasonCount, 0, len(reasons))
	for reason, count := range reasons {
		reasonCounts = append(reasonCounts, ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(reasonCounts, func(i, j int) bool {
		if reasonCounts[i].Count != reasonCounts[j].Count {
			return reasonCounts[i].Count > reasonCounts[j].Count
		}
		return reasonCounts[i].Reason < reasonCounts[j].Reason
	})

	stats := InterruptionStats{
		Total:        total,
		HourlyCounts: hourly,
		ReasonCounts: reasonCounts,
	}
	if n := len(days); n > 0 {
		stats.DailyAverage = float64(total) / float64(n)
	}
	if n := len(weeks); n > 0 {
		stats.WeeklyAverage = float64(total) / float64(n)
	}
	if denom := completed + total; denom > 0 {
		stats.InterruptionRate = float64(total) / float64(denom)
	}
	if total > 0 {
		stats.AvgFocusedSeconds = float64(focusedSum) / float64(total)
	}
	return stats
}

// isoWeekKey maps a "YYYY-MM-DD" date to its ISO year-week bucket.
func isoWeekKey(date string) (string, bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", false
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week), true
}

// timestampHour extracts the local hour from an RFC 3339 timestamp,
// defaulting to 0 when it does not parse.
func timestampHour(ts string) int {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return 0
	}
	return t.Hour()
}
