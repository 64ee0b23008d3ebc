// Package stats computes derived statistics from the append-only history.
// Everything here is pure: the same inputs always produce the same outputs,
// so the results are safe to recompute on every read.
package stats

import (
	"sort"

	"tomatoclock/internal/types"
)

// ComputeTodayStats counts completed work records for one date, total and
// per tag. Break records are never counted.
func ComputeTodayStats(history []types.HistoryDay, today string) types.TodayStats {
	total, byTag := countWorkRecords(history, today, today)
	return types.TodayStats{Total: total, ByTag: byTag}
}

// ComputeWeekStats counts completed work records over the inclusive
// [from, to] date window.
func ComputeWeekStats(history []types.HistoryDay, from, to string) types.WeekStats {
	total, byTag := countWorkRecords(history, from, to)
	return types.WeekStats{Total: total, ByTag: byTag}
}

// GoalProgressFor pairs the configured goals with the given completion
// counts. A goal of 0 is unset; callers must never derive a percentage
// from it.
func GoalProgressFor(settings types.Settings, todayTotal, weekTotal uint32) types.GoalProgress {
	return types.GoalProgress{
		DailyGoal:       settings.DailyGoal,
		DailyCompleted:  todayTotal,
		WeeklyGoal:      settings.WeeklyGoal,
		WeeklyCompleted: weekTotal,
	}
}

// countWorkRecords aggregates work records in the inclusive [from, to]
// window. Date keys are "YYYY-MM-DD" so lexicographic comparison is date
// comparison. Tag buckets come back sorted by tag for deterministic output.
func countWorkRecords(history []types.HistoryDay, from, to string) (uint32, []types.TagCount) {
	counts := make(map[string]uint32)
	var total uint32

	for _, day := range history {
		if day.Date < from || day.Date > to {
			continue
		}
		for _, r := range day.Records {
			if r.Phase != types.PhaseWork {
				continue
			}
			total++
			counts[r.Tag]++
		}
	}

	byTag := make([]types.TagCount, 0, len(counts))
	for tag, count := range counts {
		byTag = append(byTag, types.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(byTag, func(i, j int) bool { return byTag[i].Tag < byTag[j].Tag })

	return total, byTag
}
