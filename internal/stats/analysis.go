package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"tomatoclock/internal/types"
)

// FocusAnalysis is the distribution data behind the analysis charts.
type FocusAnalysis struct {
	// HourlyCounts buckets completions by start hour, 0-23.
	HourlyCounts []uint32 `json:"hourlyCounts"`
	// PeriodCounts buckets by period of day: 0-6, 6-12, 12-18, 18-24.
	PeriodCounts []uint32 `json:"periodCounts"`
	// WeekdayCounts buckets by weekday, Monday first.
	WeekdayCounts []uint32 `json:"weekdayCounts"`
	// WeekdayHourCounts is the 7x24 weekday-by-hour heatmap.
	WeekdayHourCounts [][]uint32 `json:"weekdayHourCounts"`
	// TagEfficiency lists per-tag average durations.
	TagEfficiency []TagEfficiency `json:"tagEfficiency"`
	// Summary is a one-line human-readable takeaway.
	Summary string `json:"summary"`
}

// TagEfficiency reports the average focus duration for one tag.
type TagEfficiency struct {
	Tag         string  `json:"tag"`
	AvgDuration float64 `json:"avgDuration"` // minutes
	Count       uint32  `json:"count"`
}

// ComputeFocusAnalysis builds the focus distribution for history days inside
// the inclusive [from, to] window. Days with unparseable dates are skipped.
func ComputeFocusAnalysis(history []types.HistoryDay, from, to string) FocusAnalysis {
	hourly := make([]uint32, 24)
	periods := make([]uint32, 4)
	weekdays := make([]uint32, 7)
	matrix := make([][]uint32, 7)
	for i := range matrix {
		matrix[i] = make([]uint32, 24)
	}

	tagTotal := make(map[string]uint32)
	tagCount := make(map[string]uint32)

	for _, day := range history {
		if day.Date < from || day.Date > to {
			continue
		}
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			continue
		}
		weekday := (int(date.Weekday()) + 6) % 7 // Monday first

		for _, r := range day.Records {
			hour := parseHour(r.StartTime)
			hourly[hour]++
			periods[hour/6]++
			weekdays[weekday]++
			matrix[weekday][hour]++

			tagTotal[r.Tag] += r.Duration
			tagCount[r.Tag]++
		}
	}

	efficiency := make([]TagEfficiency, 0, len(tagTotal))
	for tag, total := range tagTotal {
		count := tagCount[tag]
		avg := 0.0
		if count > 0 {
			avg = float64(total) / float64(count)
		}
		efficiency = append(efficiency, TagEfficiency{Tag: tag, AvgDuration: avg, Count: count})
	}
	// Most-sampled tags first so the chart reads top-down.
	sort.Slice(efficiency, func(i, j int) bool {
		if efficiency[i].Count != efficiency[j].Count {
			return efficiency[i].Count > efficiency[j].Count
		}
		if efficiency[i].AvgDuration != efficiency[j].AvgDuration {
			return efficiency[i].AvgDuration > efficiency[j].AvgDuration
		}
		return efficiency[i].Tag < efficiency[j].Tag
	})

	return FocusAnalysis{
		HourlyCounts:      hourly,
		PeriodCounts:      periods,
		WeekdayCounts:     weekdays,
		WeekdayHourCounts: matrix,
		TagEfficiency:     efficiency,
		Summary:           buildSummary(hourly),
	}
}

// parseHour extracts the hour from "HH:mm", defaulting to 0 on malformed
// input (legacy rows).
func parseHour(hhmm string) int {
	hh, _, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0
	}
	hour, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || hour < 0 || hour > 23 {
		return 0
	}
	return hour
}

// buildSummary picks the best consecutive two-hour window.
func buildSummary(hourly []uint32) string {
	var total uint32
	for _, c := range hourly {
		total += c
	}
	if total == 0 {
		return "No analysis data yet"
	}

	bestStart := 0
	var bestSum uint32
	for start := 0; start < 23; start++ {
		sum := hourly[start] + hourly[start+1]
		if sum > bestSum {
			bestSum = sum
			bestStart = start
		}
	}

	return fmt.Sprintf("You focus best between %02d:00 and %02d:00", bestStart, bestStart+2)
}
