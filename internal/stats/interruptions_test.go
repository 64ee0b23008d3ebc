package stats

import (
	"math"
	"testing"

	"tomatoclock/internal/types"
)

func interruption(ts, reason string, focused uint64) types.InterruptionRecord {
	return types.InterruptionRecord{
		Timestamp:        ts,
		RemainingSeconds: 600,
		FocusedSeconds:   focused,
		Reason:           reason,
		Type:             types.InterruptionReset,
		Tag:              "Work",
	}
}

func interruptionData() *types.AppData {
	data := types.NewAppData()
	data.Interruptions = []types.InterruptionDay{
		{Date: "2026-08-24", Records: []types.InterruptionRecord{
			interruption("2026-08-24T09:10:00Z", "Phone call", 300),
			interruption("2026-08-24T14:30:00Z", "", 600),
		}},
		{Date: "2026-08-26", Records: []types.InterruptionRecord{
			interruption("2026-08-26T09:45:00Z", "Phone call", 900),
		}},
		// Next ISO week, outside most query windows.
		{Date: "2026-08-31", Records: []types.InterruptionRecord{
			interruption("2026-08-31T08:00:00Z", "Meeting", 120),
		}},
	}
	data.History = []types.HistoryDay{
		{Date: "2026-08-24", Records: []types.HistoryRecord{
			{Tag: "Work", StartTime: "10:00", Duration: 25, Phase: types.PhaseWork},
			{Tag: "Work", StartTime: "11:00", Duration: 25, Phase: types.PhaseWork},
			{Tag: "Work", StartTime: "12:00", Duration: 25, Phase: types.PhaseWork},
		}},
	}
	return data
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeInterruptionStats_Totals(t *testing.T) {
	t.Parallel()

	got := ComputeInterruptionStats(interruptionData(), "2026-08-24", "2026-08-30")

	if got.Total != 3 {
		t.Fatalf("Expected 3 interruptions in the window, got %d", got.Total)
	}
	// Two days with interruptions.
	if !almostEqual(got.DailyAverage, 1.5) {
		t.Errorf("Expected daily average 1.5, got %f", got.DailyAverage)
	}
	// Both days fall in the same ISO week.
	if !almostEqual(got.WeeklyAverage, 3) {
		t.Errorf("Expected weekly average 3, got %f", got.WeeklyAverage)
	}
	if !almostEqual(got.AvgFocusedSeconds, 600) {
		t.Errorf("Expected average focused 600s, got %f", got.AvgFocusedSeconds)
	}
}

func TestComputeInterruptionStats_Rate(t *testing.T) {
	t.Parallel()

	got := ComputeInterruptionStats(interruptionData(), "2026-08-24", "2026-08-30")

	// 3 interruptions vs 3 completed work records.
	if !almostEqual(got.InterruptionRate, 0.5) {
		t.Errorf("Expected interruption rate 0.5, got %f", got.InterruptionRate)
	}
}

func TestComputeInterruptionStats_Reasons(t *testing.T) {
	t.Parallel()

	got := ComputeInterruptionStats(interruptionData(), "2026-08-24", "2026-08-30")

	if len(got.ReasonCounts) != 2 {
		t.Fatalf("Expected two reason buckets, got %+v", got.ReasonCounts)
	}
	if got.ReasonCounts[0].Reason != "Phone call" || got.ReasonCounts[0].Count != 2 {
		t.Errorf("Expected the most frequent reason first, got %+v", got.ReasonCounts[0])
	}
	if got.ReasonCounts[1].Reason != "Not specified" || got.ReasonCounts[1].Count != 1 {
		t.Errorf("Expected blank reasons bucketed as Not specified, got %+v", got.ReasonCounts[1])
	}
}

func TestComputeInterruptionStats_Hourly(t *testing.T) {
	t.Parallel()

	got := ComputeInterruptionStats(interruptionData(), "2026-08-24", "2026-08-30")

	if got.HourlyCounts[9] != 2 {
		t.Errorf("Expected 2 interruptions in the 09:00 bucket, got %d", got.HourlyCounts[9])
	}
	if got.HourlyCounts[14] != 1 {
		t.Errorf("Expected 1 interruption in the 14:00 bucket, got %d", got.HourlyCounts[14])
	}
}

func TestComputeInterruptionStats_Empty(t *testing.T) {
	t.Parallel()

	got := ComputeInterruptionStats(types.NewAppData(), "2026-08-24", "2026-08-30")

	if got.Total != 0 || got.DailyAverage != 0 || got.InterruptionRate != 0 {
		t.Errorf("Expected all-zero stats for empty data, got %+v", got)
	}
	if len(got.HourlyCounts) != 24 {
		t.Error("Expected fully shaped hourly buckets")
	}
}
