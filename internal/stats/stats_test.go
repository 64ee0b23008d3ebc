package stats

import (
	"reflect"
	"testing"

	"tomatoclock/internal/types"
)

func workRecord(tag string) types.HistoryRecord {
	return types.HistoryRecord{Tag: tag, StartTime: "09:00", Duration: 25, Phase: types.PhaseWork}
}

func sampleHistory() []types.HistoryDay {
	return []types.HistoryDay{
		{Date: "2026-08-23", Records: []types.HistoryRecord{workRecord("Work")}}, // Sunday, previous week
		{Date: "2026-08-24", Records: []types.HistoryRecord{workRecord("Work"), workRecord("Study")}},
		{Date: "2026-08-26", Records: []types.HistoryRecord{
			workRecord("Work"),
			{Tag: "Work", StartTime: "12:00", Duration: 5, Phase: types.PhaseShortBreak},
		}},
		{Date: "2026-08-30", Records: []types.HistoryRecord{workRecord("Reading")}}, // Sunday, same week
		{Date: "2026-08-31", Records: []types.HistoryRecord{workRecord("Work")}},    // next Monday
	}
}

func TestComputeTodayStats(t *testing.T) {
	t.Parallel()

	got := ComputeTodayStats(sampleHistory(), "2026-08-26")
	if got.Total != 1 {
		t.Errorf("Expected 1 work record today (breaks excluded), got %d", got.Total)
	}
	want := []types.TagCount{{Tag: "Work", Count: 1}}
	if !reflect.DeepEqual(got.ByTag, want) {
		t.Errorf("Expected tags %v, got %v", want, got.ByTag)
	}
}

func TestComputeTodayStats_EmptyDay(t *testing.T) {
	t.Parallel()

	got := ComputeTodayStats(sampleHistory(), "2026-08-25")
	if got.Total != 0 || len(got.ByTag) != 0 {
		t.Errorf("Expected empty stats for a day without records, got %+v", got)
	}
}

func TestComputeWeekStats_InclusiveBounds(t *testing.T) {
	t.Parallel()

	// Monday 2026-08-24 through Sunday 2026-08-30.
	got := ComputeWeekStats(sampleHistory(), "2026-08-24", "2026-08-30")
	if got.Total != 4 {
		t.Fatalf("Expected 4 work records in the week, got %d", got.Total)
	}

	want := []types.TagCount{
		{Tag: "Reading", Count: 1},
		{Tag: "Study", Count: 1},
		{Tag: "Work", Count: 2},
	}
	if !reflect.DeepEqual(got.ByTag, want) {
		t.Errorf("Expected tags %v, got %v", want, got.ByTag)
	}
}

func TestComputeWeekStats_Deterministic(t *testing.T) {
	t.Parallel()

	first := ComputeWeekStats(sampleHistory(), "2026-08-24", "2026-08-30")
	for i := 0; i < 10; i++ {
		again := ComputeWeekStats(sampleHistory(), "2026-08-24", "2026-08-30")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Aggregation is not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestGoalProgressFor(t *testing.T) {
	t.Parallel()

	settings := types.DefaultSettings()
	settings.DailyGoal = 8
	settings.WeeklyGoal = 40

	got := GoalProgressFor(settings, 3, 17)
	want := types.GoalProgress{DailyGoal: 8, DailyCompleted: 3, WeeklyGoal: 40, WeeklyCompleted: 17}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
