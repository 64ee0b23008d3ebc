package types

// Frontend event names. The Wails emitter in internal/app is the transport;
// the payloads below are the contract.
const (
	// EventSnapshot carries a TimerSnapshot after every state change.
	EventSnapshot = "pomodoro://snapshot"

	// EventWorkCompleted carries a WorkCompletedEvent when a work phase
	// naturally ticks to zero.
	EventWorkCompleted = "pomodoro://work_completed"

	// EventKillResult carries a KillSummary after a blacklist kill pass.
	EventKillResult = "pomodoro://kill_result"

	// EventPomodoroCompleted drives the completion animation and combo UI.
	EventPomodoroCompleted = "pomodoro-completed"

	// EventMilestoneReached fires at 100/500/1000 lifetime pomodoros.
	EventMilestoneReached = "milestone-reached"
)

// WorkCompletedEvent locates the freshly appended record so the frontend can
// open the remark editor on it.
type WorkCompletedEvent struct {
	Date        string        `json:"date"` // "YYYY-MM-DD"
	RecordIndex int           `json:"recordIndex"`
	Record      HistoryRecord `json:"record"`
}

// PomodoroCompletedPayload is the EventPomodoroCompleted payload.
type PomodoroCompletedPayload struct {
	Combo            uint32 `json:"combo"`
	Total            uint64 `json:"total"`
	DailyGoalReached bool   `json:"dailyGoalReached"`
}

// MilestoneReachedPayload is the EventMilestoneReached payload.
type MilestoneReachedPayload struct {
	Milestone uint64 `json:"milestone"`
}
