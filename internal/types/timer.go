package types

// TagCount is one per-tag bucket of an aggregation result.
type TagCount struct {
	Tag   string `json:"tag"`
	Count uint32 `json:"count"`
}

// TodayStats is the completed-work summary for one calendar day.
type TodayStats struct {
	Total uint32     `json:"total"`
	ByTag []TagCount `json:"byTag"`
}

// WeekStats is the completed-work summary for one Monday-based week.
type WeekStats struct {
	Total uint32     `json:"total"`
	ByTag []TagCount `json:"byTag"`
}

// GoalProgress pairs the configured goals with the current completion counts.
// A goal of 0 means unset.
type GoalProgress struct {
	DailyGoal       uint32 `json:"dailyGoal"`
	DailyCompleted  uint32 `json:"dailyCompleted"`
	WeeklyGoal      uint32 `json:"weeklyGoal"`
	WeeklyCompleted uint32 `json:"weeklyCompleted"`
}

// TimerSnapshot is the complete immutable view of the runtime pushed to the
// frontend after every state change. It is the sole read channel for
// external observers.
type TimerSnapshot struct {
	Phase            Phase         `json:"phase"`
	RemainingSeconds uint64        `json:"remainingSeconds"`
	IsRunning        bool          `json:"isRunning"`
	CurrentTag       string        `json:"currentTag"`
	BlacklistLocked  bool          `json:"blacklistLocked"`
	CurrentCombo     uint32        `json:"currentCombo"`
	Settings         Settings      `json:"settings"`
	TodayStats       TodayStats    `json:"todayStats"`
	WeekStats        WeekStats     `json:"weekStats"`
	GoalProgress     GoalProgress  `json:"goalProgress"`
}

// ProcessInfo describes one running process for the blacklist management UI.
type ProcessInfo struct {
	Name    string `json:"name"`
	PID     uint32 `json:"pid"`
	ExePath string `json:"exePath,omitempty"`
}

// KillItem is the termination outcome for one process name.
type KillItem struct {
	Name          string   `json:"name"`
	PIDs          []uint32 `json:"pids"`
	Killed        uint32   `json:"killed"`
	Failed        uint32   `json:"failed"`
	RequiresAdmin bool     `json:"requiresAdmin"`
}

// KillSummary aggregates one best-effort termination pass. It is ephemeral:
// delivered as an event, never persisted.
type KillSummary struct {
	Items         []KillItem `json:"items"`
	RequiresAdmin bool       `json:"requiresAdmin"`
}
