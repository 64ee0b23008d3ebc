package types

// Phase identifies which countdown the timer is currently in.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "shortBreak"
	PhaseLongBreak  Phase = "longBreak"
)

// Settings holds the user-tunable pomodoro configuration. It is only ever
// replaced as a whole after validation, never partially updated.
type Settings struct {
	Pomodoro              uint32 `json:"pomodoro"`              // work duration in minutes
	ShortBreak            uint32 `json:"shortBreak"`            // short break duration in minutes
	LongBreak             uint32 `json:"longBreak"`             // long break duration in minutes
	LongBreakInterval     uint32 `json:"longBreakInterval"`     // work phases per long break
	AutoContinueEnabled   bool   `json:"autoContinueEnabled"`   // chain phases without user input
	AutoContinuePomodoros uint32 `json:"autoContinuePomodoros"` // work phases per auto-continue run
	DailyGoal             uint32 `json:"dailyGoal"`             // 0 = unset
	WeeklyGoal            uint32 `json:"weeklyGoal"`            // 0 = unset
	AlwaysOnTop           bool   `json:"alwaysOnTop"`
	InterruptionEnabled   bool   `json:"interruptionEnabled"` // record reset/skip/quit during work
}

// DefaultSettings returns the 25/5/15/4 defaults.
func DefaultSettings() Settings {
	return Settings{
		Pomodoro:              25,
		ShortBreak:            5,
		LongBreak:             15,
		LongBreakInterval:     4,
		AutoContinueEnabled:   false,
		AutoContinuePomodoros: 4,
		DailyGoal:             0,
		WeeklyGoal:            0,
		AlwaysOnTop:           false,
		InterruptionEnabled:   true,
	}
}

// BlacklistItem is one process the user wants terminated during focus.
// The process name is the identity key (case-insensitive).
type BlacklistItem struct {
	Name        string `json:"name"`        // e.g. "WeChat.exe"
	DisplayName string `json:"displayName"` // e.g. "WeChat"
}

// HistoryRecord is one completed work phase. Records are immutable once
// appended except for Remark, which is editable in place by (date, index).
type HistoryRecord struct {
	Tag       string  `json:"tag"`
	StartTime string  `json:"startTime"`         // "HH:mm"
	EndTime   *string `json:"endTime,omitempty"` // nil on legacy rows
	Duration  uint32  `json:"duration"`          // minutes
	Phase     Phase   `json:"phase"`
	Remark    string  `json:"remark"`
}

// HistoryDay groups the records of one calendar day. Records are append-only
// within a day; external consumers address them by (date, index).
type HistoryDay struct {
	Date    string          `json:"date"` // "YYYY-MM-DD"
	Records []HistoryRecord `json:"records"`
}

// InterruptionType classifies how an in-progress work phase was abandoned.
type InterruptionType string

const (
	InterruptionReset InterruptionType = "reset"
	InterruptionSkip  InterruptionType = "skip"
	InterruptionQuit  InterruptionType = "quit"
)

// InterruptionRecord captures one abandoned work phase.
type InterruptionRecord struct {
	Timestamp        string           `json:"timestamp"` // RFC 3339
	RemainingSeconds uint64           `json:"remainingSeconds"`
	FocusedSeconds   uint64           `json:"focusedSeconds"`
	Reason           string           `json:"reason"`
	Type             InterruptionType `json:"type"`
	Tag              string           `json:"tag"`
}

// InterruptionDay groups the interruptions of one calendar day.
type InterruptionDay struct {
	Date    string               `json:"date"` // "YYYY-MM-DD"
	Records []InterruptionRecord `json:"records"`
}

// DateRange is an inclusive "YYYY-MM-DD" interval used by the analysis queries.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AppData is the single persisted document: everything durable lives here and
// is flushed to the store after each mutation.
type AppData struct {
	Settings       Settings          `json:"settings"`
	Blacklist      []BlacklistItem   `json:"blacklist"`
	Tags           []string          `json:"tags"`
	History        []HistoryDay      `json:"history"`
	Interruptions  []InterruptionDay `json:"interruptions"`
	CurrentCombo   uint32            `json:"currentCombo"`
	TotalPomodoros uint64            `json:"totalPomodoros"`
}

// NewAppData returns the initial document used when the store file does not
// exist yet.
func NewAppData() *AppData {
	return &AppData{
		Settings:      DefaultSettings(),
		Blacklist:     []BlacklistItem{},
		Tags:          []string{"Work", "Study", "Reading", "Writing"},
		History:       []HistoryDay{},
		Interruptions: []InterruptionDay{},
	}
}

// Clone returns a deep copy so snapshots handed to the frontend can never
// alias the live document.
func (d *AppData) Clone() *AppData {
	out := &AppData{
		Settings:       d.Settings,
		Blacklist:      make([]BlacklistItem, len(d.Blacklist)),
		Tags:           make([]string, len(d.Tags)),
		History:        make([]HistoryDay, len(d.History)),
		Interruptions:  make([]InterruptionDay, len(d.Interruptions)),
		CurrentCombo:   d.CurrentCombo,
		TotalPomodoros: d.TotalPomodoros,
	}
	copy(out.Blacklist, d.Blacklist)
	copy(out.Tags, d.Tags)
	for i, day := range d.History {
		records := make([]HistoryRecord, len(day.Records))
		copy(records, day.Records)
		out.History[i] = HistoryDay{Date: day.Date, Records: records}
	}
	for i, day := range d.Interruptions {
		records := make([]InterruptionRecord, len(day.Records))
		copy(records, day.Records)
		out.Interruptions[i] = InterruptionDay{Date: day.Date, Records: records}
	}
	return out
}
