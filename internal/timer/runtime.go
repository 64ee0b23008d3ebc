package timer

import (
	"tomatoclock/internal/infrastructure/logging"
	"tomatoclock/internal/notify"
	"tomatoclock/internal/stats"
	"tomatoclock/internal/types"
)

// TickResult reports what one tick changed so the owning state can decide
// whether to persist, emit events or run a blacklist kill pass.
type TickResult struct {
	// Advanced is true when the countdown consumed the tick. False means
	// the runtime was stopped and nothing changed.
	Advanced bool
	// HistoryChanged is true when a work record was appended.
	HistoryChanged bool
	// PhaseEnded is true when this tick finished a phase.
	PhaseEnded bool
	// WorkAutoStarted is true when a break ended and a new work phase was
	// started automatically (the caller must run the blacklist kill pass).
	WorkAutoStarted bool
	// WorkCompleted carries the appended record when a work phase finished.
	WorkCompleted *types.WorkCompletedEvent
}

// Runtime is the live timer state machine. It is not safe for concurrent use;
// the owning state serializes access behind its mutex.
//
// The runtime itself is never persisted. A restart returns to a stopped work
// phase; only its effects (history, combo, settings) survive in AppData.
type Runtime struct {
	phase            types.Phase
	remainingSeconds uint64
	isRunning        bool
	currentTag       string

	// Set when the current work phase first started; cleared on any phase
	// change. Used for the history record and the blacklist lock.
	workStartedDate string
	workStartedTime string
	workLockActive  bool

	// Work phases left in the current auto-continue run.
	autoWorkRemaining uint32

	// Completed work phases since the last long break; drives the
	// short-vs-long break decision.
	worksSinceLongBreak uint32

	logger logging.Logger
}

// fallbackTag is used whenever the configured tag list is empty or a tag
// normalizes to the empty string.
const fallbackTag = "Work"

// NewRuntime builds a stopped work-phase runtime from the persisted settings
// and tag list.
func NewRuntime(settings types.Settings, tags []string, logger logging.Logger) *Runtime {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	tag := fallbackTag
	if len(tags) > 0 && tags[0] != "" {
		tag = tags[0]
	}
	return &Runtime{
		phase:            types.PhaseWork,
		remainingSeconds: uint64(settings.Pomodoro) * 60,
		isRunning:        false,
		currentTag:       tag,
		logger:           logger,
	}
}

// Phase returns the current phase.
func (r *Runtime) Phase() types.Phase { return r.phase }

// RemainingSeconds returns the remaining countdown of the current phase.
func (r *Runtime) RemainingSeconds() uint64 { return r.remainingSeconds }

// IsRunning reports whether the countdown is ticking.
func (r *Runtime) IsRunning() bool { return r.isRunning }

// CurrentTag returns the tag the next completed work phase will be filed under.
func (r *Runtime) CurrentTag() string { return r.currentTag }

// BlacklistLocked reports whether the focus-period blacklist lock is active:
// a work phase that has been started and not yet completed or reset.
func (r *Runtime) BlacklistLocked() bool {
	return r.phase == types.PhaseWork && r.workLockActive
}

// IsWorkStarted reports whether the current work phase has started at least
// once (used by interruption recording).
func (r *Runtime) IsWorkStarted() bool {
	return r.phase == types.PhaseWork && r.workStartedDate != ""
}

// FocusedSeconds returns how long the current work phase has been focused.
func (r *Runtime) FocusedSeconds(settings types.Settings) uint64 {
	total := uint64(settings.Pomodoro) * 60
	if r.remainingSeconds > total {
		return 0
	}
	return total - r.remainingSeconds
}

// SetCurrentTag replaces the tag for the next completed record. The caller is
// responsible for normalization; empty input falls back to the default tag.
func (r *Runtime) SetCurrentTag(tag string) {
	if tag == "" {
		tag = fallbackTag
	}
	r.currentTag = tag
}

// Start begins the countdown. Idempotent while running. Starting a stopped
// work phase for the first time records the start instant and activates the
// blacklist lock; the caller runs the kill pass.
func (r *Runtime) Start(settings types.Settings, clock Clock) {
	if r.isRunning {
		return
	}
	r.isRunning = true
	if r.phase == types.PhaseWork && !r.workLockActive {
		r.workLockActive = true
		r.workStartedDate = clock.TodayDate()
		r.workStartedTime = clock.NowHHMM()
		r.initAutoWorkRemaining(settings)
	}
}

// Pause stops the countdown without touching remaining time or the lock;
// a paused work phase is still a focus period.
func (r *Runtime) Pause() {
	r.isRunning = false
}

// Reset returns to a stopped work phase at full duration and releases the
// blacklist lock. History is never written here.
func (r *Runtime) Reset(settings types.Settings) {
	r.phase = types.PhaseWork
	r.remainingSeconds = uint64(settings.Pomodoro) * 60
	r.isRunning = false
	r.workStartedDate = ""
	r.workStartedTime = ""
	r.workLockActive = false
	r.autoWorkRemaining = 0
}

// Skip abandons the current phase and moves to the next one per the phase
// order rule, stopped. No history is written.
func (r *Runtime) Skip(settings types.Settings) {
	next := r.nextPhase(r.phase, settings.LongBreakInterval)
	r.applyPhase(next, settings)
	r.isRunning = false
}

// Tick advances the countdown by one second. When the countdown reaches zero
// it performs phase-completion handling: a natural work completion appends
// one history record, evaluates goal notifications and hands the record back
// in the result; break completions only notify.
func (r *Runtime) Tick(data *types.AppData, clock Clock, notifier notify.Notifier) TickResult {
	if !r.isRunning {
		return TickResult{}
	}
	if r.remainingSeconds > 0 {
		r.remainingSeconds--
	}
	if r.remainingSeconds > 0 {
		return TickResult{Advanced: true}
	}

	ended := r.phase
	result := TickResult{Advanced: true, PhaseEnded: true}

	if ended == types.PhaseWork {
		today := clock.TodayDate()
		from, to := clock.CurrentWeekRange()
		dailyBefore := stats.ComputeTodayStats(data.History, today).Total
		weeklyBefore := stats.ComputeWeekStats(data.History, from, to).Total

		event := r.appendWorkRecord(data, clock)
		result.HistoryChanged = true
		result.WorkCompleted = &event
		r.worksSinceLongBreak++
		r.decreaseAutoWorkRemaining(data.Settings)

		r.logger.Info("Work phase completed",
			"date", event.Date,
			"tag", r.currentTag,
			"durationMinutes", data.Settings.Pomodoro,
			"todayCompleted", dailyBefore+1,
			"weekCompleted", weeklyBefore+1)

		if err := NotifyGoalProgress(notifier, data.Settings,
			dailyBefore, dailyBefore+1,
			weeklyBefore, weeklyBefore+1); err != nil {
			r.logger.Warn("Goal notification failed", "error", err)
		}
	}

	next := r.nextPhase(ended, data.Settings.LongBreakInterval)
	r.applyPhase(next, data.Settings)
	r.isRunning = false

	autoStarted := r.startNextPhaseIfNeeded(next, data.Settings, clock)
	result.WorkAutoStarted = next == types.PhaseWork && autoStarted

	if err := NotifyPhaseEnd(notifier, ended, next, autoStarted, data.Settings); err != nil {
		r.logger.Warn("Phase end notification failed", "error", err)
	}

	r.logger.Info("Phase transition",
		"ended", string(ended),
		"next", string(next),
		"nextAutoStarted", autoStarted)

	return result
}

// Snapshot projects the live state plus derived stats into an immutable view.
// Pure: computable at any point without side effects.
func (r *Runtime) Snapshot(data *types.AppData, clock Clock) types.TimerSnapshot {
	today := clock.TodayDate()
	from, to := clock.CurrentWeekRange()
	todayStats := stats.ComputeTodayStats(data.History, today)
	weekStats := stats.ComputeWeekStats(data.History, from, to)

	return types.TimerSnapshot{
		Phase:            r.phase,
		RemainingSeconds: r.remainingSeconds,
		IsRunning:        r.isRunning,
		CurrentTag:       r.currentTag,
		BlacklistLocked:  r.BlacklistLocked(),
		CurrentCombo:     data.CurrentCombo,
		Settings:         data.Settings,
		TodayStats:       todayStats,
		WeekStats:        weekStats,
		GoalProgress:     stats.GoalProgressFor(data.Settings, todayStats.Total, weekStats.Total),
	}
}

// appendWorkRecord writes the completed work phase into data.History and
// returns the event payload locating the new record.
func (r *Runtime) appendWorkRecord(data *types.AppData, clock Clock) types.WorkCompletedEvent {
	date := r.workStartedDate
	if date == "" {
		date = clock.TodayDate()
	}
	startTime := r.workStartedTime
	if startTime == "" {
		startTime = clock.NowHHMM()
	}
	endTime := clock.NowHHMM()

	record := types.HistoryRecord{
		Tag:       r.currentTag,
		StartTime: startTime,
		EndTime:   &endTime,
		Duration:  data.Settings.Pomodoro,
		Phase:     types.PhaseWork,
		Remark:    "",
	}

	day := ensureDay(&data.History, date)
	day.Records = append(day.Records, record)
	return types.WorkCompletedEvent{
		Date:        date,
		RecordIndex: len(day.Records) - 1,
		Record:      record,
	}
}

// applyPhase switches phase, refills the countdown and clears the work start
// markers and blacklist lock.
func (r *Runtime) applyPhase(phase types.Phase, settings types.Settings) {
	r.phase = phase
	r.remainingSeconds = phaseSeconds(phase, settings)
	r.workStartedDate = ""
	r.workStartedTime = ""
	r.workLockActive = false
}

// nextPhase derives the phase following current. The works-since-long-break
// counter decides short vs long break and resets when a long break is chosen.
func (r *Runtime) nextPhase(current types.Phase, longBreakInterval uint32) types.Phase {
	switch current {
	case types.PhaseWork:
		if longBreakInterval > 0 && r.worksSinceLongBreak >= longBreakInterval {
			r.worksSinceLongBreak = 0
			return types.PhaseLongBreak
		}
		return types.PhaseShortBreak
	default:
		return types.PhaseWork
	}
}

// initAutoWorkRemaining charges the auto-continue budget when a work phase
// starts and no run is in progress.
func (r *Runtime) initAutoWorkRemaining(settings types.Settings) {
	if !settings.AutoContinueEnabled {
		return
	}
	if r.autoWorkRemaining > 0 {
		return
	}
	r.autoWorkRemaining = settings.AutoContinuePomodoros
}

// decreaseAutoWorkRemaining spends one unit of the auto-continue budget after
// a natural work completion.
func (r *Runtime) decreaseAutoWorkRemaining(settings types.Settings) {
	if !settings.AutoContinueEnabled {
		r.autoWorkRemaining = 0
		return
	}
	if r.autoWorkRemaining > 0 {
		r.autoWorkRemaining--
	}
}

// startNextPhaseIfNeeded auto-starts the next phase only while an
// auto-continue run has budget left; otherwise the timer waits for the user.
func (r *Runtime) startNextPhaseIfNeeded(next types.Phase, settings types.Settings, clock Clock) bool {
	if !settings.AutoContinueEnabled || r.autoWorkRemaining == 0 {
		return false
	}
	r.Start(settings, clock)
	return true
}

// phaseSeconds returns the configured duration of a phase in seconds.
func phaseSeconds(phase types.Phase, settings types.Settings) uint64 {
	switch phase {
	case types.PhaseWork:
		return uint64(settings.Pomodoro) * 60
	case types.PhaseShortBreak:
		return uint64(settings.ShortBreak) * 60
	default:
		return uint64(settings.LongBreak) * 60
	}
}

// ensureDay finds or appends the HistoryDay for date, keeping per-day record
// indexes stable.
func ensureDay(history *[]types.HistoryDay, date string) *types.HistoryDay {
	for i := range *history {
		if (*history)[i].Date == date {
			return &(*history)[i]
		}
	}
	*history = append(*history, types.HistoryDay{Date: date})
	return &(*history)[len(*history)-1]
}
