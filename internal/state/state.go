// Package state owns the single mutable application state: the persisted
// document plus the live timer. Every mutation happens under one mutex,
// persists the document, and pushes a fresh snapshot to the frontend.
package state

import (
	"errors"
	"sort"
	"sync"

	"tomatoclock/internal/blacklist"
	apperrors "tomatoclock/internal/infrastructure/errors"
	"tomatoclock/internal/infrastructure/logging"
	"tomatoclock/internal/notify"
	"tomatoclock/internal/stats"
	"tomatoclock/internal/store"
	"tomatoclock/internal/timer"
	"tomatoclock/internal/types"
)

// milestones are the lifetime pomodoro counts that trigger a celebration
// event, checked in ascending order.
var milestones = []uint64{100, 500, 1000}

// Emitter pushes an event to the frontend. The Wails runtime adapter
// implements it; tests use a recording fake.
type Emitter interface {
	Emit(event string, payload ...interface{})
}

// ProcessController is the slice of the process service the state needs.
type ProcessController interface {
	List() ([]types.ProcessInfo, error)
	KillNames(names []string) (types.KillSummary, error)
}

// AppState serializes all reads and writes of the application state.
type AppState struct {
	mu sync.Mutex

	data    *types.AppData
	runtime *timer.Runtime
	combo   *timer.ComboRuntime
	guard   *blacklist.Guard

	store    store.Service
	clock    timer.Clock
	notifier notify.Notifier
	procs    ProcessController
	emitter  Emitter
	logger   logging.Logger
}

// New creates the state actor around an already-loaded document.
func New(data *types.AppData, st store.Service, clock timer.Clock, notifier notify.Notifier, procs ProcessController, emitter Emitter, logger logging.Logger) *AppState {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &AppState{
		data:     data,
		runtime:  timer.NewRuntime(data.Settings, data.Tags, logger),
		combo:    timer.NewComboRuntime(),
		guard:    blacklist.NewGuard(logger),
		store:    st,
		clock:    clock,
		notifier: notifier,
		procs:    procs,
		emitter:  emitter,
		logger:   logger,
	}
}

// Snapshot returns the current timer view.
func (s *AppState) Snapshot() types.TimerSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runtime.Snapshot(s.data, s.clock)
}

// StartTimer begins or resumes the countdown. Starting a work phase locks
// the blacklist and launches a kill pass against it.
func (s *AppState) StartTimer() error {
	s.mu.Lock()

	wasLocked := s.runtime.BlacklistLocked()
	s.runtime.Start(s.data.Settings, s.clock)

	var killNames []string
	if s.runtime.BlacklistLocked() && !wasLocked {
		s.guard.Lock(s.data.Blacklist)
		if err := s.combo.OnWorkStarted(s.clock); err != nil {
			s.logger.Error("Combo start bookkeeping failed", "error", err)
		}
		killNames = s.blacklistNamesLocked()
	}

	s.emitSnapshotLocked()
	s.mu.Unlock()

	if len(killNames) > 0 {
		go s.killAndReport(killNames)
	}
	return nil
}

// PauseTimer stops the countdown. The blacklist lock stays in place, a
// paused work phase is still a focus period.
func (s *AppState) PauseTimer() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runtime.Pause()
	s.emitSnapshotLocked()
	return nil
}

// ResetTimer abandons the current phase back to a stopped work phase.
// Abandoning a started work phase records an interruption and drops the combo.
func (s *AppState) ResetTimer(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.recordInterruptionLocked(types.InterruptionReset, reason)
	s.guard.Unlock()
	s.runtime.Reset(s.data.Settings)

	if changed {
		if err := s.persistLocked(); err != nil {
			return err
		}
	}
	s.emitSnapshotLocked()
	return nil
}

// SkipTimer abandons the current phase and moves to the next one, stopped.
// Skipping a started work phase records an interruption and drops the combo.
func (s *AppState) SkipTimer(reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.recordInterruptionLocked(types.InterruptionSkip, reason)
	s.guard.Unlock()
	s.runtime.Skip(s.data.Settings)

	if changed {
		if err := s.persistLocked(); err != nil {
			return err
		}
	}
	s.emitSnapshotLocked()
	return nil
}

// RecordQuitInterruption captures an in-progress work phase as a quit
// interruption. Called when the window is closing; best effort.
func (s *AppState) RecordQuitInterruption() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recordInterruptionLocked(types.InterruptionQuit, "") {
		return
	}
	if err := s.persistLocked(); err != nil {
		s.logger.Error("Failed to persist quit interruption", "error", err)
	}
}

// Tick advances the timer by one second and applies all completion effects:
// history, combo, lifetime counter, events, persistence and the kill pass
// when a new work phase auto-starts.
func (s *AppState) Tick() {
	s.mu.Lock()

	result := s.runtime.Tick(s.data, s.clock, s.notifier)

	var killNames []string
	var events []pendingEvent

	if result.WorkCompleted != nil {
		s.guard.Unlock()
		s.data.TotalPomodoros++

		combo, err := s.combo.OnWorkCompleted(s.data, s.clock, s.runtime.Phase(), s.data.Settings)
		if err != nil {
			s.logger.Error("Combo completion bookkeeping failed", "error", err)
		}

		events = append(events, pendingEvent{types.EventWorkCompleted, []interface{}{*result.WorkCompleted}})

		today := s.clock.TodayDate()
		daily := stats.ComputeTodayStats(s.data.History, today)
		events = append(events, pendingEvent{types.EventPomodoroCompleted, []interface{}{types.PomodoroCompletedPayload{
			Combo:            combo,
			Total:            s.data.TotalPomodoros,
			DailyGoalReached: s.data.Settings.DailyGoal > 0 && daily.Total >= s.data.Settings.DailyGoal,
		}}})

		for _, milestone := range milestones {
			if s.data.TotalPomodoros == milestone {
				events = append(events, pendingEvent{types.EventMilestoneReached, []interface{}{types.MilestoneReachedPayload{Milestone: milestone}}})
			}
		}

		if err := s.persistLocked(); err != nil {
			s.logger.Error("Failed to persist completed work phase", "error", err)
		}
	}

	if result.WorkAutoStarted {
		s.guard.Lock(s.data.Blacklist)
		if err := s.combo.OnWorkStarted(s.clock); err != nil {
			s.logger.Error("Combo start bookkeeping failed", "error", err)
		}
		killNames = s.blacklistNamesLocked()
	}

	// A stopped runtime ignores the tick; no state changed, no snapshot.
	if result.Advanced {
		s.emitSnapshotLocked()
	}
	s.mu.Unlock()

	for _, ev := range events {
		s.emitter.Emit(ev.name, ev.payload...)
	}
	if len(killNames) > 0 {
		go s.killAndReport(killNames)
	}
}

// SetCurrentTag changes the tag for upcoming work records, adding it to the
// tag list when new. Blank input falls back to the default tag.
func (s *AppState) SetCurrentTag(tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag = timer.NormalizeTag(tag)
	s.runtime.SetCurrentTag(tag)

	if tag != "" && !containsString(s.data.Tags, tag) {
		s.data.Tags = append(s.data.Tags, tag)
		if err := s.persistLocked(); err != nil {
			return err
		}
	}
	s.emitSnapshotLocked()
	return nil
}

// Tags returns the known tag list.
func (s *AppState) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.data.Tags))
	copy(out, s.data.Tags)
	return out
}

// Settings returns the current settings.
func (s *AppState) Settings() types.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Settings
}

// UpdateSettings validates and applies a full settings replacement. When the
// timer sits idle at a full phase the new durations take effect immediately.
func (s *AppState) UpdateSettings(settings types.Settings) error {
	if err := timer.ValidateSettings(settings); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Settings = settings
	if !s.runtime.IsRunning() && !s.runtime.IsWorkStarted() {
		s.runtime.Reset(settings)
	}

	if err := s.persistLocked(); err != nil {
		return err
	}
	s.emitSnapshotLocked()
	return nil
}

// Blacklist returns the current blacklist.
func (s *AppState) Blacklist() []types.BlacklistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.BlacklistItem, len(s.data.Blacklist))
	copy(out, s.data.Blacklist)
	return out
}

// AddBlacklistItem appends an item. Allowed even during a focus period; when
// the lock is active the new program is terminated immediately.
func (s *AppState) AddBlacklistItem(item types.BlacklistItem) error {
	s.mu.Lock()

	added, err := s.guard.Add(&s.data.Blacklist, item)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	var killNames []string
	if added {
		if s.guard.Locked() {
			killNames = []string{item.Name}
		}
		if err := s.persistLocked(); err != nil {
			s.mu.Unlock()
			return err
		}
		s.emitSnapshotLocked()
	}
	s.mu.Unlock()

	if len(killNames) > 0 {
		go s.killAndReport(killNames)
	}
	return nil
}

// RemoveBlacklistItem deletes the named item. Declined with a blacklist-locked
// error while the name is protected by an active focus period.
func (s *AppState) RemoveBlacklistItem(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.guard.Remove(&s.data.Blacklist, name)
	if err != nil {
		return err
	}
	if !removed {
		return nil
	}
	if err := s.persistLocked(); err != nil {
		return err
	}
	s.emitSnapshotLocked()
	return nil
}

// SetBlacklist replaces the whole list. While locked the replacement must
// keep every protected name; programs added by the swap are terminated when
// the lock is active.
func (s *AppState) SetBlacklist(items []types.BlacklistItem) error {
	s.mu.Lock()

	added, err := s.guard.Replace(&s.data.Blacklist, items)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	var killNames []string
	if s.guard.Locked() {
		killNames = added
	}
	if err := s.persistLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.emitSnapshotLocked()
	s.mu.Unlock()

	if len(killNames) > 0 {
		go s.killAndReport(killNames)
	}
	return nil
}

// History returns all recorded days, newest day last.
func (s *AppState) History() []types.HistoryDay {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.HistoryDay, len(s.data.History))
	for i, day := range s.data.History {
		records := make([]types.HistoryRecord, len(day.Records))
		copy(records, day.Records)
		out[i] = types.HistoryDay{Date: day.Date, Records: records}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// UpdateRemark edits the remark of the record addressed by (date, index).
func (s *AppState) UpdateRemark(date string, index int, remark string) error {
	const op = "state.UpdateRemark"

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.data.History {
		if s.data.History[i].Date != date {
			continue
		}
		if index < 0 || index >= len(s.data.History[i].Records) {
			break
		}
		s.data.History[i].Records[index].Remark = remark
		return s.persistLocked()
	}
	return apperrors.NewAppErrorWithContext(op, errRecordNotFound, apperrors.ErrCodeNotFound,
		map[string]string{"date": date})
}

// FocusAnalysis computes the focus distribution for a date range.
func (s *AppState) FocusAnalysis(r types.DateRange) (stats.FocusAnalysis, error) {
	if err := timer.ValidateDateRange(r); err != nil {
		return stats.FocusAnalysis{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.ComputeFocusAnalysis(s.data.History, r.From, r.To), nil
}

// InterruptionStats aggregates interruptions for a date range.
func (s *AppState) InterruptionStats(r types.DateRange) (stats.InterruptionStats, error) {
	if err := timer.ValidateDateRange(r); err != nil {
		return stats.InterruptionStats{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.ComputeInterruptionStats(s.data, r.From, r.To), nil
}

// ListProcesses enumerates running processes for the blacklist picker.
func (s *AppState) ListProcesses() ([]types.ProcessInfo, error) {
	return s.procs.List()
}

// recordInterruptionLocked appends an interruption record if the current
// work phase was started and interruption tracking is enabled. Also drops
// the combo. Reports whether the document changed.
func (s *AppState) recordInterruptionLocked(typ types.InterruptionType, reason string) bool {
	if !s.runtime.IsWorkStarted() {
		return false
	}

	s.combo.OnInterrupted(s.data)

	if !s.data.Settings.InterruptionEnabled {
		return true // combo drop still needs persisting
	}

	date := s.clock.TodayDate()
	record := types.InterruptionRecord{
		Timestamp:        s.clock.TodayDate() + "T" + s.clock.NowHHMM() + ":00Z",
		RemainingSeconds: s.runtime.RemainingSeconds(),
		FocusedSeconds:   s.runtime.FocusedSeconds(s.data.Settings),
		Reason:           reason,
		Type:             typ,
		Tag:              s.runtime.CurrentTag(),
	}

	for i := range s.data.Interruptions {
		if s.data.Interruptions[i].Date == date {
			s.data.Interruptions[i].Records = append(s.data.Interruptions[i].Records, record)
			return true
		}
	}
	s.data.Interruptions = append(s.data.Interruptions, types.InterruptionDay{
		Date:    date,
		Records: []types.InterruptionRecord{record},
	})
	return true
}

// killAndReport runs one best-effort termination pass and publishes the
// outcome. Runs outside the state mutex.
func (s *AppState) killAndReport(names []string) {
	summary, err := s.procs.KillNames(names)
	if err != nil {
		s.logger.Error("Blacklist kill pass failed", "error", err)
		return
	}
	if len(summary.Items) == 0 {
		return
	}
	s.emitter.Emit(types.EventKillResult, summary)
}

func (s *AppState) blacklistNamesLocked() []string {
	names := make([]string, 0, len(s.data.Blacklist))
	for _, item := range s.data.Blacklist {
		names = append(names, item.Name)
	}
	return names
}

func (s *AppState) persistLocked() error {
	if err := s.store.Save(s.data); err != nil {
		s.logger.Error("Failed to persist application data", "error", err)
		return err
	}
	return nil
}

func (s *AppState) emitSnapshotLocked() {
	s.emitter.Emit(types.EventSnapshot, s.runtime.Snapshot(s.data, s.clock))
}

type pendingEvent struct {
	name    string
	payload []interface{}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// errRecordNotFound is the root cause for remark edits addressing a record
// that does not exist.
var errRecordNotFound = errors.New("history record not found")
