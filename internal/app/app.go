package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"tomatoclock/internal/infrastructure/logging"
	"tomatoclock/internal/notify"
	"tomatoclock/internal/platform"
	"tomatoclock/internal/processes"
	"tomatoclock/internal/state"
	"tomatoclock/internal/stats"
	"tomatoclock/internal/store"
	"tomatoclock/internal/timer"
	"tomatoclock/internal/types"
)

// App struct represents the main application
type App struct {
	ctx         context.Context
	state       *state.AppState
	store       store.Service
	emitter     *wailsEmitter
	environment string
	logger      logging.Logger
	stopTicking chan bool
}

// NewApp creates a new App application struct with dependency injection
func NewApp(env string) (*App, error) {
	// Initialize logger first (required by all other components)
	logger := logging.NewDefaultLogger()

	// Initialize persistence configuration based on environment
	config, err := resolveConfig(env)
	if err != nil {
		return nil, err
	}

	st := store.NewJSONStore(config, logger)
	data, err := st.Load()
	if err != nil {
		return nil, err
	}

	emitter := newWailsEmitter()
	notifier := notify.NewDesktopNotifier("Tomato Clock", logger)
	procs := processes.NewService(platform.NewProcessAPI(), logger)

	appState := state.New(data, st, timer.SystemClock{}, notifier, procs, emitter, logger)

	return &App{
		state:       appState,
		store:       st,
		emitter:     emitter,
		environment: env,
		logger:      logger,
		stopTicking: make(chan bool),
	}, nil
}

// resolveConfig builds the persistence configuration in layers: environment
// defaults, then the optional config file, then environment variables.
func resolveConfig(env string) (*store.Config, error) {
	config := store.ConfigForEnvironment(env)
	if err := config.LoadFromFile(configFilePath(config)); err != nil {
		return nil, err
	}
	if err := config.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// configFilePath locates the optional YAML config file: TOMATOCLOCK_CONFIG
// when set, otherwise tomatoclock.yaml next to the data document.
func configFilePath(config *store.Config) string {
	if path := os.Getenv("TOMATOCLOCK_CONFIG"); path != "" {
		return path
	}
	return filepath.Join(filepath.Dir(config.Path), "tomatoclock.yaml")
}

// Startup is called at application startup
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.emitter.bind(ctx)

	go a.tickLoop()

	a.logger.Info("Application started",
		"environment", a.environment,
		"dataPath", a.store.Path())
}

// tickLoop drives the timer at one tick per second until shutdown.
func (a *App) tickLoop() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.state.Tick()
		case <-a.stopTicking:
			return
		}
	}
}

// DomReady is called after front-end resources have been loaded
func (a *App) DomReady(ctx context.Context) {
	// Push the initial snapshot once the frontend can receive events.
	a.emitter.Emit(types.EventSnapshot, a.state.Snapshot())
}

// BeforeClose is called when the application is about to quit. An in-progress
// work phase is recorded as a quit interruption before the window goes away.
func (a *App) BeforeClose(ctx context.Context) (prevent bool) {
	a.state.RecordQuitInterruption()
	return false
}

// Shutdown is called at application termination
func (a *App) Shutdown(ctx context.Context) {
	select {
	case a.stopTicking <- true:
	default:
	}
	a.logger.Info("Application shutdown completed")
}

// GetSnapshot returns the current timer view for the frontend.
func (a *App) GetSnapshot() types.TimerSnapshot {
	return a.state.Snapshot()
}

// StartTimer begins or resumes the countdown.
func (a *App) StartTimer() error {
	return a.state.StartTimer()
}

// PauseTimer stops the countdown in place.
func (a *App) PauseTimer() error {
	return a.state.PauseTimer()
}

// ResetTimer abandons the current phase back to a stopped work phase.
func (a *App) ResetTimer(reason string) error {
	return a.state.ResetTimer(reason)
}

// SkipTimer abandons the current phase and moves to the next one.
func (a *App) SkipTimer(reason string) error {
	return a.state.SkipTimer(reason)
}

// SetCurrentTag changes the tag for upcoming work records.
func (a *App) SetCurrentTag(tag string) error {
	return a.state.SetCurrentTag(tag)
}

// GetTags returns the known tag list.
func (a *App) GetTags() []string {
	return a.state.Tags()
}

// GetSettings returns the current settings.
func (a *App) GetSettings() types.Settings {
	return a.state.Settings()
}

// UpdateSettings validates and applies a full settings replacement.
func (a *App) UpdateSettings(settings types.Settings) error {
	return a.state.UpdateSettings(settings)
}

// GetBlacklist returns the current blacklist.
func (a *App) GetBlacklist() []types.BlacklistItem {
	return a.state.Blacklist()
}

// AddBlacklistItem appends one blacklist entry.
func (a *App) AddBlacklistItem(item types.BlacklistItem) error {
	return a.state.AddBlacklistItem(item)
}

// RemoveBlacklistItem deletes the named entry. Declined while the name is
// protected by an active focus period.
func (a *App) RemoveBlacklistItem(name string) error {
	return a.state.RemoveBlacklistItem(name)
}

// SetBlacklist replaces the whole blacklist.
func (a *App) SetBlacklist(items []types.BlacklistItem) error {
	return a.state.SetBlacklist(items)
}

// ListProcesses enumerates running processes for the blacklist picker.
func (a *App) ListProcesses() ([]types.ProcessInfo, error) {
	return a.state.ListProcesses()
}

// GetHistory returns all recorded days.
func (a *App) GetHistory() []types.HistoryDay {
	return a.state.History()
}

// UpdateRemark edits the remark of one history record.
func (a *App) UpdateRemark(date string, index int, remark string) error {
	return a.state.UpdateRemark(date, index, remark)
}

// GetFocusAnalysis computes the focus distribution for a date range.
func (a *App) GetFocusAnalysis(r types.DateRange) (stats.FocusAnalysis, error) {
	return a.state.FocusAnalysis(r)
}

// GetInterruptionStats aggregates interruptions for a date range.
func (a *App) GetInterruptionStats(r types.DateRange) (stats.InterruptionStats, error) {
	return a.state.InterruptionStats(r)
}

// GetLogger returns the application's structured logger
func (a *App) GetLogger() logging.Logger {
	return a.logger
}
