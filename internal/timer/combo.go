package timer

import (
	"fmt"
	"time"

	apperrors "tomatoclock/internal/infrastructure/errors"
	"tomatoclock/internal/types"
)

// comboGraceMinutes is the slack added to the expected break length when
// deciding whether a new work phase continues the combo.
const comboGraceMinutes = 5

// ComboRuntime tracks the context needed to chain a combo across work
// start / work completed / interruption events. Only the resulting counter
// (AppData.CurrentCombo) is persisted.
type ComboRuntime struct {
	// Local instant of the most recent completed work phase, minute precision.
	lastCompletedAt time.Time
	hasCompletedAt  bool

	// Expected break length after the last completion, in minutes.
	lastExpectedBreakMinutes uint32

	// Whether the work phase currently in progress started inside the
	// continuation window. Decided at start, consumed at completion.
	currentWorkIsContinuation bool
}

// NewComboRuntime returns a combo runtime with no completion history.
func NewComboRuntime() *ComboRuntime {
	return &ComboRuntime{}
}

// OnWorkStarted decides whether the work phase starting now continues the
// combo: it must begin within expected-break + grace of the last completion.
func (c *ComboRuntime) OnWorkStarted(clock Clock) error {
	now, err := clockNow(clock)
	if err != nil {
		return err
	}
	if !c.hasCompletedAt {
		c.currentWorkIsContinuation = false
		return nil
	}

	diff := now.Sub(c.lastCompletedAt)
	allowed := time.Duration(int64(c.lastExpectedBreakMinutes)+comboGraceMinutes) * time.Minute
	c.currentWorkIsContinuation = diff >= 0 && diff <= allowed
	return nil
}

// OnWorkCompleted advances AppData.CurrentCombo for a natural work completion
// and records the window for the next continuation decision. Returns the new
// combo value.
func (c *ComboRuntime) OnWorkCompleted(data *types.AppData, clock Clock, expectedBreak types.Phase, settings types.Settings) (uint32, error) {
	now, err := clockNow(clock)
	if err != nil {
		return 0, err
	}

	var next uint32
	switch {
	case data.CurrentCombo == 0:
		next = 1
	case c.currentWorkIsContinuation:
		next = data.CurrentCombo + 1
	default:
		next = 1
	}

	data.CurrentCombo = next
	c.currentWorkIsContinuation = false
	c.lastCompletedAt = now
	c.hasCompletedAt = true
	switch expectedBreak {
	case types.PhaseShortBreak:
		c.lastExpectedBreakMinutes = settings.ShortBreak
	case types.PhaseLongBreak:
		c.lastExpectedBreakMinutes = settings.LongBreak
	default:
		c.lastExpectedBreakMinutes = 0
	}

	return next, nil
}

// OnInterrupted clears the combo after a work phase is abandoned
// (reset, skip or quit). Break interruptions never reach here.
func (c *ComboRuntime) OnInterrupted(data *types.AppData) {
	data.CurrentCombo = 0
	c.hasCompletedAt = false
	c.lastCompletedAt = time.Time{}
	c.lastExpectedBreakMinutes = 0
	c.currentWorkIsContinuation = false
}

// clockNow parses the clock's date and time strings into one instant at
// minute precision. A malformed clock is an invariant violation.
func clockNow(clock Clock) (time.Time, error) {
	ymd := clock.TodayDate()
	hhmm := clock.NowHHMM()

	t, err := time.Parse("2006-01-02 15:04", ymd+" "+hhmm)
	if err != nil {
		return time.Time{}, apperrors.NewAppError("clockNow",
			fmt.Errorf("clock returned malformed instant %q %q", ymd, hhmm),
			apperrors.ErrCodeInvariant)
	}
	return t, nil
}
