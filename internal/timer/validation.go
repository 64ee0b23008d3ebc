package timer

import (
	"strings"

	apperrors "tomatoclock/internal/infrastructure/errors"
	"tomatoclock/internal/types"
)

// ValidateSettings rejects out-of-range settings with a field-level reason
// before they can replace the live configuration. Bounds follow the product
// requirements; reject-with-error is the policy used throughout, never
// silent clamping.
func ValidateSettings(settings types.Settings) error {
	const op = "ValidateSettings"

	if settings.Pomodoro < 1 || settings.Pomodoro > 60 {
		return apperrors.NewValidationError(op, "pomodoro", "work duration must be 1-60 minutes")
	}
	if settings.ShortBreak < 1 || settings.ShortBreak > 30 {
		return apperrors.NewValidationError(op, "shortBreak", "short break must be 1-30 minutes")
	}
	if settings.LongBreak < 1 || settings.LongBreak > 60 {
		return apperrors.NewValidationError(op, "longBreak", "long break must be 1-60 minutes")
	}
	if settings.LongBreakInterval < 1 || settings.LongBreakInterval > 10 {
		return apperrors.NewValidationError(op, "longBreakInterval", "long break interval must be 1-10 pomodoros")
	}
	if settings.AutoContinuePomodoros < 1 || settings.AutoContinuePomodoros > 20 {
		return apperrors.NewValidationError(op, "autoContinuePomodoros", "auto-continue run must be 1-20 pomodoros")
	}
	if settings.DailyGoal > 1000 {
		return apperrors.NewValidationError(op, "dailyGoal", "daily goal must not exceed 1000")
	}
	if settings.WeeklyGoal > 10000 {
		return apperrors.NewValidationError(op, "weeklyGoal", "weekly goal must not exceed 10000")
	}
	return nil
}

// NormalizeTag trims a tag. Returns the empty string for blank input, which
// callers must reject or replace with the fallback.
func NormalizeTag(tag string) string {
	return strings.TrimSpace(tag)
}

// ValidateDateRange rejects a range whose bounds are not "YYYY-MM-DD" or are
// reversed.
func ValidateDateRange(r types.DateRange) error {
	const op = "ValidateDateRange"
	if !isDate(r.From) {
		return apperrors.NewValidationError(op, "from", "must be a YYYY-MM-DD date")
	}
	if !isDate(r.To) {
		return apperrors.NewValidationError(op, "to", "must be a YYYY-MM-DD date")
	}
	if r.From > r.To {
		return apperrors.NewValidationError(op, "range", "from must not be after to")
	}
	return nil
}

// isDate checks the "YYYY-MM-DD" shape without pulling in time parsing for
// what is a lexicographic key throughout the data model.
func isDate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, ch := range s {
		if i == 4 || i == 7 {
			continue
		}
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
