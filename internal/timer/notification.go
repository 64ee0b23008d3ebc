package timer

import (
	"fmt"

	"tomatoclock/internal/notify"
	"tomatoclock/internal/types"
)

// NotifyPhaseEnd sends the phase-end notification with a preview of the next
// phase. Fires once per natural completion; skip and reset never reach here.
func NotifyPhaseEnd(notifier notify.Notifier, ended, next types.Phase, nextAutoStarted bool, settings types.Settings) error {
	preview := phasePreview(next, nextAutoStarted, settings)

	var title, body string
	switch ended {
	case types.PhaseWork:
		title = "Focus complete"
		body = "This work phase has ended. " + preview
	case types.PhaseShortBreak:
		title = "Short break over"
		body = preview
	default:
		title = "Long break over"
		body = preview
	}

	return notifier.Notify(title, body)
}

// NotifyGoalProgress fires the 50% and 100% goal notifications when a
// completion moves a count across the threshold. The before/after comparison
// makes each crossing fire exactly once: a count already at or above a
// threshold never re-fires. A goal of 0 is unset and never notifies.
func NotifyGoalProgress(notifier notify.Notifier, settings types.Settings, dailyBefore, dailyAfter, weeklyBefore, weeklyAfter uint32) error {
	if goal := settings.DailyGoal; goal > 0 {
		half := (goal + 1) / 2
		if dailyBefore < half && dailyAfter >= half {
			if err := notifier.Notify("Daily goal progress",
				fmt.Sprintf("Halfway to today's goal (%d/%d)", dailyAfter, goal)); err != nil {
				return err
			}
		}
		if dailyBefore < goal && dailyAfter >= goal {
			if err := notifier.Notify("Daily goal reached",
				fmt.Sprintf("Congratulations! Today's goal is complete (%d/%d)", dailyAfter, goal)); err != nil {
				return err
			}
		}
	}

	if goal := settings.WeeklyGoal; goal > 0 {
		half := (goal + 1) / 2
		if weeklyBefore < half && weeklyAfter >= half {
			if err := notifier.Notify("Weekly goal progress",
				fmt.Sprintf("Halfway to this week's goal (%d/%d)", weeklyAfter, goal)); err != nil {
				return err
			}
		}
		if weeklyBefore < goal && weeklyAfter >= goal {
			if err := notifier.Notify("Weekly goal reached",
				fmt.Sprintf("Congratulations! This week's goal is complete (%d/%d)", weeklyAfter, goal)); err != nil {
				return err
			}
		}
	}

	return nil
}

// phasePreview builds the "what happens next" sentence for the phase-end
// notification.
func phasePreview(next types.Phase, nextAutoStarted bool, settings types.Settings) string {
	prefix := "Up next:"
	if nextAutoStarted {
		prefix = "Auto-started:"
	}
	switch next {
	case types.PhaseWork:
		return fmt.Sprintf("%s %d minutes of work", prefix, settings.Pomodoro)
	case types.PhaseShortBreak:
		return fmt.Sprintf("%s a %d minute short break", prefix, settings.ShortBreak)
	default:
		return fmt.Sprintf("%s a %d minute long break", prefix, settings.LongBreak)
	}
}
