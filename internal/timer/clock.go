package timer

import "time"

// Clock decouples the state machine from system time so the runtime can be
// unit tested at fixed instants.
type Clock interface {
	// TodayDate returns the local date as "YYYY-MM-DD".
	TodayDate() string
	// NowHHMM returns the local time as "HH:mm".
	NowHHMM() string
	// CurrentWeekRange returns the inclusive Monday-based week window
	// containing today, both ends as "YYYY-MM-DD".
	CurrentWeekRange() (string, string)
}

// SystemClock is the production Clock backed by the local system time.
type SystemClock struct{}

// TodayDate returns today's local date.
func (SystemClock) TodayDate() string {
	return time.Now().Format("2006-01-02")
}

// NowHHMM returns the current local wall time at minute precision.
func (SystemClock) NowHHMM() string {
	return time.Now().Format("15:04")
}

// CurrentWeekRange returns the Monday-to-Sunday window containing today.
func (SystemClock) CurrentWeekRange() (string, string) {
	now := time.Now()
	// time.Weekday starts at Sunday; shift so Monday is offset 0.
	offset := (int(now.Weekday()) + 6) % 7
	from := now.AddDate(0, 0, -offset)
	to := from.AddDate(0, 0, 6)
	return from.Format("2006-01-02"), to.Format("2006-01-02")
}
