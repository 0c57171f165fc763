package scheduler

import (
	"strconv"
	"strings"
	"time"

	"smartlight/internal/models"
)

// timeOfDay is a parsed wall-clock target in 24-hour form.
type timeOfDay struct {
	hour   int
	minute int
}

func (t timeOfDay) minutes() int { return t.hour*60 + t.minute }

// parseTime converts an "HH:mm" clock string plus an AM/PM period marker to
// a 24-hour time of day. The minute defaults to 0 when absent. Hours above 23
// (24-hour input mixed with a period marker) are clamped modulo 24. Returns
// nil when the string cannot be parsed; a nil on or off time disables
// evaluation of the scenario for the tick.
func parseTime(clock, period string) *timeOfDay {
	if clock == "" {
		return nil
	}

	parts := strings.Split(clock, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil
	}
	minute := 0
	if len(parts) > 1 {
		minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil
		}
	}
	if hour < 0 || minute < 0 || minute > 59 {
		return nil
	}

	switch strings.ToUpper(period) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 {
		hour = hour % 24
	}

	return &timeOfDay{hour: hour, minute: minute}
}

// shouldRunToday reports whether the scenario's recurrence rule selects the
// given date.
func shouldRunToday(sc *models.Scenario, today time.Time) bool {
	switch sc.ScheduleType {
	case "", "everyday":
		return true
	case "weekdays":
		wd := today.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case "custom":
		if len(sc.SelectedDates) == 0 {
			return false
		}
		if sc.SelectedMonth != nil && *sc.SelectedMonth != int(today.Month()) {
			return false
		}
		if sc.SelectedYear != nil && *sc.SelectedYear != today.Year() {
			return false
		}
		for _, day := range sc.SelectedDates {
			if day == today.Day() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// isTimeToExecute reports whether an action is due now. The match is exact to
// the minute with no catch-up window: a tick delayed past the target minute
// misses the firing for that day. At most one execution per calendar day is
// allowed; the date comparison against lastExecuted re-enables firing the
// next day without any reset step.
func isTimeToExecute(now time.Time, target timeOfDay, lastExecuted *time.Time) bool {
	if now.Hour()*60+now.Minute() != target.minutes() {
		return false
	}
	if lastExecuted != nil && sameDay(*lastExecuted, now) {
		return false
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
