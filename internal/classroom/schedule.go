package classroom

import (
	"strings"
	"time"
)

const clockLayout = "15:04"

// CurrentPeriod returns the period whose bell window contains now. Periods
// without both times set are ignored.
func CurrentPeriod(times []PeriodTime, now time.Time) (PeriodTime, bool) {
	minute := now.Hour()*60 + now.Minute()
	for _, p := range times {
		start, okStart := clockMinutes(p.StartTime)
		end, okEnd := clockMinutes(p.EndTime)
		if !okStart || !okEnd {
			continue
		}
		if minute >= start && minute < end {
			return p, true
		}
	}
	return PeriodTime{}, false
}

// ClassAt returns the class scheduled on weekday in period (1-based).
// The timetable starts on Sunday.
func ClassAt(schedule []ScheduleDay, weekday time.Weekday, period int) string {
	day := int(weekday)
	if day < 0 || day >= len(schedule) {
		return ""
	}
	periods := schedule[day].Periods
	if period < 1 || period > len(periods) {
		return ""
	}
	return strings.TrimSpace(periods[period-1])
}

func clockMinutes(value string) (int, bool) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
