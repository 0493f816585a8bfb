package shift

import "time"

// ParseWeekdays converts ISO weekday numbers (1=Monday .. 7=Sunday) to
// time.Weekday values. Unknown numbers are reported, not dropped.
func ParseWeekdays(days []int) ([]time.Weekday, bool) {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < 1 || d > 7 {
			return nil, false
		}
		// time.Weekday has Sunday=0; ISO has Sunday=7.
		out = append(out, time.Weekday(d%7))
	}
	return out, true
}

// ExpandDates enumerates every date in [start, end] whose weekday is in the
// filter. An empty filter keeps every date.
func ExpandDates(start, end time.Time, weekdays []time.Weekday) []time.Time {
	keep := func(d time.Weekday) bool {
		if len(weekdays) == 0 {
			return true
		}
		for _, w := range weekdays {
			if w == d {
				return true
			}
		}
		return false
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if keep(d.Weekday()) {
			dates = append(dates, d)
		}
	}
	return dates
}

// FirstConflict returns the first candidate shift that overlaps an existing
// shift for the same employee/date, or nil. excludeID skips a shift being
// updated so it does not conflict with itself.
func FirstConflict(candidate Shift, existing []Shift, excludeID string) *Shift {
	for i := range existing {
		other := existing[i]
		if excludeID != "" && other.ID == excludeID {
			continue
		}
		if other.EmployeeID != candidate.EmployeeID {
			continue
		}
		if !other.ShiftDate.Equal(candidate.ShiftDate) {
			continue
		}
		if Overlaps(candidate.StartMinute, candidate.EndMinute, other.StartMinute, other.EndMinute) {
			return &existing[i]
		}
	}
	return nil
}
