package salary

import "time"

const dateKeyLayout = "2006-01-02"

// dateOnly truncates a timestamp to its calendar date, keeping the location.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// WorkingDays enumerates the working dates in [from, to], both endpoints
// inclusive. When includeRestDay is false the weekly rest day is excluded.
// A reversed range yields nil; there is no failure mode.
func WorkingDays(from, to time.Time, includeRestDay bool, restDay time.Weekday) []time.Time {
	from, to = dateOnly(from), dateOnly(to)
	if from.After(to) {
		return nil
	}

	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !includeRestDay && d.Weekday() == restDay {
			continue
		}
		days = append(days, d)
	}
	return days
}

// CountWorkingDays counts the working days in [from, to] under the same
// rules as WorkingDays.
func CountWorkingDays(from, to time.Time, includeRestDay bool, restDay time.Weekday) int {
	return len(WorkingDays(from, to, includeRestDay, restDay))
}
