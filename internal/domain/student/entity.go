package student

import (
	"strings"
	"time"
)

type Status string

const (
	StatusActive     Status = "active"
	StatusNotYet     Status = "not_yet"
	StatusInactive   Status = "inactive"
	StatusCompleted  Status = "completed"
	StatusOnVacation Status = "on_vacation"
)

// Student carries the enrollment data the engine needs: which pricing
// package the student is on, which days of the week they are scheduled,
// and the slot time lateness is measured against.
//
// TeacherID is the nominal assignment and is known to drift from reality
// (substitutions, hand-offs). Base pay follows observed activity, not this
// field; absence evaluation uses it to know who a teacher is responsible for.
type Student struct {
	ID         string
	Name       string
	TeacherID  *string
	Package    string
	DayPattern string  // e.g. "MWF", "TTS", "All days"
	TimeSlot   *string // "15:04" local wall-clock, nil when unscheduled
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s Student) IsActive() bool {
	return s.Status == StatusActive
}

// ScheduledOn reports whether the student's day pattern includes the given
// weekday. Unknown or empty patterns schedule every day, which matches how
// the intake side records "All days" enrollments.
func (s Student) ScheduledOn(day time.Weekday) bool {
	for _, d := range ScheduleDays(s.DayPattern) {
		if d == day {
			return true
		}
	}
	return false
}

var patternDays = map[string][]time.Weekday{
	"MWF": {time.Monday, time.Wednesday, time.Friday},
	"TTS": {time.Tuesday, time.Thursday, time.Saturday},
	"SS":  {time.Saturday, time.Sunday},
}

var allDays = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

// ScheduleDays resolves a day pattern key to concrete weekdays.
func ScheduleDays(pattern string) []time.Weekday {
	key := strings.ToUpper(strings.TrimSpace(pattern))
	if days, ok := patternDays[key]; ok {
		return days
	}
	// "All days" and anything unrecognized fall back to every day so a
	// mistyped pattern widens coverage instead of silently dropping days.
	return allDays
}
