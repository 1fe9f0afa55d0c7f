package salary

import (
	"sort"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/activity"
)

// activitySummary is the collapsed view of a teacher's session-join events:
// who was taught on which day, and the first join time per student per day.
// Multiple events for the same student and date collapse to one teaching
// day; the earliest timestamp survives for lateness evaluation.
type activitySummary struct {
	// days maps studentID -> dateKey -> date.
	days map[string]map[string]time.Time
	// taughtDates is the union across students; a teacher who taught anyone
	// on a date was not absent that date.
	taughtDates map[string]time.Time
	// firstJoin maps studentID -> dateKey -> earliest join timestamp.
	firstJoin map[string]map[string]time.Time
}

func summarizeActivity(events []activity.Event) activitySummary {
	s := activitySummary{
		days:        make(map[string]map[string]time.Time),
		taughtDates: make(map[string]time.Time),
		firstJoin:   make(map[string]map[string]time.Time),
	}

	for _, ev := range events {
		date := ev.Date()
		key := dateKey(date)

		if s.days[ev.StudentID] == nil {
			s.days[ev.StudentID] = make(map[string]time.Time)
			s.firstJoin[ev.StudentID] = make(map[string]time.Time)
		}
		s.days[ev.StudentID][key] = date
		s.taughtDates[key] = date

		if first, ok := s.firstJoin[ev.StudentID][key]; !ok || ev.SentTime.Before(first) {
			s.firstJoin[ev.StudentID][key] = ev.SentTime
		}
	}

	return s
}

// studentIDs returns the distinct students that generated activity, sorted
// for deterministic iteration.
func (s activitySummary) studentIDs() []string {
	ids := make([]string, 0, len(s.days))
	for id := range s.days {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// teachingDays returns the number of distinct dates the student was taught.
func (s activitySummary) teachingDays(studentID string) int {
	return len(s.days[studentID])
}

// taughtOn reports whether the teacher taught anyone on the date.
func (s activitySummary) taughtOn(date time.Time) bool {
	_, ok := s.taughtDates[dateKey(date)]
	return ok
}

// datesFor returns the student's teaching dates in ascending order.
func (s activitySummary) datesFor(studentID string) []time.Time {
	dates := make([]time.Time, 0, len(s.days[studentID]))
	for _, d := range s.days[studentID] {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
