package activity

import "time"

// Event is one session-join record written by the video-conference
// ingestion path. It is the ground truth that a teaching session happened:
// when it disagrees with the nominal student-teacher assignment, the event
// wins.
type Event struct {
	ID        string
	TeacherID string
	StudentID string
	// SentTime is the join timestamp in the school's local wall clock.
	// The engine only ever uses its calendar date.
	SentTime time.Time
}

// Date collapses the event to its calendar date.
func (e Event) Date() time.Time {
	y, m, d := e.SentTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.SentTime.Location())
}
