package activity

import (
	"context"
	"time"
)

// EventRepository reads session-join events. Ranges are inclusive calendar
// dates; implementations must compare on the event's stored local date.
type EventRepository interface {
	// ByTeacher returns every event for the teacher in range, any student.
	ByTeacher(ctx context.Context, teacherID string, from, to time.Time) ([]Event, error)
}
