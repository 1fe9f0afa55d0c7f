package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/activity"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/database"
)

type activityRepositoryImpl struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.EventRepository {
	return &activityRepositoryImpl{db: db}
}

// ByTeacher implements activity.EventRepository. The range is inclusive and
// compared on the stored local calendar date, not the raw timestamp, so an
// event late on the last day of the period still counts.
func (r *activityRepositoryImpl) ByTeacher(ctx context.Context, teacherID string, from, to time.Time) ([]activity.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, teacher_id, student_id, sent_time
		FROM activity_events
		WHERE teacher_id = $1
		  AND sent_time::date >= $2::date
		  AND sent_time::date <= $3::date
		ORDER BY sent_time
	`

	rows, err := q.Query(ctx, query, teacherID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity events: %w", err)
	}
	defer rows.Close()

	var events []activity.Event
	for rows.Next() {
		var ev activity.Event
		if err := rows.Scan(&ev.ID, &ev.TeacherID, &ev.StudentID, &ev.SentTime); err != nil {
			return nil, fmt.Errorf("failed to scan activity event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activity events: %w", err)
	}

	return events, nil
}
