package student

import "context"

type StudentRepository interface {
	GetByID(ctx context.Context, id string) (Student, error)
	// ActiveByTeacher returns the students nominally assigned to the teacher
	// with an active status.
	ActiveByTeacher(ctx context.Context, teacherID string) ([]Student, error)
	// GetByIDs fetches students in bulk, preserving no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]Student, error)
}
