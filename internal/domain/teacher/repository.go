package teacher

import "context"

type TeacherRepository interface {
	GetByID(ctx context.Context, id string) (Teacher, error)
	List(ctx context.Context) ([]Teacher, error)
}
