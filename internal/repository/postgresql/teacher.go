package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/teacher"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type teacherRepositoryImpl struct {
	db *database.DB
}

func NewTeacherRepository(db *database.DB) teacher.TeacherRepository {
	return &teacherRepositoryImpl{db: db}
}

// GetByID implements teacher.TeacherRepository.
func (r *teacherRepositoryImpl) GetByID(ctx context.Context, id string) (teacher.Teacher, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, phone, created_at, updated_at
		FROM teachers
		WHERE id = $1
	`

	var t teacher.Teacher
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Phone, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return teacher.Teacher{}, teacher.ErrTeacherNotFound
		}
		return teacher.Teacher{}, fmt.Errorf("failed to get teacher: %w", err)
	}

	return t, nil
}

// List implements teacher.TeacherRepository.
func (r *teacherRepositoryImpl) List(ctx context.Context) ([]teacher.Teacher, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, phone, created_at, updated_at
		FROM teachers
		ORDER BY name, id
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	defer rows.Close()

	var teachers []teacher.Teacher
	for rows.Next() {
		var t teacher.Teacher
		if err := rows.Scan(&t.ID, &t.Name, &t.Phone, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan teacher: %w", err)
		}
		teachers = append(teachers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teachers: %w", err)
	}

	return teachers, nil
}
