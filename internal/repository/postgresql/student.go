package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/student"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type studentRepositoryImpl struct {
	db *database.DB
}

func NewStudentRepository(db *database.DB) student.StudentRepository {
	return &studentRepositoryImpl{db: db}
}

const studentColumns = `id, name, teacher_id, package, day_pattern, time_slot, status, created_at, updated_at`

func scanStudent(row pgx.Row) (student.Student, error) {
	var s student.Student
	err := row.Scan(
		&s.ID, &s.Name, &s.TeacherID, &s.Package, &s.DayPattern,
		&s.TimeSlot, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// GetByID implements student.StudentRepository.
func (r *studentRepositoryImpl) GetByID(ctx context.Context, id string) (student.Student, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	s, err := scanStudent(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return student.Student{}, student.ErrStudentNotFound
		}
		return student.Student{}, fmt.Errorf("failed to get student: %w", err)
	}

	return s, nil
}

// ActiveByTeacher implements student.StudentRepository.
func (r *studentRepositoryImpl) ActiveByTeacher(ctx context.Context, teacherID string) ([]student.Student, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE teacher_id = $1
		  AND status = $2
		ORDER BY name, id
	`

	rows, err := q.Query(ctx, query, teacherID, student.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active students: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

// GetByIDs implements student.StudentRepository.
func (r *studentRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]student.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get students by ids: %w", err)
	}
	defer rows.Close()

	return collectStudents(rows)
}

func collectStudents(rows pgx.Rows) ([]student.Student, error) {
	var students []student.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate students: %w", err)
	}
	return students, nil
}
