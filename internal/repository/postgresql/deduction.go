package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/deduction"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type deductionRepositoryImpl struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) deduction.Repository {
	return &deductionRepositoryImpl{db: db}
}

// LatenessRecords implements deduction.Repository.
func (r *deductionRepositoryImpl) LatenessRecords(ctx context.Context, teacherID string, from, to time.Time) ([]deduction.LatenessRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, teacher_id, class_date, amount, created_at
		FROM lateness_records
		WHERE teacher_id = $1
		  AND class_date >= $2::date
		  AND class_date <= $3::date
		ORDER BY class_date
	`

	rows, err := q.Query(ctx, query, teacherID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list lateness records: %w", err)
	}
	defer rows.Close()

	var records []deduction.LatenessRecord
	for rows.Next() {
		var rec deduction.LatenessRecord
		if err := rows.Scan(&rec.ID, &rec.TeacherID, &rec.ClassDate, &rec.Amount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lateness record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lateness records: %w", err)
	}

	return records, nil
}

// AbsenceRecords implements deduction.Repository.
func (r *deductionRepositoryImpl) AbsenceRecords(ctx context.Context, teacherID string, from, to time.Time) ([]deduction.AbsenceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, teacher_id, class_date, permitted, amount, reason, created_at
		FROM absence_records
		WHERE teacher_id = $1
		  AND class_date >= $2::date
		  AND class_date <= $3::date
		ORDER BY class_date
	`

	rows, err := q.Query(ctx, query, teacherID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence records: %w", err)
	}
	defer rows.Close()

	var records []deduction.AbsenceRecord
	for rows.Next() {
		var rec deduction.AbsenceRecord
		if err := rows.Scan(&rec.ID, &rec.TeacherID, &rec.ClassDate, &rec.Permitted, &rec.Amount, &rec.Reason, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan absence record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absence records: %w", err)
	}

	return records, nil
}

// Waivers implements deduction.Repository.
func (r *deductionRepositoryImpl) Waivers(ctx context.Context, teacherID string, from, to time.Time) ([]deduction.Waiver, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, teacher_id, kind, class_date, reason, created_at
		FROM deduction_waivers
		WHERE teacher_id = $1
		  AND class_date >= $2::date
		  AND class_date <= $3::date
		ORDER BY class_date
	`

	rows, err := q.Query(ctx, query, teacherID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list waivers: %w", err)
	}
	defer rows.Close()

	var waivers []deduction.Waiver
	for rows.Next() {
		var w deduction.Waiver
		if err := rows.Scan(&w.ID, &w.TeacherID, &w.Kind, &w.ClassDate, &w.Reason, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan waiver: %w", err)
		}
		waivers = append(waivers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate waivers: %w", err)
	}

	return waivers, nil
}

// Bonuses implements deduction.Repository.
func (r *deductionRepositoryImpl) Bonuses(ctx context.Context, teacherID string, from, to time.Time) ([]deduction.BonusRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, teacher_id, amount, reason, created_at
		FROM bonus_records
		WHERE teacher_id = $1
		  AND created_at::date >= $2::date
		  AND created_at::date <= $3::date
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, teacherID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	defer rows.Close()

	var bonuses []deduction.BonusRecord
	for rows.Next() {
		var b deduction.BonusRecord
		if err := rows.Scan(&b.ID, &b.TeacherID, &b.Amount, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bonus: %w", err)
		}
		bonuses = append(bonuses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bonuses: %w", err)
	}

	return bonuses, nil
}

// CreateAbsenceRecord implements deduction.Repository. One record per
// teacher per date; a duplicate maps to ErrRecordAlreadyExists.
func (r *deductionRepositoryImpl) CreateAbsenceRecord(ctx context.Context, rec deduction.AbsenceRecord) (deduction.AbsenceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_records (id, teacher_id, class_date, permitted, amount, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	rec.ID = uuid.NewString()
	err := q.QueryRow(ctx, query, rec.ID, rec.TeacherID, rec.ClassDate, rec.Permitted, rec.Amount, rec.Reason).
		Scan(&rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return deduction.AbsenceRecord{}, deduction.ErrRecordAlreadyExists
		}
		return deduction.AbsenceRecord{}, fmt.Errorf("failed to create absence record: %w", err)
	}

	return rec, nil
}

// CreateLatenessRecord implements deduction.Repository.
func (r *deductionRepositoryImpl) CreateLatenessRecord(ctx context.Context, rec deduction.LatenessRecord) (deduction.LatenessRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO lateness_records (id, teacher_id, class_date, amount)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	rec.ID = uuid.NewString()
	err := q.QueryRow(ctx, query, rec.ID, rec.TeacherID, rec.ClassDate, rec.Amount).
		Scan(&rec.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return deduction.LatenessRecord{}, deduction.ErrRecordAlreadyExists
		}
		return deduction.LatenessRecord{}, fmt.Errorf("failed to create lateness record: %w", err)
	}

	return rec, nil
}

// CreateWaiver implements deduction.Repository.
func (r *deductionRepositoryImpl) CreateWaiver(ctx context.Context, w deduction.Waiver) (deduction.Waiver, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deduction_waivers (id, teacher_id, kind, class_date, reason)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (teacher_id, kind, class_date) DO UPDATE SET
			reason = EXCLUDED.reason
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, uuid.NewString(), w.TeacherID, w.Kind, w.ClassDate, w.Reason).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return deduction.Waiver{}, fmt.Errorf("failed to create waiver: %w", err)
	}

	return w, nil
}

// DeleteWaiver implements deduction.Repository.
func (r *deductionRepositoryImpl) DeleteWaiver(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM deduction_waivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete waiver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return deduction.ErrWaiverNotFound
	}

	return nil
}

// CreateBonus implements deduction.Repository.
func (r *deductionRepositoryImpl) CreateBonus(ctx context.Context, b deduction.BonusRecord) (deduction.BonusRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO bonus_records (id, teacher_id, amount, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	b.ID = uuid.NewString()
	err := q.QueryRow(ctx, query, b.ID, b.TeacherID, b.Amount, b.Reason).
		Scan(&b.CreatedAt)
	if err != nil {
		return deduction.BonusRecord{}, fmt.Errorf("failed to create bonus: %w", err)
	}

	return b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
