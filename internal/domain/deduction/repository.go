package deduction

import (
	"context"
	"time"
)

// Repository exposes the manually entered deduction, waiver and bonus rows
// for a teacher and inclusive date range. The engine reads; the admin
// handlers write.
type Repository interface {
	LatenessRecords(ctx context.Context, teacherID string, from, to time.Time) ([]LatenessRecord, error)
	AbsenceRecords(ctx context.Context, teacherID string, from, to time.Time) ([]AbsenceRecord, error)
	Waivers(ctx context.Context, teacherID string, from, to time.Time) ([]Waiver, error)
	Bonuses(ctx context.Context, teacherID string, from, to time.Time) ([]BonusRecord, error)

	CreateAbsenceRecord(ctx context.Context, rec AbsenceRecord) (AbsenceRecord, error)
	CreateLatenessRecord(ctx context.Context, rec LatenessRecord) (LatenessRecord, error)
	CreateWaiver(ctx context.Context, w Waiver) (Waiver, error)
	DeleteWaiver(ctx context.Context, id string) error
	CreateBonus(ctx context.Context, b BonusRecord) (BonusRecord, error)
}
