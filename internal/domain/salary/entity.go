package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentEarning is one student's contribution to base pay.
type StudentEarning struct {
	StudentID    string          `json:"student_id"`
	StudentName  string          `json:"student_name"`
	Package      string          `json:"package"`
	MonthlyRate  decimal.Decimal `json:"monthly_rate"`
	DailyRate    decimal.Decimal `json:"daily_rate"`
	TeachingDays int             `json:"teaching_days"`
	Earned       decimal.Decimal `json:"earned"`
	// MissingRate marks a student whose package has no configured monthly
	// rate. They contribute zero instead of failing the whole run.
	MissingRate bool `json:"missing_rate,omitempty"`
}

// LatenessDetail is one priced lateness occurrence.
type LatenessDetail struct {
	Date        time.Time       `json:"date"`
	StudentID   string          `json:"student_id"`
	Package     string          `json:"package"`
	ScheduledAt string          `json:"scheduled_at"`
	FirstJoin   time.Time       `json:"first_join"`
	LateMinutes int             `json:"late_minutes"`
	TierPercent decimal.Decimal `json:"tier_percent"`
	// Fallback marks a lateness value outside every configured tier that
	// was charged the whole package base.
	Fallback bool            `json:"fallback,omitempty"`
	Waived   bool            `json:"waived,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
}

// AbsenceSource says where an absence charge came from.
type AbsenceSource string

const (
	AbsenceRecorded AbsenceSource = "recorded"
	AbsenceComputed AbsenceSource = "computed"
)

// PackageCharge is the per-package slice of a computed absence day.
type PackageCharge struct {
	Package  string          `json:"package"`
	Students int             `json:"students"`
	Rate     decimal.Decimal `json:"rate"`
	Amount   decimal.Decimal `json:"amount"`
	// DefaultRate marks packages priced with the configured default because
	// no deduction rate row exists for them.
	DefaultRate bool `json:"default_rate,omitempty"`
}

// AbsenceDetail is one absence day, recorded or computed. Waived days stay
// in the breakdown with a zero amount so the audit trail survives.
type AbsenceDetail struct {
	Date      time.Time       `json:"date"`
	Source    AbsenceSource   `json:"source"`
	Permitted bool            `json:"permitted,omitempty"`
	Waived    bool            `json:"waived,omitempty"`
	Charges   []PackageCharge `json:"charges,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
}

// Result is the full salary computation for one teacher and period. It is a
// pure projection: recomputing over unchanged stored data yields an
// identical value, and both the summary list and the drill-down detail are
// read from the same instance, so the two can never diverge.
type Result struct {
	TeacherID   string    `json:"teacher_id"`
	TeacherName string    `json:"teacher_name"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`

	WorkingDays    int `json:"working_days"`
	ActiveStudents int `json:"active_students"`
	TeachingDays   int `json:"teaching_days"`

	// Sub-totals are exact sums of their breakdown rows; only Total is
	// rounded, once, to the nearest whole currency unit.
	BaseSalary        decimal.Decimal `json:"base_salary"`
	LatenessDeduction decimal.Decimal `json:"lateness_deduction"`
	AbsenceDeduction  decimal.Decimal `json:"absence_deduction"`
	Bonuses           decimal.Decimal `json:"bonuses"`
	Total             decimal.Decimal `json:"total"`

	Earnings []StudentEarning `json:"earnings"`
	Lateness []LatenessDetail `json:"lateness"`
	Absences []AbsenceDetail  `json:"absences"`

	// Warnings surface non-fatal data-quality findings (missing rate
	// configuration) so a dashboard never mistakes a degraded result for a
	// clean one.
	Warnings []string `json:"warnings,omitempty"`
}

// BaselineDiff compares the live activity-based figure against the legacy
// assignment-based algorithm. Migration aid only; never a payment figure.
type BaselineDiff struct {
	TeacherID      string          `json:"teacher_id"`
	From           time.Time       `json:"from"`
	To             time.Time       `json:"to"`
	ActivityBased  decimal.Decimal `json:"activity_based"`
	AssignmentBase decimal.Decimal `json:"assignment_based"`
	Difference     decimal.Decimal `json:"difference"`
}
