package salary

import (
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Summary is the condensed per-teacher row the payroll table renders. It is
// derived from a full Result, never computed separately.
type Summary struct {
	TeacherID         string          `json:"teacher_id"`
	TeacherName       string          `json:"teacher_name"`
	ActiveStudents    int             `json:"active_students"`
	TeachingDays      int             `json:"teaching_days"`
	BaseSalary        decimal.Decimal `json:"base_salary"`
	LatenessDeduction decimal.Decimal `json:"lateness_deduction"`
	AbsenceDeduction  decimal.Decimal `json:"absence_deduction"`
	Bonuses           decimal.Decimal `json:"bonuses"`
	Total             decimal.Decimal `json:"total"`
	Warnings          []string        `json:"warnings,omitempty"`
}

// Summarize projects a Result onto its summary row.
func Summarize(r Result) Summary {
	return Summary{
		TeacherID:         r.TeacherID,
		TeacherName:       r.TeacherName,
		ActiveStudents:    r.ActiveStudents,
		TeachingDays:      r.TeachingDays,
		BaseSalary:        r.BaseSalary,
		LatenessDeduction: r.LatenessDeduction,
		AbsenceDeduction:  r.AbsenceDeduction,
		Bonuses:           r.Bonuses,
		Total:             r.Total,
		Warnings:          r.Warnings,
	}
}

// ParsePeriod validates the from/to query parameters. Both are required,
// "2006-01-02". A reversed range is legal and yields an empty period
// downstream; unparseable dates are not.
func ParsePeriod(fromStr, toStr string) (from, to time.Time, err error) {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(fromStr)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be YYYY-MM-DD"})
	}
	to, okTo := validator.IsValidDate(toStr)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return from, to, nil
}
