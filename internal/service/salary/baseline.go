package salary

import (
	"context"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// CompareBaseline runs both base-pay algorithms over the same period and
// reports the divergence. The assignment figure is the retired algorithm:
// it trusts the enrollment roster and pays the full period regardless of
// what actually happened in class. Kept only so payroll can audit the
// migration; the report is never a payment figure.
func (s *SalaryServiceImpl) CompareBaseline(ctx context.Context, teacherID string, from, to time.Time) (salary.BaselineDiff, error) {
	from, to = dateOnly(from), dateOnly(to)

	result, err := s.CalculateTeacherSalary(ctx, teacherID, from, to)
	if err != nil {
		return salary.BaselineDiff{}, err
	}

	snap, err := s.load(ctx, teacherID, from, to)
	if err != nil {
		return salary.BaselineDiff{}, err
	}

	assignment := assignmentBasePay(snap, from, to)

	return salary.BaselineDiff{
		TeacherID:      teacherID,
		From:           from,
		To:             to,
		ActivityBased:  result.BaseSalary,
		AssignmentBase: assignment,
		Difference:     result.BaseSalary.Sub(assignment),
	}, nil
}

// assignmentBasePay is the legacy calculation: every assigned active
// student earns their full daily rate for every working day in the period,
// with no activity evidence consulted. Students on unpriced packages are
// skipped silently, as the old code did.
func assignmentBasePay(snap snapshot, from, to time.Time) decimal.Decimal {
	workingDays := CountWorkingDays(from, to, snap.settings.IncludeRestDay, snap.settings.RestDay)
	if workingDays == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, stu := range snap.activeStudents {
		monthly, ok := snap.packageRates[stu.Package]
		if !ok {
			continue
		}
		total = total.Add(monthly)
	}
	return total
}
