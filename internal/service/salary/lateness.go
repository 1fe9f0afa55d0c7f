package salary

import (
	"fmt"
	"sort"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/rates"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/salary"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/student"
	"github.com/shopspring/decimal"
)

// latenessInput carries everything the lateness evaluator reads. It never
// touches the store itself; the orchestrator fans the reads out and hands
// the snapshots in.
type latenessInput struct {
	students       map[string]student.Student
	deductionRates map[string]rates.PackageDeductionRate
	tiers          []rates.LatenessTier
	settings       rates.SalarySettings
	// waived holds dateKeys covered by a lateness waiver.
	waived map[string]bool
	today  time.Time
}

// evaluateLateness prices every late session join in the activity summary.
// Zero lateness produces no row; a waived date keeps its row with a zero
// amount so the drill-down can still show what was forgiven.
func evaluateLateness(acts activitySummary, in latenessInput) ([]salary.LatenessDetail, decimal.Decimal, []string) {
	var (
		details  []salary.LatenessDetail
		total    = decimal.Zero
		warnings []string
	)

	tiers := append([]rates.LatenessTier(nil), in.tiers...)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].StartMin < tiers[j].StartMin })

	for _, studentID := range acts.studentIDs() {
		stu, ok := in.students[studentID]
		if !ok || stu.TimeSlot == nil {
			// No schedule to be late against.
			continue
		}
		slot, err := time.Parse("15:04", *stu.TimeSlot)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("student %s has an unparseable time slot %q", studentID, *stu.TimeSlot))
			continue
		}

		base, usedDefault := latenessBase(stu.Package, in.deductionRates, in.settings)
		if usedDefault {
			warnings = append(warnings, fmt.Sprintf("package %q has no deduction rate; using default lateness base", stu.Package))
		}

		for _, date := range acts.datesFor(studentID) {
			if date.After(in.today) {
				// Attendance cannot be known yet.
				continue
			}

			firstJoin := acts.firstJoin[studentID][dateKey(date)]
			scheduled := time.Date(date.Year(), date.Month(), date.Day(),
				slot.Hour(), slot.Minute(), 0, 0, firstJoin.Location())

			lateMinutes := int(firstJoin.Sub(scheduled).Minutes())
			if lateMinutes <= 0 {
				continue
			}

			detail := salary.LatenessDetail{
				Date:        date,
				StudentID:   studentID,
				Package:     stu.Package,
				ScheduledAt: *stu.TimeSlot,
				FirstJoin:   firstJoin,
				LateMinutes: lateMinutes,
			}

			tier, matched := matchTier(tiers, lateMinutes)
			switch {
			case matched:
				detail.TierPercent = tier.Percent
				detail.Amount = base.Mul(tier.Percent).Div(decimal.NewFromInt(100))
			case in.settings.TierFallbackWholeBase:
				// Outside every configured tier: the whole base is charged.
				detail.Fallback = true
				detail.Amount = base
			default:
				continue
			}

			if in.waived[dateKey(date)] {
				detail.Waived = true
				detail.Amount = decimal.Zero
			}

			total = total.Add(detail.Amount)
			details = append(details, detail)
		}
	}

	sort.Slice(details, func(i, j int) bool {
		if !details[i].Date.Equal(details[j].Date) {
			return details[i].Date.Before(details[j].Date)
		}
		return details[i].StudentID < details[j].StudentID
	})

	return details, total, warnings
}

func matchTier(tiers []rates.LatenessTier, lateMinutes int) (rates.LatenessTier, bool) {
	for _, t := range tiers {
		if t.Contains(lateMinutes) {
			return t, true
		}
	}
	return rates.LatenessTier{}, false
}

func latenessBase(pkg string, dedRates map[string]rates.PackageDeductionRate, settings rates.SalarySettings) (decimal.Decimal, bool) {
	if r, ok := dedRates[pkg]; ok {
		return r.LatenessBase, false
	}
	return settings.DefaultLatenessBase, true
}
