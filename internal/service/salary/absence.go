package salary

import (
	"sort"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/deduction"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/rates"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/salary"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/student"
	"github.com/shopspring/decimal"
)

type absenceInput struct {
	// workingDays is the enumeration for the requested period.
	workingDays []time.Time
	// records are the explicitly entered absence rows in range.
	records []deduction.AbsenceRecord
	// waived holds dateKeys covered by an absence waiver.
	waived map[string]bool
	// activeStudents are the teacher's nominally assigned active students.
	activeStudents []student.Student
	deductionRates map[string]rates.PackageDeductionRate
	settings       rates.SalarySettings
	today          time.Time
}

// evaluateAbsence reconciles recorded and computed absences.
//
// A date with an explicit record is decided by that record alone: the
// computed path must skip it so no day is ever double-counted. Remaining
// working days with no observed activity become computed absences, charged
// per package and per affected student. Waivers force any date to zero but
// keep the row for the audit trail. Future dates are skipped outright,
// whether recorded or computed.
func evaluateAbsence(acts activitySummary, in absenceInput) ([]salary.AbsenceDetail, decimal.Decimal, []string) {
	var (
		details  []salary.AbsenceDetail
		total    = decimal.Zero
		warnings []string
	)

	decided := make(map[string]bool)

	for _, rec := range in.records {
		date := dateOnly(rec.ClassDate)
		if date.After(in.today) {
			continue
		}
		key := dateKey(date)
		decided[key] = true

		detail := salary.AbsenceDetail{
			Date:      date,
			Source:    salary.AbsenceRecorded,
			Permitted: rec.Permitted,
			Amount:    rec.Applied(),
		}
		if in.waived[key] {
			detail.Waived = true
			detail.Amount = decimal.Zero
		}

		total = total.Add(detail.Amount)
		details = append(details, detail)
	}

	defaultWarned := false
	for _, day := range in.workingDays {
		key := dateKey(day)
		if decided[key] {
			continue
		}
		if day.After(in.today) {
			continue
		}
		if len(in.activeStudents) == 0 {
			break
		}
		if acts.taughtOn(day) {
			continue
		}

		charges, dayTotal, usedDefault := chargeAbsenceDay(day, in.activeStudents, in.deductionRates, in.settings)
		if len(charges) == 0 {
			// Nobody was scheduled that day.
			continue
		}
		if usedDefault && !defaultWarned {
			warnings = append(warnings, "one or more packages have no deduction rate; default absence rate applied")
			defaultWarned = true
		}

		detail := salary.AbsenceDetail{
			Date:    day,
			Source:  salary.AbsenceComputed,
			Charges: charges,
			Amount:  dayTotal,
		}
		if in.waived[key] {
			// Still reported, for auditability, as computed-but-waived.
			detail.Waived = true
			detail.Amount = decimal.Zero
		}

		total = total.Add(detail.Amount)
		details = append(details, detail)
	}

	sort.Slice(details, func(i, j int) bool { return details[i].Date.Before(details[j].Date) })

	return details, total, warnings
}

// chargeAbsenceDay groups the students scheduled on the given day by
// package and prices each group. Every affected student contributes
// independently; a package with no configured rate still counts, at the
// default, since dropping those students would under-charge.
func chargeAbsenceDay(day time.Time, students []student.Student, dedRates map[string]rates.PackageDeductionRate, settings rates.SalarySettings) ([]salary.PackageCharge, decimal.Decimal, bool) {
	counts := make(map[string]int)
	for _, stu := range students {
		if !stu.ScheduledOn(day.Weekday()) {
			continue
		}
		counts[stu.Package]++
	}

	pkgs := make([]string, 0, len(counts))
	for pkg := range counts {
		pkgs = append(pkgs, pkg)
	}
	sort.Strings(pkgs)

	var (
		charges     []salary.PackageCharge
		dayTotal    = decimal.Zero
		usedDefault bool
	)
	for _, pkg := range pkgs {
		rate := settings.DefaultAbsenceRate
		isDefault := true
		if r, ok := dedRates[pkg]; ok {
			rate = r.AbsenceBase
			isDefault = false
		} else {
			usedDefault = true
		}

		amount := rate.Mul(decimal.NewFromInt(int64(counts[pkg])))
		charges = append(charges, salary.PackageCharge{
			Package:     pkg,
			Students:    counts[pkg],
			Rate:        rate,
			Amount:      amount,
			DefaultRate: isDefault,
		})
		dayTotal = dayTotal.Add(amount)
	}

	return charges, dayTotal, usedDefault
}

// waiverDates indexes waivers of one kind by dateKey.
func waiverDates(waivers []deduction.Waiver, kind deduction.Kind) map[string]bool {
	m := make(map[string]bool)
	for _, w := range waivers {
		if w.Kind == kind {
			m[dateKey(dateOnly(w.ClassDate))] = true
		}
	}
	return m
}
