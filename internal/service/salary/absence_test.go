package salary

import (
	"testing"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/activity"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/deduction"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/rates"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/salary"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/student"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func absenceFixture() absenceInput {
	// Mon 2026-01-05 through Sat 2026-01-10.
	return absenceInput{
		workingDays: WorkingDays(date(2026, time.January, 5), date(2026, time.January, 10), false, time.Sunday),
		waived:      map[string]bool{},
		activeStudents: []student.Student{
			{ID: "s1", TeacherID: strptr("t1"), Package: "A", DayPattern: "MWF", Status: student.StatusActive},
			{ID: "s2", TeacherID: strptr("t1"), Package: "A", DayPattern: "MWF", Status: student.StatusActive},
			{ID: "s3", TeacherID: strptr("t1"), Package: "B", DayPattern: "All days", Status: student.StatusActive},
		},
		deductionRates: map[string]rates.PackageDeductionRate{
			"A": {Package: "A", LatenessBase: decimal.NewFromInt(30), AbsenceBase: decimal.NewFromInt(10)},
		},
		settings: rates.DefaultSettings(),
		today:    date(2026, time.January, 10),
	}
}

func taughtOnDays(days ...int) activitySummary {
	var events []activity.Event
	for _, d := range days {
		events = append(events, activity.Event{
			ID:        "e",
			TeacherID: "t1",
			StudentID: "s1",
			SentTime:  time.Date(2026, time.January, d, 10, 0, 0, 0, time.UTC),
		})
	}
	return summarizeActivity(events)
}

func TestEvaluateAbsenceRecordedDecidesTheDate(t *testing.T) {
	in := absenceFixture()
	// Taught Monday only; Tuesday has an explicit record. The computed path
	// must not charge Tuesday again.
	in.records = []deduction.AbsenceRecord{
		{ID: "r1", TeacherID: "t1", ClassDate: date(2026, time.January, 6), Amount: decimal.NewFromInt(25)},
	}
	acts := taughtOnDays(5, 7, 8, 9, 10)

	details, total, _ := evaluateAbsence(acts, in)

	require.Len(t, details, 1)
	assert.Equal(t, salary.AbsenceRecorded, details[0].Source)
	assert.True(t, details[0].Amount.Equal(decimal.NewFromInt(25)))
	assert.True(t, total.Equal(decimal.NewFromInt(25)))
}

func TestEvaluateAbsencePermittedRecordKeepsRowAtZero(t *testing.T) {
	in := absenceFixture()
	in.records = []deduction.AbsenceRecord{
		{ID: "r1", TeacherID: "t1", ClassDate: date(2026, time.January, 6), Permitted: true, Amount: decimal.NewFromInt(25)},
	}
	acts := taughtOnDays(5, 7, 8, 9, 10)

	details, total, _ := evaluateAbsence(acts, in)

	require.Len(t, details, 1)
	assert.True(t, details[0].Permitted)
	assert.True(t, details[0].Amount.IsZero())
	assert.True(t, total.IsZero())
}

func TestEvaluateAbsenceComputedChargesPerPackage(t *testing.T) {
	in := absenceFixture()
	// Wednesday 2026-01-07 untaught: two package-A students (MWF, rate 10)
	// plus one package-B student (all days, no configured rate, default 25).
	acts := taughtOnDays(5, 6, 8, 9, 10)

	details, total, warnings := evaluateAbsence(acts, in)

	require.Len(t, details, 1)
	d := details[0]
	assert.Equal(t, salary.AbsenceComputed, d.Source)
	require.Len(t, d.Charges, 2)
	assert.Equal(t, "A", d.Charges[0].Package)
	assert.Equal(t, 2, d.Charges[0].Students)
	assert.True(t, d.Charges[0].Amount.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "B", d.Charges[1].Package)
	assert.True(t, d.Charges[1].DefaultRate)
	assert.True(t, d.Charges[1].Amount.Equal(decimal.NewFromInt(25)))
	assert.True(t, total.Equal(decimal.NewFromInt(45)))
	assert.Len(t, warnings, 1)
}

func TestEvaluateAbsenceOnlyScheduledStudentsCharged(t *testing.T) {
	in := absenceFixture()
	// Thursday 2026-01-08 untaught: MWF students are not scheduled, only the
	// all-days student is charged.
	acts := taughtOnDays(5, 6, 7, 9, 10)

	details, total, _ := evaluateAbsence(acts, in)

	require.Len(t, details, 1)
	require.Len(t, details[0].Charges, 1)
	assert.Equal(t, "B", details[0].Charges[0].Package)
	assert.True(t, total.Equal(decimal.NewFromInt(25)))
}

func TestEvaluateAbsenceWaiverZeroesButKeepsRow(t *testing.T) {
	in := absenceFixture()
	in.waived[dateKey(date(2026, time.January, 7))] = true
	acts := taughtOnDays(5, 6, 8, 9, 10)

	details, total, _ := evaluateAbsence(acts, in)

	require.Len(t, details, 1)
	assert.True(t, details[0].Waived)
	assert.True(t, details[0].Amount.IsZero())
	assert.NotEmpty(t, details[0].Charges)
	assert.True(t, total.IsZero())
}

func TestEvaluateAbsenceSkipsFutureDays(t *testing.T) {
	in := absenceFixture()
	in.today = date(2026, time.January, 7)
	// Nothing taught at all: only days up to today can be charged.
	acts := summarizeActivity(nil)

	details, _, _ := evaluateAbsence(acts, in)

	for _, d := range details {
		assert.False(t, d.Date.After(in.today))
	}
	// Mon, Tue, Wed are chargeable; Thu-Sat are in the future.
	assert.Len(t, details, 3)
}

func TestEvaluateAbsenceSkipsFutureRecordedRows(t *testing.T) {
	in := absenceFixture()
	in.today = date(2026, time.January, 7)
	// An admin can enter a record ahead of time; it must not charge until the
	// date has passed. Thursday 2026-01-08 is still in the future here.
	in.records = []deduction.AbsenceRecord{
		{ID: "r1", TeacherID: "t1", ClassDate: date(2026, time.January, 8), Amount: decimal.NewFromInt(25)},
	}
	acts := taughtOnDays(5, 6, 7)

	details, total, _ := evaluateAbsence(acts, in)

	assert.Empty(t, details)
	assert.True(t, total.IsZero())
}

func TestEvaluateAbsenceNoActiveStudentsNoCharges(t *testing.T) {
	in := absenceFixture()
	in.activeStudents = nil
	acts := summarizeActivity(nil)

	details, total, _ := evaluateAbsence(acts, in)

	assert.Empty(t, details)
	assert.True(t, total.IsZero())
}
