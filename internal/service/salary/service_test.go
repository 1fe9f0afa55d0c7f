package salary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/activity"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/deduction"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/rates"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/salary"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/student"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/teacher"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- in-memory repositories ----

type fakeTeacherRepo struct {
	teachers map[string]teacher.Teacher
}

func (f *fakeTeacherRepo) GetByID(_ context.Context, id string) (teacher.Teacher, error) {
	t, ok := f.teachers[id]
	if !ok {
		return teacher.Teacher{}, teacher.ErrTeacherNotFound
	}
	return t, nil
}

func (f *fakeTeacherRepo) List(_ context.Context) ([]teacher.Teacher, error) {
	var out []teacher.Teacher
	for _, t := range f.teachers {
		out = append(out, t)
	}
	return out, nil
}

type fakeStudentRepo struct {
	students []student.Student
}

func (f *fakeStudentRepo) GetByID(_ context.Context, id string) (student.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return student.Student{}, student.ErrStudentNotFound
}

func (f *fakeStudentRepo) ActiveByTeacher(_ context.Context, teacherID string) ([]student.Student, error) {
	var out []student.Student
	for _, s := range f.students {
		if s.TeacherID != nil && *s.TeacherID == teacherID && s.IsActive() {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStudentRepo) GetByIDs(_ context.Context, ids []string) ([]student.Student, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []student.Student
	for _, s := range f.students {
		if want[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeActivityRepo struct {
	events   []activity.Event
	calls    int
	failWith error
}

func (f *fakeActivityRepo) ByTeacher(_ context.Context, teacherID string, from, to time.Time) ([]activity.Event, error) {
	f.calls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []activity.Event
	for _, ev := range f.events {
		if ev.TeacherID != teacherID {
			continue
		}
		d := ev.Date()
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}

type fakeRateRepo struct {
	settings rates.SalarySettings
	hasSet   bool
	pkgRates []rates.PackageRate
	dedRates []rates.PackageDeductionRate
	tiers    []rates.LatenessTier
}

func (f *fakeRateRepo) GetSettings(_ context.Context) (rates.SalarySettings, error) {
	if !f.hasSet {
		return rates.SalarySettings{}, rates.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeRateRepo) UpsertSettings(_ context.Context, s rates.SalarySettings) (rates.SalarySettings, error) {
	f.settings, f.hasSet = s, true
	return s, nil
}

func (f *fakeRateRepo) GetPackageRates(_ context.Context) ([]rates.PackageRate, error) {
	return f.pkgRates, nil
}

func (f *fakeRateRepo) UpsertPackageRate(_ context.Context, r rates.PackageRate) (rates.PackageRate, error) {
	f.pkgRates = append(f.pkgRates, r)
	return r, nil
}

func (f *fakeRateRepo) GetDeductionRates(_ context.Context) ([]rates.PackageDeductionRate, error) {
	return f.dedRates, nil
}

func (f *fakeRateRepo) UpsertDeductionRate(_ context.Context, r rates.PackageDeductionRate) (rates.PackageDeductionRate, error) {
	f.dedRates = append(f.dedRates, r)
	return r, nil
}

func (f *fakeRateRepo) GetLatenessTiers(_ context.Context) ([]rates.LatenessTier, error) {
	return f.tiers, nil
}

func (f *fakeRateRepo) CreateLatenessTier(_ context.Context, t rates.LatenessTier) (rates.LatenessTier, error) {
	f.tiers = append(f.tiers, t)
	return t, nil
}

func (f *fakeRateRepo) DeleteLatenessTier(_ context.Context, id string) error {
	return rates.ErrLatenessTierNotFound
}

type fakeDeductionRepo struct {
	latenessRecs []deduction.LatenessRecord
	absenceRecs  []deduction.AbsenceRecord
	waivers      []deduction.Waiver
	bonuses      []deduction.BonusRecord
}

func (f *fakeDeductionRepo) LatenessRecords(_ context.Context, teacherID string, from, to time.Time) ([]deduction.LatenessRecord, error) {
	return f.latenessRecs, nil
}

func (f *fakeDeductionRepo) AbsenceRecords(_ context.Context, teacherID string, from, to time.Time) ([]deduction.AbsenceRecord, error) {
	return f.absenceRecs, nil
}

func (f *fakeDeductionRepo) Waivers(_ context.Context, teacherID string, from, to time.Time) ([]deduction.Waiver, error) {
	return f.waivers, nil
}

func (f *fakeDeductionRepo) Bonuses(_ context.Context, teacherID string, from, to time.Time) ([]deduction.BonusRecord, error) {
	return f.bonuses, nil
}

func (f *fakeDeductionRepo) CreateAbsenceRecord(_ context.Context, rec deduction.AbsenceRecord) (deduction.AbsenceRecord, error) {
	f.absenceRecs = append(f.absenceRecs, rec)
	return rec, nil
}

func (f *fakeDeductionRepo) CreateLatenessRecord(_ context.Context, rec deduction.LatenessRecord) (deduction.LatenessRecord, error) {
	f.latenessRecs = append(f.latenessRecs, rec)
	return rec, nil
}

func (f *fakeDeductionRepo) CreateWaiver(_ context.Context, w deduction.Waiver) (deduction.Waiver, error) {
	f.waivers = append(f.waivers, w)
	return w, nil
}

func (f *fakeDeductionRepo) DeleteWaiver(_ context.Context, id string) error {
	return deduction.ErrWaiverNotFound
}

func (f *fakeDeductionRepo) CreateBonus(_ context.Context, b deduction.BonusRecord) (deduction.BonusRecord, error) {
	f.bonuses = append(f.bonuses, b)
	return b, nil
}

// ---- fixture ----
//
// January 2026: the 1st is a Thursday, Sundays fall on the 4th, 11th, 18th
// and 25th, so the month has 27 working days and a 540 monthly rate prices
// each day at exactly 20. The teacher taught s1 on ten MWF dates.

type fixture struct {
	teacherRepo   *fakeTeacherRepo
	studentRepo   *fakeStudentRepo
	activityRepo  *fakeActivityRepo
	rateRepo      *fakeRateRepo
	deductionRepo *fakeDeductionRepo
}

var taughtJanDays = []int{5, 7, 9, 12, 14, 16, 21, 23, 26, 28}

func newFixture() *fixture {
	f := &fixture{
		teacherRepo: &fakeTeacherRepo{teachers: map[string]teacher.Teacher{
			"t1": {ID: "t1", Name: "Khalid"},
		}},
		studentRepo: &fakeStudentRepo{students: []student.Student{
			{ID: "s1", Name: "Amina", TeacherID: strptr("t1"), Package: "europe", DayPattern: "MWF", Status: student.StatusActive},
		}},
		activityRepo: &fakeActivityRepo{},
		rateRepo: &fakeRateRepo{
			pkgRates: []rates.PackageRate{
				{ID: "p1", Package: "europe", Monthly: decimal.NewFromInt(540)},
			},
			dedRates: []rates.PackageDeductionRate{
				{ID: "d1", Package: "europe", LatenessBase: decimal.NewFromInt(30), AbsenceBase: decimal.NewFromInt(30)},
			},
		},
		deductionRepo: &fakeDeductionRepo{},
	}
	for _, d := range taughtJanDays {
		f.activityRepo.events = append(f.activityRepo.events, activity.Event{
			ID:        "e",
			TeacherID: "t1",
			StudentID: "s1",
			SentTime:  time.Date(2026, time.January, d, 10, 0, 0, 0, time.UTC),
		})
	}
	return f
}

func (f *fixture) service(c cache.Cache) salary.Service {
	return NewSalaryService(
		f.teacherRepo, f.studentRepo, f.activityRepo, f.rateRepo, f.deductionRepo,
		c, nil, 4,
		WithClock(func() time.Time { return date(2026, time.January, 31) }),
	)
}

var (
	janFrom = date(2026, time.January, 1)
	janTo   = date(2026, time.January, 31)
)

// ---- tests ----

func TestCalculateTeacherSalaryBasePay(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)

	res, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)

	assert.Equal(t, 27, res.WorkingDays)
	assert.Equal(t, 10, res.TeachingDays)
	require.Len(t, res.Earnings, 1)
	assert.True(t, res.Earnings[0].DailyRate.Equal(decimal.NewFromInt(20)))
	assert.True(t, res.BaseSalary.Equal(decimal.NewFromInt(200)))
}

func TestCalculateTeacherSalaryTwentyDayPeriod(t *testing.T) {
	// 900 monthly over a 20-working-day period prices a day at 45; twelve
	// teaching days earn 540.
	f := newFixture()
	f.rateRepo.pkgRates = []rates.PackageRate{
		{ID: "p1", Package: "europe", Monthly: decimal.NewFromInt(900)},
	}
	// Mon 2026-03-02 through Tue 2026-03-24: 23 calendar days, 3 Sundays.
	from := date(2026, time.March, 2)
	to := date(2026, time.March, 24)
	f.activityRepo.events = nil
	for d := 0; d < 12; d++ {
		f.activityRepo.events = append(f.activityRepo.events, activity.Event{
			ID:        "e",
			TeacherID: "t1",
			StudentID: "s1",
			SentTime:  time.Date(2026, time.March, 2+d, 10, 0, 0, 0, time.UTC),
		})
	}
	svc := NewSalaryService(
		f.teacherRepo, f.studentRepo, f.activityRepo, f.rateRepo, f.deductionRepo,
		nil, nil, 4,
		WithClock(func() time.Time { return date(2026, time.March, 24) }),
	)

	res, err := svc.CalculateTeacherSalary(context.Background(), "t1", from, to)
	require.NoError(t, err)

	assert.Equal(t, 20, res.WorkingDays)
	require.Len(t, res.Earnings, 1)
	assert.True(t, res.Earnings[0].DailyRate.Equal(decimal.NewFromInt(45)))
	assert.True(t, res.BaseSalary.Equal(decimal.NewFromInt(540)), "got %s", res.BaseSalary)
}

func TestCalculateTeacherSalaryReversedRangeIsZero(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)

	res, err := svc.CalculateTeacherSalary(context.Background(), "t1", janTo, janFrom)
	require.NoError(t, err)

	assert.Zero(t, res.WorkingDays)
	assert.True(t, res.BaseSalary.IsZero())
	assert.True(t, res.Total.IsZero())
}

func TestCalculateTeacherSalaryRecordedAbsences(t *testing.T) {
	f := newFixture()
	// Two untaught MWF dates carry explicit records; the third (Jan 30) is
	// computed from the absence base.
	f.deductionRepo.absenceRecs = []deduction.AbsenceRecord{
		{ID: "r1", TeacherID: "t1", ClassDate: date(2026, time.January, 2), Amount: decimal.NewFromInt(25)},
		{ID: "r2", TeacherID: "t1", ClassDate: date(2026, time.January, 19), Amount: decimal.NewFromInt(25)},
	}
	svc := f.service(nil)

	res, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)

	assert.True(t, res.AbsenceDeduction.Equal(decimal.NewFromInt(80)), "got %s", res.AbsenceDeduction)

	recorded := 0
	for _, d := range res.Absences {
		if d.Source == salary.AbsenceRecorded {
			recorded++
		}
	}
	assert.Equal(t, 2, recorded)
}

func TestCalculateTeacherSalaryWaiverRestoresDeduction(t *testing.T) {
	f := newFixture()
	f.deductionRepo.absenceRecs = []deduction.AbsenceRecord{
		{ID: "r1", TeacherID: "t1", ClassDate: date(2026, time.January, 2), Amount: decimal.NewFromInt(25)},
		{ID: "r2", TeacherID: "t1", ClassDate: date(2026, time.January, 19), Amount: decimal.NewFromInt(25)},
	}
	f.deductionRepo.waivers = []deduction.Waiver{
		{ID: "w1", TeacherID: "t1", Kind: deduction.KindAbsence, ClassDate: date(2026, time.January, 2)},
		{ID: "w2", TeacherID: "t1", Kind: deduction.KindAbsence, ClassDate: date(2026, time.January, 19)},
	}
	svc := f.service(nil)

	res, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)

	// Only the computed Jan 30 absence remains; the waived rows stay in the
	// breakdown at zero.
	assert.True(t, res.AbsenceDeduction.Equal(decimal.NewFromInt(30)), "got %s", res.AbsenceDeduction)
	waived := 0
	for _, d := range res.Absences {
		if d.Waived {
			assert.True(t, d.Amount.IsZero())
			waived++
		}
	}
	assert.Equal(t, 2, waived)
}

func TestCalculateTeacherSalaryReconciliation(t *testing.T) {
	f := newFixture()
	f.deductionRepo.absenceRecs = []deduction.AbsenceRecord{
		{ID: "r1", TeacherID: "t1", ClassDate: date(2026, time.January, 2), Amount: decimal.NewFromInt(25)},
	}
	f.deductionRepo.bonuses = []deduction.BonusRecord{
		{ID: "b1", TeacherID: "t1", Amount: decimal.NewFromInt(100)},
	}
	svc := f.service(nil)

	res, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)

	// Every sub-total is the exact sum of its breakdown rows.
	earned := decimal.Zero
	for _, e := range res.Earnings {
		earned = earned.Add(e.Earned)
	}
	assert.True(t, earned.Equal(res.BaseSalary))

	absences := decimal.Zero
	for _, a := range res.Absences {
		absences = absences.Add(a.Amount)
	}
	assert.True(t, absences.Equal(res.AbsenceDeduction))

	expected := res.BaseSalary.Sub(res.LatenessDeduction).Sub(res.AbsenceDeduction).Add(res.Bonuses).Round(0)
	assert.True(t, res.Total.Equal(expected))
	assert.True(t, res.Bonuses.Equal(decimal.NewFromInt(100)))
}

func TestCalculateTeacherSalaryDeterministic(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)

	first, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)
	second, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateTeacherSalaryUsesCache(t *testing.T) {
	f := newFixture()
	svc := f.service(cache.NewMemory(time.Minute))

	first, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)
	second, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.activityRepo.calls)
}

func TestCalculateTeacherSalaryUnknownTeacher(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)

	_, err := svc.CalculateTeacherSalary(context.Background(), "missing", janFrom, janTo)
	assert.ErrorIs(t, err, teacher.ErrTeacherNotFound)
}

func TestCalculateTeacherSalaryMissingRateExcludedFromBase(t *testing.T) {
	f := newFixture()
	f.rateRepo.pkgRates = nil
	svc := f.service(nil)

	res, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)

	assert.True(t, res.BaseSalary.IsZero())
	require.Len(t, res.Earnings, 1)
	assert.True(t, res.Earnings[0].MissingRate)
	assert.NotEmpty(t, res.Warnings)
}

func TestCalculateTeacherSalarySettingsFallBackToDefaults(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)

	// The fake returns ErrSettingsNotFound; the calculation must still run
	// with defaults rather than failing.
	res, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)
	assert.Equal(t, 27, res.WorkingDays)
}

func TestCalculateTeacherSalaryStoreFailurePropagates(t *testing.T) {
	f := newFixture()
	f.activityRepo.failWith = errors.New("connection refused")
	svc := f.service(nil)

	_, err := svc.CalculateTeacherSalary(context.Background(), "t1", janFrom, janTo)
	assert.ErrorIs(t, err, salary.ErrStoreFailure)
}

func TestCalculateAllSortsByTeacherName(t *testing.T) {
	f := newFixture()
	f.teacherRepo.teachers["t2"] = teacher.Teacher{ID: "t2", Name: "Aisha"}
	svc := f.service(nil)

	results, err := svc.CalculateAll(context.Background(), janFrom, janTo)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Aisha", results[0].TeacherName)
	assert.Equal(t, "Khalid", results[1].TeacherName)
}

func TestCompareBaseline(t *testing.T) {
	f := newFixture()
	svc := f.service(nil)

	diff, err := svc.CompareBaseline(context.Background(), "t1", janFrom, janTo)
	require.NoError(t, err)

	// Activity-based pays 10 of 27 days; the legacy algorithm pays the full
	// monthly rate for the assigned student.
	assert.True(t, diff.ActivityBased.Equal(decimal.NewFromInt(200)))
	assert.True(t, diff.AssignmentBase.Equal(decimal.NewFromInt(540)))
	assert.True(t, diff.Difference.Equal(decimal.NewFromInt(-340)))
}
