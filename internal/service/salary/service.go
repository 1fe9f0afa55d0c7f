package salary

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/activity"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/deduction"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/rates"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/salary"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/student"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/teacher"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/cache"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/metrics"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type SalaryServiceImpl struct {
	teacherRepo   teacher.TeacherRepository
	studentRepo   student.StudentRepository
	activityRepo  activity.EventRepository
	rateRepo      rates.RateRepository
	deductionRepo deduction.Repository

	cache            cache.Cache
	metrics          *metrics.Metrics
	batchConcurrency int

	// now is injectable so future-date exclusion is testable.
	now func() time.Time
}

// Option tweaks service construction.
type Option func(*SalaryServiceImpl)

// WithClock overrides the evaluation-time clock.
func WithClock(now func() time.Time) Option {
	return func(s *SalaryServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

func NewSalaryService(
	teacherRepo teacher.TeacherRepository,
	studentRepo student.StudentRepository,
	activityRepo activity.EventRepository,
	rateRepo rates.RateRepository,
	deductionRepo deduction.Repository,
	resultCache cache.Cache,
	m *metrics.Metrics,
	batchConcurrency int,
	opts ...Option,
) salary.Service {
	if batchConcurrency < 1 {
		batchConcurrency = 1
	}
	s := &SalaryServiceImpl{
		teacherRepo:      teacherRepo,
		studentRepo:      studentRepo,
		activityRepo:     activityRepo,
		rateRepo:         rateRepo,
		deductionRepo:    deductionRepo,
		cache:            resultCache,
		metrics:          m,
		batchConcurrency: batchConcurrency,
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CacheKey is the result-cache key for one teacher and period. Admin
// handlers that write deduction rows use CachePrefix to invalidate.
func CacheKey(teacherID string, from, to time.Time) string {
	return fmt.Sprintf("%s%s:%s", CachePrefix(teacherID), dateKey(from), dateKey(to))
}

func CachePrefix(teacherID string) string {
	return "salary:" + teacherID + ":"
}

// snapshot is everything one calculation reads from the store, fetched
// once up front so the computation itself is pure.
type snapshot struct {
	teacher        teacher.Teacher
	settings       rates.SalarySettings
	packageRates   map[string]decimal.Decimal
	deductionRates map[string]rates.PackageDeductionRate
	tiers          []rates.LatenessTier
	activeStudents []student.Student
	events         []activity.Event
	absenceRecords []deduction.AbsenceRecord
	waivers        []deduction.Waiver
	bonuses        []deduction.BonusRecord
}

func (s *SalaryServiceImpl) CalculateTeacherSalary(ctx context.Context, teacherID string, from, to time.Time) (salary.Result, error) {
	from, to = dateOnly(from), dateOnly(to)

	key := CacheKey(teacherID, from, to)
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			if res, ok := v.(salary.Result); ok {
				if s.metrics != nil {
					s.metrics.ObserveCacheHit()
				}
				return res, nil
			}
		}
		if s.metrics != nil {
			s.metrics.ObserveCacheMiss()
		}
	}

	started := time.Now()
	snap, err := s.load(ctx, teacherID, from, to)
	if err != nil {
		if s.metrics != nil {
			s.metrics.ObserveError()
		}
		return salary.Result{}, err
	}

	result := s.compute(ctx, snap, from, to)

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	if s.metrics != nil {
		s.metrics.ObserveCalculation("single", time.Since(started))
	}
	return result, nil
}

// load fans the independent store reads out and fails fast on the first
// store error; data-quality gaps are not errors and are absorbed later.
func (s *SalaryServiceImpl) load(ctx context.Context, teacherID string, from, to time.Time) (snapshot, error) {
	t, err := s.teacherRepo.GetByID(ctx, teacherID)
	if err != nil {
		return snapshot{}, err
	}

	snap := snapshot{teacher: t}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		settings, err := s.rateRepo.GetSettings(gctx)
		if errors.Is(err, rates.ErrSettingsNotFound) {
			settings = rates.DefaultSettings()
			err = nil
		}
		if err != nil {
			return fmt.Errorf("load salary settings: %w", err)
		}
		snap.settings = settings
		return nil
	})
	g.Go(func() error {
		pkgRates, err := s.rateRepo.GetPackageRates(gctx)
		if err != nil {
			return fmt.Errorf("load package rates: %w", err)
		}
		snap.packageRates = make(map[string]decimal.Decimal, len(pkgRates))
		for _, r := range pkgRates {
			snap.packageRates[r.Package] = r.Monthly
		}
		return nil
	})
	g.Go(func() error {
		dedRates, err := s.rateRepo.GetDeductionRates(gctx)
		if err != nil {
			return fmt.Errorf("load deduction rates: %w", err)
		}
		snap.deductionRates = make(map[string]rates.PackageDeductionRate, len(dedRates))
		for _, r := range dedRates {
			snap.deductionRates[r.Package] = r
		}
		return nil
	})
	g.Go(func() error {
		tiers, err := s.rateRepo.GetLatenessTiers(gctx)
		if err != nil {
			return fmt.Errorf("load lateness tiers: %w", err)
		}
		snap.tiers = tiers
		return nil
	})
	g.Go(func() error {
		students, err := s.studentRepo.ActiveByTeacher(gctx, teacherID)
		if err != nil {
			return fmt.Errorf("load active students: %w", err)
		}
		snap.activeStudents = students
		return nil
	})
	g.Go(func() error {
		events, err := s.activityRepo.ByTeacher(gctx, teacherID, from, to)
		if err != nil {
			return fmt.Errorf("load activity events: %w", err)
		}
		snap.events = events
		return nil
	})
	g.Go(func() error {
		recs, err := s.deductionRepo.AbsenceRecords(gctx, teacherID, from, to)
		if err != nil {
			return fmt.Errorf("load absence records: %w", err)
		}
		snap.absenceRecords = recs
		return nil
	})
	g.Go(func() error {
		waivers, err := s.deductionRepo.Waivers(gctx, teacherID, from, to)
		if err != nil {
			return fmt.Errorf("load waivers: %w", err)
		}
		snap.waivers = waivers
		return nil
	})
	g.Go(func() error {
		bonuses, err := s.deductionRepo.Bonuses(gctx, teacherID, from, to)
		if err != nil {
			return fmt.Errorf("load bonuses: %w", err)
		}
		snap.bonuses = bonuses
		return nil
	})

	if err := g.Wait(); err != nil {
		// Distinguishable from a computed-zero result: callers must not
		// render an unreachable store as an empty payroll.
		return snapshot{}, fmt.Errorf("%w: %v", salary.ErrStoreFailure, err)
	}
	return snap, nil
}

// compute is the single source of computation: summary rows and drill-down
// details are both projections of the result built here, so two call sites
// can never disagree.
func (s *SalaryServiceImpl) compute(ctx context.Context, snap snapshot, from, to time.Time) salary.Result {
	today := dateOnly(s.now())

	result := salary.Result{
		TeacherID:         snap.teacher.ID,
		TeacherName:       snap.teacher.Name,
		From:              from,
		To:                to,
		ActiveStudents:    len(snap.activeStudents),
		BaseSalary:        decimal.Zero,
		LatenessDeduction: decimal.Zero,
		AbsenceDeduction:  decimal.Zero,
		Bonuses:           decimal.Zero,
		Total:             decimal.Zero,
	}

	workingDays := WorkingDays(from, to, snap.settings.IncludeRestDay, snap.settings.RestDay)
	result.WorkingDays = len(workingDays)

	acts := summarizeActivity(snap.events)
	result.TeachingDays = len(acts.taughtDates)

	students := s.resolveStudents(ctx, snap, acts)

	var warnings []string

	earnings, base, baseWarnings := basePay(acts, students, snap.packageRates, result.WorkingDays)
	result.Earnings = earnings
	result.BaseSalary = base
	warnings = append(warnings, baseWarnings...)

	latenessDetails, latenessTotal, latenessWarnings := evaluateLateness(acts, latenessInput{
		students:       students,
		deductionRates: snap.deductionRates,
		tiers:          snap.tiers,
		settings:       snap.settings,
		waived:         waiverDates(snap.waivers, deduction.KindLateness),
		today:          today,
	})
	result.Lateness = latenessDetails
	result.LatenessDeduction = latenessTotal
	warnings = append(warnings, latenessWarnings...)

	absenceDetails, absenceTotal, absenceWarnings := evaluateAbsence(acts, absenceInput{
		workingDays:    workingDays,
		records:        snap.absenceRecords,
		waived:         waiverDates(snap.waivers, deduction.KindAbsence),
		activeStudents: snap.activeStudents,
		deductionRates: snap.deductionRates,
		settings:       snap.settings,
		today:          today,
	})
	result.Absences = absenceDetails
	result.AbsenceDeduction = absenceTotal
	warnings = append(warnings, absenceWarnings...)

	result.Bonuses = sumBonuses(snap.bonuses)

	// Sub-totals stay exact; only the net rounds, once, so the detail rows
	// always reconcile with the summary figures.
	result.Total = result.BaseSalary.
		Sub(result.LatenessDeduction).
		Sub(result.AbsenceDeduction).
		Add(result.Bonuses).
		Round(0)

	result.Warnings = dedupeSorted(warnings)

	return result
}

// resolveStudents merges the teacher's assigned active students with the
// students who actually generated activity. Pay follows the activity side:
// a substitute teacher's events count even when the assignment record never
// caught up.
func (s *SalaryServiceImpl) resolveStudents(ctx context.Context, snap snapshot, acts activitySummary) map[string]student.Student {
	students := make(map[string]student.Student, len(snap.activeStudents))
	for _, stu := range snap.activeStudents {
		students[stu.ID] = stu
	}

	var missing []string
	for _, id := range acts.studentIDs() {
		if _, ok := students[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		if fetched, err := s.studentRepo.GetByIDs(ctx, missing); err == nil {
			for _, stu := range fetched {
				students[stu.ID] = stu
			}
		}
	}

	return students
}

// basePay prices each taught student: dailyRate = monthlyRate / working
// days in period, earned = dailyRate x distinct teaching days. A student
// whose package has no monthly rate contributes zero and is flagged.
func basePay(acts activitySummary, students map[string]student.Student, packageRates map[string]decimal.Decimal, workingDays int) ([]salary.StudentEarning, decimal.Decimal, []string) {
	var (
		earnings []salary.StudentEarning
		total    = decimal.Zero
		warnings []string
	)

	for _, studentID := range acts.studentIDs() {
		stu, known := students[studentID]
		teachingDays := acts.teachingDays(studentID)

		earning := salary.StudentEarning{
			StudentID:    studentID,
			StudentName:  stu.Name,
			Package:      stu.Package,
			TeachingDays: teachingDays,
			MonthlyRate:  decimal.Zero,
			DailyRate:    decimal.Zero,
			Earned:       decimal.Zero,
		}

		monthly, hasRate := packageRates[stu.Package]
		if !known || !hasRate || workingDays == 0 {
			earning.MissingRate = true
			if !hasRate && known {
				warnings = append(warnings, fmt.Sprintf("package %q has no monthly rate; student %s excluded from base pay", stu.Package, studentID))
			}
			if !known {
				warnings = append(warnings, fmt.Sprintf("student %s has activity but no enrollment row; excluded from base pay", studentID))
			}
			earnings = append(earnings, earning)
			continue
		}

		earning.MonthlyRate = monthly
		earning.DailyRate = monthly.Div(decimal.NewFromInt(int64(workingDays)))
		earning.Earned = earning.DailyRate.Mul(decimal.NewFromInt(int64(teachingDays)))

		total = total.Add(earning.Earned)
		earnings = append(earnings, earning)
	}

	return earnings, total, warnings
}

func (s *SalaryServiceImpl) CalculateAll(ctx context.Context, from, to time.Time) ([]salary.Result, error) {
	teachers, err := s.teacherRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	results := make([]salary.Result, len(teachers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)

	for i, t := range teachers {
		i, t := i, t
		g.Go(func() error {
			res, err := s.CalculateTeacherSalary(gctx, t.ID, from, to)
			if err != nil {
				return fmt.Errorf("teacher %s: %w", t.ID, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].TeacherName < results[j].TeacherName })

	if s.metrics != nil {
		s.metrics.ObserveCalculation("batch", time.Since(started))
	}
	return results, nil
}

func dedupeSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	sort.Strings(in)
	out := in[:1]
	for _, w := range in[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}
