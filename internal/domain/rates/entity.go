package rates

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackageRate is the monthly salary amount a teacher earns per student
// enrolled in the named package.
type PackageRate struct {
	ID        string
	Package   string
	Monthly   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PackageDeductionRate carries the base amounts lateness and absence
// deductions are priced from, per package. Independent from the monthly
// salary rate on purpose: the two are configured by different admin screens.
type PackageDeductionRate struct {
	ID           string
	Package      string
	LatenessBase decimal.Decimal
	AbsenceBase  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LatenessTier maps an inclusive minute range to a deduction percentage.
// Tiers are stored ordered and non-overlapping; the first tier containing
// the lateness value wins.
type LatenessTier struct {
	ID        string
	StartMin  int
	EndMin    int
	Percent   decimal.Decimal // 10 means 10% of the package lateness base
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether the tier's inclusive range covers m.
func (t LatenessTier) Contains(m int) bool {
	return m >= t.StartMin && m <= t.EndMin
}

// SalarySettings is the single global configuration row the engine reads
// once per invocation.
type SalarySettings struct {
	ID string
	// IncludeRestDay makes the weekly rest day count as a working day.
	IncludeRestDay bool
	RestDay        time.Weekday
	// TierFallbackWholeBase charges the full package base when a lateness
	// value matches no configured tier. Off means no charge outside tiers.
	TierFallbackWholeBase bool
	// DefaultAbsenceRate prices absence days for students whose package has
	// no configured deduction rate. Dropping them would under-charge.
	DefaultAbsenceRate decimal.Decimal
	// DefaultLatenessBase prices lateness for students whose package has no
	// configured deduction rate.
	DefaultLatenessBase decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultSettings are used when the settings row has never been saved.
func DefaultSettings() SalarySettings {
	return SalarySettings{
		IncludeRestDay:        false,
		RestDay:               time.Sunday,
		TierFallbackWholeBase: true,
		DefaultAbsenceRate:    decimal.NewFromInt(25),
		DefaultLatenessBase:   decimal.NewFromInt(30),
	}
}
