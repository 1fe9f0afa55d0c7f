package rates

import (
	"strings"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday resolves a lowercase weekday name.
func ParseWeekday(name string) (time.Weekday, bool) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

type SettingsResponse struct {
	IncludeRestDay        bool            `json:"include_rest_day"`
	RestDay               string          `json:"rest_day"`
	TierFallbackWholeBase bool            `json:"tier_fallback_whole_base"`
	DefaultAbsenceRate    decimal.Decimal `json:"default_absence_rate"`
	DefaultLatenessBase   decimal.Decimal `json:"default_lateness_base"`
}

type UpdateSettingsRequest struct {
	IncludeRestDay        *bool            `json:"include_rest_day,omitempty"`
	RestDay               *string          `json:"rest_day,omitempty"`
	TierFallbackWholeBase *bool            `json:"tier_fallback_whole_base,omitempty"`
	DefaultAbsenceRate    *decimal.Decimal `json:"default_absence_rate,omitempty"`
	DefaultLatenessBase   *decimal.Decimal `json:"default_lateness_base,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.RestDay != nil {
		if _, ok := ParseWeekday(*r.RestDay); !ok {
			errs = append(errs, validator.ValidationError{Field: "rest_day", Message: "must be a weekday name"})
		}
	}
	if r.DefaultAbsenceRate != nil && r.DefaultAbsenceRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_absence_rate", Message: "must be non-negative"})
	}
	if r.DefaultLatenessBase != nil && r.DefaultLatenessBase.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "default_lateness_base", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertPackageRateRequest struct {
	Package string          `json:"package"`
	Monthly decimal.Decimal `json:"monthly_rate"`
}

func (r *UpsertPackageRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Package) {
		errs = append(errs, validator.ValidationError{Field: "package", Message: "is required"})
	}
	if r.Monthly.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertDeductionRateRequest struct {
	Package      string          `json:"package"`
	LatenessBase decimal.Decimal `json:"lateness_base"`
	AbsenceBase  decimal.Decimal `json:"absence_base"`
}

func (r *UpsertDeductionRateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Package) {
		errs = append(errs, validator.ValidationError{Field: "package", Message: "is required"})
	}
	if r.LatenessBase.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "lateness_base", Message: "must be non-negative"})
	}
	if r.AbsenceBase.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "absence_base", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLatenessTierRequest struct {
	StartMin int             `json:"start_min"`
	EndMin   int             `json:"end_min"`
	Percent  decimal.Decimal `json:"percent"`
}

func (r *CreateLatenessTierRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartMin < 0 {
		errs = append(errs, validator.ValidationError{Field: "start_min", Message: "must be non-negative"})
	}
	if r.EndMin < r.StartMin {
		errs = append(errs, validator.ValidationError{Field: "end_min", Message: "must be >= start_min"})
	}
	if r.Percent.IsNegative() || r.Percent.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, validator.ValidationError{Field: "percent", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
