package deduction

import (
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAbsenceRequest struct {
	TeacherID string          `json:"teacher_id"`
	ClassDate string          `json:"class_date"` // "2006-01-02"
	Permitted bool            `json:"permitted"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    *string         `json:"reason,omitempty"`
}

func (r *CreateAbsenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TeacherID) {
		errs = append(errs, validator.ValidationError{Field: "teacher_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.ClassDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "class_date", Message: "must be YYYY-MM-DD"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateLatenessRecordRequest persists an already-priced lateness deduction
// entered by an admin, for dates where no activity evidence exists.
type CreateLatenessRecordRequest struct {
	TeacherID string          `json:"teacher_id"`
	ClassDate string          `json:"class_date"`
	Amount    decimal.Decimal `json:"amount"`
}

func (r *CreateLatenessRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TeacherID) {
		errs = append(errs, validator.ValidationError{Field: "teacher_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.ClassDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "class_date", Message: "must be YYYY-MM-DD"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateWaiverRequest struct {
	TeacherID string  `json:"teacher_id"`
	Kind      string  `json:"kind"` // "lateness" or "absence"
	ClassDate string  `json:"class_date"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *CreateWaiverRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TeacherID) {
		errs = append(errs, validator.ValidationError{Field: "teacher_id", Message: "is required"})
	}
	if r.Kind != string(KindLateness) && r.Kind != string(KindAbsence) {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'lateness' or 'absence'"})
	}
	if _, ok := validator.IsValidDate(r.ClassDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "class_date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateBonusRequest struct {
	TeacherID string          `json:"teacher_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    *string         `json:"reason,omitempty"`
}

func (r *CreateBonusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TeacherID) {
		errs = append(errs, validator.ValidationError{Field: "teacher_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
