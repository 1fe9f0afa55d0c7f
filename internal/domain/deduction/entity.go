package deduction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes which deduction a waiver cancels.
type Kind string

const (
	KindLateness Kind = "lateness"
	KindAbsence  Kind = "absence"
)

// LatenessRecord is a persisted, already-priced lateness deduction for one
// teacher and date. Immutable once created; a Waiver supersedes it.
type LatenessRecord struct {
	ID        string
	TeacherID string
	ClassDate time.Time
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// AbsenceRecord is a persisted, already-priced absence deduction. Permitted
// absences keep the row for the audit trail but reduce the charge to zero.
type AbsenceRecord struct {
	ID        string
	TeacherID string
	ClassDate time.Time
	Permitted bool
	Amount    decimal.Decimal
	Reason    *string
	CreatedAt time.Time
}

// Applied is the amount the record actually contributes.
func (r AbsenceRecord) Applied() decimal.Decimal {
	if r.Permitted {
		return decimal.Zero
	}
	return r.Amount
}

// Waiver forces a date's deduction of the given kind to zero regardless of
// any computed or recorded amount. Created by admin action, read-only here.
type Waiver struct {
	ID        string
	TeacherID string
	Kind      Kind
	ClassDate time.Time
	Reason    *string
	CreatedAt time.Time
}

// BonusRecord is a discrete admin-entered addition, summed as-is.
type BonusRecord struct {
	ID        string
	TeacherID string
	Amount    decimal.Decimal
	Reason    *string
	CreatedAt time.Time
}
