package salary

import (
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/deduction"
	"github.com/shopspring/decimal"
)

// sumBonuses adds up the admin-entered bonus rows. Each record is a
// discrete event; no deduplication or reconciliation applies.
func sumBonuses(bonuses []deduction.BonusRecord) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bonuses {
		total = total.Add(b.Amount)
	}
	return total
}
