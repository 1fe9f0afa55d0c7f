package rates

import "context"

// RateRepository is the rate configuration store. The engine reads it once
// per invocation; the admin handlers own the writes.
type RateRepository interface {
	GetSettings(ctx context.Context) (SalarySettings, error)
	UpsertSettings(ctx context.Context, s SalarySettings) (SalarySettings, error)

	GetPackageRates(ctx context.Context) ([]PackageRate, error)
	UpsertPackageRate(ctx context.Context, r PackageRate) (PackageRate, error)

	GetDeductionRates(ctx context.Context) ([]PackageDeductionRate, error)
	UpsertDeductionRate(ctx context.Context, r PackageDeductionRate) (PackageDeductionRate, error)

	GetLatenessTiers(ctx context.Context) ([]LatenessTier, error)
	CreateLatenessTier(ctx context.Context, t LatenessTier) (LatenessTier, error)
	DeleteLatenessTier(ctx context.Context, id string) error
}
