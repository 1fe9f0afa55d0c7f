package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/rates"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type rateRepositoryImpl struct {
	db *database.DB
}

func NewRateRepository(db *database.DB) rates.RateRepository {
	return &rateRepositoryImpl{db: db}
}

// GetSettings implements rates.RateRepository. A single row holds the global
// configuration; callers translate ErrSettingsNotFound into defaults.
func (r *rateRepositoryImpl) GetSettings(ctx context.Context) (rates.SalarySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, include_rest_day, rest_day, tier_fallback_whole_base,
			   default_absence_rate, default_lateness_base, created_at, updated_at
		FROM salary_settings
		ORDER BY created_at DESC
		LIMIT 1
	`

	var (
		s       rates.SalarySettings
		restDay int
	)
	err := q.QueryRow(ctx, query).Scan(
		&s.ID, &s.IncludeRestDay, &restDay, &s.TierFallbackWholeBase,
		&s.DefaultAbsenceRate, &s.DefaultLatenessBase, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return rates.SalarySettings{}, rates.ErrSettingsNotFound
		}
		return rates.SalarySettings{}, fmt.Errorf("failed to get salary settings: %w", err)
	}
	s.RestDay = time.Weekday(restDay)

	return s, nil
}

// UpsertSettings implements rates.RateRepository.
func (r *rateRepositoryImpl) UpsertSettings(ctx context.Context, s rates.SalarySettings) (rates.SalarySettings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_settings (
			id, include_rest_day, rest_day, tier_fallback_whole_base,
			default_absence_rate, default_lateness_base
		) VALUES (
			'global', $1, $2, $3, $4, $5
		)
		ON CONFLICT (id) DO UPDATE SET
			include_rest_day = EXCLUDED.include_rest_day,
			rest_day = EXCLUDED.rest_day,
			tier_fallback_whole_base = EXCLUDED.tier_fallback_whole_base,
			default_absence_rate = EXCLUDED.default_absence_rate,
			default_lateness_base = EXCLUDED.default_lateness_base,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.IncludeRestDay,
		int(s.RestDay),
		s.TierFallbackWholeBase,
		s.DefaultAbsenceRate,
		s.DefaultLatenessBase,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return rates.SalarySettings{}, fmt.Errorf("failed to upsert salary settings: %w", err)
	}

	return s, nil
}

// GetPackageRates implements rates.RateRepository.
func (r *rateRepositoryImpl) GetPackageRates(ctx context.Context) ([]rates.PackageRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, package, monthly, created_at, updated_at
		FROM package_rates
		ORDER BY package
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list package rates: %w", err)
	}
	defer rows.Close()

	var result []rates.PackageRate
	for rows.Next() {
		var pr rates.PackageRate
		if err := rows.Scan(&pr.ID, &pr.Package, &pr.Monthly, &pr.CreatedAt, &pr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan package rate: %w", err)
		}
		result = append(result, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate package rates: %w", err)
	}

	return result, nil
}

// UpsertPackageRate implements rates.RateRepository.
func (r *rateRepositoryImpl) UpsertPackageRate(ctx context.Context, pr rates.PackageRate) (rates.PackageRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO package_rates (package, monthly)
		VALUES ($1, $2)
		ON CONFLICT (package) DO UPDATE SET
			monthly = EXCLUDED.monthly,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, pr.Package, pr.Monthly).
		Scan(&pr.ID, &pr.CreatedAt, &pr.UpdatedAt)
	if err != nil {
		return rates.PackageRate{}, fmt.Errorf("failed to upsert package rate: %w", err)
	}

	return pr, nil
}

// GetDeductionRates implements rates.RateRepository.
func (r *rateRepositoryImpl) GetDeductionRates(ctx context.Context) ([]rates.PackageDeductionRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, package, lateness_base, absence_base, created_at, updated_at
		FROM package_deduction_rates
		ORDER BY package
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction rates: %w", err)
	}
	defer rows.Close()

	var result []rates.PackageDeductionRate
	for rows.Next() {
		var dr rates.PackageDeductionRate
		if err := rows.Scan(&dr.ID, &dr.Package, &dr.LatenessBase, &dr.AbsenceBase, &dr.CreatedAt, &dr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deduction rate: %w", err)
		}
		result = append(result, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deduction rates: %w", err)
	}

	return result, nil
}

// UpsertDeductionRate implements rates.RateRepository.
func (r *rateRepositoryImpl) UpsertDeductionRate(ctx context.Context, dr rates.PackageDeductionRate) (rates.PackageDeductionRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO package_deduction_rates (package, lateness_base, absence_base)
		VALUES ($1, $2, $3)
		ON CONFLICT (package) DO UPDATE SET
			lateness_base = EXCLUDED.lateness_base,
			absence_base = EXCLUDED.absence_base,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, dr.Package, dr.LatenessBase, dr.AbsenceBase).
		Scan(&dr.ID, &dr.CreatedAt, &dr.UpdatedAt)
	if err != nil {
		return rates.PackageDeductionRate{}, fmt.Errorf("failed to upsert deduction rate: %w", err)
	}

	return dr, nil
}

// GetLatenessTiers implements rates.RateRepository. Tiers come back ordered
// by range start; the evaluator relies on first-match semantics.
func (r *rateRepositoryImpl) GetLatenessTiers(ctx context.Context) ([]rates.LatenessTier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_min, end_min, percent, created_at, updated_at
		FROM lateness_tiers
		ORDER BY start_min
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list lateness tiers: %w", err)
	}
	defer rows.Close()

	var tiers []rates.LatenessTier
	for rows.Next() {
		var t rates.LatenessTier
		if err := rows.Scan(&t.ID, &t.StartMin, &t.EndMin, &t.Percent, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lateness tier: %w", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lateness tiers: %w", err)
	}

	return tiers, nil
}

// CreateLatenessTier implements rates.RateRepository. Overlap with an
// existing tier is rejected so first-match stays unambiguous; the check and
// the insert run in one transaction so concurrent creates cannot slip an
// overlapping range in between them.
func (r *rateRepositoryImpl) CreateLatenessTier(ctx context.Context, t rates.LatenessTier) (rates.LatenessTier, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		q := GetQuerier(txCtx, r.db)

		var overlaps bool
		overlapQuery := `
			SELECT EXISTS (
				SELECT 1 FROM lateness_tiers
				WHERE start_min <= $2 AND end_min >= $1
			)
		`
		if err := q.QueryRow(txCtx, overlapQuery, t.StartMin, t.EndMin).Scan(&overlaps); err != nil {
			return fmt.Errorf("failed to check tier overlap: %w", err)
		}
		if overlaps {
			return rates.ErrTierRangeOverlaps
		}

		query := `
			INSERT INTO lateness_tiers (id, start_min, end_min, percent)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at, updated_at
		`

		t.ID = uuid.NewString()
		if err := q.QueryRow(txCtx, query, t.ID, t.StartMin, t.EndMin, t.Percent).
			Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
			return fmt.Errorf("failed to create lateness tier: %w", err)
		}

		return nil
	})
	if err != nil {
		return rates.LatenessTier{}, err
	}

	return t, nil
}

// DeleteLatenessTier implements rates.RateRepository.
func (r *rateRepositoryImpl) DeleteLatenessTier(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM lateness_tiers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lateness tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return rates.ErrLatenessTierNotFound
	}

	return nil
}
