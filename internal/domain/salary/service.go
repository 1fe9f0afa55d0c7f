package salary

import (
	"context"
	"time"
)

// Service is the engine's boundary: a function-call contract, not a wire
// protocol. Implementations must be safe for concurrent use across
// teachers; each invocation only reads shared configuration and the
// teacher's own rows.
type Service interface {
	// CalculateTeacherSalary computes the full breakdown for one teacher
	// over an inclusive date range. A teacher with no students or no
	// activity yields a zero-valued result, not an error; only store
	// unavailability fails.
	CalculateTeacherSalary(ctx context.Context, teacherID string, from, to time.Time) (Result, error)

	// CalculateAll computes every teacher's salary for the period as
	// independent bounded-parallel invocations.
	CalculateAll(ctx context.Context, from, to time.Time) ([]Result, error)

	// CompareBaseline runs the legacy assignment-based calculator next to
	// the live one and reports the divergence.
	CompareBaseline(ctx context.Context, teacherID string, from, to time.Time) (BaselineDiff, error)
}
