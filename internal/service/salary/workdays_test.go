package salary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkingDaysExcludesRestDay(t *testing.T) {
	// 2026-01-05 is a Monday; the range covers two full weeks.
	from := date(2026, time.January, 5)
	to := date(2026, time.January, 18)

	days := WorkingDays(from, to, false, time.Sunday)

	assert.Len(t, days, 12)
	for _, d := range days {
		assert.NotEqual(t, time.Sunday, d.Weekday())
	}
}

func TestWorkingDaysIncludesRestDayWhenToggled(t *testing.T) {
	from := date(2026, time.January, 5)
	to := date(2026, time.January, 18)

	excluded := CountWorkingDays(from, to, false, time.Sunday)
	included := CountWorkingDays(from, to, true, time.Sunday)

	assert.Equal(t, 12, excluded)
	assert.Equal(t, 14, included)
	// Toggling the rest day back on must add exactly the rest days in range.
	assert.Equal(t, excluded+2, included)
}

func TestWorkingDaysInclusiveEndpoints(t *testing.T) {
	day := date(2026, time.March, 3) // Tuesday

	days := WorkingDays(day, day, false, time.Sunday)

	assert.Len(t, days, 1)
	assert.True(t, days[0].Equal(day))
}

func TestWorkingDaysReversedRangeIsEmpty(t *testing.T) {
	from := date(2026, time.January, 10)
	to := date(2026, time.January, 5)

	assert.Nil(t, WorkingDays(from, to, true, time.Sunday))
	assert.Zero(t, CountWorkingDays(from, to, false, time.Sunday))
}

func TestWorkingDaysConfigurableRestDay(t *testing.T) {
	from := date(2026, time.January, 5)
	to := date(2026, time.January, 11)

	days := WorkingDays(from, to, false, time.Friday)

	assert.Len(t, days, 6)
	for _, d := range days {
		assert.NotEqual(t, time.Friday, d.Weekday())
	}
}
