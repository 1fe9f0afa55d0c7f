package rates

import "errors"

var (
	ErrSettingsNotFound     = errors.New("salary settings not found")
	ErrPackageRateNotFound  = errors.New("package rate not found")
	ErrLatenessTierNotFound = errors.New("lateness tier not found")
	ErrTierRangeOverlaps    = errors.New("lateness tier range overlaps an existing tier")
)
