package salary

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid salary period")
	ErrStoreFailure  = errors.New("record store unavailable")
)
