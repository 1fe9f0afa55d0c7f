package deduction

import "errors"

var (
	ErrWaiverNotFound      = errors.New("deduction waiver not found")
	ErrRecordAlreadyExists = errors.New("deduction record already exists for this date")
)
