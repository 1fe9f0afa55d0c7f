package response

import (
	"errors"
	"net/http"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/deduction"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/rates"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/salary"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/student"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/teacher"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/jwt"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, jwt.ErrAdminPrivilegeRequired):
		Forbidden(w, err.Error())

	// Teacher / student domain errors
	case errors.Is(err, teacher.ErrTeacherNotFound):
		NotFound(w, "Teacher not found")
	case errors.Is(err, student.ErrStudentNotFound):
		NotFound(w, "Student not found")

	// Rate configuration errors
	case errors.Is(err, rates.ErrPackageRateNotFound):
		NotFound(w, "Package rate not found")
	case errors.Is(err, rates.ErrLatenessTierNotFound):
		NotFound(w, "Lateness tier not found")
	case errors.Is(err, rates.ErrTierRangeOverlaps):
		Conflict(w, "Lateness tier range overlaps an existing tier")

	// Deduction record errors
	case errors.Is(err, deduction.ErrWaiverNotFound):
		NotFound(w, "Waiver not found")
	case errors.Is(err, deduction.ErrRecordAlreadyExists):
		Conflict(w, "A record already exists for this teacher and date")

	// Salary engine errors
	case errors.Is(err, salary.ErrInvalidPeriod):
		BadRequest(w, "Invalid salary period", nil)
	case errors.Is(err, salary.ErrStoreFailure):
		InternalServerError(w, "Record store unavailable")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
