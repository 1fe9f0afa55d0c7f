package http

import (
	"net/http"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/salary"
	"github.com/ez-programmer4/darulkubra-sub003/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	GetByTeacher(w http.ResponseWriter, r *http.Request)
	BaselineDiff(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.Service
}

func NewSalaryHandler(salaryService salary.Service) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

// List returns the per-teacher summary table for the period. Summaries are
// projected from the same full results the detail endpoint serves.
func (h *salaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := salary.ParsePeriod(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.salaryService.CalculateAll(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summaries := make([]salary.Summary, 0, len(results))
	for _, res := range results {
		summaries = append(summaries, salary.Summarize(res))
	}

	response.Success(w, summaries)
}

// GetByTeacher returns the full breakdown for one teacher.
func (h *salaryHandlerImpl) GetByTeacher(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherID")
	if teacherID == "" {
		response.BadRequest(w, "Teacher ID is required", nil)
		return
	}

	from, to, err := salary.ParsePeriod(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.CalculateTeacherSalary(r.Context(), teacherID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// BaselineDiff reports how the activity-based figure diverges from the
// retired assignment-based algorithm for the period.
func (h *salaryHandlerImpl) BaselineDiff(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "teacherID")
	if teacherID == "" {
		response.BadRequest(w, "Teacher ID is required", nil)
		return
	}

	from, to, err := salary.ParsePeriod(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	diff, err := h.salaryService.CompareBaseline(r.Context(), teacherID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, diff)
}
