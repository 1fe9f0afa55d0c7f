package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/deduction"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/rates"
	"github.com/ez-programmer4/darulkubra-sub003/internal/domain/salary"
	"github.com/ez-programmer4/darulkubra-sub003/internal/handler/http/response"
	"github.com/ez-programmer4/darulkubra-sub003/internal/pkg/cache"
	salarysvc "github.com/ez-programmer4/darulkubra-sub003/internal/service/salary"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Settings
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)

	// Package rates
	ListPackageRates(w http.ResponseWriter, r *http.Request)
	UpsertPackageRate(w http.ResponseWriter, r *http.Request)
	ListDeductionRates(w http.ResponseWriter, r *http.Request)
	UpsertDeductionRate(w http.ResponseWriter, r *http.Request)

	// Lateness tiers
	ListLatenessTiers(w http.ResponseWriter, r *http.Request)
	CreateLatenessTier(w http.ResponseWriter, r *http.Request)
	DeleteLatenessTier(w http.ResponseWriter, r *http.Request)

	// Manually entered records
	ListAbsences(w http.ResponseWriter, r *http.Request)
	CreateAbsence(w http.ResponseWriter, r *http.Request)
	ListLatenessRecords(w http.ResponseWriter, r *http.Request)
	CreateLatenessRecord(w http.ResponseWriter, r *http.Request)
	ListWaivers(w http.ResponseWriter, r *http.Request)
	CreateWaiver(w http.ResponseWriter, r *http.Request)
	DeleteWaiver(w http.ResponseWriter, r *http.Request)
	ListBonuses(w http.ResponseWriter, r *http.Request)
	CreateBonus(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	rateRepo      rates.RateRepository
	deductionRepo deduction.Repository
	cache         cache.Cache
}

func NewPayrollHandler(rateRepo rates.RateRepository, deductionRepo deduction.Repository, c cache.Cache) PayrollHandler {
	return &payrollHandlerImpl{rateRepo: rateRepo, deductionRepo: deductionRepo, cache: c}
}

// invalidateTeacher drops cached results for one teacher; invalidateAll
// drops everything, used after configuration changes that affect every
// teacher's figures.
func (h *payrollHandlerImpl) invalidateTeacher(teacherID string) {
	if h.cache != nil {
		h.cache.InvalidatePrefix(salarysvc.CachePrefix(teacherID))
	}
}

func (h *payrollHandlerImpl) invalidateAll() {
	if h.cache != nil {
		h.cache.InvalidatePrefix("salary:")
	}
}

// ========== SETTINGS ==========

func (h *payrollHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.rateRepo.GetSettings(r.Context())
	if errors.Is(err, rates.ErrSettingsNotFound) {
		settings = rates.DefaultSettings()
		err = nil
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settingsResponse(settings))
}

func (h *payrollHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req rates.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	settings, err := h.rateRepo.GetSettings(r.Context())
	if errors.Is(err, rates.ErrSettingsNotFound) {
		settings = rates.DefaultSettings()
		err = nil
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.IncludeRestDay != nil {
		settings.IncludeRestDay = *req.IncludeRestDay
	}
	if req.RestDay != nil {
		day, _ := rates.ParseWeekday(*req.RestDay)
		settings.RestDay = day
	}
	if req.TierFallbackWholeBase != nil {
		settings.TierFallbackWholeBase = *req.TierFallbackWholeBase
	}
	if req.DefaultAbsenceRate != nil {
		settings.DefaultAbsenceRate = *req.DefaultAbsenceRate
	}
	if req.DefaultLatenessBase != nil {
		settings.DefaultLatenessBase = *req.DefaultLatenessBase
	}

	saved, err := h.rateRepo.UpsertSettings(r.Context(), settings)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.invalidateAll()
	response.SuccessWithMessage(w, "Salary settings updated", settingsResponse(saved))
}

func settingsResponse(s rates.SalarySettings) rates.SettingsResponse {
	return rates.SettingsResponse{
		IncludeRestDay:        s.IncludeRestDay,
		RestDay:               s.RestDay.String(),
		TierFallbackWholeBase: s.TierFallbackWholeBase,
		DefaultAbsenceRate:    s.DefaultAbsenceRate,
		DefaultLatenessBase:   s.DefaultLatenessBase,
	}
}

// ========== PACKAGE RATES ==========

func (h *payrollHandlerImpl) ListPackageRates(w http.ResponseWriter, r *http.Request) {
	result, err := h.rateRepo.GetPackageRates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpsertPackageRate(w http.ResponseWriter, r *http.Request) {
	var req rates.UpsertPackageRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	saved, err := h.rateRepo.UpsertPackageRate(r.Context(), rates.PackageRate{
		Package: req.Package,
		Monthly: req.Monthly,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.invalidateAll()
	response.SuccessWithMessage(w, "Package rate saved", saved)
}

func (h *payrollHandlerImpl) ListDeductionRates(w http.ResponseWriter, r *http.Request) {
	result, err := h.rateRepo.GetDeductionRates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpsertDeductionRate(w http.ResponseWriter, r *http.Request) {
	var req rates.UpsertDeductionRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	saved, err := h.rateRepo.UpsertDeductionRate(r.Context(), rates.PackageDeductionRate{
		Package:      req.Package,
		LatenessBase: req.LatenessBase,
		AbsenceBase:  req.AbsenceBase,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.invalidateAll()
	response.SuccessWithMessage(w, "Deduction rate saved", saved)
}

// ========== LATENESS TIERS ==========

func (h *payrollHandlerImpl) ListLatenessTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := h.rateRepo.GetLatenessTiers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tiers)
}

func (h *payrollHandlerImpl) CreateLatenessTier(w http.ResponseWriter, r *http.Request) {
	var req rates.CreateLatenessTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tier, err := h.rateRepo.CreateLatenessTier(r.Context(), rates.LatenessTier{
		StartMin: req.StartMin,
		EndMin:   req.EndMin,
		Percent:  req.Percent,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.invalidateAll()
	response.Created(w, "Lateness tier created", tier)
}

func (h *payrollHandlerImpl) DeleteLatenessTier(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Tier ID is required", nil)
		return
	}

	if err := h.rateRepo.DeleteLatenessTier(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	h.invalidateAll()
	response.SuccessWithMessage(w, "Lateness tier deleted", nil)
}

// ========== RECORDS ==========

// recordQuery pulls the teacher_id/from/to triple every record listing
// shares.
func recordQuery(r *http.Request) (teacherID string, from, to time.Time, err error) {
	teacherID = r.URL.Query().Get("teacher_id")
	if teacherID == "" {
		return "", time.Time{}, time.Time{}, errors.New("teacher_id is required")
	}
	from, to, err = salary.ParsePeriod(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	return teacherID, from, to, err
}

func (h *payrollHandlerImpl) ListAbsences(w http.ResponseWriter, r *http.Request) {
	teacherID, from, to, err := recordQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	records, err := h.deductionRepo.AbsenceRecords(r.Context(), teacherID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *payrollHandlerImpl) ListLatenessRecords(w http.ResponseWriter, r *http.Request) {
	teacherID, from, to, err := recordQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	records, err := h.deductionRepo.LatenessRecords(r.Context(), teacherID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

func (h *payrollHandlerImpl) CreateLatenessRecord(w http.ResponseWriter, r *http.Request) {
	var req deduction.CreateLatenessRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	classDate, _ := time.Parse("2006-01-02", req.ClassDate)
	rec, err := h.deductionRepo.CreateLatenessRecord(r.Context(), deduction.LatenessRecord{
		TeacherID: req.TeacherID,
		ClassDate: classDate,
		Amount:    req.Amount,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.invalidateTeacher(req.TeacherID)
	response.Created(w, "Lateness record created", rec)
}

func (h *payrollHandlerImpl) ListWaivers(w http.ResponseWriter, r *http.Request) {
	teacherID, from, to, err := recordQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	waivers, err := h.deductionRepo.Waivers(r.Context(), teacherID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, waivers)
}

func (h *payrollHandlerImpl) ListBonuses(w http.ResponseWriter, r *http.Request) {
	teacherID, from, to, err := recordQuery(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	bonuses, err := h.deductionRepo.Bonuses(r.Context(), teacherID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, bonuses)
}

func (h *payrollHandlerImpl) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	var req deduction.CreateAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	classDate, _ := time.Parse("2006-01-02", req.ClassDate)
	rec, err := h.deductionRepo.CreateAbsenceRecord(r.Context(), deduction.AbsenceRecord{
		TeacherID: req.TeacherID,
		ClassDate: classDate,
		Permitted: req.Permitted,
		Amount:    req.Amount,
		Reason:    req.Reason,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.invalidateTeacher(req.TeacherID)
	response.Created(w, "Absence record created", rec)
}

func (h *payrollHandlerImpl) CreateWaiver(w http.ResponseWriter, r *http.Request) {
	var req deduction.CreateWaiverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	classDate, _ := time.Parse("2006-01-02", req.ClassDate)
	waiver, err := h.deductionRepo.CreateWaiver(r.Context(), deduction.Waiver{
		TeacherID: req.TeacherID,
		Kind:      deduction.Kind(req.Kind),
		ClassDate: classDate,
		Reason:    req.Reason,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.invalidateTeacher(req.TeacherID)
	response.Created(w, "Waiver created", waiver)
}

func (h *payrollHandlerImpl) DeleteWaiver(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Waiver ID is required", nil)
		return
	}

	if err := h.deductionRepo.DeleteWaiver(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	// The waiver row is gone; without the teacher id at hand the safe move
	// is dropping every cached result.
	h.invalidateAll()
	response.SuccessWithMessage(w, "Waiver deleted", nil)
}

func (h *payrollHandlerImpl) CreateBonus(w http.ResponseWriter, r *http.Request) {
	var req deduction.CreateBonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	bonus, err := h.deductionRepo.CreateBonus(r.Context(), deduction.BonusRecord{
		TeacherID: req.TeacherID,
		Amount:    req.Amount,
		Reason:    req.Reason,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.invalidateTeacher(req.TeacherID)
	response.Created(w, "Bonus created", bonus)
}
