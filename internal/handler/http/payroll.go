package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/heakbomb/resto-backend-go/internal/domain/payroll"
	"github.com/heakbomb/resto-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Compute implements PayrollHandler.
func (h *payrollHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	var req payroll.ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	ym, err := payroll.ParseYearMonth(req.YearMonth)
	if err != nil {
		response.BadRequest(w, "Invalid year_month", nil)
		return
	}

	run, records, err := h.payrollService.ComputeMonth(r.Context(), storeID, ym)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll computed", map[string]interface{}{
		"run":     payroll.ToRunResponse(*run, time.Now().UTC()),
		"records": payroll.ToRecordResponses(records),
	})
}

// ListRecords implements PayrollHandler.
func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	ym, err := payroll.ParseYearMonth(r.URL.Query().Get("year_month"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year_month' must be in YYYY-MM format", nil)
		return
	}

	records, err := h.payrollService.ListRecords(r.Context(), storeID, ym)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToRecordResponses(records))
}

// Summary implements PayrollHandler.
func (h *payrollHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	ym, err := payroll.ParseYearMonth(r.URL.Query().Get("year_month"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year_month' must be in YYYY-MM format", nil)
		return
	}

	summary, err := h.payrollService.Summary(r.Context(), storeID, ym)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// SetStatus implements PayrollHandler.
func (h *payrollHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	var req payroll.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.PayrollID = chi.URLParam(r, "payrollID")

	record, err := h.payrollService.SetRecordStatus(r.Context(), storeID, &req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll status updated", payroll.ToRecordResponse(*record))
}

// GetRun implements PayrollHandler.
func (h *payrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	ym, err := payroll.ParseYearMonth(r.URL.Query().Get("year_month"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year_month' must be in YYYY-MM format", nil)
		return
	}

	run, err := h.payrollService.GetRun(r.Context(), storeID, ym)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToRunResponse(*run, time.Now().UTC()))
}

// Finalize implements PayrollHandler.
func (h *payrollHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	var req payroll.FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}
	ym, err := payroll.ParseYearMonth(req.YearMonth)
	if err != nil {
		response.BadRequest(w, "Invalid year_month", nil)
		return
	}

	run, err := h.payrollService.Finalize(r.Context(), storeID, ym)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll finalized", payroll.ToRunResponse(*run, time.Now().UTC()))
}
