package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/heakbomb/resto-backend-go/internal/domain/attendance"
	"github.com/heakbomb/resto-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	ListRecent(w http.ResponseWriter, r *http.Request)
	ListStoreMonth(w http.ResponseWriter, r *http.Request)
	GetQRToken(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// Punch implements AttendanceHandler.
func (h *attendanceHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var req attendance.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && ip != "" {
		req.ClientIP = &ip
	}

	result, err := h.attendanceService.Punch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", result)
}

// ListRecent implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListRecent(w http.ResponseWriter, r *http.Request) {
	storeID := r.URL.Query().Get("store_id")
	if storeID == "" {
		response.BadRequest(w, "Query parameter 'store_id' is required", nil)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.attendanceService.ListRecent(r.Context(), storeID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListStoreMonth implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListStoreMonth(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")

	filter := attendance.StoreMonthFilter{
		YearMonth: r.URL.Query().Get("year_month"),
		Page:      1,
		Limit:     20,
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		filter.Limit = limit
	}

	result, err := h.attendanceService.ListStoreMonth(r.Context(), storeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Events, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// GetQRToken implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetQRToken(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	refresh := r.URL.Query().Get("refresh") == "true"

	result, err := h.attendanceService.IssueStoreToken(r.Context(), storeID, refresh)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
