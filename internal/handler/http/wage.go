package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/heakbomb/resto-backend-go/internal/domain/wage"
	"github.com/heakbomb/resto-backend-go/internal/handler/http/response"
)

type WageHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type wageHandlerImpl struct {
	wageService wage.WageService
}

func NewWageHandler(wageService wage.WageService) WageHandler {
	return &wageHandlerImpl{
		wageService: wageService,
	}
}

// Upsert implements WageHandler.
func (h *wageHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	employeeID := chi.URLParam(r, "employeeID")

	var req wage.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.wageService.Upsert(r.Context(), storeID, employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Wage profile saved", result)
}

// Get implements WageHandler.
func (h *wageHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	employeeID := chi.URLParam(r, "employeeID")

	result, err := h.wageService.Get(r.Context(), storeID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
