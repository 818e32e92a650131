package http

import (
	"encoding/json"
	"net/http"

	"github.com/clockwise-org/planning-service-go/internal/domain/availability"
	"github.com/clockwise-org/planning-service-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AvailabilityHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListByBusinessUnit(w http.ResponseWriter, r *http.Request)
}

type availabilityHandlerImpl struct {
	availabilityService availability.AvailabilityService
}

func NewAvailabilityHandler(availabilityService availability.AvailabilityService) AvailabilityHandler {
	return &availabilityHandlerImpl{
		availabilityService: availabilityService,
	}
}

// Create implements AvailabilityHandler.
func (h *availabilityHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req availability.CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.availabilityService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Availability created", created)
}

// Get implements AvailabilityHandler.
func (h *availabilityHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.availabilityService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements AvailabilityHandler.
func (h *availabilityHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req availability.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.availabilityService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete implements AvailabilityHandler.
func (h *availabilityHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.availabilityService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Availability deleted", nil)
}

// ListByEmployee implements AvailabilityHandler.
func (h *availabilityHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	items, err := h.availabilityService.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// ListByBusinessUnit implements AvailabilityHandler.
func (h *availabilityHandlerImpl) ListByBusinessUnit(w http.ResponseWriter, r *http.Request) {
	businessUnitID := r.URL.Query().Get("business_unit_id")
	if businessUnitID == "" {
		response.BadRequest(w, "business_unit_id is required", nil)
		return
	}

	from, to, ok := rangeQuery(w, r)
	if !ok {
		return
	}

	items, err := h.availabilityService.ListByBusinessUnitBetween(r.Context(), businessUnitID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}
