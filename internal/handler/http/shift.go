package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/clockwise-org/planning-service-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Reassign(w http.ResponseWriter, r *http.Request)
	Swap(w http.ResponseWriter, r *http.Request)
	ListBySchedule(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// Create implements ShiftHandler.
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.shiftService.Create(r.Context(), chi.URLParam(r, "scheduleID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", created)
}

// Get implements ShiftHandler.
func (h *shiftHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.shiftService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements ShiftHandler.
func (h *shiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.shiftService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete implements ShiftHandler.
func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.shiftService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// Reassign implements ShiftHandler.
func (h *shiftHandlerImpl) Reassign(w http.ResponseWriter, r *http.Request) {
	var req shift.ReassignShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.shiftService.Reassign(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Swap implements ShiftHandler.
func (h *shiftHandlerImpl) Swap(w http.ResponseWriter, r *http.Request) {
	var req shift.SwapShiftsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	swapped, err := h.shiftService.Swap(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, swapped)
}

// ListBySchedule implements ShiftHandler.
func (h *shiftHandlerImpl) ListBySchedule(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.shiftService.ListBySchedule(r.Context(), chi.URLParam(r, "scheduleID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

// ListByEmployee implements ShiftHandler.
func (h *shiftHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	from, to, ok := rangeQuery(w, r)
	if !ok {
		return
	}

	shifts, err := h.shiftService.ListByEmployee(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, shifts)
}

func rangeQuery(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "from must be an RFC 3339 timestamp", nil)
		return time.Time{}, time.Time{}, false
	}

	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "to must be an RFC 3339 timestamp", nil)
		return time.Time{}, time.Time{}, false
	}

	return from.UTC(), to.UTC(), true
}
