package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/clockwise-org/planning-service-go/internal/domain/schedule"
	"github.com/clockwise-org/planning-service-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ScheduleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Publish(w http.ResponseWriter, r *http.Request)
	RevertToDraft(w http.ResponseWriter, r *http.Request)
	Archive(w http.ResponseWriter, r *http.Request)
	GetWeek(w http.ResponseWriter, r *http.Request)
	GetWeekAny(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetCurrent(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// Create implements ScheduleHandler.
func (h *scheduleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req schedule.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.scheduleService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Schedule created", created)
}

// Get implements ScheduleHandler.
func (h *scheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.scheduleService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Update implements ScheduleHandler.
func (h *scheduleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.scheduleService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Publish implements ScheduleHandler.
func (h *scheduleHandlerImpl) Publish(w http.ResponseWriter, r *http.Request) {
	published, err := h.scheduleService.Publish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule published", published)
}

// RevertToDraft implements ScheduleHandler.
func (h *scheduleHandlerImpl) RevertToDraft(w http.ResponseWriter, r *http.Request) {
	reverted, err := h.scheduleService.RevertToDraft(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule reverted to draft", reverted)
}

// Archive implements ScheduleHandler.
func (h *scheduleHandlerImpl) Archive(w http.ResponseWriter, r *http.Request) {
	archived, err := h.scheduleService.Archive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule archived", archived)
}

// GetWeek implements ScheduleHandler. Returns the published schedule with
// its shifts for the week containing the requested date.
func (h *scheduleHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	businessUnitID, week, ok := weekQuery(w, r)
	if !ok {
		return
	}

	found, err := h.scheduleService.GetPublishedByWeek(r.Context(), businessUnitID, week)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// GetWeekAny implements ScheduleHandler. Privileged: returns the schedule
// regardless of status.
func (h *scheduleHandlerImpl) GetWeekAny(w http.ResponseWriter, r *http.Request) {
	businessUnitID, week, ok := weekQuery(w, r)
	if !ok {
		return
	}

	found, err := h.scheduleService.GetAnyByWeek(r.Context(), businessUnitID, week)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// List implements ScheduleHandler.
func (h *scheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	businessUnitID := r.URL.Query().Get("business_unit_id")
	if businessUnitID == "" {
		response.BadRequest(w, "business_unit_id is required", nil)
		return
	}

	schedules, err := h.scheduleService.ListByBusinessUnit(r.Context(), businessUnitID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, schedules)
}

// GetCurrent implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetCurrent(w http.ResponseWriter, r *http.Request) {
	businessUnitID := r.URL.Query().Get("business_unit_id")
	if businessUnitID == "" {
		response.BadRequest(w, "business_unit_id is required", nil)
		return
	}

	found, err := h.scheduleService.GetCurrent(r.Context(), businessUnitID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

func weekQuery(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	businessUnitID := r.URL.Query().Get("business_unit_id")
	if businessUnitID == "" {
		response.BadRequest(w, "business_unit_id is required", nil)
		return "", time.Time{}, false
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		response.BadRequest(w, "date is required", nil)
		return "", time.Time{}, false
	}

	week, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		response.BadRequest(w, "date must be formatted as YYYY-MM-DD", nil)
		return "", time.Time{}, false
	}

	return businessUnitID, week, true
}
