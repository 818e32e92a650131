package http

import (
	"encoding/json"
	"net/http"

	"github.com/clockwise-org/planning-service-go/internal/domain/worksession"
	"github.com/clockwise-org/planning-service-go/internal/handler/http/middleware"
	"github.com/clockwise-org/planning-service-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WorkSessionHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetByShift(w http.ResponseWriter, r *http.Request)
	Modify(w http.ResponseWriter, r *http.Request)
	ModifyAndConfirm(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	ListUnconfirmed(w http.ResponseWriter, r *http.Request)
	GetWorkHours(w http.ResponseWriter, r *http.Request)
	UpsertNote(w http.ResponseWriter, r *http.Request)
	GetNote(w http.ResponseWriter, r *http.Request)
}

type workSessionHandlerImpl struct {
	workSessionService worksession.WorkSessionService
}

func NewWorkSessionHandler(workSessionService worksession.WorkSessionService) WorkSessionHandler {
	return &workSessionHandlerImpl{
		workSessionService: workSessionService,
	}
}

// ClockIn implements WorkSessionHandler. A bare event: the server records
// its own time, so there is no request body.
func (h *workSessionHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	session, err := h.workSessionService.ClockIn(r.Context(), chi.URLParam(r, "shiftID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// ClockOut implements WorkSessionHandler. A bare event like ClockIn.
func (h *workSessionHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	session, err := h.workSessionService.ClockOut(r.Context(), chi.URLParam(r, "shiftID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// Get implements WorkSessionHandler.
func (h *workSessionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.workSessionService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// GetByShift implements WorkSessionHandler.
func (h *workSessionHandlerImpl) GetByShift(w http.ResponseWriter, r *http.Request) {
	session, err := h.workSessionService.GetByShiftID(r.Context(), chi.URLParam(r, "shiftID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// Modify implements WorkSessionHandler. Manager correction of recorded
// times; attributed to the caller.
func (h *workSessionHandlerImpl) Modify(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.UserID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req worksession.ModifyWorkSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	session, err := h.workSessionService.Modify(r.Context(), chi.URLParam(r, "id"), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// ModifyAndConfirm implements WorkSessionHandler.
func (h *workSessionHandlerImpl) ModifyAndConfirm(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.UserID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req worksession.ModifyWorkSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	session, err := h.workSessionService.ModifyAndConfirm(r.Context(), chi.URLParam(r, "id"), req, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// Confirm implements WorkSessionHandler.
func (h *workSessionHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	actor, err := middleware.UserID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	session, err := h.workSessionService.Confirm(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work session confirmed", session)
}

// Cancel implements WorkSessionHandler.
func (h *workSessionHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	session, err := h.workSessionService.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work session cancelled", session)
}

// ListUnconfirmed implements WorkSessionHandler. The manager review queue.
func (h *workSessionHandlerImpl) ListUnconfirmed(w http.ResponseWriter, r *http.Request) {
	businessUnitID := r.URL.Query().Get("business_unit_id")
	if businessUnitID == "" {
		response.BadRequest(w, "business_unit_id is required", nil)
		return
	}

	sessions, err := h.workSessionService.ListUnconfirmed(r.Context(), businessUnitID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sessions)
}

// GetWorkHours implements WorkSessionHandler.
func (h *workSessionHandlerImpl) GetWorkHours(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		response.BadRequest(w, "user_id is required", nil)
		return
	}

	from, to, ok := rangeQuery(w, r)
	if !ok {
		return
	}

	hours, err := h.workSessionService.GetWorkHours(r.Context(), userID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, hours)
}

// UpsertNote implements WorkSessionHandler.
func (h *workSessionHandlerImpl) UpsertNote(w http.ResponseWriter, r *http.Request) {
	var req worksession.SessionNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	note, err := h.workSessionService.UpsertNote(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, note)
}

// GetNote implements WorkSessionHandler.
func (h *workSessionHandlerImpl) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.workSessionService.GetNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, note)
}
