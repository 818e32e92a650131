package http

import (
	"encoding/json"
	"net/http"

	"github.com/clockwise-org/planning-service-go/internal/domain/exchange"
	"github.com/clockwise-org/planning-service-go/internal/handler/http/response"
)

type ConflictHandler interface {
	CheckSchedule(w http.ResponseWriter, r *http.Request)
	CheckSwap(w http.ResponseWriter, r *http.Request)
}

type conflictHandlerImpl struct {
	checker exchange.ConflictChecker
}

func NewConflictHandler(checker exchange.ConflictChecker) ConflictHandler {
	return &conflictHandlerImpl{
		checker: checker,
	}
}

// CheckSchedule implements ConflictHandler.
func (h *conflictHandlerImpl) CheckSchedule(w http.ResponseWriter, r *http.Request) {
	var req exchange.ScheduleConflictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checker.CheckScheduleConflict(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CheckSwap implements ConflictHandler.
func (h *conflictHandlerImpl) CheckSwap(w http.ResponseWriter, r *http.Request) {
	var req exchange.SwapConflictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checker.CheckSwapConflict(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
