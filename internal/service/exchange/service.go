package exchange

import (
	"context"
	"log/slog"

	"github.com/clockwise-org/planning-service-go/internal/domain/event"
	"github.com/clockwise-org/planning-service-go/internal/domain/exchange"
	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
)

type ExchangeHandlerImpl struct {
	shiftService shift.ShiftService
	publisher    event.ConfirmationPublisher
	logger       *slog.Logger
}

func NewExchangeHandler(
	shiftService shift.ShiftService,
	publisher event.ConfirmationPublisher,
	logger *slog.Logger,
) exchange.Handler {
	return &ExchangeHandlerImpl{
		shiftService: shiftService,
		publisher:    publisher,
		logger:       logger,
	}
}

// HandleExchangeApproved implements exchange.Handler. A TAKE reassigns the
// original shift to the requester; a SWAP exchanges the two shifts' owners.
// Both paths validate the expected owners recorded at approval time, so a
// stale approval cannot move a shift that changed hands in the meantime.
// The outcome, success or failure, always goes back over the bus; only a
// confirmation publish failure is returned to the transport for redelivery.
func (h *ExchangeHandlerImpl) HandleExchangeApproved(ctx context.Context, evt exchange.ApprovedEvent) error {
	var applyErr error

	switch evt.RequestType {
	case exchange.RequestTypeTake:
		_, applyErr = h.shiftService.ReassignTo(ctx, evt.OriginalShiftID, evt.PosterUserID, evt.RequesterUserID)
	case exchange.RequestTypeSwap:
		if evt.SwapShiftID == nil {
			applyErr = exchange.ErrMissingSwapShift
		} else {
			_, applyErr = h.shiftService.SwapOwners(ctx,
				evt.OriginalShiftID, evt.PosterUserID,
				*evt.SwapShiftID, evt.RequesterUserID)
		}
	default:
		applyErr = exchange.ErrUnknownRequestType
	}

	confirmation := event.ExchangeConfirmation{
		RequestID:   evt.RequestID,
		RequestType: evt.RequestType,
		Status:      event.ConfirmationSuccess,
	}
	if applyErr != nil {
		detail := applyErr.Error()
		confirmation.Status = event.ConfirmationFailed
		confirmation.Detail = &detail
		h.logger.Error("exchange request failed",
			"request_id", evt.RequestID, "request_type", evt.RequestType, "error", applyErr)
	}

	if err := h.publisher.ExchangeConfirmation(ctx, confirmation); err != nil {
		h.logger.Error("failed to publish exchange confirmation",
			"request_id", evt.RequestID, "error", err)
		return err
	}

	return nil
}
