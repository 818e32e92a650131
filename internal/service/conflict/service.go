package conflict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/clockwise-org/planning-service-go/internal/domain/exchange"
	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/jackc/pgx/v5"
)

type ConflictCheckerImpl struct {
	shift.ShiftRepository
	logger *slog.Logger
}

func NewConflictChecker(shiftRepo shift.ShiftRepository, logger *slog.Logger) exchange.ConflictChecker {
	return &ConflictCheckerImpl{
		ShiftRepository: shiftRepo,
		logger:          logger,
	}
}

// CheckScheduleConflict implements exchange.ConflictChecker. On internal
// failure it reports a conflict with no ids rather than an error: a missed
// conflict feeds an unsafe approval, a false positive only costs a manual
// review.
func (c *ConflictCheckerImpl) CheckScheduleConflict(ctx context.Context, req exchange.ScheduleConflictRequest) (exchange.ScheduleConflictResponse, error) {
	if err := req.Validate(); err != nil {
		return exchange.ScheduleConflictResponse{}, err
	}

	start, end := req.ParsedTimes()

	overlapping, err := c.ShiftRepository.FindOverlapping(ctx, req.UserID, start, end, "")
	if err != nil {
		c.logger.Error("schedule conflict check failed, assuming conflict",
			"user_id", req.UserID, "error", err)
		return exchange.ScheduleConflictResponse{HasConflict: true, ConflictingShiftIDs: []string{}}, nil
	}

	ids := make([]string, 0, len(overlapping))
	for _, s := range overlapping {
		ids = append(ids, s.ID)
	}

	return exchange.ScheduleConflictResponse{
		HasConflict:         len(ids) > 0,
		ConflictingShiftIDs: ids,
	}, nil
}

// CheckSwapConflict implements exchange.ConflictChecker. Each side is
// checked against the window they would take over, excluding the shift they
// are giving up. Missing shifts are a caller error, not a conservative case.
func (c *ConflictCheckerImpl) CheckSwapConflict(ctx context.Context, req exchange.SwapConflictRequest) (exchange.SwapConflictResponse, error) {
	if err := req.Validate(); err != nil {
		return exchange.SwapConflictResponse{}, err
	}

	original, err := c.ShiftRepository.GetByID(ctx, req.OriginalShiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exchange.SwapConflictResponse{}, shift.ErrShiftNotFound
		}
		return exchange.SwapConflictResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}
	swapShift, err := c.ShiftRepository.GetByID(ctx, req.SwapShiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exchange.SwapConflictResponse{}, shift.ErrShiftNotFound
		}
		return exchange.SwapConflictResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	posterOverlaps, err := c.ShiftRepository.FindOverlapping(ctx,
		req.PosterUserID, swapShift.StartTime, swapShift.EndTime, req.OriginalShiftID)
	if err != nil {
		c.logger.Error("swap conflict check failed, assuming conflict",
			"poster_user_id", req.PosterUserID, "error", err)
		return conservativeSwapResponse(), nil
	}

	requesterOverlaps, err := c.ShiftRepository.FindOverlapping(ctx,
		req.RequesterUserID, original.StartTime, original.EndTime, req.SwapShiftID)
	if err != nil {
		c.logger.Error("swap conflict check failed, assuming conflict",
			"requester_user_id", req.RequesterUserID, "error", err)
		return conservativeSwapResponse(), nil
	}

	posterHas := len(posterOverlaps) > 0
	requesterHas := len(requesterOverlaps) > 0

	return exchange.SwapConflictResponse{
		PosterHasConflict:    posterHas,
		RequesterHasConflict: requesterHas,
		IsSwapPossible:       !posterHas && !requesterHas,
	}, nil
}

func conservativeSwapResponse() exchange.SwapConflictResponse {
	return exchange.SwapConflictResponse{
		PosterHasConflict:    true,
		RequesterHasConflict: true,
		IsSwapPossible:       false,
	}
}
