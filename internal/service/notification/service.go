package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clockwise-org/planning-service-go/internal/domain/event"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentNotifications bounds the fan-out when a large unit publishes.
const maxConcurrentNotifications = 8

// Coordinator stitches a schedule-publish event to the user lookup that
// must complete before anyone can be notified. It implements
// event.SchedulePublisher on the outbound side and consumes the
// users-by-business-unit response on the inbound side.
type Coordinator struct {
	pending   *PendingNotifications
	directory event.UserDirectory
	trigger   event.NotificationTrigger
	logger    *slog.Logger
}

func NewCoordinator(
	pending *PendingNotifications,
	directory event.UserDirectory,
	trigger event.NotificationTrigger,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		pending:   pending,
		directory: directory,
		trigger:   trigger,
		logger:    logger,
	}
}

// SchedulePublished implements event.SchedulePublisher. The event is parked
// under a fresh correlation id until the user service answers.
func (c *Coordinator) SchedulePublished(ctx context.Context, evt event.SchedulePublished) error {
	correlationID := uuid.NewString()
	c.pending.Put(correlationID, evt)

	if err := c.directory.RequestUsersByBusinessUnit(ctx, evt.BusinessUnitID, correlationID); err != nil {
		c.pending.Remove(correlationID)
		return fmt.Errorf("failed to request users for business unit %s: %w", evt.BusinessUnitID, err)
	}

	return nil
}

// HandleUsersResponse consumes the inbound user listing, claims the parked
// event, and triggers one notification per shift. Individual delivery
// failures are logged and swallowed; one employee's dead token must not
// block the rest of the unit.
func (c *Coordinator) HandleUsersResponse(ctx context.Context, correlationID string, users []event.UserInfo) error {
	evt, ok := c.pending.Remove(correlationID)
	if !ok {
		c.logger.Warn("users response with no pending publish event",
			"correlation_id", correlationID)
		return nil
	}

	byID := make(map[string]event.UserInfo, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentNotifications)

	for employeeID, shifts := range evt.EmployeeShifts {
		user, found := byID[employeeID]
		if !found {
			c.logger.Warn("publish event references unknown employee",
				"employee_id", employeeID, "schedule_id", evt.ScheduleID)
			continue
		}

		for _, sh := range shifts {
			sh := sh
			g.Go(func() error {
				if err := c.trigger.NotifyShiftPublished(gctx, user, sh, evt); err != nil {
					c.logger.Error("failed to trigger shift notification",
						"employee_id", user.ID, "shift_id", sh.ShiftID, "error", err)
				}
				return nil
			})
		}
	}

	return g.Wait()
}
