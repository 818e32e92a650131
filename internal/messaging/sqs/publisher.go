// Package sqs carries the message bus boundary over AWS SQS: outbound
// publishes for confirmations, user lookups, and notification dispatch, and
// the inbound long-poll consumer for the sibling services' responses.
package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	sqsTypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/sony/gobreaker/v2"

	"github.com/clockwise-org/planning-service-go/internal/config"
	"github.com/clockwise-org/planning-service-go/internal/domain/event"
)

// SQSSender abstracts the SQS SendMessage operation for testability.
// Production code uses the *sqs.Client from aws-sdk-go-v2.
type SQSSender interface {
	SendMessage(ctx context.Context, params *awssqs.SendMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error)
}

// Message type attribute values, one per payload shape.
const (
	typeExchangeConfirmation = "exchange.confirmation"
	typeUserInfoRequest      = "user.info.request"
	typeUsersByUnitRequest   = "user.by_unit.request"
	typeShiftNotification    = "notification.shift_published"
)

type userInfoRequest struct {
	UserID  string `json:"user_id"`
	ShiftID string `json:"shift_id"`
}

type usersByUnitRequest struct {
	BusinessUnitID string `json:"business_unit_id"`
	CorrelationID  string `json:"correlation_id"`
}

type shiftNotification struct {
	User           event.UserInfo     `json:"user"`
	Shift          event.ShiftSummary `json:"shift"`
	ScheduleID     string             `json:"schedule_id"`
	BusinessUnitID string             `json:"business_unit_id"`
	WeekStart      time.Time          `json:"week_start"`
}

// Publisher sends the service's outbound events to their SQS queues behind
// one shared circuit breaker, so a dead SQS endpoint sheds load fast instead
// of stalling every fire-and-forget goroutine on timeouts.
//
// It implements event.ConfirmationPublisher, event.NameResolver,
// event.UserDirectory, and event.NotificationTrigger.
type Publisher struct {
	client  SQSSender
	cfg     config.MessagingConfig
	breaker *gobreaker.CircuitBreaker[*awssqs.SendMessageOutput]
	logger  *slog.Logger
}

func NewPublisher(client SQSSender, cfg config.MessagingConfig, logger *slog.Logger) *Publisher {
	cb := gobreaker.NewCircuitBreaker[*awssqs.SendMessageOutput](gobreaker.Settings{
		Name:        "sqs-publisher",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Publisher{
		client:  client,
		cfg:     cfg,
		breaker: cb,
		logger:  logger,
	}
}

// ExchangeConfirmation implements event.ConfirmationPublisher.
func (p *Publisher) ExchangeConfirmation(ctx context.Context, evt event.ExchangeConfirmation) error {
	return p.send(ctx, p.cfg.ExchangeConfirmationQueueURL, typeExchangeConfirmation, evt)
}

// RequestUserInfo implements event.NameResolver.
func (p *Publisher) RequestUserInfo(ctx context.Context, userID, shiftID string) error {
	return p.send(ctx, p.cfg.UserInfoRequestQueueURL, typeUserInfoRequest, userInfoRequest{
		UserID:  userID,
		ShiftID: shiftID,
	})
}

// RequestUsersByBusinessUnit implements event.UserDirectory.
func (p *Publisher) RequestUsersByBusinessUnit(ctx context.Context, businessUnitID, correlationID string) error {
	return p.send(ctx, p.cfg.UsersByUnitRequestQueueURL, typeUsersByUnitRequest, usersByUnitRequest{
		BusinessUnitID: businessUnitID,
		CorrelationID:  correlationID,
	})
}

// NotifyShiftPublished implements event.NotificationTrigger. One message per
// shift; the notification service owns formatting and delivery.
func (p *Publisher) NotifyShiftPublished(ctx context.Context, user event.UserInfo, shift event.ShiftSummary, evt event.SchedulePublished) error {
	return p.send(ctx, p.cfg.NotificationQueueURL, typeShiftNotification, shiftNotification{
		User:           user,
		Shift:          shift,
		ScheduleID:     evt.ScheduleID,
		BusinessUnitID: evt.BusinessUnitID,
		WeekStart:      evt.WeekStart,
	})
}

func (p *Publisher) send(ctx context.Context, queueURL, messageType string, payload interface{}) error {
	if queueURL == "" {
		p.logger.Debug("queue not configured, dropping message", "message_type", messageType)
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s message: %w", messageType, err)
	}

	input := &awssqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]sqsTypes.MessageAttributeValue{
			"message-type": {
				DataType:    aws.String("String"),
				StringValue: aws.String(messageType),
			},
		},
	}

	_, err = p.breaker.Execute(func() (*awssqs.SendMessageOutput, error) {
		return p.client.SendMessage(ctx, input)
	})
	if err != nil {
		return fmt.Errorf("failed to send %s message to %s: %w", messageType, queueURL, err)
	}

	p.logger.Debug("message published", "message_type", messageType, "queue_url", queueURL)

	return nil
}
