package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	sqsTypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/clockwise-org/planning-service-go/internal/config"
	"github.com/clockwise-org/planning-service-go/internal/domain/event"
	"github.com/clockwise-org/planning-service-go/internal/domain/exchange"
	"github.com/clockwise-org/planning-service-go/internal/domain/shift"
	"github.com/clockwise-org/planning-service-go/internal/service/notification"
)

// SQSReceiver abstracts the receive and delete operations used by the
// consumer loops.
type SQSReceiver interface {
	ReceiveMessage(ctx context.Context, params *awssqs.ReceiveMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *awssqs.DeleteMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.DeleteMessageOutput, error)
}

type userInfoResponse struct {
	ShiftID   string  `json:"shift_id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type usersByUnitResponse struct {
	CorrelationID string           `json:"correlation_id"`
	Users         []event.UserInfo `json:"users"`
}

// Consumer long-polls the three inbound queues and dispatches each message
// to its handler. A message is deleted only after its handler returns nil;
// failed messages stay on the queue for SQS redelivery, and eventually the
// dead letter queue. There is no in-process retry.
type Consumer struct {
	client          SQSReceiver
	cfg             config.MessagingConfig
	exchangeHandler exchange.Handler
	nameSink        shift.ShiftService
	coordinator     *notification.Coordinator
	logger          *slog.Logger
}

func NewConsumer(
	client SQSReceiver,
	cfg config.MessagingConfig,
	exchangeHandler exchange.Handler,
	nameSink shift.ShiftService,
	coordinator *notification.Coordinator,
	logger *slog.Logger,
) *Consumer {
	return &Consumer{
		client:          client,
		cfg:             cfg,
		exchangeHandler: exchangeHandler,
		nameSink:        nameSink,
		coordinator:     coordinator,
		logger:          logger,
	}
}

// Start launches one polling loop per inbound queue and blocks until ctx is
// cancelled.
func (c *Consumer) Start(ctx context.Context) {
	if url := c.cfg.ExchangeApprovalQueueURL; url != "" {
		go c.poll(ctx, url, c.handleExchangeApproval)
	}
	if url := c.cfg.UserInfoResponseQueueURL; url != "" {
		go c.poll(ctx, url, c.handleUserInfoResponse)
	}
	if url := c.cfg.UsersByUnitResponseQueueURL; url != "" {
		go c.poll(ctx, url, c.handleUsersByUnitResponse)
	}
	<-ctx.Done()
}

func (c *Consumer) poll(ctx context.Context, queueURL string, handle func(context.Context, string) error) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		out, err := c.client.ReceiveMessage(ctx, &awssqs.ReceiveMessageInput{
			QueueUrl:            &queueURL,
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("failed to receive messages", "queue_url", queueURL, "error", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, msg := range out.Messages {
			c.process(ctx, queueURL, msg, handle)
		}
	}
}

// process runs one message to completion. Messages taken for processing are
// never cancelled mid-handler; ctx only stops the poll loops.
func (c *Consumer) process(ctx context.Context, queueURL string, msg sqsTypes.Message, handle func(context.Context, string) error) {
	if msg.Body == nil {
		c.delete(ctx, queueURL, msg)
		return
	}

	if err := handle(context.WithoutCancel(ctx), *msg.Body); err != nil {
		c.logger.Error("failed to process message, leaving for redelivery",
			"queue_url", queueURL, "error", err)
		return
	}

	c.delete(ctx, queueURL, msg)
}

func (c *Consumer) delete(ctx context.Context, queueURL string, msg sqsTypes.Message) {
	_, err := c.client.DeleteMessage(ctx, &awssqs.DeleteMessageInput{
		QueueUrl:      &queueURL,
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		c.logger.Error("failed to delete message", "queue_url", queueURL, "error", err)
	}
}

func (c *Consumer) handleExchangeApproval(ctx context.Context, body string) error {
	var evt exchange.ApprovedEvent
	if err := json.Unmarshal([]byte(body), &evt); err != nil {
		// Unparseable payloads are never going to succeed; log and ack.
		c.logger.Error("failed to unmarshal exchange approval", "error", err)
		return nil
	}

	return c.exchangeHandler.HandleExchangeApproved(ctx, evt)
}

func (c *Consumer) handleUserInfoResponse(ctx context.Context, body string) error {
	var resp userInfoResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		c.logger.Error("failed to unmarshal user info response", "error", err)
		return nil
	}

	if err := c.nameSink.ApplyEmployeeName(ctx, resp.ShiftID, resp.FirstName, resp.LastName); err != nil {
		return fmt.Errorf("failed to apply employee name: %w", err)
	}

	return nil
}

func (c *Consumer) handleUsersByUnitResponse(ctx context.Context, body string) error {
	var resp usersByUnitResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		c.logger.Error("failed to unmarshal users by unit response", "error", err)
		return nil
	}

	return c.coordinator.HandleUsersResponse(ctx, resp.CorrelationID, resp.Users)
}
