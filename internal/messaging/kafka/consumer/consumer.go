package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hris-workflow/internal/events"
	"go-hris-workflow/internal/notification"
	notificationerrors "go-hris-workflow/internal/notification/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

const (
	retryBaseDelay = 200 * time.Millisecond
	retryMaxDelay  = 10 * time.Second
)

// ConsumeRequestNotifications stores every notification event in the
// recipient's inbox until ctx is cancelled. A storage failure is retried on
// the same message before the reader moves on, because committing a later
// offset would commit past it. Messages are committed only after they are
// stored, so a crash or shutdown mid-retry redelivers and the inbox dedupes.
func ConsumeRequestNotifications(
	ctx context.Context,
	reader MessageReader,
	inbox notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.request_notification")
	log.Info("request notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("request notification consumer stopped")
				return
			}
			log.Error("fetch request notification failed", zap.Error(err))
			continue
		}

		var event events.RequestNotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode request notification failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		inserted, err := record(ctx, inbox, event, log)
		if err != nil {
			if errors.Is(err, notificationerrors.ErrInvalidEvent) {
				log.Warn("dropping malformed request notification", zap.String("event_id", event.EventID))
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			log.Info("request notification consumer stopped", zap.String("uncommitted_event_id", event.EventID))
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit request notification failed", zap.Error(err))
			continue
		}

		log.Info("request notification stored",
			zap.String("event_id", event.EventID),
			zap.String("recipient_id", event.RecipientID),
			zap.String("request_id", event.RequestID),
			zap.Bool("duplicate", !inserted),
		)
	}
}

// record retries storage failures with capped exponential backoff. It only
// returns an error for an invalid event or when ctx is cancelled.
func record(ctx context.Context, inbox notification.Service, event events.RequestNotificationEvent, log *zap.Logger) (bool, error) {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		inserted, err := inbox.Record(ctx, event)
		if err == nil || errors.Is(err, notificationerrors.ErrInvalidEvent) {
			return inserted, err
		}
		log.Error("store request notification failed",
			zap.String("event_id", event.EventID),
			zap.String("recipient_id", event.RecipientID),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false, ctx.Err()
		case <-timer.C:
		}
		delay = min(delay*2, retryMaxDelay)
	}
}
