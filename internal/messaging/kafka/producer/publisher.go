package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-hris-workflow/internal/events"
	"go-hris-workflow/internal/sideeffect"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the part of *kafkago.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// NotificationPublisher turns side-effect notifications into
// RequestNotificationEvent messages keyed by recipient.
type NotificationPublisher struct {
	writer MessageWriter
	topic  string
	now    func() time.Time
	logger *zap.Logger
}

func NewNotificationPublisher(writer MessageWriter, topic string, logger ...*zap.Logger) *NotificationPublisher {
	l := zap.L().Named("kafka.producer.notification")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.notification")
	}
	if topic == "" {
		topic = events.RequestNotificationTopic
	}
	return &NotificationPublisher{
		writer: writer,
		topic:  topic,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (p *NotificationPublisher) Notify(ctx context.Context, recipientID string, kind sideeffect.EventKind, intent sideeffect.Intent) error {
	event := events.RequestNotificationEvent{
		EventID:         uuid.NewString(),
		EventType:       string(kind),
		RecipientID:     recipientID,
		CompanyID:       intent.CompanyID,
		RequestID:       intent.RequestID,
		RequestNumber:   intent.Snapshot.Number,
		RequestType:     string(intent.Snapshot.Type),
		FromState:       string(intent.FromState),
		ToState:         string(intent.ResultingState),
		Transition:      string(intent.Transition),
		ActorID:         intent.ActorID,
		RejectionReason: intent.Snapshot.RejectionReason,
		OccurredAt:      p.now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode notification event: %w", err)
	}

	msg := kafkago.Message{
		Topic: p.topic,
		Key:   []byte(recipientID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte("request")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	p.logger.Debug("notification published",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.String("recipient_id", recipientID),
		zap.String("request_id", intent.RequestID),
	)
	return nil
}
