package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-hris-workflow/internal/events"
	"go-hris-workflow/internal/messaging/kafka/consumer"
	"go-hris-workflow/internal/notification"
	notificationerrors "go-hris-workflow/internal/notification/errors"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	mu        sync.Mutex
	msgs      []kafkago.Message
	committed []int64
	done      chan struct{}
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	r.mu.Lock()
	if len(r.msgs) > 0 {
		m := r.msgs[0]
		r.msgs = r.msgs[1:]
		r.mu.Unlock()
		return m, nil
	}
	r.mu.Unlock()
	close(r.done)
	<-ctx.Done()
	return kafkago.Message{}, ctx.Err()
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafkago.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

type fakeInbox struct {
	recordFn func(ctx context.Context, e events.RequestNotificationEvent) (bool, error)
}

func (f *fakeInbox) Record(ctx context.Context, e events.RequestNotificationEvent) (bool, error) {
	return f.recordFn(ctx, e)
}
func (f *fakeInbox) List(context.Context, string, string, notification.ListNotificationsQuery) ([]notification.NotificationResponse, int64, error) {
	return nil, 0, nil
}
func (f *fakeInbox) MarkRead(context.Context, string, string, string) error { return nil }

func message(t *testing.T, offset int64, e events.RequestNotificationEvent) kafkago.Message {
	t.Helper()
	b, err := json.Marshal(e)
	assert.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: b}
}

func TestConsumeRequestNotifications(t *testing.T) {
	reader := &fakeReader{
		msgs: []kafkago.Message{
			message(t, 1, events.RequestNotificationEvent{EventID: "ok"}),
			{Offset: 2, Value: []byte("{not json")},
			message(t, 3, events.RequestNotificationEvent{EventID: "bad"}),
			message(t, 4, events.RequestNotificationEvent{EventID: "db-down"}),
			message(t, 5, events.RequestNotificationEvent{EventID: "dup"}),
		},
		done: make(chan struct{}),
	}

	var seen []string
	inbox := &fakeInbox{
		recordFn: func(ctx context.Context, e events.RequestNotificationEvent) (bool, error) {
			seen = append(seen, e.EventID)
			switch e.EventID {
			case "bad":
				return false, notificationerrors.ErrInvalidEvent
			case "db-down":
				if len(seen) == 3 {
					return false, errors.New("connection reset")
				}
			case "dup":
				return false, nil
			}
			return true, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		consumer.ConsumeRequestNotifications(ctx, reader, inbox, zap.NewNop())
		close(stopped)
	}()

	select {
	case <-reader.done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not drain messages")
	}
	cancel()
	<-stopped

	assert.Equal(t, []string{"ok", "bad", "db-down", "db-down", "dup"}, seen)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, reader.committed)
}

func TestConsumeRequestNotifications_ShutdownDuringRetryLeavesMessageUncommitted(t *testing.T) {
	reader := &fakeReader{
		msgs: []kafkago.Message{
			message(t, 7, events.RequestNotificationEvent{EventID: "db-down"}),
			message(t, 8, events.RequestNotificationEvent{EventID: "next"}),
		},
		done: make(chan struct{}),
	}

	attempted := make(chan struct{}, 16)
	var seen []string
	inbox := &fakeInbox{
		recordFn: func(ctx context.Context, e events.RequestNotificationEvent) (bool, error) {
			seen = append(seen, e.EventID)
			attempted <- struct{}{}
			return false, errors.New("connection reset")
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		consumer.ConsumeRequestNotifications(ctx, reader, inbox, zap.NewNop())
		close(stopped)
	}()

	<-attempted
	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop")
	}

	assert.NotContains(t, seen, "next")
	assert.Empty(t, reader.committed)
}
