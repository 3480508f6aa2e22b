package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-hris-workflow/internal/events"
	notificationerrors "go-hris-workflow/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, event events.RequestNotificationEvent) (bool, error)
	List(ctx context.Context, companyID, recipientID string, q ListNotificationsQuery) ([]NotificationResponse, int64, error)
	MarkRead(ctx context.Context, companyID, recipientID, id string) error
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

// Record stores event in the recipient's inbox. It reports false when the
// event had already been stored.
func (s *service) Record(ctx context.Context, event events.RequestNotificationEvent) (bool, error) {
	eventID, err1 := uuid.Parse(event.EventID)
	companyID, err2 := uuid.Parse(event.CompanyID)
	recipientID, err3 := uuid.Parse(event.RecipientID)
	requestID, err4 := uuid.Parse(event.RequestID)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false, notificationerrors.ErrInvalidEvent
	}

	createdAt := event.OccurredAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	n := &Notification{
		ID:          uuid.New(),
		EventID:     eventID,
		CompanyID:   companyID,
		RecipientID: recipientID,
		Kind:        event.EventType,
		RequestID:   requestID,
		RequestType: event.RequestType,
		State:       event.ToState,
		Message:     buildMessage(event),
		CreatedAt:   createdAt,
	}

	inserted, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("record notification failed", zap.String("event_id", event.EventID), zap.Error(err))
		return false, err
	}
	if !inserted {
		s.logger.Info("notification already recorded", zap.String("event_id", event.EventID))
	}
	return inserted, nil
}

func (s *service) List(ctx context.Context, companyID, recipientID string, q ListNotificationsQuery) ([]NotificationResponse, int64, error) {
	if _, err := uuid.Parse(recipientID); err != nil {
		return nil, 0, notificationerrors.ErrInvalidRecipientID
	}
	q.normalize()

	rows, total, err := s.repo.ListByRecipient(ctx, companyID, recipientID, q.UnreadOnly, q.Page, q.PageSize)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, total, nil
}

func (s *service) MarkRead(ctx context.Context, companyID, recipientID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrNotificationNotFound
	}
	affected, err := s.repo.MarkRead(ctx, companyID, recipientID, id, s.now())
	if err != nil {
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func buildMessage(e events.RequestNotificationEvent) string {
	subject := strings.ToLower(strings.ReplaceAll(e.RequestType, "_", " ")) + " request"
	if e.RequestNumber != "" {
		subject += " " + e.RequestNumber
	}
	switch e.EventType {
	case "APPROVAL_REQUIRED":
		return fmt.Sprintf("A %s is waiting for your approval", subject)
	case "REQUEST_APPROVED":
		return fmt.Sprintf("Your %s was approved", subject)
	case "REQUEST_REJECTED":
		if e.RejectionReason != "" {
			return fmt.Sprintf("Your %s was rejected: %s", subject, e.RejectionReason)
		}
		return fmt.Sprintf("Your %s was rejected", subject)
	default:
		return fmt.Sprintf("Your %s moved to %s", subject, e.ToState)
	}
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:          n.ID.String(),
		Kind:        n.Kind,
		RequestID:   n.RequestID.String(),
		RequestType: n.RequestType,
		State:       n.State,
		Message:     n.Message,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}
