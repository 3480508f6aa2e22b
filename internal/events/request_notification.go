package events

import "time"

const RequestNotificationTopic = "hr.request.notification.v1"

// RequestNotificationEvent tells one employee that a request changed. A
// transition produces one event per recipient.
type RequestNotificationEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	RecipientID     string    `json:"recipient_id"`
	CompanyID       string    `json:"company_id"`
	RequestID       string    `json:"request_id"`
	RequestNumber   string    `json:"request_number,omitempty"`
	RequestType     string    `json:"request_type"`
	FromState       string    `json:"from_state"`
	ToState         string    `json:"to_state"`
	Transition      string    `json:"transition"`
	ActorID         string    `json:"actor_id"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
