package notification

import (
	"testing"

	"go-hris-workflow/internal/events"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	cases := []struct {
		name  string
		event events.RequestNotificationEvent
		want  string
	}{
		{
			name:  "approval required with number",
			event: events.RequestNotificationEvent{EventType: "APPROVAL_REQUIRED", RequestType: "SHIFT_CHANGE", RequestNumber: "SHC-000004"},
			want:  "A shift change request SHC-000004 is waiting for your approval",
		},
		{
			name:  "approved",
			event: events.RequestNotificationEvent{EventType: "REQUEST_APPROVED", RequestType: "SEVERANCE"},
			want:  "Your severance request was approved",
		},
		{
			name:  "rejected with reason",
			event: events.RequestNotificationEvent{EventType: "REQUEST_REJECTED", RequestType: "VACATION", RequestNumber: "VAC-000010", RejectionReason: "insufficient coverage"},
			want:  "Your vacation request VAC-000010 was rejected: insufficient coverage",
		},
		{
			name:  "status change",
			event: events.RequestNotificationEvent{EventType: "REQUEST_STATUS_CHANGED", RequestType: "VACATION", ToState: "SUPERVISOR_APPROVED"},
			want:  "Your vacation request moved to SUPERVISOR_APPROVED",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, buildMessage(tc.event))
		})
	}
}
