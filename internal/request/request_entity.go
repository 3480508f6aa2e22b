package request

import (
	"fmt"
	"time"

	"go-hris-workflow/internal/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Request struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_requests_company_state;uniqueIndex:ux_requests_company_number,priority:1"`
	// Number is the per-company reference shown to people, e.g. VAC-000042.
	Number      string               `gorm:"type:varchar(20);not null;uniqueIndex:ux_requests_company_number,priority:2"`
	Type        workflow.RequestType `gorm:"type:varchar(20);not null"`
	RequesterID uuid.UUID            `gorm:"type:uuid;not null;index:idx_requests_requester"`
	State       workflow.State       `gorm:"type:varchar(30);not null;index:idx_requests_company_state"`

	// ReplacementRef is an employee id or a national id.
	ReplacementRef string `gorm:"type:varchar(64)"`

	ReviewerID      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`

	// Version counts applied transitions and doubles as the audit sequence.
	Version int `gorm:"not null;default:0"`

	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`
	TotalDays int        `gorm:"type:int;not null;default:0"`
	ShiftDate *time.Time `gorm:"type:date"`
	Amount    *int64     // severance amount in minor units
	Reason    string     `gorm:"type:text"`

	DocumentRef *string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_requests_deleted_at"`
}

func (Request) TableName() string { return "requests" }

// AuditEntry is append-only. (request_id, sequence) is unique.
type AuditEntry struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey"`
	RequestID  uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:ux_request_audit_sequence,priority:1"`
	Sequence   int                 `gorm:"not null;uniqueIndex:ux_request_audit_sequence,priority:2"`
	FromState  workflow.State      `gorm:"type:varchar(30);not null"`
	ToState    workflow.State      `gorm:"type:varchar(30);not null"`
	Transition workflow.Transition `gorm:"type:varchar(30);not null"`
	ActorID    uuid.UUID           `gorm:"type:uuid;not null"`
	Note       string              `gorm:"type:text"`
	CreatedAt  time.Time
}

func (AuditEntry) TableName() string { return "request_audit_entries" }

// Snapshot is a detached copy of a request, safe to hand to goroutines.
type Snapshot struct {
	ID              string               `json:"id"`
	CompanyID       string               `json:"company_id"`
	Number          string               `json:"number"`
	Type            workflow.RequestType `json:"type"`
	State           workflow.State       `json:"state"`
	RequesterID     string               `json:"requester_id"`
	ReplacementRef  string               `json:"replacement_ref,omitempty"`
	ReviewerID      string               `json:"reviewer_id,omitempty"`
	RejectionReason string               `json:"rejection_reason,omitempty"`
	StartDate       string               `json:"start_date,omitempty"`
	EndDate         string               `json:"end_date,omitempty"`
	TotalDays       int                  `json:"total_days,omitempty"`
	ShiftDate       string               `json:"shift_date,omitempty"`
	Amount          *int64               `json:"amount,omitempty"`
	Reason          string               `json:"reason,omitempty"`
	Version         int                  `json:"version"`
	DocumentRef     string               `json:"document_ref,omitempty"`
}

const dateLayout = "2006-01-02"

var numberPrefixes = map[workflow.RequestType]string{
	workflow.TypeVacation:    "VAC",
	workflow.TypeShiftChange: "SHC",
	workflow.TypeSeverance:   "SEV",
}

// FormatNumber renders the n-th request of type t for a company.
func FormatNumber(t workflow.RequestType, n int64) string {
	prefix, ok := numberPrefixes[t]
	if !ok {
		prefix = "REQ"
	}
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// CounterKey is the company_counters key that numbers requests of type t.
func CounterKey(t workflow.RequestType) string {
	return "request:" + string(t)
}

func (r *Request) Snapshot() Snapshot {
	s := Snapshot{
		ID:             r.ID.String(),
		CompanyID:      r.CompanyID.String(),
		Number:         r.Number,
		Type:           r.Type,
		State:          r.State,
		RequesterID:    r.RequesterID.String(),
		ReplacementRef: r.ReplacementRef,
		TotalDays:      r.TotalDays,
		Reason:         r.Reason,
		Version:        r.Version,
		StartDate:      formatDate(r.StartDate),
		EndDate:        formatDate(r.EndDate),
		ShiftDate:      formatDate(r.ShiftDate),
	}
	if r.ReviewerID != nil {
		s.ReviewerID = r.ReviewerID.String()
	}
	if r.RejectionReason != nil {
		s.RejectionReason = *r.RejectionReason
	}
	if r.Amount != nil {
		v := *r.Amount
		s.Amount = &v
	}
	if r.DocumentRef != nil {
		s.DocumentRef = *r.DocumentRef
	}
	return s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
