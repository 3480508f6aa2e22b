package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one in-app inbox row. EventID makes delivery idempotent.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_notifications_event_id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_recipient"`
	Kind        string    `gorm:"type:varchar(40);not null"`
	RequestID   uuid.UUID `gorm:"type:uuid;not null"`
	RequestType string    `gorm:"type:varchar(20);not null"`
	State       string    `gorm:"type:varchar(30);not null"`
	Message     string    `gorm:"type:text;not null"`
	ReadAt      *time.Time
	CreatedAt   time.Time
}

func (Notification) TableName() string { return "notifications" }
