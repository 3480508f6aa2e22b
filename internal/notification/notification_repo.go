package notification

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	// Create returns inserted=false when the event was already stored.
	Create(ctx context.Context, n *Notification) (inserted bool, err error)
	ListByRecipient(ctx context.Context, companyID, recipientID string, unreadOnly bool, page, pageSize int) ([]Notification, int64, error)
	MarkRead(ctx context.Context, companyID, recipientID, id string, at time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(n)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) ListByRecipient(ctx context.Context, companyID, recipientID string, unreadOnly bool, page, pageSize int) ([]Notification, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("company_id = ? AND recipient_id = ?", companyID, recipientID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []Notification
	err := q.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&rows).Error
	return rows, total, err
}

func (r *repository) MarkRead(ctx context.Context, companyID, recipientID, id string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND company_id = ? AND recipient_id = ?", id, companyID, recipientID).
		Update("read_at", gorm.Expr("COALESCE(read_at, ?)", at))
	return res.RowsAffected, res.Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
