package counter

import (
	"context"

	"gorm.io/gorm"
)

// Repository hands out gap-free sequence values per company and key.
// Run it on the transaction that consumes the value so a rollback
// returns the number.
//
//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	Next(ctx context.Context, companyID, key string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Next(ctx context.Context, companyID, key string) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO company_counters (company_id, counter_key, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, counter_key) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyID, key).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}
