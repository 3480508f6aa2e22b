package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	requesterrors "go-hris-workflow/internal/request/errors"
	"go-hris-workflow/internal/shared/counter"
	"go-hris-workflow/internal/tenant"
	"go-hris-workflow/internal/workflow"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AuditRecord is what a mutation reports about itself. The store fills in
// the states and the sequence.
type AuditRecord struct {
	Transition workflow.Transition
	ActorID    uuid.UUID
	Note       string
}

// Mutation edits the locked row in place. Returning an error rolls back.
// ctx expires with the transaction; lookups made by the mutation must use it.
type Mutation func(ctx context.Context, r *Request) (AuditRecord, error)

type Filter struct {
	CompanyID   string
	Type        workflow.RequestType
	State       workflow.State
	RequesterID string
	Page        int
	PageSize    int
}

//go:generate mockgen -source=request_store.go -destination=mock/request_store_mock.go -package=mock
type Store interface {
	Create(ctx context.Context, r *Request) error
	FindByID(ctx context.Context, companyID, id string) (*Request, error)
	FindAllActive(ctx context.Context, f Filter) ([]Request, int64, error)
	// ApplyMutationWithAudit is the only path that changes a request's state.
	// It locks the row, runs fn, persists the row and one audit entry, and
	// commits, or does none of it.
	ApplyMutationWithAudit(ctx context.Context, companyID, id string, fn Mutation) (*Request, *AuditEntry, error)
	History(ctx context.Context, companyID, id string) ([]AuditEntry, error)
	SoftDelete(ctx context.Context, companyID, id string, check func(*Request) error) error
	AttachDocument(ctx context.Context, companyID, id, ref string) error
}

type store struct {
	db          *gorm.DB
	lockTimeout time.Duration
	txTimeout   time.Duration
	now         func() time.Time
	logger      *zap.Logger
}

// NewStore bounds row lock waits by lockTimeout and every locking
// transaction, mutation included, by txTimeout. Zero disables either bound.
func NewStore(db *gorm.DB, lockTimeout, txTimeout time.Duration, logger ...*zap.Logger) Store {
	l := zap.L().Named("request.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.store")
	}
	return &store{
		db:          db,
		lockTimeout: lockTimeout,
		txTimeout:   txTimeout,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      l,
	}
}

// Create numbers the request from the company counter and inserts it in
// one transaction.
func (s *store) Create(ctx context.Context, r *Request) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := counter.NewRepository(tx).Next(ctx, r.CompanyID.String(), CounterKey(r.Type))
		if err != nil {
			return fmt.Errorf("next request number: %w", err)
		}
		r.Number = FormatNumber(r.Type, n)
		return tx.Create(r).Error
	})
}

func (s *store) FindByID(ctx context.Context, companyID, id string) (*Request, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, requesterrors.ErrRequestNotFound
	}
	var r Request
	err := s.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&r, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requesterrors.ErrRequestNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *store) FindAllActive(ctx context.Context, f Filter) ([]Request, int64, error) {
	q := s.db.WithContext(ctx).Model(&Request{}).Scopes(tenant.Scope(f.CompanyID))
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.RequesterID != "" {
		q = q.Where("requester_id = ?", f.RequesterID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, size := f.Page, f.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	var rows []Request
	err := q.Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&rows).Error
	return rows, total, err
}

func (s *store) ApplyMutationWithAudit(ctx context.Context, companyID, id string, fn Mutation) (*Request, *AuditEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil, requesterrors.ErrRequestNotFound
	}

	ctx, cancel := s.boundTx(ctx)
	defer cancel()

	var (
		updated Request
		entry   AuditEntry
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.lockRow(tx, companyID, id)
		if err != nil {
			return err
		}
		before := *row

		rec, err := fn(ctx, row)
		if err != nil {
			return err
		}
		if err := checkImmutable(&before, row); err != nil {
			s.logger.Error("mutation touched immutable fields", zap.String("request_id", id), zap.Error(err))
			return err
		}

		now := s.now()
		row.Version = before.Version + 1
		row.UpdatedAt = now

		res := tx.Model(&Request{}).
			Where("id = ? AND version = ?", row.ID, before.Version).
			Updates(map[string]any{
				"state":            row.State,
				"reviewer_id":      row.ReviewerID,
				"reviewed_at":      row.ReviewedAt,
				"rejection_reason": row.RejectionReason,
				"version":          row.Version,
				"updated_at":       now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return requesterrors.ErrConflict
		}

		entry = AuditEntry{
			ID:         uuid.New(),
			RequestID:  row.ID,
			Sequence:   row.Version,
			FromState:  before.State,
			ToState:    row.State,
			Transition: rec.Transition,
			ActorID:    rec.ActorID,
			Note:       rec.Note,
			CreatedAt:  now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		updated = *row
		return nil
	})
	if err != nil {
		return nil, nil, s.classify(ctx, id, err)
	}
	return &updated, &entry, nil
}

func (s *store) History(ctx context.Context, companyID, id string) ([]AuditEntry, error) {
	if _, err := s.FindByID(ctx, companyID, id); err != nil {
		return nil, err
	}
	var entries []AuditEntry
	err := s.db.WithContext(ctx).
		Where("request_id = ?", id).
		Order("sequence ASC").
		Find(&entries).Error
	return entries, err
}

func (s *store) SoftDelete(ctx context.Context, companyID, id string, check func(*Request) error) error {
	if _, err := uuid.Parse(id); err != nil {
		return requesterrors.ErrRequestNotFound
	}
	ctx, cancel := s.boundTx(ctx)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.lockRow(tx, companyID, id)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(row); err != nil {
				return err
			}
		}
		return tx.Delete(row).Error
	})
	if err != nil {
		return s.classify(ctx, id, err)
	}
	return nil
}

func (s *store) AttachDocument(ctx context.Context, companyID, id, ref string) error {
	res := s.db.WithContext(ctx).
		Model(&Request{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Update("document_ref", ref)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return requesterrors.ErrRequestNotFound
	}
	return nil
}

// boundTx caps how long a transaction may hold the row lock, lookups made by
// the mutation included.
func (s *store) boundTx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.txTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.txTimeout)
}

func (s *store) lockRow(tx *gorm.DB, companyID, id string) (*Request, error) {
	if s.lockTimeout > 0 {
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
		if err := tx.Exec(stmt).Error; err != nil {
			return nil, err
		}
	}

	var row Request
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, requesterrors.ErrRequestNotFound
		}
		return nil, err
	}
	return &row, nil
}

// classify turns lock waits, serialization failures and deadlines into the
// retryable conflict error. Anything else is passed through.
func (s *store) classify(ctx context.Context, id string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		s.logger.Warn("request transaction timed out", zap.String("request_id", id), zap.Error(err))
		return requesterrors.ErrConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "55P03", // lock_not_available
			"40001", // serialization_failure
			"40P01": // deadlock_detected
			s.logger.Warn("request row contention",
				zap.String("request_id", id),
				zap.String("pg_code", pgErr.Code),
			)
			return requesterrors.ErrConflict
		case "23505":
			// Duplicate audit sequence: another writer won.
			return requesterrors.ErrConflict
		}
	}
	return err
}

func checkImmutable(before, after *Request) error {
	switch {
	case before.ID != after.ID,
		before.CompanyID != after.CompanyID,
		before.Type != after.Type,
		before.Number != after.Number,
		before.RequesterID != after.RequesterID,
		before.ReplacementRef != after.ReplacementRef,
		before.Version != after.Version:
		return requesterrors.ErrImmutableField
	}
	return nil
}
