// Package requesttest provides an in-memory request.Store for tests.
package requesttest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go-hris-workflow/internal/request"
	requesterrors "go-hris-workflow/internal/request/errors"

	"github.com/google/uuid"
)

// Store serializes mutations per request the way the row lock does.
type Store struct {
	mu      sync.Mutex
	rows    map[string]request.Request
	audit   map[string][]request.AuditEntry
	locks   map[string]*sync.Mutex
	deleted map[string]bool
	numbers map[string]int64

	// BeforeCommit, when set, runs while the request lock is held.
	BeforeCommit func()
	// TxTimeout, when set, bounds each mutation; expiry reports a conflict.
	TxTimeout time.Duration
}

func NewStore() *Store {
	return &Store{
		rows:    map[string]request.Request{},
		audit:   map[string][]request.AuditEntry{},
		locks:   map[string]*sync.Mutex{},
		deleted: map[string]bool{},
		numbers: map[string]int64{},
	}
}

func (s *Store) lockFor(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

func (s *Store) get(companyID, id string) (request.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok || s.deleted[id] || r.CompanyID.String() != companyID {
		return request.Request{}, false
	}
	return r, true
}

func (s *Store) Create(_ context.Context, r *request.Request) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now
	s.mu.Lock()
	defer s.mu.Unlock()
	key := r.CompanyID.String() + "/" + request.CounterKey(r.Type)
	s.numbers[key]++
	r.Number = request.FormatNumber(r.Type, s.numbers[key])
	s.rows[r.ID.String()] = *r
	return nil
}

func (s *Store) FindByID(_ context.Context, companyID, id string) (*request.Request, error) {
	r, ok := s.get(companyID, id)
	if !ok {
		return nil, requesterrors.ErrRequestNotFound
	}
	return &r, nil
}

func (s *Store) FindAllActive(_ context.Context, f request.Filter) ([]request.Request, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []request.Request
	for id, r := range s.rows {
		if s.deleted[id] || r.CompanyID.String() != f.CompanyID {
			continue
		}
		if (f.Type != "" && r.Type != f.Type) ||
			(f.State != "" && r.State != f.State) ||
			(f.RequesterID != "" && r.RequesterID.String() != f.RequesterID) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (s *Store) ApplyMutationWithAudit(ctx context.Context, companyID, id string, fn request.Mutation) (*request.Request, *request.AuditEntry, error) {
	if s.TxTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.TxTimeout)
		defer cancel()
	}

	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	row, ok := s.get(companyID, id)
	if !ok {
		return nil, nil, requesterrors.ErrRequestNotFound
	}
	before := row

	rec, err := fn(ctx, &row)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, nil, requesterrors.ErrConflict
		}
		return nil, nil, err
	}
	if row.ID != before.ID || row.Number != before.Number || row.Type != before.Type || row.RequesterID != before.RequesterID ||
		row.CompanyID != before.CompanyID || row.ReplacementRef != before.ReplacementRef || row.Version != before.Version {
		return nil, nil, requesterrors.ErrImmutableField
	}
	if s.BeforeCommit != nil {
		s.BeforeCommit()
	}

	now := time.Now().UTC()
	row.Version = before.Version + 1
	row.UpdatedAt = now
	entry := request.AuditEntry{
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

	s.mu.Lock()
	s.rows[id] = row
	s.audit[id] = append(s.audit[id], entry)
	s.mu.Unlock()

	return &row, &entry, nil
}

func (s *Store) History(_ context.Context, companyID, id string) ([]request.AuditEntry, error) {
	if _, ok := s.get(companyID, id); !ok {
		return nil, requesterrors.ErrRequestNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]request.AuditEntry(nil), s.audit[id]...), nil
}

func (s *Store) SoftDelete(_ context.Context, companyID, id string, check func(*request.Request) error) error {
	l := s.lockFor(id)
	l.Lock()
	defer l.Unlock()

	row, ok := s.get(companyID, id)
	if !ok {
		return requesterrors.ErrRequestNotFound
	}
	if check != nil {
		if err := check(&row); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.deleted[id] = true
	s.mu.Unlock()
	return nil
}

func (s *Store) AttachDocument(_ context.Context, companyID, id, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok || s.deleted[id] || r.CompanyID.String() != companyID {
		return requesterrors.ErrRequestNotFound
	}
	r.DocumentRef = &ref
	s.rows[id] = r
	return nil
}

// AuditCount reports how many audit entries exist for id.
func (s *Store) AuditCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.audit[id])
}
