package request_test

import (
	"context"
	"errors"
	"testing"

	"go-hris-workflow/internal/authorization"
	"go-hris-workflow/internal/orghierarchy"
	"go-hris-workflow/internal/request"
	requesterrors "go-hris-workflow/internal/request/errors"
	"go-hris-workflow/internal/request/requesttest"
	"go-hris-workflow/internal/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePolicy struct {
	decision authorization.Decision
}

func (p fakePolicy) CanSubmit(context.Context, string, string) authorization.Decision {
	return p.decision
}

// fakeEmployees keys employees by company, then by id or national id.
type fakeEmployees struct {
	byCompany map[string]map[string]orghierarchy.Employee
	err       error
}

func (f fakeEmployees) Employee(_ context.Context, companyID, ref string) (*orghierarchy.Employee, error) {
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.byCompany[companyID][ref]
	if !ok {
		return nil, orghierarchy.ErrEmployeeNotFound
	}
	return &e, nil
}

type serviceDeps struct {
	store     *requesttest.Store
	svc       request.Service
	companyID string
	actorID   string
	colleague string
}

func newServiceDeps(t *testing.T, decision authorization.Decision, employeesErr error) *serviceDeps {
	t.Helper()
	companyID := uuid.NewString()
	actorID := uuid.NewString()
	colleague := uuid.NewString()
	outsider := uuid.NewString()
	employees := fakeEmployees{
		byCompany: map[string]map[string]orghierarchy.Employee{
			companyID: {
				actorID:   {ID: actorID, NationalID: "1001"},
				"1001":    {ID: actorID, NationalID: "1001"},
				colleague: {ID: colleague, NationalID: "2002"},
				"2002":    {ID: colleague, NationalID: "2002"},
			},
			uuid.NewString(): {
				outsider: {ID: outsider, NationalID: "3003"},
				"3003":   {ID: outsider, NationalID: "3003"},
			},
		},
		err: employeesErr,
	}
	store := requesttest.NewStore()
	return &serviceDeps{
		store:     store,
		svc:       request.NewService(store, fakePolicy{decision: decision}, employees),
		companyID: companyID,
		actorID:   actorID,
		colleague: colleague,
	}
}

var allowed = authorization.Decision{Allowed: true}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("vacation computes total days", func(t *testing.T) {
		deps := newServiceDeps(t, allowed, nil)
		resp, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{
			Type:           "VACATION",
			StartDate:      "2026-03-10",
			EndDate:        "2026-03-14",
			ReplacementRef: "2002",
			Reason:         "  family trip ",
		})
		assert.NoError(t, err)
		assert.Equal(t, "PENDING", resp.State)
		assert.Equal(t, deps.actorID, resp.RequesterID)
		assert.Equal(t, 5, resp.TotalDays)
		assert.Equal(t, "VAC-000001", resp.Number)
		assert.Equal(t, "2002", resp.ReplacementRef)
		assert.Equal(t, "family trip", resp.Reason)
		assert.Equal(t, 0, resp.Version)
	})

	t.Run("shift change needs a replacement", func(t *testing.T) {
		deps := newServiceDeps(t, allowed, nil)
		_, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{
			Type:      "SHIFT_CHANGE",
			ShiftDate: "2026-04-01",
		})
		assert.ErrorIs(t, err, requesterrors.ErrReplacementRequired)
	})

	t.Run("severance rejects a replacement", func(t *testing.T) {
		deps := newServiceDeps(t, allowed, nil)
		amount := int64(1000)
		_, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{
			Type:           "SEVERANCE",
			Amount:         &amount,
			ReplacementRef: deps.colleague,
		})
		assert.ErrorIs(t, err, requesterrors.ErrReplacementNotAllowed)
	})

	t.Run("requester cannot replace themselves", func(t *testing.T) {
		deps := newServiceDeps(t, allowed, nil)
		_, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{
			Type:           "SHIFT_CHANGE",
			ShiftDate:      "2026-04-01",
			ReplacementRef: "1001",
		})
		assert.ErrorIs(t, err, requesterrors.ErrReplacementIsRequester)
	})

	t.Run("unknown replacement", func(t *testing.T) {
		deps := newServiceDeps(t, allowed, nil)
		_, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{
			Type:           "SHIFT_CHANGE",
			ShiftDate:      "2026-04-01",
			ReplacementRef: "9999",
		})
		assert.ErrorIs(t, err, requesterrors.ErrReplacementUnknown)
	})

	t.Run("replacement from another company", func(t *testing.T) {
		deps := newServiceDeps(t, allowed, nil)
		_, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{
			Type:           "SHIFT_CHANGE",
			ShiftDate:      "2026-04-01",
			ReplacementRef: "3003",
		})
		assert.ErrorIs(t, err, requesterrors.ErrReplacementUnknown)

		_, total, err := deps.svc.List(ctx, deps.companyID, request.ListRequestsQuery{})
		assert.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("replacement lookup outage", func(t *testing.T) {
		deps := newServiceDeps(t, allowed, errors.New("db down"))
		_, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{
			Type:           "SHIFT_CHANGE",
			ShiftDate:      "2026-04-01",
			ReplacementRef: "2002",
		})
		assert.ErrorIs(t, err, requesterrors.ErrDependencyUnavailable)
	})

	t.Run("payload validation", func(t *testing.T) {
		deps := newServiceDeps(t, allowed, nil)
		cases := []struct {
			name string
			req  request.CreateRequestRequest
			want error
		}{
			{"vacation without dates", request.CreateRequestRequest{Type: "VACATION"}, requesterrors.ErrVacationDatesRequired},
			{"vacation bad format", request.CreateRequestRequest{Type: "VACATION", StartDate: "10/03/2026", EndDate: "2026-03-12"}, requesterrors.ErrInvalidDateFormat},
			{"vacation inverted range", request.CreateRequestRequest{Type: "VACATION", StartDate: "2026-03-12", EndDate: "2026-03-10"}, requesterrors.ErrInvalidDateRange},
			{"severance without amount", request.CreateRequestRequest{Type: "SEVERANCE"}, requesterrors.ErrAmountRequired},
			{"shift change without date", request.CreateRequestRequest{Type: "SHIFT_CHANGE", ReplacementRef: "2002"}, requesterrors.ErrShiftDateRequired},
			{"unknown type", request.CreateRequestRequest{Type: "BONUS"}, requesterrors.ErrInvalidType},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, tc.req)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})

	t.Run("area manager may not submit", func(t *testing.T) {
		deps := newServiceDeps(t, authorization.Decision{Reason: "area managers may not file employee requests"}, nil)
		amount := int64(1000)
		_, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{Type: "SEVERANCE", Amount: &amount})
		assert.ErrorIs(t, err, requesterrors.ErrSubmitForbidden)
		assert.Contains(t, err.Error(), "area managers")
	})

	t.Run("org chart outage on submit", func(t *testing.T) {
		deps := newServiceDeps(t, authorization.Decision{DependencyFailure: true, Reason: "unavailable"}, nil)
		amount := int64(1000)
		_, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{Type: "SEVERANCE", Amount: &amount})
		assert.ErrorIs(t, err, requesterrors.ErrDependencyUnavailable)
	})

	t.Run("invalid ids", func(t *testing.T) {
		deps := newServiceDeps(t, allowed, nil)
		_, err := deps.svc.Create(ctx, "acme", deps.actorID, request.CreateRequestRequest{Type: "SEVERANCE"})
		assert.ErrorIs(t, err, requesterrors.ErrInvalidCompanyID)
		_, err = deps.svc.Create(ctx, deps.companyID, "", request.CreateRequestRequest{Type: "SEVERANCE"})
		assert.ErrorIs(t, err, requesterrors.ErrInvalidActorID)
	})
}

func TestRequestService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	deps := newServiceDeps(t, allowed, nil)
	amount := int64(5000)

	created, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{Type: "SEVERANCE", Amount: &amount})
	assert.NoError(t, err)
	_, err = deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{Type: "VACATION", StartDate: "2026-05-01", EndDate: "2026-05-02"})
	assert.NoError(t, err)

	rows, total, err := deps.svc.List(ctx, deps.companyID, request.ListRequestsQuery{Type: "SEVERANCE", Page: 1, PageSize: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, created.ID, rows[0].ID)

	rows, total, err = deps.svc.List(ctx, deps.companyID, request.ListRequestsQuery{Type: " vacation "})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "VACATION", rows[0].Type)

	_, _, err = deps.svc.List(ctx, deps.companyID, request.ListRequestsQuery{Type: "BONUS"})
	assert.ErrorIs(t, err, requesterrors.ErrInvalidType)

	_, total, err = deps.svc.List(ctx, deps.companyID, request.ListRequestsQuery{State: "pending"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, _, err = deps.svc.List(ctx, deps.companyID, request.ListRequestsQuery{State: "ARCHIVED"})
	assert.Error(t, err)

	got, err := deps.svc.GetByID(ctx, deps.companyID, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(5000), *got.Amount)

	_, err = deps.svc.GetByID(ctx, uuid.NewString(), created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrRequestNotFound)
}

func TestRequestService_Delete(t *testing.T) {
	ctx := context.Background()
	deps := newServiceDeps(t, allowed, nil)
	amount := int64(5000)

	created, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{Type: "SEVERANCE", Amount: &amount})
	assert.NoError(t, err)

	err = deps.svc.Delete(ctx, deps.companyID, deps.colleague, created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrDeleteOnlyRequester)

	_, _, err = deps.store.ApplyMutationWithAudit(ctx, deps.companyID, created.ID, func(_ context.Context, r *request.Request) (request.AuditRecord, error) {
		r.State = workflow.StateUnderReview
		return request.AuditRecord{Transition: workflow.TransitionSupervisorApprove}, nil
	})
	assert.NoError(t, err)
	err = deps.svc.Delete(ctx, deps.companyID, deps.actorID, created.ID)
	assert.ErrorIs(t, err, requesterrors.ErrDeleteOnlyPending)

	other, err := deps.svc.Create(ctx, deps.companyID, deps.actorID, request.CreateRequestRequest{Type: "SEVERANCE", Amount: &amount})
	assert.NoError(t, err)
	assert.NoError(t, deps.svc.Delete(ctx, deps.companyID, deps.actorID, other.ID))

	_, err = deps.svc.GetByID(ctx, deps.companyID, other.ID)
	assert.ErrorIs(t, err, requesterrors.ErrRequestNotFound)
}
