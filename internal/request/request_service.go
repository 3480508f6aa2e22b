package request

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-hris-workflow/internal/authorization"
	"go-hris-workflow/internal/orghierarchy"
	requesterrors "go-hris-workflow/internal/request/errors"
	"go-hris-workflow/internal/shared/apperror"
	"go-hris-workflow/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SubmitPolicy interface {
	CanSubmit(ctx context.Context, companyID, actorID string) authorization.Decision
}

type EmployeeLookup interface {
	Employee(ctx context.Context, companyID, ref string) (*orghierarchy.Employee, error)
}

//go:generate mockgen -source=request_service.go -destination=mock/request_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateRequestRequest) (RequestResponse, error)
	List(ctx context.Context, companyID string, q ListRequestsQuery) ([]RequestResponse, int64, error)
	GetByID(ctx context.Context, companyID, id string) (RequestResponse, error)
	Delete(ctx context.Context, companyID, actorID, id string) error
}

type service struct {
	store     Store
	policy    SubmitPolicy
	employees EmployeeLookup
	logger    *zap.Logger
}

func NewService(store Store, policy SubmitPolicy, employees EmployeeLookup, logger ...*zap.Logger) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{store: store, policy: policy, employees: employees, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateRequestRequest) (RequestResponse, error) {
	s.logger.Debug("create request requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("type", req.Type),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidActorID
	}

	reqType := workflow.RequestType(strings.ToUpper(strings.TrimSpace(req.Type)))
	def, err := workflow.For(reqType)
	if err != nil {
		return RequestResponse{}, requesterrors.ErrInvalidType
	}

	decision := s.policy.CanSubmit(ctx, companyID, actorID)
	if !decision.Allowed {
		s.logger.Warn("create request denied",
			zap.String("actor_id", actorID),
			zap.String("reason", decision.Reason),
			zap.Bool("dependency_failure", decision.DependencyFailure),
		)
		if decision.DependencyFailure {
			return RequestResponse{}, requesterrors.ErrDependencyUnavailable
		}
		return RequestResponse{}, apperror.WithReason(requesterrors.ErrSubmitForbidden, decision.Message())
	}

	r := &Request{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Type:        reqType,
		RequesterID: actorUUID,
		State:       def.Initial,
		Reason:      strings.TrimSpace(req.Reason),
	}
	if err := applyPayload(r, req); err != nil {
		s.logger.Warn("create request validation failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if err := s.validateReplacement(ctx, r, actorID, req.ReplacementRef); err != nil {
		s.logger.Warn("create request replacement rejected", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := s.store.Create(ctx, r); err != nil {
		s.logger.Error("create request persist failed", zap.Error(err))
		return RequestResponse{}, err
	}

	s.logger.Info("create request success",
		zap.String("request_id", r.ID.String()),
		zap.String("company_id", companyID),
		zap.String("type", string(r.Type)),
	)
	return MapToResponse(*r), nil
}

func (s *service) List(ctx context.Context, companyID string, q ListRequestsQuery) ([]RequestResponse, int64, error) {
	f := Filter{
		CompanyID:   companyID,
		RequesterID: q.RequesterID,
		Page:        q.Page,
		PageSize:    q.PageSize,
	}
	if t := strings.TrimSpace(q.Type); t != "" {
		f.Type = workflow.RequestType(strings.ToUpper(t))
		if !workflow.IsValidType(f.Type) {
			return nil, 0, requesterrors.ErrInvalidType
		}
	}
	if q.State != "" {
		f.State = workflow.State(strings.ToUpper(q.State))
		if !knownState(f.State) {
			return nil, 0, apperror.InvalidField("State")
		}
	}

	rows, total, err := s.store.FindAllActive(ctx, f)
	if err != nil {
		s.logger.Error("list requests failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, 0, err
	}
	return mapToListResponse(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (RequestResponse, error) {
	r, err := s.store.FindByID(ctx, companyID, id)
	if err != nil {
		return RequestResponse{}, err
	}
	return MapToResponse(*r), nil
}

func (s *service) Delete(ctx context.Context, companyID, actorID, id string) error {
	err := s.store.SoftDelete(ctx, companyID, id, func(r *Request) error {
		if r.RequesterID.String() != actorID {
			return requesterrors.ErrDeleteOnlyRequester
		}
		if r.State != workflow.StatePending {
			return requesterrors.ErrDeleteOnlyPending
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("delete request failed", zap.String("request_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("delete request success", zap.String("request_id", id), zap.String("actor_id", actorID))
	return nil
}

func (s *service) validateReplacement(ctx context.Context, r *Request, actorID, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if r.Type == workflow.TypeShiftChange {
			return requesterrors.ErrReplacementRequired
		}
		return nil
	}
	if !workflow.AcceptsReplacement(r.Type) {
		return requesterrors.ErrReplacementNotAllowed
	}

	emp, err := s.employees.Employee(ctx, r.CompanyID.String(), ref)
	if err != nil {
		if errors.Is(err, orghierarchy.ErrEmployeeNotFound) {
			return requesterrors.ErrReplacementUnknown
		}
		s.logger.Error("replacement lookup failed", zap.String("replacement_ref", ref), zap.Error(err))
		return requesterrors.ErrDependencyUnavailable
	}
	if emp.ID == actorID {
		return requesterrors.ErrReplacementIsRequester
	}
	r.ReplacementRef = ref
	return nil
}

func applyPayload(r *Request, req CreateRequestRequest) error {
	switch r.Type {
	case workflow.TypeVacation:
		if req.StartDate == "" || req.EndDate == "" {
			return requesterrors.ErrVacationDatesRequired
		}
		start, err := parseDate(req.StartDate)
		if err != nil {
			return err
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return err
		}
		if start.After(end) {
			return requesterrors.ErrInvalidDateRange
		}
		r.StartDate = &start
		r.EndDate = &end
		r.TotalDays = int(end.Sub(start).Hours()/24) + 1

	case workflow.TypeShiftChange:
		if req.ShiftDate == "" {
			return requesterrors.ErrShiftDateRequired
		}
		d, err := parseDate(req.ShiftDate)
		if err != nil {
			return err
		}
		r.ShiftDate = &d

	case workflow.TypeSeverance:
		if req.Amount == nil || *req.Amount <= 0 {
			return requesterrors.ErrAmountRequired
		}
		v := *req.Amount
		r.Amount = &v
	}
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, requesterrors.ErrInvalidDateFormat
	}
	return t, nil
}

func knownState(st workflow.State) bool {
	for _, t := range workflow.Types() {
		def, _ := workflow.For(t)
		if def.HasState(st) {
			return true
		}
	}
	return false
}
