package approval

import (
	"context"
	"fmt"
	"strings"
	"time"

	approvalerrors "go-hris-workflow/internal/approval/errors"
	"go-hris-workflow/internal/authorization"
	"go-hris-workflow/internal/request"
	"go-hris-workflow/internal/shared/apperror"
	"go-hris-workflow/internal/sideeffect"
	"go-hris-workflow/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Authorizer interface {
	ResolveAny(ctx context.Context, actorID string, s authorization.Subject, caps []workflow.Capability) authorization.Decision
}

type Dispatcher interface {
	Dispatch(ctx context.Context, intent sideeffect.Intent)
}

type Payload struct {
	Reason string
	Note   string
}

type TransitionCommand struct {
	CompanyID  string
	RequestID  string
	Transition workflow.Transition
	ActorID    string
	Payload    Payload
}

type TransitionResult struct {
	NewState     workflow.State
	AuditEntryID string
	Request      request.Request
}

// AvailableTransition is an edge the actor may take from the current state.
type AvailableTransition struct {
	Transition     workflow.Transition
	To             workflow.State
	ReasonRequired bool
}

//go:generate mockgen -source=approval_engine.go -destination=mock/approval_engine_mock.go -package=mock
type Engine interface {
	ApplyTransition(ctx context.Context, cmd TransitionCommand) (*TransitionResult, error)
	AvailableTransitions(ctx context.Context, companyID, requestID, actorID string) ([]AvailableTransition, error)
	History(ctx context.Context, companyID, requestID string) ([]request.AuditEntry, error)
}

type engine struct {
	store      request.Store
	authz      Authorizer
	dispatcher Dispatcher
	now        func() time.Time
	logger     *zap.Logger
}

func NewEngine(store request.Store, authz Authorizer, dispatcher Dispatcher, logger ...*zap.Logger) Engine {
	l := zap.L().Named("approval.engine")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.engine")
	}
	return &engine{
		store:      store,
		authz:      authz,
		dispatcher: dispatcher,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     l,
	}
}

func (e *engine) ApplyTransition(ctx context.Context, cmd TransitionCommand) (*TransitionResult, error) {
	log := e.logger.With(
		zap.String("company_id", cmd.CompanyID),
		zap.String("request_id", cmd.RequestID),
		zap.String("transition", string(cmd.Transition)),
		zap.String("actor_id", cmd.ActorID),
	)
	log.Debug("apply transition requested")

	actorUUID, err := uuid.Parse(strings.TrimSpace(cmd.ActorID))
	if err != nil {
		return nil, approvalerrors.ErrInvalidActorID
	}
	if _, ok := workflow.ParseTransition(string(cmd.Transition)); !ok {
		return nil, approvalerrors.ErrUnknownTransition
	}
	reason := strings.TrimSpace(cmd.Payload.Reason)

	var from workflow.State
	updated, entry, err := e.store.ApplyMutationWithAudit(ctx, cmd.CompanyID, cmd.RequestID,
		func(ctx context.Context, r *request.Request) (request.AuditRecord, error) {
			edge, err := e.authorize(ctx, r, cmd.Transition, cmd.ActorID)
			if err != nil {
				return request.AuditRecord{}, err
			}
			if edge.To == workflow.StateRejected && reason == "" {
				return request.AuditRecord{}, approvalerrors.ErrReasonRequired
			}

			now := e.now()
			from = r.State
			r.State = edge.To
			r.ReviewerID = &actorUUID
			r.ReviewedAt = &now
			if edge.To == workflow.StateRejected {
				r.RejectionReason = &reason
			}

			note := strings.TrimSpace(cmd.Payload.Note)
			if note == "" {
				note = reason
			}
			return request.AuditRecord{Transition: cmd.Transition, ActorID: actorUUID, Note: note}, nil
		})
	if err != nil {
		log.Warn("apply transition failed", zap.Error(err))
		return nil, err
	}

	log.Info("apply transition success",
		zap.String("from_state", string(from)),
		zap.String("to_state", string(updated.State)),
		zap.Int("sequence", entry.Sequence),
	)

	if e.dispatcher != nil {
		// The caller's cancellation must not abort effects of a committed transition.
		e.dispatcher.Dispatch(context.WithoutCancel(ctx), sideeffect.Intent{
			RequestID:      updated.ID.String(),
			CompanyID:      updated.CompanyID.String(),
			FromState:      from,
			Transition:     cmd.Transition,
			ResultingState: updated.State,
			ActorID:        cmd.ActorID,
			Snapshot:       updated.Snapshot(),
		})
	}

	return &TransitionResult{
		NewState:     updated.State,
		AuditEntryID: entry.ID.String(),
		Request:      *updated,
	}, nil
}

// authorize finds the edge for t and checks its guard and capabilities
// against the locked row.
func (e *engine) authorize(ctx context.Context, r *request.Request, t workflow.Transition, actorID string) (workflow.Edge, error) {
	def, err := workflow.For(r.Type)
	if err != nil {
		return workflow.Edge{}, apperror.WithReason(approvalerrors.ErrInvalidTransition, err.Error())
	}
	edge, ok := def.Edge(r.State, t)
	if !ok {
		return workflow.Edge{}, apperror.WithReason(approvalerrors.ErrInvalidTransition,
			fmt.Sprintf("%s is not allowed on a %s request in state %s", t, r.Type, r.State))
	}
	if edge.Guard != nil && !edge.Guard.Check(guardSubject(r)) {
		return workflow.Edge{}, apperror.WithReason(approvalerrors.ErrInvalidTransition, edge.Guard.Reason)
	}

	decision := e.authz.ResolveAny(ctx, actorID, subjectOf(r), edge.Capabilities)
	if !decision.Allowed {
		if decision.DependencyFailure {
			return workflow.Edge{}, apperror.WithReason(approvalerrors.ErrDependencyUnavailable, decision.Message())
		}
		return workflow.Edge{}, apperror.WithReason(approvalerrors.ErrForbidden, decision.Message())
	}
	return edge, nil
}

func (e *engine) AvailableTransitions(ctx context.Context, companyID, requestID, actorID string) ([]AvailableTransition, error) {
	r, err := e.store.FindByID(ctx, companyID, requestID)
	if err != nil {
		return nil, err
	}
	def, err := workflow.For(r.Type)
	if err != nil {
		return nil, apperror.WithReason(approvalerrors.ErrInvalidTransition, err.Error())
	}

	out := []AvailableTransition{}
	for _, edge := range def.EdgesFrom(r.State) {
		if edge.Guard != nil && !edge.Guard.Check(guardSubject(r)) {
			continue
		}
		decision := e.authz.ResolveAny(ctx, actorID, subjectOf(r), edge.Capabilities)
		if decision.DependencyFailure {
			return nil, apperror.WithReason(approvalerrors.ErrDependencyUnavailable, decision.Message())
		}
		if !decision.Allowed {
			continue
		}
		out = append(out, AvailableTransition{
			Transition:     edge.Transition,
			To:             edge.To,
			ReasonRequired: edge.To == workflow.StateRejected,
		})
	}
	return out, nil
}

func (e *engine) History(ctx context.Context, companyID, requestID string) ([]request.AuditEntry, error) {
	return e.store.History(ctx, companyID, requestID)
}

func subjectOf(r *request.Request) authorization.Subject {
	return authorization.Subject{
		CompanyID:      r.CompanyID.String(),
		RequestID:      r.ID.String(),
		Type:           r.Type,
		RequesterID:    r.RequesterID.String(),
		ReplacementRef: r.ReplacementRef,
	}
}

func guardSubject(r *request.Request) workflow.Subject {
	return workflow.Subject{Type: r.Type, State: r.State, ReplacementRef: r.ReplacementRef}
}
