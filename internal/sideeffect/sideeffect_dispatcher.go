package sideeffect

import (
	"context"
	"sync"
	"time"

	"go-hris-workflow/internal/authorization"
	"go-hris-workflow/internal/request"
	"go-hris-workflow/internal/workflow"

	"go.uber.org/zap"
)

type EventKind string

const (
	EventStatusChanged    EventKind = "REQUEST_STATUS_CHANGED"
	EventApprovalRequired EventKind = "APPROVAL_REQUIRED"
	EventRequestApproved  EventKind = "REQUEST_APPROVED"
	EventRequestRejected  EventKind = "REQUEST_REJECTED"
)

// Intent describes a committed transition.
type Intent struct {
	RequestID      string
	CompanyID      string
	FromState      workflow.State
	Transition     workflow.Transition
	ResultingState workflow.State
	ActorID        string
	Snapshot       request.Snapshot
}

//go:generate mockgen -source=sideeffect_dispatcher.go -destination=mock/sideeffect_mock.go -package=mock
type Notifier interface {
	Notify(ctx context.Context, recipientID string, kind EventKind, intent Intent) error
}

type DocumentRenderer interface {
	RenderApprovedDocument(ctx context.Context, snap request.Snapshot) (string, error)
}

type DocumentAttacher interface {
	AttachDocument(ctx context.Context, companyID, id, ref string) error
}

type ApproverResolver interface {
	HoldersOf(ctx context.Context, s authorization.Subject, c workflow.Capability) ([]string, error)
}

// Dispatcher runs the side effects of a committed transition in the
// background. Every effect is attempted once; failures are logged.
type Dispatcher struct {
	notifier  Notifier
	renderer  DocumentRenderer
	attacher  DocumentAttacher
	approvers ApproverResolver
	timeout   time.Duration
	wg        sync.WaitGroup
	logger    *zap.Logger
}

func NewDispatcher(
	notifier Notifier,
	renderer DocumentRenderer,
	attacher DocumentAttacher,
	approvers ApproverResolver,
	timeout time.Duration,
	logger ...*zap.Logger,
) *Dispatcher {
	l := zap.L().Named("sideeffect.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("sideeffect.dispatcher")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{
		notifier:  notifier,
		renderer:  renderer,
		attacher:  attacher,
		approvers: approvers,
		timeout:   timeout,
		logger:    l,
	}
}

// Dispatch returns immediately. ctx should already be detached from the
// caller's cancellation.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.Run(ctx, intent)
	}()
}

// Wait blocks until every dispatched intent has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Run executes the effects of intent synchronously.
func (d *Dispatcher) Run(ctx context.Context, intent Intent) {
	log := d.logger.With(
		zap.String("request_id", intent.RequestID),
		zap.String("transition", string(intent.Transition)),
		zap.String("state", string(intent.ResultingState)),
	)
	defer func() {
		if r := recover(); r != nil {
			log.Error("side effect panicked", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	def, err := workflow.For(intent.Snapshot.Type)
	if err != nil {
		log.Error("side effects skipped", zap.Error(err))
		return
	}

	for _, effect := range def.Effects(intent.Transition) {
		switch effect {
		case workflow.EffectNotifyRequester:
			d.notifyRequester(ctx, log, intent)
		case workflow.EffectNotifyNextApprover:
			d.notifyNextApprovers(ctx, log, def, intent)
		case workflow.EffectRenderDocument:
			d.renderDocument(ctx, log, intent)
		}
	}
}

func (d *Dispatcher) notifyRequester(ctx context.Context, log *zap.Logger, intent Intent) {
	if d.notifier == nil {
		return
	}
	kind := EventStatusChanged
	switch intent.ResultingState {
	case workflow.StateApproved:
		kind = EventRequestApproved
	case workflow.StateRejected:
		kind = EventRequestRejected
	}
	if err := d.notifier.Notify(ctx, intent.Snapshot.RequesterID, kind, intent); err != nil {
		log.Warn("notify requester failed", zap.String("recipient_id", intent.Snapshot.RequesterID), zap.Error(err))
	}
}

func (d *Dispatcher) notifyNextApprovers(ctx context.Context, log *zap.Logger, def *workflow.Definition, intent Intent) {
	if d.notifier == nil || d.approvers == nil {
		return
	}
	snap := intent.Snapshot
	subject := authorization.Subject{
		CompanyID:      snap.CompanyID,
		RequestID:      snap.ID,
		Type:           snap.Type,
		RequesterID:    snap.RequesterID,
		ReplacementRef: snap.ReplacementRef,
	}
	guardSubject := workflow.Subject{Type: snap.Type, State: intent.ResultingState, ReplacementRef: snap.ReplacementRef}

	seen := map[string]struct{}{}
	var recipients []string
	for _, edge := range def.ForwardEdgesFrom(intent.ResultingState) {
		if edge.Guard != nil && !edge.Guard.Check(guardSubject) {
			continue
		}
		for _, c := range edge.Capabilities {
			holders, err := d.approvers.HoldersOf(ctx, subject, c)
			if err != nil {
				log.Warn("next approver lookup failed", zap.String("capability", c.String()), zap.Error(err))
				continue
			}
			for _, id := range holders {
				if _, ok := seen[id]; ok {
					continue
				}
				seen[id] = struct{}{}
				recipients = append(recipients, id)
			}
		}
	}

	if len(recipients) == 0 {
		log.Warn("no next approver found")
		return
	}
	for _, id := range recipients {
		if err := d.notifier.Notify(ctx, id, EventApprovalRequired, intent); err != nil {
			log.Warn("notify next approver failed", zap.String("recipient_id", id), zap.Error(err))
		}
	}
}

func (d *Dispatcher) renderDocument(ctx context.Context, log *zap.Logger, intent Intent) {
	if d.renderer == nil || intent.ResultingState != workflow.StateApproved {
		return
	}
	ref, err := d.renderer.RenderApprovedDocument(ctx, intent.Snapshot)
	if err != nil {
		log.Error("render document failed", zap.Error(err))
		return
	}
	if d.attacher == nil {
		return
	}
	if err := d.attacher.AttachDocument(ctx, intent.CompanyID, intent.RequestID, ref); err != nil {
		log.Error("attach document failed", zap.String("document_ref", ref), zap.Error(err))
		return
	}
	log.Info("document attached", zap.String("document_ref", ref))
}
