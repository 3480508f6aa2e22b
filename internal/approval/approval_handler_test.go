package approval_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hris-workflow/internal/approval"
	approvalerrors "go-hris-workflow/internal/approval/errors"
	"go-hris-workflow/internal/request"
	"go-hris-workflow/internal/shared/apperror"
	"go-hris-workflow/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeEngine struct {
	applyFn     func(ctx context.Context, cmd approval.TransitionCommand) (*approval.TransitionResult, error)
	availableFn func(ctx context.Context, companyID, requestID, actorID string) ([]approval.AvailableTransition, error)
	historyFn   func(ctx context.Context, companyID, requestID string) ([]request.AuditEntry, error)
}

func (f *fakeEngine) ApplyTransition(ctx context.Context, cmd approval.TransitionCommand) (*approval.TransitionResult, error) {
	return f.applyFn(ctx, cmd)
}
func (f *fakeEngine) AvailableTransitions(ctx context.Context, companyID, requestID, actorID string) ([]approval.AvailableTransition, error) {
	return f.availableFn(ctx, companyID, requestID, actorID)
}
func (f *fakeEngine) History(ctx context.Context, companyID, requestID string) ([]request.AuditEntry, error) {
	return f.historyFn(ctx, companyID, requestID)
}

func newTransitionContext(w *httptest.ResponseRecorder, transition, body string) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/requests/req-1/transitions/"+transition, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "req-1"}, {Key: "transition", Value: transition}}
	c.Set("company_id", companyID)
	c.Set("employee_id", supervisor)
	return c
}

func TestApprovalHandler_Transition(t *testing.T) {
	t.Run("success uses actor from token", func(t *testing.T) {
		eng := &fakeEngine{
			applyFn: func(ctx context.Context, cmd approval.TransitionCommand) (*approval.TransitionResult, error) {
				assert.Equal(t, companyID, cmd.CompanyID)
				assert.Equal(t, "req-1", cmd.RequestID)
				assert.Equal(t, supervisor, cmd.ActorID)
				assert.Equal(t, workflow.TransitionReject, cmd.Transition)
				assert.Equal(t, "overlaps inventory", cmd.Payload.Reason)
				reason := cmd.Payload.Reason
				return &approval.TransitionResult{
					NewState:     workflow.StateRejected,
					AuditEntryID: "audit-1",
					Request: request.Request{
						ID:              uuid.New(),
						Type:            workflow.TypeVacation,
						State:           workflow.StateRejected,
						RejectionReason: &reason,
					},
				}, nil
			},
		}

		w := httptest.NewRecorder()
		c := newTransitionContext(w, "Reject", `{"reason":"overlaps inventory","actor_id":"someone-else"}`)
		approval.NewHandler(eng).Transition(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got approval.TransitionResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "REJECTED", got.NewState)
		assert.Equal(t, "audit-1", got.AuditEntryID)
		assert.Equal(t, "overlaps inventory", *got.Request.RejectionReason)
	})

	t.Run("empty body is accepted", func(t *testing.T) {
		called := false
		eng := &fakeEngine{
			applyFn: func(ctx context.Context, cmd approval.TransitionCommand) (*approval.TransitionResult, error) {
				called = true
				return &approval.TransitionResult{NewState: workflow.StateSupervisorApproved}, nil
			},
		}
		w := httptest.NewRecorder()
		c := newTransitionContext(w, "SupervisorApprove", "")
		approval.NewHandler(eng).Transition(c)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown transition", func(t *testing.T) {
		w := httptest.NewRecorder()
		c := newTransitionContext(w, "Escalate", "")
		approval.NewHandler(&fakeEngine{}).Transition(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, apperror.CodeInvalidInput, env.Error.Code)
	})

	t.Run("error mapping", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
			code   string
		}{
			{"invalid transition", approvalerrors.ErrInvalidTransition, http.StatusConflict, apperror.CodeInvalidState},
			{"forbidden with reason", apperror.WithReason(approvalerrors.ErrForbidden, "only the department manager of HR may perform this action (missing isDepartmentManager(HR))"), http.StatusForbidden, apperror.CodeForbidden},
			{"dependency", approvalerrors.ErrDependencyUnavailable, http.StatusForbidden, apperror.CodeDependencyUnavailable},
			{"reason required", approvalerrors.ErrReasonRequired, http.StatusBadRequest, apperror.CodeInvalidInput},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				eng := &fakeEngine{
					applyFn: func(ctx context.Context, cmd approval.TransitionCommand) (*approval.TransitionResult, error) {
						return nil, tc.err
					},
				}
				w := httptest.NewRecorder()
				c := newTransitionContext(w, "Approve", `{}`)
				approval.NewHandler(eng).Transition(c)

				assert.Equal(t, tc.status, w.Code)
				env := decodeEnvelope(t, w.Body.Bytes())
				assert.Equal(t, tc.code, env.Error.Code)
			})
		}
	})

	t.Run("forbidden message names missing capability", func(t *testing.T) {
		eng := &fakeEngine{
			applyFn: func(ctx context.Context, cmd approval.TransitionCommand) (*approval.TransitionResult, error) {
				return nil, apperror.WithReason(approvalerrors.ErrForbidden, "only an administrator may perform this action (missing isAdministrator)")
			},
		}
		w := httptest.NewRecorder()
		c := newTransitionContext(w, "AdminApprove", `{}`)
		approval.NewHandler(eng).Transition(c)

		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Contains(t, env.Error.Message, "missing isAdministrator")
	})
}

func TestApprovalHandler_Available(t *testing.T) {
	eng := &fakeEngine{
		availableFn: func(ctx context.Context, cid, rid, aid string) ([]approval.AvailableTransition, error) {
			assert.Equal(t, supervisor, aid)
			return []approval.AvailableTransition{
				{Transition: workflow.TransitionApprove, To: workflow.StateApproved},
				{Transition: workflow.TransitionReject, To: workflow.StateRejected, ReasonRequired: true},
			}, nil
		},
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/requests/req-1/transitions", nil)
	c.Params = gin.Params{{Key: "id", Value: "req-1"}}
	c.Set("company_id", companyID)
	c.Set("employee_id", supervisor)

	approval.NewHandler(eng).Available(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got []approval.AvailableTransitionResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 2)
	assert.Equal(t, "Reject", got[1].Transition)
	assert.True(t, got[1].ReasonRequired)
}

func TestApprovalHandler_History(t *testing.T) {
	reqID := uuid.New()
	eng := &fakeEngine{
		historyFn: func(ctx context.Context, cid, rid string) ([]request.AuditEntry, error) {
			return []request.AuditEntry{
				{ID: uuid.New(), RequestID: reqID, Sequence: 1, FromState: workflow.StatePending, ToState: workflow.StateUnderReview, Transition: workflow.TransitionSupervisorApprove, ActorID: uuid.MustParse(supervisor)},
			}, nil
		},
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/requests/"+reqID.String()+"/history", nil)
	c.Params = gin.Params{{Key: "id", Value: reqID.String()}}
	c.Set("company_id", companyID)

	approval.NewHandler(eng).History(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got []request.AuditEntryResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "UNDER_REVIEW", got[0].ToState)
	assert.Equal(t, supervisor, got[0].ActorID)
}
