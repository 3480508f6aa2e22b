package approval

import (
	"errors"
	"io"
	"net/http"

	approvalerrors "go-hris-workflow/internal/approval/errors"
	"go-hris-workflow/internal/request"
	"go-hris-workflow/internal/shared/apperror"
	"go-hris-workflow/internal/shared/response"
	"go-hris-workflow/internal/workflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	engine Engine
	logger *zap.Logger
}

func NewHandler(engine Engine, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("approval.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approval.handler")
	}
	return &Handler{engine: engine, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("approval endpoint failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.Param("id")),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Transition applies the transition named in the path. The actor always
// comes from the token, never from the body.
func (h *Handler) Transition(c *gin.Context) {
	t, ok := workflow.ParseTransition(c.Param("transition"))
	if !ok {
		h.writeServiceError(c, approvalerrors.ErrUnknownTransition)
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("http transition validation failed", zap.Error(err))
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, err.Error())
		return
	}

	res, err := h.engine.ApplyTransition(c.Request.Context(), TransitionCommand{
		CompanyID:  c.GetString("company_id"),
		RequestID:  c.Param("id"),
		Transition: t,
		ActorID:    request.GetActorID(c),
		Payload:    Payload{Reason: req.Reason, Note: req.Note},
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapToTransitionResponse(res), nil)
}

func (h *Handler) Available(c *gin.Context) {
	items, err := h.engine.AvailableTransitions(c.Request.Context(), c.GetString("company_id"), c.Param("id"), request.GetActorID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mapToAvailableResponse(items), nil)
}

func (h *Handler) History(c *gin.Context) {
	entries, err := h.engine.History(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, request.MapAuditEntries(entries), nil)
}
