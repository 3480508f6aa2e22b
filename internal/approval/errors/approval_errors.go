package approvalerrors

import (
	"net/http"

	"go-hris-workflow/internal/shared/apperror"
)

var (
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"transition is not allowed from the current state",
		http.StatusConflict,
	)
	ErrUnknownTransition = apperror.New(
		apperror.CodeInvalidInput,
		"transition must be one of ReplacementApprove, SupervisorApprove, AdminApprove, Approve, Reject",
		http.StatusBadRequest,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"you may not perform this transition",
		http.StatusForbidden,
	)
	ErrDependencyUnavailable = apperror.New(
		apperror.CodeDependencyUnavailable,
		"organisation chart is unavailable",
		http.StatusForbidden,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required to reject a request",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
)
