package requesterrors

import (
	"net/http"

	"go-hris-workflow/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidType = apperror.New(
		apperror.CodeInvalidInput,
		"type must be one of VACATION, SEVERANCE, SHIFT_CHANGE",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrVacationDatesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"start_date and end_date are required for vacation requests",
		http.StatusBadRequest,
	)
	ErrShiftDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"shift_date is required for shift change requests",
		http.StatusBadRequest,
	)
	ErrAmountRequired = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than zero for severance requests",
		http.StatusBadRequest,
	)
	ErrReplacementRequired = apperror.New(
		apperror.CodeInvalidInput,
		"replacement_ref is required for shift change requests",
		http.StatusBadRequest,
	)
	ErrReplacementNotAllowed = apperror.New(
		apperror.CodeInvalidInput,
		"replacement_ref is only accepted for vacation and shift change requests",
		http.StatusBadRequest,
	)
	ErrReplacementIsRequester = apperror.New(
		apperror.CodeInvalidInput,
		"the requester cannot be their own replacement",
		http.StatusBadRequest,
	)
	ErrReplacementUnknown = apperror.New(
		apperror.CodeInvalidInput,
		"replacement_ref does not match any employee",
		http.StatusBadRequest,
	)
	ErrSubmitForbidden = apperror.New(
		apperror.CodeForbidden,
		"you may not file employee requests",
		http.StatusForbidden,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrDeleteOnlyPending = apperror.New(
		apperror.CodeInvalidState,
		"request can only be deleted while PENDING",
		http.StatusConflict,
	)
	ErrDeleteOnlyRequester = apperror.New(
		apperror.CodeForbidden,
		"only the requester may delete a request",
		http.StatusForbidden,
	)
	ErrConflict = apperror.New(
		apperror.CodeConflict,
		"request is being modified concurrently, retry",
		http.StatusConflict,
	)
	ErrImmutableField = apperror.New(
		apperror.CodeInternalError,
		"immutable request field was modified",
		http.StatusInternalServerError,
	)
	ErrDependencyUnavailable = apperror.New(
		apperror.CodeDependencyUnavailable,
		"organisation chart is unavailable",
		http.StatusForbidden,
	)
)
