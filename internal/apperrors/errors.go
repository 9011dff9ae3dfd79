// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/fanzlabs/commissions-backend/internal/models"
)

type ErrorCode string

const (
	CodeNotFound               ErrorCode = "NOT_FOUND"
	CodeInvalidStateTransition ErrorCode = "INVALID_STATE_TRANSITION"
	CodeUnauthorizedActor      ErrorCode = "UNAUTHORIZED_ACTOR"
	CodeComplianceNotSatisfied ErrorCode = "COMPLIANCE_NOT_SATISFIED"
	CodeEscrowFundingFailed    ErrorCode = "ESCROW_FUNDING_FAILED"
	CodeEscrowReleaseFailed    ErrorCode = "ESCROW_RELEASE_FAILED"
	CodeEscrowDisputeFailed    ErrorCode = "ESCROW_DISPUTE_FAILED"
	CodeValidation             ErrorCode = "VALIDATION_ERROR"
	CodeConflict               ErrorCode = "CONFLICT"
	CodeInternal               ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorizedActor:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusBadRequest
	case CodeInvalidStateTransition, CodeComplianceNotSatisfied, CodeConflict:
		return http.StatusConflict
	case CodeEscrowFundingFailed, CodeEscrowReleaseFailed, CodeEscrowDisputeFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NotFound reports a missing commission request.
func NotFound(id string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("commission request %s not found", id))
}

// InvalidStateTransition names the attempted action and the actual current
// status, per the workflow contract: never silently ignored.
func InvalidStateTransition(action string, current models.RequestStatus) *AppError {
	return New(CodeInvalidStateTransition,
		fmt.Sprintf("action %q is not allowed while request is %q", action, current))
}

func UnauthorizedActor(action string) *AppError {
	return New(CodeUnauthorizedActor, fmt.Sprintf("actor is not permitted to perform %q", action))
}

func ComplianceNotSatisfied() *AppError {
	return New(CodeComplianceNotSatisfied,
		"terms acceptance and no-chargeback signature are required before escrow funding")
}

func EscrowFundingFailed(cause error) *AppError {
	return Wrap(cause, CodeEscrowFundingFailed, "escrow bridge rejected the hold; request remains retryable")
}

func EscrowReleaseFailed(cause error) *AppError {
	return Wrap(cause, CodeEscrowReleaseFailed, "escrow bridge rejected the release; request state unchanged")
}

func EscrowDisputeFailed(cause error) *AppError {
	return Wrap(cause, CodeEscrowDisputeFailed, "escrow bridge rejected the dispute; request state unchanged")
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool { return Is(err, CodeNotFound) }

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
