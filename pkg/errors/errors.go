package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// InvalidTransition rejects an action that is not legal from the current
// lifecycle status. The message names both, so the client can show the real
// current state instead of a generic failure.
func InvalidTransition(status, action string) *AppError {
	return &AppError{
		Code:    "INVALID_TRANSITION",
		Message: fmt.Sprintf("action %s is not allowed while the task is %s", action, status),
		Status:  http.StatusConflict,
	}
}

// AlreadyClaimed means a claim race was lost: another helper's accept
// committed first. Kept distinct from INVALID_TRANSITION.
func AlreadyClaimed() *AppError {
	return &AppError{
		Code:    "ALREADY_CLAIMED",
		Message: "someone else has already taken this task",
		Status:  http.StatusConflict,
	}
}

// NegotiationLimitReached is surfaced when the counter-offer round limit is
// exhausted, so the client can disable further negotiation.
func NegotiationLimitReached() *AppError {
	return &AppError{
		Code:    "NEGOTIATION_LIMIT_REACHED",
		Message: "the negotiation round limit for this task has been reached",
		Status:  http.StatusUnprocessableEntity,
	}
}

// VersionConflict reports a failed conditional write. Transient: callers
// re-fetch and re-evaluate, never blind-retry with stale intent.
func VersionConflict(resource string) *AppError {
	return &AppError{
		Code:    "VERSION_CONFLICT",
		Message: fmt.Sprintf("%s was modified concurrently", resource),
		Status:  http.StatusConflict,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
