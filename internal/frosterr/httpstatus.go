package frosterr

import (
	"errors"
	"net/http"
)

// HTTPStatus maps err to the HTTP status code the httpapi package should
// respond with, by checking it against the sentinel kinds in decreasing
// order of specificity. An err that matches none of them maps to 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateCommitment), errors.Is(err, ErrSessionMismatch):
		return http.StatusConflict
	case errors.Is(err, ErrInsufficientCommitments), errors.Is(err, ErrInsufficientShares):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidCommitment), errors.Is(err, ErrInvalidSigningPackage), errors.Is(err, ErrInvalidShare):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnsafeOperationDisabled):
		return http.StatusForbidden
	case errors.Is(err, ErrAggregationFailed), errors.Is(err, ErrVerificationFailed), errors.Is(err, ErrPrimitiveFailure):
		return http.StatusInternalServerError
	case errors.Is(err, ErrTransportExhausted):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Code maps err to a short, stable error_code string for the HTTP API's
// error body, by checking it against the same sentinel kinds HTTPStatus
// uses. An err that matches none of them maps to "internal_error".
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, ErrSessionMismatch):
		return "session_mismatch"
	case errors.Is(err, ErrDuplicateCommitment):
		return "duplicate_commitment"
	case errors.Is(err, ErrInsufficientCommitments):
		return "insufficient_commitments"
	case errors.Is(err, ErrInsufficientShares):
		return "insufficient_shares"
	case errors.Is(err, ErrInvalidCommitment):
		return "invalid_commitment"
	case errors.Is(err, ErrInvalidSigningPackage):
		return "invalid_signing_package"
	case errors.Is(err, ErrInvalidShare):
		return "invalid_share"
	case errors.Is(err, ErrAggregationFailed):
		return "aggregation_failed"
	case errors.Is(err, ErrVerificationFailed):
		return "verification_failed"
	case errors.Is(err, ErrUnsafeOperationDisabled):
		return "unsafe_operation_disabled"
	case errors.Is(err, ErrTransportExhausted):
		return "transport_exhausted"
	case errors.Is(err, ErrPrimitiveFailure):
		return "primitive_failure"
	default:
		return "internal_error"
	}
}
