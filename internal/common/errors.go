package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies domain errors so handlers can map them to
// HTTP responses without string matching.
type ErrorKind string

const (
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindWrongState        ErrorKind = "WRONG_STATE"
	KindValidation        ErrorKind = "VALIDATION_ERROR"
	KindPromotionInvalid  ErrorKind = "PROMOTION_INVALID"
	KindConflict          ErrorKind = "CONFLICT"
)

// Promotion rejection reasons, surfaced in the error details
const (
	PromoReasonExpired            = "INVALID_OR_EXPIRED"
	PromoReasonRestaurantMismatch = "RESTAURANT_MISMATCH"
	PromoReasonBelowMinimum       = "BELOW_MINIMUM"
)

// DomainError carries an error kind plus a human message. All domain
// errors are recoverable at the request boundary.
type DomainError struct {
	Kind    ErrorKind
	Reason  string // optional sub-kind, used by promotion errors
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(kind ErrorKind, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(resource string) *DomainError {
	return NewDomainError(KindNotFound, "%s not found", resource)
}

func InvalidTransitionError(current, requested string) *DomainError {
	return NewDomainError(KindInvalidTransition, "invalid status transition from %s to %s", current, requested)
}

func WrongStateError(format string, args ...interface{}) *DomainError {
	return NewDomainError(KindWrongState, format, args...)
}

func ValidationError(format string, args ...interface{}) *DomainError {
	return NewDomainError(KindValidation, format, args...)
}

func ConflictError(format string, args ...interface{}) *DomainError {
	return NewDomainError(KindConflict, format, args...)
}

func PromotionError(reason, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindPromotionInvalid, Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the error kind, or empty string for non-domain errors
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// PromoReasonOf returns the promotion rejection reason, if any
func PromoReasonOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}

// HTTPStatus maps an error kind to the response status code
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidTransition, KindWrongState, KindValidation, KindPromotionInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
