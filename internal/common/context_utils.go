package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendDomainError maps a domain error to the standard error envelope.
// Non-domain errors become a generic 500 without leaking internals.
func SendDomainError(c echo.Context, err error) error {
	var de *DomainError
	if errors.As(err, &de) {
		var details map[string]string
		if de.Reason != "" {
			details = map[string]string{"reason": de.Reason}
		}
		return c.JSON(HTTPStatus(de.Kind), CreateErrorResponse(string(de.Kind), de.Message, details))
	}
	return c.JSON(HTTPStatus(""), CreateErrorResponse("SERVER_ERROR", "Internal server error", nil))
}

// SendValidationError sends a field-level validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{field: message}
	return c.JSON(HTTPStatus(KindValidation), CreateErrorResponse(string(KindValidation), "Validation failed", details))
}

// SendClientError sends a generic client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(HTTPStatus(KindValidation), CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// GetUserIDFromContext extracts the authenticated user ID
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// GetRoleFromContext extracts the authenticated user's role
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

// ValidateUUID validates UUID format
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}
	return id, nil
}

// ValidatePositiveInteger validates positive integer values with an upper bound
func ValidatePositiveInteger(value int, fieldName string, max int) error {
	if value <= 0 {
		return fmt.Errorf("%s must be positive", fieldName)
	}
	if value > max {
		return fmt.Errorf("%s must not exceed %d", fieldName, max)
	}
	return nil
}

// ParseDateTime combines a date ("2006-01-02") and a time ("15:04")
// into a single instant. Window comparisons are always done on the
// combined value so a window may span two calendar dates.
func ParseDateTime(dateStr, timeStr string) (time.Time, error) {
	combined, err := time.Parse("2006-01-02 15:04", strings.TrimSpace(dateStr)+" "+strings.TrimSpace(timeStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time: expected date 2006-01-02 and time 15:04")
	}
	return combined, nil
}
