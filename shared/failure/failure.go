package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Reasons are machine-readable codes sent next to the human message.
const (
	ReasonValidation        = "validation_error"
	ReasonSlotConflict      = "slot_conflict"
	ReasonAlreadyCancelled  = "already_cancelled"
	ReasonTooLateToCancel   = "too_late_to_cancel"
	ReasonInvalidTransition = "invalid_transition"
	ReasonNoDataToUpdate    = "no_data_to_update"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Reason  string         `json:"reason,omitempty"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// Validation returns a bad request naming the offending field.
func Validation(field, msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
		Reason:  ReasonValidation,
		Field:   field,
	}
}

// Missing returns a validation failure for a required field that was not supplied.
func Missing(field string) error {
	return Validation(field, fmt.Sprintf("%s is required", field))
}

// WithReason returns a new Failure carrying a machine-readable reason and optional details.
func WithReason(code int, reason, msg string, details map[string]any) error {
	return &Failure{
		Code:    code,
		Message: msg,
		Reason:  reason,
		Details: details,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the machine-readable reason of an error interface, if any.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}

// As unwraps err into a Failure.
func As(err error) (*Failure, bool) {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail, true
	}

	return nil, false
}
