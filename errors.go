package session

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeNetworkFailure    = "session_network_failure"
	TextCodeAuthFailure       = "session_auth_failure"
	TextCodeValidationFailure = "session_validation_failure"
	TextCodeUnknownFailure    = "session_unknown_failure"
	TextCodeOperationInFlight = "session_operation_in_flight"
	TextCodeInvalidRole       = "session_invalid_role"
)

// ErrOperationInFlight is returned when a session operation is started
// while another one is still pending.
var ErrOperationInFlight = errors.New("session operation already in flight", errors.CategoryConflict).
	WithTextCode(TextCodeOperationInFlight).
	WithCode(errors.CodeConflict)

// ErrInvalidRole is returned when a role value is outside the closed enum.
var ErrInvalidRole = errors.New("role must be student or teacher", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidRole).
	WithCode(errors.CodeBadRequest)

// NewNetworkFailure wraps a transport-level error, meaning no usable
// response was received from the backend.
func NewNetworkFailure(err error) *errors.Error {
	return errors.Wrap(err, errors.CategoryOperation, "backend unreachable").
		WithTextCode(TextCodeNetworkFailure).
		WithCode(errors.CodeInternal)
}

// NewAuthFailure is an authorization rejection (invalid credentials,
// expired or revoked token).
func NewAuthFailure(message string) *errors.Error {
	if message == "" {
		message = "authorization rejected"
	}
	return errors.New(message, errors.CategoryAuth).
		WithTextCode(TextCodeAuthFailure).
		WithCode(errors.CodeUnauthorized)
}

// NewValidationFailure means the payload was rejected, locally or by
// the backend, before any state change happened.
func NewValidationFailure(message string) *errors.Error {
	if message == "" {
		message = "invalid request payload"
	}
	return errors.New(message, errors.CategoryValidation).
		WithTextCode(TextCodeValidationFailure).
		WithCode(errors.CodeBadRequest)
}

// NewUnknownFailure covers everything the other constructors do not.
func NewUnknownFailure(message string) *errors.Error {
	if message == "" {
		message = "unexpected session error"
	}
	return errors.New(message, errors.CategoryInternal).
		WithTextCode(TextCodeUnknownFailure).
		WithCode(errors.CodeInternal)
}

// IsNetworkFailure will check for transport-level failures
func IsNetworkFailure(err error) bool {
	return hasTextCode(err, TextCodeNetworkFailure)
}

// IsAuthFailure will check for authorization rejections
func IsAuthFailure(err error) bool {
	return hasTextCode(err, TextCodeAuthFailure)
}

// IsValidationFailure will check for rejected payloads
func IsValidationFailure(err error) bool {
	return hasTextCode(err, TextCodeValidationFailure)
}

// IsOperationInFlight will check for the single-flight guard rejection
func IsOperationInFlight(err error) bool {
	return hasTextCode(err, TextCodeOperationInFlight)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if !errors.As(err, &rich) {
		return false
	}
	return rich.TextCode == code
}

// FailureMessage extracts the user-displayable message from a failure,
// falling back to the low-level error text.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	var rich *errors.Error
	if errors.As(err, &rich) && rich.Message != "" {
		return rich.Message
	}
	return err.Error()
}
