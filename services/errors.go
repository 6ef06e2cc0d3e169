package services

import "errors"

// Error taxonomy shared by all services. Controllers map these onto HTTP
// status codes at the boundary; services never see status codes.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrConflict            = errors.New("resource already exists")
	ErrForbidden           = errors.New("not allowed to modify this resource")
	ErrAccountExists       = errors.New("an account with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrUpstreamUnavailable = errors.New("external video service unavailable")
	ErrStoreUnavailable    = errors.New("catalog store unavailable")
	ErrMailDelivery        = errors.New("could not send email")
)

// ValidationError carries a user-facing message for malformed input that
// survives past request binding.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
