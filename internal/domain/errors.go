package domain

import "errors"

// Sentinel errors shared across services.
var (
	// ErrInvalidToken is returned when a guest link token cannot be decoded.
	ErrInvalidToken = errors.New("invalid guest link token")
	// ErrDuplicateRecipient is returned when a recipient already holds an invitation for the event.
	ErrDuplicateRecipient = errors.New("recipient already invited")
	// ErrForbidden is returned when the caller is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials is returned on a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// NotFoundError reports that an entity of the given kind does not exist.
// Callers match it with errors.As and read Entity to decide how to respond;
// the message text is never inspected.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// NewNotFound returns a NotFoundError for the given entity kind.
func NewNotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

// IsNotFound reports whether err is a NotFoundError of any kind.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// AlreadyExistsError reports that an entity of the given kind already exists.
type AlreadyExistsError struct {
	Entity string
}

func (e *AlreadyExistsError) Error() string {
	return e.Entity + " already exists"
}

// NewAlreadyExists returns an AlreadyExistsError for the given entity kind.
func NewAlreadyExists(entity string) error {
	return &AlreadyExistsError{Entity: entity}
}

// IsAlreadyExists reports whether err is an AlreadyExistsError of any kind.
func IsAlreadyExists(err error) bool {
	var ae *AlreadyExistsError
	return errors.As(err, &ae)
}

// ValidationError reports a rejected input or an invariant violation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidation returns a ValidationError with the given reason.
func NewValidation(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
