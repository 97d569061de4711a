package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound is the sentinel for a referenced entity that does not exist.
	ErrObjectNotFound = errors.New("object not found")
	// ErrValueIsInvalid is the sentinel for malformed input.
	ErrValueIsInvalid = errors.New("value is invalid")
	// ErrValueIsOutOfRange is the sentinel for a value outside its allowed bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")
	// ErrValueIsRequired is the sentinel for missing input.
	ErrValueIsRequired = errors.New("value is required")
	// ErrAccessDenied is the sentinel for a role or ownership mismatch.
	ErrAccessDenied = errors.New("access denied")
	// ErrStateConflict is the sentinel for a transition that the current state does not permit.
	ErrStateConflict = errors.New("state conflict")
	// ErrAlreadyExists is the sentinel for a uniqueness violation.
	ErrAlreadyExists = errors.New("object already exists")
)

// sanitize keeps user-supplied values on one line inside error messages.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a lookup that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the given parameter and identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause is NewObjectNotFoundError with an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return withCause(
			fmt.Sprintf("%s: param is: %s, ID is: %s", ErrObjectNotFound, e.ParamName, e.ID),
			e.Cause,
		)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a malformed parameter.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for paramName.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause is NewValueIsInvalidError with an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value below Min or above Max.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause is NewValueIsOutOfRangeError with an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	return withCause(
		fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max)),
		e.Cause,
	)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing parameter.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for paramName.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause is NewValueIsRequiredError with an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// AccessDeniedError reports that Subject may not perform Action. It is distinct from
// ObjectNotFoundError: the target exists but belongs to someone else, or the caller's
// role does not allow the action.
type AccessDeniedError struct {
	Subject string
	Action  string
}

// NewAccessDeniedError creates an AccessDeniedError.
func NewAccessDeniedError(subject, action string) *AccessDeniedError {
	return &AccessDeniedError{Subject: subject, Action: action}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrAccessDenied, e.Subject, e.Action)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// StateConflictError reports a transition rejected by the current state of an aggregate.
// Reason is safe to show to the caller.
type StateConflictError struct {
	Entity string
	Reason string
}

// NewStateConflictError creates a StateConflictError.
func NewStateConflictError(entity, reason string) *StateConflictError {
	return &StateConflictError{Entity: entity, Reason: reason}
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrStateConflict, e.Entity, e.Reason)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// AlreadyExistsError reports a uniqueness violation on ParamName.
type AlreadyExistsError struct {
	ParamName string
	Value     any
}

// NewAlreadyExistsError creates an AlreadyExistsError.
func NewAlreadyExistsError(paramName string, value any) *AlreadyExistsError {
	return &AlreadyExistsError{ParamName: paramName, Value: value}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: %s is %s", ErrAlreadyExists, e.ParamName, sanitize(e.Value))
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}
