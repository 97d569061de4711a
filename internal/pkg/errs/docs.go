// Package errs provides the error taxonomy shared by the domain, application and
// adapter layers.
//
// Each kind has a sentinel (for errors.Is), a struct carrying details, and
// constructors with and without a cause:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: rejected input
//   - ObjectNotFoundError: the referenced entity does not exist
//   - AccessDeniedError: the entity exists but the caller's role or ownership does not allow the action
//   - StateConflictError: the aggregate's current state does not permit the transition
//   - AlreadyExistsError: a uniqueness rule would be violated
//
// The HTTP adapter maps these to status codes; nothing below it knows about HTTP.
package errs
