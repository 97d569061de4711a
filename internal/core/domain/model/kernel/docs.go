// Package kernel provides the value objects shared by every aggregate of the logistics
// domain.
//
// The package includes:
//   - UUID: identifiers for users, deliveries, tickets, notifications and events
//   - Place: the pincode and/or city/state pair used to resolve distances
//   - Coordinates: latitude/longitude with haversine distance
//   - DomainEvent, BaseEvent, EventRecorder: facts raised by aggregate transitions and
//     dispatched to post-commit hooks
//
// Values are immutable once constructed; constructors validate and return errs types.
package kernel
