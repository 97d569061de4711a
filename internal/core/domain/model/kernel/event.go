package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a state transition. Events are
// collected from aggregates after the unit of work commits and handed to the post-commit
// hooks (notifications, email, broker).
type DomainEvent interface {
	// EventID identifies this occurrence; notification records are unique per (recipient, EventID).
	EventID() UUID
	// EventName is a stable dotted name such as "delivery.created".
	EventName() string
	// OccurredAt is the transition time.
	OccurredAt() time.Time
}

// BaseEvent carries the fields every DomainEvent has and is embedded by concrete events.
type BaseEvent struct {
	ID   UUID      `json:"event_id"`
	Name string    `json:"event_name"`
	At   time.Time `json:"occurred_at"`
}

// NewBaseEvent stamps a fresh event identifier.
func NewBaseEvent(name string, at time.Time) BaseEvent {
	return BaseEvent{ID: NewUUID(), Name: name, At: at}
}

func (e BaseEvent) EventID() UUID         { return e.ID }
func (e BaseEvent) EventName() string     { return e.Name }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// EventRecorder buffers events raised by an aggregate until they are pulled after commit.
type EventRecorder struct {
	events []DomainEvent
}

// Record appends an event.
func (r *EventRecorder) Record(e DomainEvent) {
	r.events = append(r.events, e)
}

// DomainEvents returns the buffered events in the order they were raised.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ClearDomainEvents drops the buffer, e.g. after the hooks have run.
func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
