package ticket

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status is the lifecycle state of a support ticket.
//
// State transitions:
//
//	Open ──> In Progress ──> On Hold
//	  │           ▲  │          │
//	  │           │  ▼          ▼
//	  └─────> Resolved ─────> Closed
//
// Open, In Progress and On Hold may also go straight to Resolved or Closed.
// Resolved may be reopened to In Progress. Closed is terminal.
type Status int

const (
	UnknownStatus Status = iota
	Open
	InProgress
	OnHold
	Resolved
	Closed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Open:          "Open",
		InProgress:    "In Progress",
		OnHold:        "On Hold",
		Resolved:      "Resolved",
		Closed:        "Closed",
	}
}

var allowedMoves = map[Status][]Status{
	Open:       {InProgress, OnHold, Resolved, Closed},
	InProgress: {OnHold, Resolved, Closed},
	OnHold:     {InProgress, Resolved, Closed},
	Resolved:   {InProgress, Closed},
	Closed:     {},
}

// Statuses lists the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Open, InProgress, OnHold, Resolved, Closed}
}

// ParseStatus converts a display name such as "on hold" to a Status.
func ParseStatus(s string) (Status, error) {
	needle := strings.TrimSpace(s)
	for _, status := range Statuses() {
		if strings.EqualFold(status.String(), needle) {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid ticket status", s))
}

func (s Status) Validate() error {
	if _, ok := allowedMoves[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid ticket status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// MarshalText lets statuses appear by display name in JSON payloads.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsTerminal reports whether s is Closed.
func (s Status) IsTerminal() bool {
	return s == Closed
}

// CanMoveTo returns nil when the ticket may go from s to next, and a
// StateConflictError otherwise. Staying in the same status is not a move.
func (s Status) CanMoveTo(next Status) error {
	for _, allowed := range allowedMoves[s] {
		if allowed == next {
			return nil
		}
	}
	return errs.NewStateConflictError("ticket", fmt.Sprintf("cannot move a ticket from %s to %s", s, next))
}
