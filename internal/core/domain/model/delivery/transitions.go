package delivery

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Actor is who requests a status change.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
	ActorDriver   Actor = "driver"
	ActorSystem   Actor = "system"
)

// Transition is one allowed status edge for one actor.
type Transition struct {
	From  Status
	To    Status
	Actor Actor
}

type transitionKey struct {
	from  Status
	to    Status
	actor Actor
}

// driverTargets is the only set of statuses a driver may request.
var driverTargets = map[Status]bool{OutForDelivery: true, Delivered: true, Cancelled: true}

// validTransitions is the authoritative delivery state machine.
var validTransitions = buildTransitions()

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

func buildTransitions() []Transition {
	ts := []Transition{
		// customer cancels before pickup
		{From: Pending, To: Cancelled, Actor: ActorCustomer},
		{From: Scheduled, To: Cancelled, Actor: ActorCustomer},
		// driver assignment moves a pending delivery forward
		{From: Pending, To: Scheduled, Actor: ActorSystem},
	}

	for _, from := range Statuses() {
		for _, to := range Statuses() {
			if from == to {
				continue
			}
			// admins may set any status, including corrections out of a terminal one
			ts = append(ts, Transition{From: from, To: to, Actor: ActorAdmin})
			if !from.IsTerminal() && driverTargets[to] {
				ts = append(ts, Transition{From: from, To: to, Actor: ActorDriver})
			}
		}
	}
	return ts
}

// Transitions returns a copy of the state machine, for documentation and tests.
func Transitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}

// ValidTransitionsFrom returns the statuses actor may move a delivery to from status.
func ValidTransitionsFrom(status Status, actor Actor) []Status {
	var next []Status
	for _, to := range Statuses() {
		if transitionMap[transitionKey{status, to, actor}] {
			next = append(next, to)
		}
	}
	return next
}

// CanTransition returns nil when actor may move a delivery from one status to another,
// and a StateConflictError naming the allowed targets otherwise.
func CanTransition(from, to Status, actor Actor) error {
	if transitionMap[transitionKey{from, to, actor}] {
		return nil
	}
	return errs.NewStateConflictError("delivery", fmt.Sprintf(
		"%s may not move a delivery from %s to %s (allowed: %s)",
		actor, from, to, describe(ValidTransitionsFrom(from, actor)),
	))
}

func describe(statuses []Status) string {
	if len(statuses) == 0 {
		return "none"
	}
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}
