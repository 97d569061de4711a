package delivery

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// State transitions:
//
//	Pending ──> Scheduled ──> Out for Delivery ──> Delivered
//	   │            │                │
//	   └────────────┴────────────────┴──> Cancelled
//
// Which actor may take which edge is decided by the transition table in
// transitions.go. Delivered and Cancelled are terminal for customers and drivers;
// admins may still correct a terminal status.
type Status int

const (
	// UnknownStatus is the zero value and never valid.
	UnknownStatus Status = iota

	// Pending is the status of a freshly booked delivery without a driver.
	Pending

	// Scheduled means a driver has been assigned and pickup is planned.
	Scheduled

	// OutForDelivery means the parcel has been picked up. From here on the customer
	// can no longer edit or cancel.
	OutForDelivery

	// Delivered is terminal. Entering it stamps the delivery date once.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:  "Unknown",
		Pending:        "Pending",
		Scheduled:      "Scheduled",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // UnknownStatus is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Scheduled:      "Scheduled",
		OutForDelivery: "Out for Delivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// Statuses lists the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Scheduled, OutForDelivery, Delivered, Cancelled}
}

// ParseStatus converts a display name ("Out for Delivery") back to a Status.
// Matching ignores case and surrounding spaces.
func ParseStatus(s string) (Status, error) {
	needle := strings.TrimSpace(s)
	for status, str := range getValidStatusStrings() {
		if strings.EqualFold(str, needle) {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid delivery status", s))
}

// Validate checks that s is one of the five lifecycle statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the display name, e.g. "Out for Delivery".
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

// IsTerminal reports whether s is Delivered or Cancelled.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsBeforePickup reports whether the customer may still edit or cancel.
func (s Status) IsBeforePickup() bool {
	return s == Pending || s == Scheduled
}
