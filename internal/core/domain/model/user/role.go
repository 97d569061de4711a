package user

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// Role is the access role of a user account. It decides which actions the
// authorization policy allows and which notification audiences the user belongs to.
//
// The string form is what is persisted and what travels inside access tokens.
type Role int

const (
	// UnknownRole is the zero value and never valid.
	UnknownRole Role = iota

	// Customer books deliveries, raises tickets and leaves reviews.
	Customer

	// Admin manages users, drivers, deliveries and ticket reassignment.
	Admin

	// Driver moves assigned deliveries through the last-mile statuses.
	Driver

	// SupportAgent handles tickets once an admin has approved the account.
	SupportAgent
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:  "unknown",
		Customer:     "user",
		Admin:        "admin",
		Driver:       "driver",
		SupportAgent: "support_agent",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // UnknownRole is intentionally excluded as it's invalid
	return map[Role]string{
		Customer:     "user",
		Admin:        "admin",
		Driver:       "driver",
		SupportAgent: "support_agent",
	}
}

// ParseRole converts the persisted form back to a Role. Matching ignores case and
// surrounding spaces.
//
// Example:
//
//	role, err := user.ParseRole("support_agent") // SupportAgent, nil
func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for role, str := range getValidRoleStrings() {
		if str == needle {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate returns an error for UnknownRole and out-of-range values.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the persisted name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// MarshalText lets roles appear by name in JSON payloads.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
