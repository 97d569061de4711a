package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/errs"
)

// Caller is the authenticated account a command runs for. Its role comes from the access
// token and is checked against the policy before anything is loaded.
type Caller struct {
	ID   kernel.UUID
	Role user.Role
}

// Validate rejects a caller without identity or role.
func (c Caller) Validate() error {
	if err := errors.Join(c.ID.Validate(), c.Role.Validate()); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("caller", err)
	}
	return nil
}
