package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/pkg/guard"
)

var ErrSetUserRoleCommandIsNotConstructed = errors.New(
	"SetUserRoleCommand must be created via NewSetUserRoleCommand constructor",
)

// SetUserRoleCommand is an admin changing the role of an account.
type SetUserRoleCommand struct { //nolint:recvcheck //using for validation
	caller Caller
	userID kernel.UUID
	role   user.Role

	guard guard.ConstructorGuard
}

func NewSetUserRoleCommand(caller Caller, userID kernel.UUID, role user.Role) (SetUserRoleCommand, error) {
	if err := errors.Join(caller.Validate(), userID.Validate(), role.Validate()); err != nil {
		return SetUserRoleCommand{}, err
	}
	return SetUserRoleCommand{caller: caller, userID: userID, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (c SetUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrSetUserRoleCommandIsNotConstructed)
}

func (c SetUserRoleCommand) Caller() Caller      { return c.caller }
func (c SetUserRoleCommand) UserID() kernel.UUID { return c.userID }
func (c SetUserRoleCommand) Role() user.Role     { return c.role }
