package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
)

// SetUserRoleCommandHandler applies role changes. Moving an account to support_agent
// leaves it unapproved.
type SetUserRoleCommandHandler struct {
	uowFactory UserUoWFactory
	policy     *services.Policy
}

func NewSetUserRoleCommandHandler(uowFactory UserUoWFactory, policy *services.Policy) SetUserRoleCommandHandler {
	return SetUserRoleCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h SetUserRoleCommandHandler) Handle(ctx context.Context, cmd SetUserRoleCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionManageUsers); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	u, err := userRepo.Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	if err = u.ChangeRole(cmd.Role(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return u, nil
}
