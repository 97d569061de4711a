package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
)

type UpdateProfileCommandHandler struct {
	uowFactory UserUoWFactory
	policy     *services.Policy
}

func NewUpdateProfileCommandHandler(uowFactory UserUoWFactory, policy *services.Policy) UpdateProfileCommandHandler {
	return UpdateProfileCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h UpdateProfileCommandHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionManageOwnProfile); err != nil {
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
	u, err := userRepo.Get(ctx, cmd.Caller().ID)
	if err != nil {
		return nil, err
	}

	if err = u.UpdateProfile(cmd.Name(), cmd.Address(), cmd.ContactNumber(), time.Now().UTC()); err != nil {
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
