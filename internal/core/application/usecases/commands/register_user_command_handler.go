package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// RegisterUserCommandHandler creates accounts. A taken email is reported as
// errs.ErrAlreadyExists, both by the lookup here and by the unique index behind it.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	events     EventDispatcher
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	events EventDispatcher,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{uowFactory: uowFactory, hasher: hasher, events: events}
}

// Handle hashes the password, stores the account and, for agents, announces the
// registration to the admins.
func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u, err := user.NewUser(cmd.UserID(), cmd.Email(), hash, cmd.Name(), cmd.Role(), now)
	if err != nil {
		return nil, err
	}
	if cmd.Address() != "" || cmd.ContactNumber() != "" {
		address, contact := cmd.Address(), cmd.ContactNumber()
		if err = u.UpdateProfile(nil, &address, &contact, now); err != nil {
			return nil, err
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userRepo := uow.UserRepository()
	_, err = userRepo.GetByEmail(ctx, u.Email())
	switch {
	case err == nil:
		return nil, errs.NewAlreadyExistsError("email", u.Email())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	if err = userRepo.Add(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.Dispatch(ctx, drain(u)...)
	return u, nil
}
