package commands

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/domain/services"
)

// ApproveAgentCommandHandler approves support agents. Approving an approved agent
// changes nothing and notifies nobody.
type ApproveAgentCommandHandler struct {
	uowFactory UserUoWFactory
	policy     *services.Policy
	events     EventDispatcher
}

func NewApproveAgentCommandHandler(
	uowFactory UserUoWFactory,
	policy *services.Policy,
	events EventDispatcher,
) ApproveAgentCommandHandler {
	return ApproveAgentCommandHandler{uowFactory: uowFactory, policy: policy, events: events}
}

func (h ApproveAgentCommandHandler) Handle(ctx context.Context, cmd ApproveAgentCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Authorize(cmd.Caller().Role, services.ActionApproveAgent); err != nil {
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
	agent, err := userRepo.Get(ctx, cmd.AgentID())
	if err != nil {
		return nil, err
	}

	changed, err := agent.Approve(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		return agent, nil
	}

	if err = userRepo.Update(ctx, agent); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.events.Dispatch(ctx, drain(agent)...)
	return agent, nil
}
