package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrApproveAgentCommandIsNotConstructed = errors.New(
	"ApproveAgentCommand must be created via NewApproveAgentCommand constructor",
)

// ApproveAgentCommand is an admin approving a registered support agent.
type ApproveAgentCommand struct { //nolint:recvcheck //using for validation
	caller  Caller
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveAgentCommand(caller Caller, agentID kernel.UUID) (ApproveAgentCommand, error) {
	if err := errors.Join(caller.Validate(), agentID.Validate()); err != nil {
		return ApproveAgentCommand{}, err
	}
	return ApproveAgentCommand{caller: caller, agentID: agentID, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveAgentCommand) Validate() error {
	return c.guard.Validate(ErrApproveAgentCommandIsNotConstructed)
}

func (c ApproveAgentCommand) Caller() Caller       { return c.caller }
func (c ApproveAgentCommand) AgentID() kernel.UUID { return c.agentID }
