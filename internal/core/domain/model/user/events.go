package user

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

const (
	AgentRegisteredEventName = "support.agent_registered"
	AgentApprovedEventName   = "support.agent_approved"
)

// AgentRegisteredEvent is raised when a support agent signs up and waits for approval.
type AgentRegisteredEvent struct {
	kernel.BaseEvent
	AgentID kernel.UUID `json:"agent_id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
}

// AgentApprovedEvent is raised the first time an admin approves a support agent.
type AgentApprovedEvent struct {
	kernel.BaseEvent
	AgentID kernel.UUID `json:"agent_id"`
	Email   string      `json:"email"`
}

func newAgentRegisteredEvent(u *User, at time.Time) AgentRegisteredEvent {
	return AgentRegisteredEvent{
		BaseEvent: kernel.NewBaseEvent(AgentRegisteredEventName, at),
		AgentID:   u.id,
		Name:      u.name,
		Email:     u.email,
	}
}

func newAgentApprovedEvent(u *User, at time.Time) AgentApprovedEvent {
	return AgentApprovedEvent{
		BaseEvent: kernel.NewBaseEvent(AgentApprovedEventName, at),
		AgentID:   u.id,
		Email:     u.email,
	}
}
