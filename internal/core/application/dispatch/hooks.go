package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"logistics/internal/core/domain/model/kernel"

	"github.com/prometheus/client_golang/prometheus"
)

// Hook reacts to a committed domain event.
type Hook interface {
	Name() string
	Handle(ctx context.Context, event kernel.DomainEvent) error
}

// Hooks is the ordered list of post-commit hooks.
type Hooks struct {
	hooks    []Hook
	logger   *slog.Logger
	failures *prometheus.CounterVec
}

// NewHooks creates the runner. failures may be nil; it is labelled by hook and event name.
func NewHooks(logger *slog.Logger, failures *prometheus.CounterVec, hooks ...Hook) *Hooks {
	return &Hooks{
		hooks:    hooks,
		logger:   logger.With("component", "post_commit_hooks"),
		failures: failures,
	}
}

// Dispatch passes every event to every hook. It never fails.
func (h *Hooks) Dispatch(ctx context.Context, events ...kernel.DomainEvent) {
	for _, event := range events {
		for _, hook := range h.hooks {
			h.run(ctx, hook, event)
		}
	}
}

func (h *Hooks) run(ctx context.Context, hook Hook, event kernel.DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			h.fail(ctx, hook, event, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := hook.Handle(ctx, event); err != nil {
		h.fail(ctx, hook, event, err)
	}
}

func (h *Hooks) fail(ctx context.Context, hook Hook, event kernel.DomainEvent, err error) {
	h.logger.ErrorContext(ctx, "Post-commit hook failed",
		"hook", hook.Name(),
		"event", event.EventName(),
		"event_id", event.EventID().String(),
		"error", err,
	)
	if h.failures != nil {
		h.failures.WithLabelValues(hook.Name(), event.EventName()).Inc()
	}
}
