// Package ports defines the contracts between the core and its adapters: repositories
// for every aggregate, the unit of work, and the outbound side channels (mail, broker,
// password hashing, token issuing).
package ports

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// Add stores a new account. A taken email yields errs.ErrAlreadyExists.
	Add(ctx context.Context, u *user.User) error

	// Update persists profile, role and approval changes.
	Update(ctx context.Context, u *user.User) error

	// Get returns the account or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByEmail looks an account up by its normalized email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// ListByRole returns every account that currently has role. Notification audiences
	// are resolved through it at event time.
	ListByRole(ctx context.Context, role user.Role) ([]*user.User, error)
}
