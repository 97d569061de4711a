package http

import (
	"context"
	"strings"
	"sync"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/user"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

// memoryUsers is an in-memory user store that doubles as its own unit of work.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*user.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: map[string]*user.User{}}
}

func (m *memoryUsers) Create() commands.UserUoW             { return m }
func (m *memoryUsers) Begin(context.Context) error          { return nil }
func (m *memoryUsers) Commit(context.Context) error         { return nil }
func (m *memoryUsers) Rollback(context.Context) error       { return nil }
func (m *memoryUsers) UserRepository() ports.UserRepository { return m }

func (m *memoryUsers) Add(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID().String()] = u
	return nil
}

func (m *memoryUsers) Update(_ context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("userID", u.ID())
	}
	m.users[u.ID().String()] = u
	return nil
}

func (m *memoryUsers) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("userID", id)
	}
	return u, nil
}

func (m *memoryUsers) CurrentRole(ctx context.Context, id kernel.UUID) (user.Role, error) {
	u, err := m.Get(ctx, id)
	if err != nil {
		return user.UnknownRole, err
	}
	return u.Role(), nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email(), email) {
			return u, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("email", email)
}

func (m *memoryUsers) ListByRole(_ context.Context, role user.Role) ([]*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*user.User
	for _, u := range m.users {
		if u.Role() == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(context.Context, ...kernel.DomainEvent) {}
